package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadastro/internal/domain"
)

type fakeRepo struct {
	createErr error
	updateErr error
	deleteErr error
	getUser   domain.User
	getErr    error

	created []domain.User
	updated []domain.User
	gotten  []string
	deleted []string
}

func (f *fakeRepo) Init(context.Context) error { return nil }

func (f *fakeRepo) Create(_ context.Context, user domain.User) error {
	f.created = append(f.created, user)
	return f.createErr
}

func (f *fakeRepo) Update(_ context.Context, user domain.User) error {
	f.updated = append(f.updated, user)
	return f.updateErr
}

func (f *fakeRepo) GetByDocument(_ context.Context, document string) (domain.User, error) {
	f.gotten = append(f.gotten, document)
	return f.getUser, f.getErr
}

func (f *fakeRepo) DeleteByDocument(_ context.Context, document string) error {
	f.deleted = append(f.deleted, document)
	return f.deleteErr
}

type fakeHasher struct {
	out string
	err error
}

func (f fakeHasher) Hash(string) (string, error)         { return f.out, f.err }
func (f fakeHasher) Verify(string, string) (bool, error) { return false, nil }

type fakeIDs struct{ id string }

func (f fakeIDs) Generate() string { return f.id }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC)

func newUserService(repo *fakeRepo, hasher fakeHasher) UserService {
	return NewUserService(repo, hasher, fakeIDs{id: "uuid"}, fixedClock{t: testNow})
}

func validCreateRequest() CreateUserRequest {
	return CreateUserRequest{
		Name:      "Claudion du fret",
		Document:  "40735626065",
		BirthDate: time.Date(1999, time.September, 5, 0, 0, 0, 0, time.UTC),
		Password:  "password",
	}
}

func businessCode(t *testing.T, err error) (domain.Kind, int) {
	t.Helper()
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Kind, domainErr.Code
}

func TestCreateAssignsIDAndHashBeforePersisting(t *testing.T) {
	repo := &fakeRepo{}
	created, err := newUserService(repo, fakeHasher{out: "hash_password"}).Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.Equal(t, "uuid", stored.ID)
	assert.Equal(t, "hash_password", stored.PasswordHash)
	assert.Equal(t, "40735626065", stored.Document.String())
	assert.True(t, stored.Document.IsValid())
	assert.Equal(t, domain.StatusActive, stored.Status)
	assert.Equal(t, testNow, stored.CreatedAt)

	// The returned record is public-safe.
	assert.Empty(t, created.PasswordHash)
	assert.Equal(t, "uuid", created.ID)
}

func TestCreateRejectsMalformedDocument(t *testing.T) {
	repo := &fakeRepo{}
	req := validCreateRequest()
	req.Document = "invalid123!"

	_, err := newUserService(repo, fakeHasher{out: "hash_password"}).Create(context.Background(), req)
	kind, code := businessCode(t, err)
	assert.Equal(t, domain.KindBusiness, kind)
	assert.Equal(t, domain.CodeInvalidDocument, code)
	assert.Empty(t, repo.created, "repository must not be called")
}

func TestCreateRejectsBadChecksum(t *testing.T) {
	repo := &fakeRepo{}
	req := validCreateRequest()
	req.Document = "40735626066"

	_, err := newUserService(repo, fakeHasher{out: "hash_password"}).Create(context.Background(), req)
	kind, code := businessCode(t, err)
	assert.Equal(t, domain.KindBusiness, kind)
	assert.Equal(t, domain.CodeInvalidDocument, code)
	assert.Empty(t, repo.created)
}

func TestCreateRejectsUnderage(t *testing.T) {
	repo := &fakeRepo{}
	req := validCreateRequest()
	req.Document = "55168718086"
	req.BirthDate = time.Date(2007, time.September, 5, 0, 0, 0, 0, time.UTC)

	_, err := newUserService(repo, fakeHasher{out: "hash_password"}).Create(context.Background(), req)
	kind, code := businessCode(t, err)
	assert.Equal(t, domain.KindBusiness, kind)
	assert.Equal(t, domain.CodeUnderage, code)
	assert.Empty(t, repo.created)
}

func TestCreateChecksDocumentBeforeAge(t *testing.T) {
	// Both checks would fail; the document error must win.
	repo := &fakeRepo{}
	req := validCreateRequest()
	req.Document = "40735626066"
	req.BirthDate = time.Date(2020, time.September, 5, 0, 0, 0, 0, time.UTC)

	_, err := newUserService(repo, fakeHasher{out: "hash_password"}).Create(context.Background(), req)
	_, code := businessCode(t, err)
	assert.Equal(t, domain.CodeInvalidDocument, code)
}

func TestCreateWrapsHasherFailure(t *testing.T) {
	repo := &fakeRepo{}
	_, err := newUserService(repo, fakeHasher{err: errors.New("hash_error")}).Create(context.Background(), validCreateRequest())

	kind, code := businessCode(t, err)
	assert.Equal(t, domain.KindInternal, kind)
	assert.Equal(t, 0, code)
	assert.Contains(t, err.Error(), "hash_error")
	assert.Empty(t, repo.created)
}

func TestCreatePropagatesRepositoryError(t *testing.T) {
	repo := &fakeRepo{createErr: domain.NewAlreadyExists(domain.CodeUserAlreadyExists)}
	_, err := newUserService(repo, fakeHasher{out: "hash_password"}).Create(context.Background(), validCreateRequest())

	kind, code := businessCode(t, err)
	assert.Equal(t, domain.KindAlreadyExists, kind)
	assert.Equal(t, domain.CodeUserAlreadyExists, code)
}

func TestUpdateValidatesAndKeepsPasswordUntouched(t *testing.T) {
	repo := &fakeRepo{}
	err := newUserService(repo, fakeHasher{out: "should-not-be-used"}).Update(context.Background(), UpdateUserRequest{
		ID:        "uuid",
		Name:      "Claudion du fret",
		Document:  "40735626065",
		BirthDate: time.Date(1999, time.September, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.Len(t, repo.updated, 1)
	assert.Equal(t, "uuid", repo.updated[0].ID)
	assert.Empty(t, repo.updated[0].PasswordHash)
}

func TestUpdateSurfacesNotFound(t *testing.T) {
	repo := &fakeRepo{updateErr: domain.NewNotFound(domain.CodeUserNotFound)}
	err := newUserService(repo, fakeHasher{}).Update(context.Background(), UpdateUserRequest{
		ID:        "missing",
		Name:      "Claudion du fret",
		Document:  "40735626065",
		BirthDate: time.Date(1999, time.September, 5, 0, 0, 0, 0, time.UTC),
	})

	kind, code := businessCode(t, err)
	assert.Equal(t, domain.KindNotFound, kind)
	assert.Equal(t, domain.CodeUserNotFound, code)
}

func TestUpdateRejectsInvalidDocument(t *testing.T) {
	repo := &fakeRepo{}
	err := newUserService(repo, fakeHasher{}).Update(context.Background(), UpdateUserRequest{
		ID:        "uuid",
		Name:      "Claudion du fret",
		Document:  "40735626066",
		BirthDate: time.Date(1999, time.September, 5, 0, 0, 0, 0, time.UTC),
	})

	_, code := businessCode(t, err)
	assert.Equal(t, domain.CodeInvalidDocument, code)
	assert.Empty(t, repo.updated)
}

func TestGetStripsPasswordHash(t *testing.T) {
	doc, err := domain.ParseDocument("40735626065")
	require.NoError(t, err)

	stored := domain.NewUser("Claudion du fret", doc, domain.NewBirthDate(time.Date(1999, time.September, 5, 0, 0, 0, 0, time.UTC)), testNow)
	stored.ID = "uuid"
	stored.PasswordHash = "super-secret-hash"

	repo := &fakeRepo{getUser: stored}
	got, err := newUserService(repo, fakeHasher{}).Get(context.Background(), "40735626065")
	require.NoError(t, err)

	assert.Empty(t, got.PasswordHash)
	assert.True(t, got.Equal(stored))
	assert.Equal(t, []string{"40735626065"}, repo.gotten)
}

func TestGetRejectsInvalidDocument(t *testing.T) {
	repo := &fakeRepo{}
	_, err := newUserService(repo, fakeHasher{}).Get(context.Background(), "not-a-document")

	_, code := businessCode(t, err)
	assert.Equal(t, domain.CodeInvalidDocument, code)
	assert.Empty(t, repo.gotten)
}

func TestDelete(t *testing.T) {
	repo := &fakeRepo{}
	svc := newUserService(repo, fakeHasher{})

	require.NoError(t, svc.Delete(context.Background(), "40735626065"))
	assert.Equal(t, []string{"40735626065"}, repo.deleted)

	repo.deleteErr = domain.NewNotFound(domain.CodeUserNotFound)
	err := svc.Delete(context.Background(), "40735626065")
	kind, code := businessCode(t, err)
	assert.Equal(t, domain.KindNotFound, kind)
	assert.Equal(t, domain.CodeUserNotFound, code)
}
