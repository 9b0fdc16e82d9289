package service

import (
	"context"
	"time"

	"cadastro/internal/domain"
	"cadastro/internal/idgen"
	"cadastro/internal/repository"
)

// minimumAge is the legal registration threshold in years.
const minimumAge = 18

// PasswordHasher abstracts the slow peppered hash so tests can substitute a
// deterministic double.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) (bool, error)
}

// CreateUserRequest is the plain data-transfer value the transport layer
// hands to the lifecycle.
type CreateUserRequest struct {
	Name      string
	Document  string
	BirthDate time.Time
	Password  string
}

// UpdateUserRequest changes identity fields of an existing user. Passwords
// are never updated through this path.
type UpdateUserRequest struct {
	ID        string
	Name      string
	Document  string
	BirthDate time.Time
}

// UserService enforces the business invariants of the user lifecycle before
// anything reaches persistence.
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (domain.User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	Get(ctx context.Context, document string) (domain.User, error)
	Delete(ctx context.Context, document string) error
}

type userService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	ids    idgen.Generator
	clock  Clock
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher, ids idgen.Generator, clock Clock) UserService {
	return &userService{
		users:  users,
		hasher: hasher,
		ids:    ids,
		clock:  clock,
	}
}

// Create validates in a fixed order: document shape and checksum, then age,
// then identifier and hash assignment, then persistence. Callers rely on
// getting the first failing check, never an aggregate.
func (s *userService) Create(ctx context.Context, req CreateUserRequest) (domain.User, error) {
	document, err := s.validDocument(req.Document)
	if err != nil {
		return domain.User{}, err
	}

	now := s.clock.Now()
	birthDate := domain.NewBirthDate(req.BirthDate)
	if birthDate.UnderAge(minimumAge, now) {
		return domain.User{}, domain.NewBusiness(domain.CodeUnderage)
	}

	user := domain.NewUser(req.Name, document, birthDate, now)
	user.ID = s.ids.Generate()

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return domain.User{}, domain.NewInternal(err.Error())
	}
	user.PasswordHash = hashed

	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Update(ctx context.Context, req UpdateUserRequest) error {
	document, err := s.validDocument(req.Document)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	birthDate := domain.NewBirthDate(req.BirthDate)
	if birthDate.UnderAge(minimumAge, now) {
		return domain.NewBusiness(domain.CodeUnderage)
	}

	user := domain.NewUser(req.Name, document, birthDate, now)
	user.ID = req.ID

	return s.users.Update(ctx, user)
}

func (s *userService) Get(ctx context.Context, document string) (domain.User, error) {
	doc, err := s.validDocument(document)
	if err != nil {
		return domain.User{}, err
	}

	user, err := s.users.GetByDocument(ctx, doc.String())
	if err != nil {
		return domain.User{}, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Delete(ctx context.Context, document string) error {
	doc, err := s.validDocument(document)
	if err != nil {
		return err
	}
	return s.users.DeleteByDocument(ctx, doc.String())
}

// validDocument collapses structural and checksum failures into the single
// invalid-document business error.
func (s *userService) validDocument(raw string) (domain.Document, error) {
	document, err := domain.ParseDocument(raw)
	if err != nil {
		return domain.Document{}, domain.NewBusiness(domain.CodeInvalidDocument)
	}
	if !document.IsValid() {
		return domain.Document{}, domain.NewBusiness(domain.CodeInvalidDocument)
	}
	return document, nil
}

// sanitizeUser strips the password hash before the record leaves the
// lifecycle layer.
func sanitizeUser(user domain.User) domain.User {
	user.PasswordHash = ""
	return user
}
