package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"cadastro/internal/domain"
	"cadastro/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	document TEXT NOT NULL UNIQUE,
	status TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	birth_date DATE NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return domain.NewInternal("create users table: " + err.Error())
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, name, document, status, password_hash, birth_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Document.String(),
		user.Status.String(),
		user.PasswordHash,
		user.BirthDate.Time(),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyExists(domain.CodeUserAlreadyExists)
		}
		return domain.NewInternal("insert user: " + err.Error())
	}
	return nil
}

// Update rewrites the identity fields of an existing record. The password
// hash is left untouched; password changes are not part of update.
func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users SET name = ?, document = ?, status = ?, birth_date = ?, updated_at = ?
WHERE id = ?`,
		user.Name,
		user.Document.String(),
		user.Status.String(),
		user.BirthDate.Time(),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyExists(domain.CodeUserAlreadyExists)
		}
		return domain.NewInternal("update user: " + err.Error())
	}
	return rowsAffectedOrNotFound(res)
}

func (r *UserRepository) GetByDocument(ctx context.Context, document string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, document, status, password_hash, birth_date, created_at, updated_at
FROM users
WHERE document = ?`,
		document,
	)
	return scanUser(row)
}

func (r *UserRepository) DeleteByDocument(ctx context.Context, document string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE document = ?`, document)
	if err != nil {
		return domain.NewInternal("delete user: " + err.Error())
	}
	return rowsAffectedOrNotFound(res)
}

func rowsAffectedOrNotFound(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.NewInternal("rows affected: " + err.Error())
	}
	if affected == 0 {
		return domain.NewNotFound(domain.CodeUserNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		user        domain.User
		documentRaw string
		statusRaw   string
		birthDate   time.Time
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&documentRaw,
		&statusRaw,
		&user.PasswordHash,
		&birthDate,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.NewNotFound(domain.CodeUserNotFound)
		}
		return domain.User{}, domain.NewInternal("scan user: " + err.Error())
	}

	document, err := domain.ParseDocument(documentRaw)
	if err != nil {
		return domain.User{}, domain.NewInternal("stored document is malformed: " + err.Error())
	}
	user.Document = document
	user.Status = domain.ParseStatus(statusRaw)
	user.BirthDate = domain.NewBirthDate(birthDate)
	return user, nil
}
