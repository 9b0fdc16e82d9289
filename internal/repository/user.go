package repository

import (
	"context"

	"cadastro/internal/domain"
)

// UserRepository defines persistence operations for User entities.
//
// Implementations translate storage outcomes into the domain error taxonomy
// before returning: a uniqueness violation on the document column becomes
// AlreadyExists, a statement that affects zero rows (or finds none) becomes
// NotFound, and any other failure is wrapped as Internal with the driver
// message preserved.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user domain.User) error
	Update(ctx context.Context, user domain.User) error
	GetByDocument(ctx context.Context, document string) (domain.User, error)
	DeleteByDocument(ctx context.Context, document string) error
}
