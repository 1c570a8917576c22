package user

import (
	"context"

	"homesteadhub/internal/domain"
)

// Repository persists user accounts. Lookups return domain.ErrNotFound when
// no user matches.
type Repository interface {
	Save(ctx context.Context, user domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}
