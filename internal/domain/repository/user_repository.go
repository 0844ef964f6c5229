package repository

import (
	"context"

	"github.com/zagroshq/cmms-api/internal/domain/entity"
	"github.com/zagroshq/cmms-api/internal/domain/valueobject"
)

// UserRepository is the persistence contract for the user aggregate.
// Save is insert-or-update; FindByID returns a domain not-found error when
// the id is absent.
type UserRepository interface {
	Save(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email valueobject.Email) (bool, error)
	FindAll(ctx context.Context, page, limit int) ([]*entity.User, error)
	// FindByRole returns active users holding the given role.
	FindByRole(ctx context.Context, role string) ([]*entity.User, error)
	Delete(ctx context.Context, id string) error
}
