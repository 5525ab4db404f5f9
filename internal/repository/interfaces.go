package repository

import (
	"context"

	"github.com/avelichko/taskdeck/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
}

// InvalidTokenRepository is the persistent revocation list, keyed by jti.
// Inserts are append-only and tolerate ids that already exist; uniqueness is
// advisory and checked by callers through Exists before inserting.
type InvalidTokenRepository interface {
	InsertAll(ctx context.Context, tokenIDs []string) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.InvalidToken, error)
}

// TaskRepository defines methods for task operations
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*domain.Task, int, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
