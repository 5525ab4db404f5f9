package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avelichko/taskdeck/internal/domain"
	"github.com/avelichko/taskdeck/pkg/database"
	"github.com/google/uuid"
)

// invalidTokenRepository implements InvalidTokenRepository interface
type invalidTokenRepository struct {
	db *database.Postgres
}

// NewInvalidTokenRepository creates a new invalid token repository
func NewInvalidTokenRepository(db *database.Postgres) InvalidTokenRepository {
	return &invalidTokenRepository{db: db}
}

// InsertAll durably persists one revocation record per token id in a single
// batch. The table carries no uniqueness constraint on token_id, so an id
// that already exists simply gains another record; lookups only care whether
// at least one exists.
func (r *invalidTokenRepository) InsertAll(ctx context.Context, tokenIDs []string) error {
	if len(tokenIDs) == 0 {
		return nil
	}

	now := time.Now()
	placeholders := make([]string, 0, len(tokenIDs))
	args := make([]any, 0, len(tokenIDs)*3)

	for i, tokenID := range tokenIDs {
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3))
		args = append(args, uuid.New().String(), tokenID, now)
	}

	query := fmt.Sprintf(
		"INSERT INTO invalid_tokens (id, token_id, created_at) VALUES %s",
		strings.Join(placeholders, ", "),
	)

	if _, err := r.db.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert invalid tokens: %w: %w", ErrUnavailable, err)
	}

	return nil
}

// Exists reports whether the token id has been revoked
func (r *invalidTokenRepository) Exists(ctx context.Context, tokenID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM invalid_tokens WHERE token_id = $1)`

	var exists bool
	if err := r.db.DB.QueryRowContext(ctx, query, tokenID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check invalid token: %w: %w", ErrUnavailable, err)
	}

	return exists, nil
}

// GetByID retrieves a revocation record by its storage id
func (r *invalidTokenRepository) GetByID(ctx context.Context, id string) (*domain.InvalidToken, error) {
	query := `
		SELECT id, token_id, created_at
		FROM invalid_tokens
		WHERE id = $1
	`

	record := &domain.InvalidToken{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.TokenID,
		&record.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invalid token record %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get invalid token record: %w: %w", ErrUnavailable, err)
	}

	return record, nil
}
