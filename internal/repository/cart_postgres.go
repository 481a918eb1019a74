package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mohdnadeem3849/kubecart/internal/domain"
)

type PostgresCartRepository struct {
	db *sql.DB
}

func NewPostgresCartRepository(db *sql.DB) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

func (r *PostgresCartRepository) ListLines(ctx context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	query := `SELECT id, user_id, product_id, quantity, created_at
	          FROM cart_items WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.ProductID,
			&line.Quantity,
			&line.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return lines, nil
}

// UpsertLine merges quantity into an existing (user, product) line or creates
// a new one. The ON CONFLICT clause makes the merge race-free: two concurrent
// adds for the same product can never create duplicate lines.
func (r *PostgresCartRepository) UpsertLine(ctx context.Context, userID uuid.UUID, productID int64, quantity int32) (*domain.CartLine, error) {
	query := `INSERT INTO cart_items (id, user_id, product_id, quantity, created_at)
	          VALUES ($1, $2, $3, $4, NOW())
	          ON CONFLICT (user_id, product_id)
	          DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	          RETURNING id, user_id, product_id, quantity, created_at`

	var line domain.CartLine
	err := r.db.QueryRowContext(ctx, query, uuid.New(), userID, productID, quantity).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
		&line.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert cart line: %w", err)
	}

	return &line, nil
}

// RemoveLine deletes a line only when it belongs to the given user. A miss
// (unknown id or foreign owner) reports false, not an error.
func (r *PostgresCartRepository) RemoveLine(ctx context.Context, userID uuid.UUID, lineID uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, lineID, userID)
	if err != nil {
		return false, fmt.Errorf("delete cart line: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *PostgresCartRepository) ClearLines(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
