package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mohdnadeem3849/kubecart/internal/domain"
)

type PostgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// CreateOrder persists the order, its items and the cart-clearing delete in a
// single transaction. Either all three become visible together or none do; a
// failed attempt leaves the user's cart exactly as it was.
func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkout tx: %w", err)
	}
	// Rollback is a no-op once the tx committed.
	defer tx.Rollback()

	orderQuery := `INSERT INTO orders (id, user_id, notes, status, total_amount, created_at)
	               VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID,
		order.UserID,
		order.Notes,
		order.Status,
		order.TotalAmount,
		order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `INSERT INTO order_items
	              (id, order_id, product_id, quantity, product_name_snapshot, unit_price_snapshot, image_url_snapshot)
	              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, item := range items {
		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.ProductName,
			item.UnitPrice,
			item.ImageURL)
		if err != nil {
			return fmt.Errorf("insert order item for product %d: %w", item.ProductID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, order.UserID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checkout tx: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	query := `SELECT id, user_id, notes, status, total_amount, created_at
	          FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders by user id: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Notes,
			&order.Status,
			&order.TotalAmount,
			&order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

// GetOrderForUser reports ErrOrderNotFound both for unknown ids and for orders
// owned by a different user, so callers cannot probe for other users' orders.
func (r *PostgresOrderRepository) GetOrderForUser(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, []domain.OrderItem, error) {
	orderQuery := `SELECT id, user_id, notes, status, total_amount, created_at
	               FROM orders WHERE id = $1 AND user_id = $2`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, orderQuery, orderID, userID).Scan(
		&order.ID,
		&order.UserID,
		&order.Notes,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("query order by id: %w", err)
	}

	itemsQuery := `SELECT id, order_id, product_id, quantity,
	                      product_name_snapshot, unit_price_snapshot, image_url_snapshot
	               FROM order_items WHERE order_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, itemsQuery, orderID)
	if err != nil {
		return nil, nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.ProductName,
			&item.UnitPrice,
			&item.ImageURL,
		); err != nil {
			return nil, nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row iteration error: %w", err)
	}

	return &order, items, nil
}

func (r *PostgresOrderRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, status, orderID)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return rows > 0, nil
}
