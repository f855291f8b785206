package order

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/noamani/perfume-shop-backend/internal/cart"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders (user_id, items, quantity, subtotal, shipping, total, shipping_address, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`
	listOrdersByUserQuery = `
		SELECT id, user_id, items, quantity, subtotal, shipping, total, shipping_address, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY id DESC
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRowContext(ctx, insertOrderQuery,
		ord.UserID, itemsJSON, ord.Quantity, ord.Subtotal, ord.Shipping, ord.Total,
		nullIfEmpty(ord.ShippingAddress), ord.Status, ord.CreatedAt, ord.UpdatedAt,
	).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, listOrdersByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		var itemsJSON []byte
		var shippingAddress sql.NullString
		if err := rows.Scan(&ord.ID, &ord.UserID, &itemsJSON, &ord.Quantity, &ord.Subtotal,
			&ord.Shipping, &ord.Total, &shippingAddress, &ord.Status, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
			return nil, err
		}
		ord.ShippingAddress = shippingAddress.String
		ord.Items = make([]cart.Item, 0)
		if len(itemsJSON) > 0 {
			if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
				return nil, err
			}
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
