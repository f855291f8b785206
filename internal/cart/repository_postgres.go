package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// PostgresRepository stores the cart as a jsonb array of line items on the
// owning user's row. Mutation is local-first in the service; the write here
// replaces the whole list.
type PostgresRepository struct {
	db *sql.DB
}

const (
	loadCartQuery = `SELECT cart FROM users WHERE id = $1`
	saveCartQuery = `UPDATE users SET cart = $1, updated_at = $2 WHERE id = $3`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Load(ctx context.Context, userID int) ([]Item, error) {
	var raw []byte
	if err := r.db.QueryRowContext(ctx, loadCartQuery, userID).Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(raw) == 0 {
		return []Item{}, nil
	}

	items := make([]Item, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) Save(ctx context.Context, userID int, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx, saveCartQuery, raw, now, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
