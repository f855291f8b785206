package favorite

import (
	"database/sql"

	"github.com/lib/pq"
)

// PostgresRepository stores the wishlist as an integer array on the owning
// user's row.
type PostgresRepository struct {
	db *sql.DB
}

const (
	addToWishlistQuery = `
		UPDATE users
		SET wishlist = array_append(coalesce(wishlist, ARRAY[]::integer[]), $2),
			updated_at = $3
		WHERE id = $1
			AND NOT ($2 = ANY(coalesce(wishlist, ARRAY[]::integer[])))
		RETURNING wishlist
	`
	removeFromWishlistQuery = `
		UPDATE users
		SET wishlist = array_remove(coalesce(wishlist, ARRAY[]::integer[]), $2),
			updated_at = $3
		WHERE id = $1
			AND ($2 = ANY(coalesce(wishlist, ARRAY[]::integer[])))
		RETURNING wishlist
	`
	getWishlistQuery = `SELECT coalesce(wishlist, ARRAY[]::integer[]) FROM users WHERE id = $1`
	userExistsQuery  = `SELECT 1 FROM users WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(userID int, productID int, updatedAt string) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(addToWishlistQuery, userID, productID, updatedAt).Scan(&arr)
	if err != nil {
		if err == sql.ErrNoRows {
			// the guard clause rejected the update: either the user does not
			// exist or the product is already listed
			var exists int
			if err2 := r.db.QueryRow(userExistsQuery, userID).Scan(&exists); err2 == sql.ErrNoRows {
				return nil, ErrNotFound
			}
			return nil, ErrAlreadyIn
		}
		return nil, err
	}
	return toInts(arr), nil
}

func (r *PostgresRepository) Remove(userID int, productID int, updatedAt string) ([]int, error) {
	var arr pq.Int64Array
	err := r.db.QueryRow(removeFromWishlistQuery, userID, productID, updatedAt).Scan(&arr)
	if err != nil {
		if err == sql.ErrNoRows {
			var exists int
			if err2 := r.db.QueryRow(userExistsQuery, userID).Scan(&exists); err2 == sql.ErrNoRows {
				return nil, ErrNotFound
			}
			return nil, ErrNotInList
		}
		return nil, err
	}
	return toInts(arr), nil
}

func (r *PostgresRepository) IDs(userID int) ([]int, error) {
	var arr pq.Int64Array
	if err := r.db.QueryRow(getWishlistQuery, userID).Scan(&arr); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInts(arr), nil
}

func toInts(arr pq.Int64Array) []int {
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out
}
