package address

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	addressColumns = `id, user_id, label, recipient, line1, line2, city, postal_code, phone, created_at, updated_at`

	listAddressesQuery = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 ORDER BY id`
	getAddressQuery    = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id = $1 AND id = $2`
	insertAddressQuery = `
		INSERT INTO addresses (user_id, label, recipient, line1, line2, city, postal_code, phone, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`
	updateAddressQuery = `
		UPDATE addresses
		SET label = $1,
			recipient = $2,
			line1 = $3,
			line2 = $4,
			city = $5,
			postal_code = $6,
			phone = $7,
			updated_at = $8
		WHERE user_id = $9 AND id = $10
	`
	deleteAddressQuery = `DELETE FROM addresses WHERE user_id = $1 AND id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(userID int) ([]Address, error) {
	rows, err := r.db.Query(listAddressesQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(userID, addressID int) (Address, error) {
	a, err := scanAddress(r.db.QueryRow(getAddressQuery, userID, addressID))
	if err != nil {
		if err == sql.ErrNoRows {
			return Address{}, ErrNotFound
		}
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(a Address) (Address, error) {
	err := r.db.QueryRow(insertAddressQuery,
		a.UserID, nullIfEmpty(a.Label), a.Recipient, a.Line1, nullIfEmpty(a.Line2),
		a.City, a.PostalCode, nullIfEmpty(a.Phone), a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(userID, addressID int, a Address) (Address, error) {
	res, err := r.db.Exec(updateAddressQuery,
		nullIfEmpty(a.Label), a.Recipient, a.Line1, nullIfEmpty(a.Line2),
		a.City, a.PostalCode, nullIfEmpty(a.Phone), a.UpdatedAt, userID, addressID,
	)
	if err != nil {
		return Address{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Address{}, ErrNotFound
	}
	a.ID = addressID
	a.UserID = userID
	return a, nil
}

func (r *PostgresRepository) Delete(userID, addressID int) error {
	res, err := r.db.Exec(deleteAddressQuery, userID, addressID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAddress(row rowScanner) (Address, error) {
	var a Address
	var label, line2, phone sql.NullString
	if err := row.Scan(&a.ID, &a.UserID, &label, &a.Recipient, &a.Line1, &line2,
		&a.City, &a.PostalCode, &phone, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return Address{}, err
	}
	a.Label = label.String
	a.Line2 = line2.String
	a.Phone = phone.String
	return a, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
