package product

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT id, name, description, price, image, image_hover, category, stock, reviews, assigned_pages, created_at, updated_at
		FROM products
		ORDER BY id
	`
	listProductsByPageQuery = `
		SELECT id, name, description, price, image, image_hover, category, stock, reviews, assigned_pages, created_at, updated_at
		FROM products
		WHERE $1 = ANY(assigned_pages)
		ORDER BY id
	`
	getProductByIDQuery = `
		SELECT id, name, description, price, image, image_hover, category, stock, reviews, assigned_pages, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (name, description, price, image, image_hover, category, stock, reviews, assigned_pages, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			image = $4,
			image_hover = $5,
			category = $6,
			stock = $7,
			reviews = $8,
			assigned_pages = $9,
			updated_at = $10
		WHERE id = $11
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	rows, err := r.db.Query(listProductsQuery)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PostgresRepository) ListByPage(page string) []Product {
	if page == "" || page == PageShopAll {
		return r.List()
	}
	rows, err := r.db.Query(listProductsByPageQuery, page)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	row := r.db.QueryRow(getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Description, p.Price, p.Image, nullIfEmpty(p.ImageHover), nullIfEmpty(p.Category),
		p.Stock, p.Reviews, pq.Array(p.AssignedPages), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	res, err := r.db.Exec(updateProductQuery,
		p.Name, p.Description, p.Price, p.Image, nullIfEmpty(p.ImageHover), nullIfEmpty(p.Category),
		p.Stock, p.Reviews, pq.Array(p.AssignedPages), p.UpdatedAt, id,
	)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Reset wipes the table and inserts the provided products in one transaction.
func (r *PostgresRepository) Reset(products []Product) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := tx.Exec(insertProductQuery,
			p.Name, p.Description, p.Price, p.Image, nullIfEmpty(p.ImageHover), nullIfEmpty(p.Category),
			p.Stock, p.Reviews, pq.Array(p.AssignedPages), p.CreatedAt, p.UpdatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var imageHover, category sql.NullString
	var pages pq.StringArray
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &imageHover, &category,
		&p.Stock, &p.Reviews, &pages, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	if imageHover.Valid {
		p.ImageHover = imageHover.String
	}
	if category.Valid {
		p.Category = category.String
	}
	p.AssignedPages = []string(pages)
	return p, nil
}

func collectProducts(rows *sql.Rows) []Product {
	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
