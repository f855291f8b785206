package user

import (
	"database/sql"
	"strings"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	userColumns = `id, name, email, password, auth_provider, google_uid, role, profile_image, created_at, updated_at`

	getUserByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	insertUserQuery     = `
		INSERT INTO users (name, email, password, auth_provider, google_uid, role, profile_image, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`
	updateUserQuery = `
		UPDATE users
		SET name = $1,
			email = $2,
			password = $3,
			auth_provider = $4,
			google_uid = $5,
			role = $6,
			profile_image = $7,
			updated_at = $8
		WHERE id = $9
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return scanUser(r.db.QueryRow(getUserByIDQuery, id))
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return scanUser(r.db.QueryRow(getUserByEmailQuery, strings.ToLower(email)))
}

func (r *PostgresRepository) Create(u User) (User, error) {
	err := r.db.QueryRow(insertUserQuery,
		u.Name, strings.ToLower(u.Email), nullIfEmpty(u.Password), u.AuthProvider,
		nullIfEmpty(u.GoogleUID), u.Role, nullIfEmpty(u.ProfileImage), u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id int, u User) (User, error) {
	res, err := r.db.Exec(updateUserQuery,
		u.Name, strings.ToLower(u.Email), nullIfEmpty(u.Password), u.AuthProvider,
		nullIfEmpty(u.GoogleUID), u.Role, nullIfEmpty(u.ProfileImage), u.UpdatedAt, id,
	)
	if err != nil {
		return User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return User{}, ErrNotFound
	}
	u.ID = id
	return u, nil
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	var password, googleUID, profileImage sql.NullString
	err := row.Scan(&u.ID, &u.Name, &u.Email, &password, &u.AuthProvider, &googleUID,
		&u.Role, &profileImage, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.Password = password.String
	u.GoogleUID = googleUID.String
	u.ProfileImage = profileImage.String
	return u, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
