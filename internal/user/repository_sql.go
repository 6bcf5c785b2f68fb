package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Anhamd/fitbazzar/internal/database"
)

type SQLRepository struct {
	db *database.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getUserByIDQuery = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE id = ?
	`
	getUserByEmailQuery = `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`
	insertUserQuery = `INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)`
)

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (User, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(getUserByIDQuery), id)
	return r.scanOne(row)
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRowContext(ctx, r.db.Rebind(getUserByEmailQuery), email)
	return r.scanOne(row)
}

func (r *SQLRepository) Create(ctx context.Context, user User) (User, error) {
	id, err := r.db.InsertID(ctx, insertUserQuery, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return User{}, ErrEmailExists
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return user, nil
}

func (r *SQLRepository) scanOne(row rowScanner) (User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}
