package repository

import (
	"context"
	"errors"

	"lending_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

const userColumns = `id, email, first_name, last_name, password_hash, role, is_active, created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail matches the email case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.Role == "" {
		u.Role = domain.UserRoleUser
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO users (email, first_name, last_name, password_hash, role, is_active)
		 VALUES ($1, $2, $3, $4, $5, TRUE)
		 RETURNING id, is_active, created_at`,
		u.Email, u.FirstName, u.LastName, u.PasswordHash, string(u.Role),
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt)
}

// GetOrCreate returns the user with u.Email, inserting u when missing.
// The bool reports whether a row was inserted.
func (r *UserRepository) GetOrCreate(ctx context.Context, u *domain.User) (*domain.User, bool, error) {
	existing, err := r.GetByEmail(ctx, u.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}
	if err := r.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
