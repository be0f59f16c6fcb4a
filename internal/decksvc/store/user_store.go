package store

import (
	"context"
	"fmt"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

func (r *UserStore) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	query := `
        INSERT INTO users (username, password_hash, role)
        VALUES ($1, $2, $3)
        RETURNING user_id, created_at, updated_at;
    `

	err := r.db.QueryRow(ctx, query, user.Username, user.PasswordHash, user.Role).
		Scan(&user.UserId, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", mapErr(err))
	}

	return &user, nil
}

func (r *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, "user_id", id)
}

func (r *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *UserStore) getBy(ctx context.Context, column string, arg any) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT user_id, username, password_hash, role, created_at, updated_at
        FROM users
        WHERE `+column+` = $1
    `, arg)

	u := &models.User{}
	err := row.Scan(
		&u.UserId,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}

	return u, nil
}
