// Package users provides a PostgreSQL-backed repository for user accounts.
//
// Email uniqueness is enforced by the unique index on users.email; an insert
// racing another insert for the same email surfaces common.ErrEmailTaken, so
// callers never need a check-then-insert dance.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/upttmbi/campus-auth/internal/common"
	"github.com/upttmbi/campus-auth/internal/dbx"
	"github.com/upttmbi/campus-auth/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. A unique-index violation on email is reported
// as common.ErrEmailTaken.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, email, name, last_name, password_hash, role, pre_reg_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.Name, user.LastName, user.PasswordHash, user.Role, user.PreRegID).Scan(&user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByEmail returns the user with the given email, or common.ErrorNotFound.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, name, last_name, password_hash, role, pre_reg_id, created_at FROM users
		 WHERE email = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID returns the user with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, name, last_name, password_hash, role, pre_reg_id, created_at FROM users
		 WHERE id = $1
		 `

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.LastName,
		&user.PasswordHash, &user.Role, &user.PreRegID, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
