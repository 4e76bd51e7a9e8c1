// Package preregistrations provides a PostgreSQL-backed repository for
// single-use enrollment vouchers.
package preregistrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

// GetForUpdate loads a voucher by id with FOR UPDATE. Inside a transaction
// this serializes concurrent redemptions of the same voucher: the second
// transaction blocks until the first commits, then observes is_used = true.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id int64) (*models.PreRegistration, error) {
	query :=
		`SELECT id, cedula, full_name, is_used FROM pre_registrations
		 WHERE id = $1
		 FOR UPDATE
		 `

	return r.scanPreRegistration(r.db.QueryRowContext(ctx, query, id))
}

// GetByCedula returns the voucher for the given national ID, or
// common.ErrorNotFound.
func (r *PostgresRepository) GetByCedula(ctx context.Context, cedula string) (*models.PreRegistration, error) {
	query :=
		`SELECT id, cedula, full_name, is_used FROM pre_registrations
		 WHERE cedula = $1
		 `

	return r.scanPreRegistration(r.db.QueryRowContext(ctx, query, cedula))
}

// MarkUsed flips is_used on an unused voucher. The conditional WHERE clause
// is the last line of defense: even without the row lock, two redemptions
// cannot both see rows affected = 1.
func (r *PostgresRepository) MarkUsed(ctx context.Context, id int64) error {
	query :=
		`UPDATE pre_registrations SET is_used = TRUE
		 WHERE id = $1 AND NOT is_used
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrPreRegUsed
	}

	return nil
}

// Create inserts a voucher, keeping existing rows untouched so seeding stays
// idempotent. The stored row is returned either way.
func (r *PostgresRepository) Create(ctx context.Context, cedula, fullName string) (*models.PreRegistration, error) {
	query :=
		`INSERT INTO pre_registrations (cedula, full_name, is_used)
		 VALUES ($1, $2, FALSE)
		 ON CONFLICT (cedula) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, cedula, fullName); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByCedula(ctx, cedula)
}

func (r *PostgresRepository) scanPreRegistration(row *sql.Row) (*models.PreRegistration, error) {
	p := &models.PreRegistration{}
	err := row.Scan(&p.ID, &p.Cedula, &p.FullName, &p.IsUsed)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}
