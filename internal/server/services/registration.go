// Package services contains server-side business logic: account registration
// (with single-use voucher redemption) and login.
//
// Input validation (formats, lengths) happens at the transport boundary;
// these services assume well-formed input and enforce business invariants
// only.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/upttmbi/campus-auth/internal/common"
	"github.com/upttmbi/campus-auth/internal/dbx"
	"github.com/upttmbi/campus-auth/internal/logging"
	"github.com/upttmbi/campus-auth/internal/server/auth"
	"github.com/upttmbi/campus-auth/internal/server/models"
	"github.com/upttmbi/campus-auth/internal/server/repositories/repomanager"
)

// RegistrationService creates accounts. Students arrive with a
// pre-registration voucher id; redeeming the voucher and creating the account
// is a single transaction.
type RegistrationService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	hasher auth.PasswordHasher
	logger logging.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(db *sql.DB, repos repomanager.RepositoryManager, hasher auth.PasswordHasher, logger logging.Logger) *RegistrationService {
	return &RegistrationService{
		db:     db,
		repos:  repos,
		hasher: hasher,
		logger: logger.With("module", "registration"),
	}
}

// RegisterParams carries a registration request. PreRegID is nil for
// admin/teacher accounts and set for students redeeming a voucher.
type RegisterParams struct {
	Email    string
	Name     string
	LastName string
	Password string
	Role     models.Role
	PreRegID *int64
}

// Register creates an account.
//
// Without a voucher it is a single insert: the unique index on email decides
// duplicate registrations, surfaced as common.ErrEmailTaken.
//
// With a voucher, the voucher lookup, the account insert and the is_used flip
// run inside one transaction with the voucher row locked, so that of N
// concurrent redemptions exactly one commits and the rest observe
// common.ErrPreRegUsed. A failed transaction leaves no trace of either write.
func (s *RegistrationService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	// Hashing is CPU-heavy; do it before any transaction is open.
	passwordHash, err := s.hasher.HashPassword(params.Password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        params.Email,
		Name:         params.Name,
		LastName:     params.LastName,
		PasswordHash: passwordHash,
		Role:         params.Role,
		PreRegID:     params.PreRegID,
	}

	if params.PreRegID == nil {
		if _, err := s.repos.Users(s.db).Create(ctx, user); err != nil {
			return nil, s.mapStorageErr(ctx, err)
		}
		return user, nil
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.redeemAndCreate(ctx, tx, user, *params.PreRegID)
	})
	if err != nil {
		return nil, s.mapStorageErr(ctx, err)
	}

	return user, nil
}

// redeemAndCreate performs the voucher path inside an open transaction.
// GetForUpdate locks the voucher row until commit, so a concurrent redemption
// of the same voucher waits here and then sees IsUsed == true.
func (s *RegistrationService) redeemAndCreate(ctx context.Context, tx dbx.DBTX, user *models.User, preRegID int64) error {
	preRegs := s.repos.PreRegistrations(tx)

	preReg, err := preRegs.GetForUpdate(ctx, preRegID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrPreRegNotFound
		}
		return fmt.Errorf("loading pre-registration: %w", err)
	}
	if preReg.IsUsed {
		return common.ErrPreRegUsed
	}

	if _, err := s.repos.Users(tx).Create(ctx, user); err != nil {
		return err
	}

	return preRegs.MarkUsed(ctx, preRegID)
}

// mapStorageErr passes business failures through and converts everything else
// into an opaque internal error, logging the detail server-side.
func (s *RegistrationService) mapStorageErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrEmailTaken),
		errors.Is(err, common.ErrPreRegNotFound),
		errors.Is(err, common.ErrPreRegUsed):
		return err
	}
	s.logger.Error(ctx, "storage failure during registration", "error", err.Error())
	return common.ErrorInternal
}
