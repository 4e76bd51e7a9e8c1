package preregistrations

import (
	"context"

	"github.com/upttmbi/campus-auth/internal/server/models"
)

type Repository interface {
	// GetForUpdate loads a voucher by id and, when running inside a
	// transaction, locks its row until commit.
	GetForUpdate(ctx context.Context, id int64) (*models.PreRegistration, error)
	GetByCedula(ctx context.Context, cedula string) (*models.PreRegistration, error)
	// MarkUsed flips is_used to true. It only succeeds if the voucher was
	// still unused; a concurrent redemption yields common.ErrPreRegUsed.
	MarkUsed(ctx context.Context, id int64) error
	Create(ctx context.Context, cedula, fullName string) (*models.PreRegistration, error)
}
