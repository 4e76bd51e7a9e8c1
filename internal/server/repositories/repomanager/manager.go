package repomanager

import (
	"context"
	"database/sql"

	"github.com/upttmbi/campus-auth/internal/dbx"
	"github.com/upttmbi/campus-auth/internal/server/repositories/preregistrations"
	"github.com/upttmbi/campus-auth/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	PreRegistrations(db dbx.DBTX) preregistrations.Repository
}
