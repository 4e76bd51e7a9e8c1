// Command seed populates a development database with demo pre-registrations
// and demo users (one admin, one teacher, one student linked to a redeemed
// voucher). It is idempotent: existing rows are left alone.
//
// The shared demo password is prompted for interactively so no hash ever
// lands in the repository.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"syscall"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/upttmbi/campus-auth/internal/common"
	"github.com/upttmbi/campus-auth/internal/dbx"
	"github.com/upttmbi/campus-auth/internal/server/auth"
	"github.com/upttmbi/campus-auth/internal/server/config"
	"github.com/upttmbi/campus-auth/internal/server/models"
	"github.com/upttmbi/campus-auth/internal/server/repositories/repomanager"
)

type demoPreReg struct {
	cedula   string
	fullName string
}

var demoPreRegs = []demoPreReg{
	{"12345678", "Juan Pérez García"},
	{"23456789", "María González López"},
	{"34567890", "Carlos Rodríguez Martínez"},
	{"45678901", "Ana Fernández Sánchez"},
	{"56789012", "Luis Martínez Díaz"},
}

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	fmt.Print("Demo password for seeded users: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}
	if len(password) < 8 || len(password) > 20 {
		log.Fatal("password must be 8-20 characters")
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		log.Fatalf("db migration error: %v", err)
	}

	hash, err := auth.NewBcryptHasher(cfg.BcryptCost).HashPassword(string(password))
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}

	if err := seed(ctx, db, repos, hash); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	fmt.Println("seeded: 5 pre-registrations, 3 users (admin/teacher/student)")
	os.Exit(0)
}

func seed(ctx context.Context, db *sql.DB, repos repomanager.RepositoryManager, passwordHash string) error {
	preRegs := repos.PreRegistrations(db)

	var first *models.PreRegistration
	for i, p := range demoPreRegs {
		created, err := preRegs.Create(ctx, p.cedula, p.fullName)
		if err != nil {
			return fmt.Errorf("creating pre-registration %s: %w", p.cedula, err)
		}
		if i == 0 {
			first = created
		}
	}

	users := []models.User{
		{Email: "admin@upttmbi.edu.ve", Name: "Administrador", LastName: "Sistema", Role: models.RoleAdmin},
		{Email: "profesor@upttmbi.edu.ve", Name: "Pedro", LastName: "Docente", Role: models.RoleTeacher},
		{Email: "estudiante@upttmbi.edu.ve", Name: "Sofia", LastName: "Estudiante", Role: models.RoleStudent, PreRegID: &first.ID},
	}

	for _, u := range users {
		u.ID = uuid.NewString()
		u.PasswordHash = passwordHash

		if u.PreRegID == nil {
			if _, err := repos.Users(db).Create(ctx, &u); err != nil {
				if errors.Is(err, common.ErrEmailTaken) {
					continue
				}
				return fmt.Errorf("creating user %s: %w", u.Email, err)
			}
			continue
		}

		// The demo student redeems the first voucher the same way the
		// service does: account insert and is_used flip in one transaction.
		err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			if _, err := repos.Users(tx).Create(ctx, &u); err != nil {
				return err
			}
			return repos.PreRegistrations(tx).MarkUsed(ctx, *u.PreRegID)
		})
		if err != nil && !errors.Is(err, common.ErrEmailTaken) && !errors.Is(err, common.ErrPreRegUsed) {
			return fmt.Errorf("creating user %s: %w", u.Email, err)
		}
	}

	return nil
}
