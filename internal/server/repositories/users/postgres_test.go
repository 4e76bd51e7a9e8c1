package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/upttmbi/campus-auth/internal/common"
	"github.com/upttmbi/campus-auth/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQ = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*name,\s*last_name,\s*password_hash,\s*role,\s*pre_reg_id\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+created_at\s*$`

const selectCols = `id,\s*email,\s*name,\s*last_name,\s*password_hash,\s*role,\s*pre_reg_id,\s*created_at`

func demoUser() *models.User {
	return &models.User{
		ID:           "u-1",
		Email:        "a@x.com",
		Name:         "Ana",
		LastName:     "Lopez",
		PasswordHash: "$2a$10$hash",
		Role:         models.RoleStudent,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now())
	mock.ExpectQuery(insertQ).
		WithArgs("u-1", "a@x.com", "Ana", "Lopez", "$2a$10$hash", models.RoleStudent, nil).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), demoUser())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-1" || got.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), demoUser())
	if !errors.Is(err, common.ErrEmailTaken) {
		t.Fatalf("want common.ErrEmailTaken, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), demoUser())
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectCols + `\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	preRegID := int64(7)
	rows := sqlmock.NewRows([]string{"id", "email", "name", "last_name", "password_hash", "role", "pre_reg_id", "created_at"}).
		AddRow("u-1", "a@x.com", "Ana", "Lopez", "$2a$10$hash", "student", preRegID, time.Now())
	mock.ExpectQuery(q).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "u-1" || got.Role != models.RoleStudent {
		t.Fatalf("unexpected user: %+v", got)
	}
	if got.PreRegID == nil || *got.PreRegID != 7 {
		t.Fatalf("expected pre_reg_id 7, got %+v", got.PreRegID)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectCols + `\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + selectCols + `\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "email", "name", "last_name", "password_hash", "role", "pre_reg_id", "created_at"}).
		AddRow("u-1", "a@x.com", "Ana", "Lopez", "$2a$10$hash", "admin", nil, time.Now())
	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Role != models.RoleAdmin || got.PreRegID != nil {
		t.Fatalf("unexpected user: %+v", got)
	}
}
