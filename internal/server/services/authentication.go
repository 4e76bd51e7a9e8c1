package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/upttmbi/campus-auth/internal/common"
	"github.com/upttmbi/campus-auth/internal/logging"
	"github.com/upttmbi/campus-auth/internal/server/auth"
	"github.com/upttmbi/campus-auth/internal/server/config"
	"github.com/upttmbi/campus-auth/internal/server/models"
	"github.com/upttmbi/campus-auth/internal/server/repositories/repomanager"
)

// AuthenticationService verifies credentials and issues access tokens.
type AuthenticationService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	hasher        auth.PasswordHasher
	jwtSecret     []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

// NewAuthenticationService constructs an AuthenticationService using
// repositories and server config.
func NewAuthenticationService(db *sql.DB, repos repomanager.RepositoryManager, hasher auth.PasswordHasher, cfg *config.Config, logger logging.Logger) *AuthenticationService {
	return &AuthenticationService{
		db:            db,
		repos:         repos,
		hasher:        hasher,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.AccessTokenValidityDuration,
		logger:        logger.With("module", "authentication"),
	}
}

// PublicUser is the projection of a user that is safe to return to clients.
type PublicUser struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// LoginResult bundles the signed access token with its metadata and the
// public projection of the authenticated user.
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	User        PublicUser
}

// Login verifies the password for the account with the given email and, on
// success, returns a signed access token carrying id/email/role claims.
//
// An unknown email and a wrong password are indistinguishable to the caller:
// both return common.ErrInvalidCredentials. The difference is logged.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "login for unknown email")
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "storage failure during login", "error", err.Error())
		return nil, common.ErrorInternal
	}

	if !s.hasher.CheckPassword(password, user.PasswordHash) {
		s.logger.Info(ctx, "password mismatch", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.Role, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenValidity.Seconds()),
		User:        PublicUser{ID: user.ID, Email: user.Email, Role: user.Role},
	}, nil
}
