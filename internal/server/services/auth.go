// Package services contains server-side business logic. Every operation
// returns (value, error) where error is a *common.Error classified by kind;
// transports translate kinds into their own status codes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/simplefilehost/internal/common"
	"github.com/dmitrijs2005/simplefilehost/internal/cryptox"
	"github.com/dmitrijs2005/simplefilehost/internal/dbx"
	"github.com/dmitrijs2005/simplefilehost/internal/server/auth"
	"github.com/dmitrijs2005/simplefilehost/internal/server/config"
	"github.com/dmitrijs2005/simplefilehost/internal/server/models"
	"github.com/dmitrijs2005/simplefilehost/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthService registers users, checks credentials and issues and verifies
// bearer tokens.
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	now           func() time.Time
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		now:           time.Now,
	}
}

// RegisterUser creates a user. An empty id is replaced by a random UUID.
// The existence check and the insert share one transaction; a taken
// username or id leaves the existing row untouched.
func (s *AuthService) RegisterUser(ctx context.Context, id, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", common.ErrInvalidInput
	}
	if id == "" {
		id = uuid.NewString()
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.Exists(ctx, username, id)
		if err != nil {
			return common.Internal(err)
		}
		if exists {
			return common.ErrUsernameOrIDTaken
		}

		salt, err := cryptox.GenerateSalt()
		if err != nil {
			return common.Internal(err)
		}

		err = repo.Create(ctx, &models.User{
			ID:           id,
			UserName:     username,
			PasswordHash: cryptox.HashPassword(password, salt),
			PasswordSalt: salt,
		})
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrUsernameOrIDTaken
		}
		return common.Internal(err)
	})
	if err != nil {
		return "", common.Internal(err)
	}
	return id, nil
}

// Login verifies credentials and mints a token. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.AuthResult, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.Internal(err)
	}
	if !cryptox.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity, s.now())
	if err != nil {
		return nil, common.Internal(err)
	}
	return &models.AuthResult{UserID: user.ID, UserName: user.UserName, Token: token}, nil
}

// ValidateTokenAndGetUserID returns the subject of a valid token. A leading
// "Bearer " is stripped.
func (s *AuthService) ValidateTokenAndGetUserID(token string) (string, error) {
	token = strings.TrimPrefix(token, common.BearerPrefix)
	return auth.GetUserIDFromToken(token, s.jwtSecret, s.now())
}
