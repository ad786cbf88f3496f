// Package services contains the pass directory business logic. This file
// implements UserService: account creation, admin seeding and password
// login that mints access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/cryptox"
	"github.com/dmitrijs2005/gateguard/internal/logging"
	"github.com/dmitrijs2005/gateguard/internal/server/auth"
	"github.com/dmitrijs2005/gateguard/internal/server/config"
	"github.com/dmitrijs2005/gateguard/internal/server/models"
	"github.com/dmitrijs2005/gateguard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gateguard/internal/validation"
)

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	AccessToken string
	Role        string
}

// NewUser is an account creation request.
type NewUser struct {
	Username string `validate:"required,min=3,max=64"`
	Password string `validate:"required,min=4"`
	Role     string `validate:"oneof=admin guard"`
	Company  string
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	log                         logging.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		log:                         log.With("module", "users"),
	}
}

// Login checks the password and returns a fresh access token with the
// account role. Unknown users and wrong passwords both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same hashing time as a real check
			_, _ = cryptox.VerifyPassword([]byte(password), s.getDummyHash())
			return nil, common.ErrorUnauthorized
		}
		s.log.Error(ctx, "user lookup failed", "username", userName, "error", err)
		return nil, common.ErrorInternal
	}

	ok, err := cryptox.VerifyPassword([]byte(password), user.PasswordHash)
	if err != nil {
		s.log.Error(ctx, "stored password hash unreadable", "user_id", user.ID, "error", err)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{AccessToken: token, Role: user.Role}, nil
}

// CreateUser validates u and stores it with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, u NewUser) (*models.User, error) {
	if err := validation.Struct(u); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorValidation, validation.Describe(err))
	}

	user := &models.User{
		UserName:     u.Username,
		PasswordHash: cryptox.HashPassword([]byte(u.Password)),
		Role:         u.Role,
		Company:      u.Company,
	}

	created, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user created", "username", created.UserName, "role", created.Role)
	return created, nil
}

// EnsureAdmin creates an admin account named userName unless an account of
// that name already exists. It reports whether one was created.
func (s *UserService) EnsureAdmin(ctx context.Context, userName, password string) (bool, error) {
	_, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return false, fmt.Errorf("look up admin %s: %w", userName, err)
	}

	_, err = s.CreateUser(ctx, NewUser{Username: userName, Password: password, Role: common.RoleAdmin})
	if errors.Is(err, common.ErrorAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash = cryptox.HashPassword(common.GenerateRandByteArray(16))
	})
	return s.dummyHash
}
