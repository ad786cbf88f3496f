package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gateguard/internal/client/client"
	"github.com/dmitrijs2005/gateguard/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gateguard/internal/common"
)

const (
	sessionUserKey  = "session_user"
	sessionRoleKey  = "session_role"
	sessionTokenKey = "session_token"
)

// Session is the signed-in operator as last recorded on this device.
type Session struct {
	Username string
	Role     string
}

// AuthService signs operators in against the directory.
type AuthService interface {
	// Login authenticates online and records the session locally.
	// The password buffer is wiped before returning.
	Login(ctx context.Context, username string, password []byte) (Session, error)

	// CurrentSession returns the last recorded session, or nil.
	CurrentSession(ctx context.Context) (*Session, error)

	// Restore loads the recorded session and hands its access token back to
	// the client, so syncs after a restart do not need a new login.
	Restore(ctx context.Context) (*Session, error)

	// Logout forgets the recorded session and the client's token.
	Logout(ctx context.Context) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	meta   metadata.Repository
}

func NewAuthService(c client.Client, meta metadata.Repository) AuthService {
	return &authService{client: c, meta: meta}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (Session, error) {
	defer common.WipeByteArray(password)

	role, err := a.client.Login(ctx, username, string(password))
	if err != nil {
		return Session{}, fmt.Errorf("login error: %w", err)
	}

	if err := a.meta.Set(ctx, sessionUserKey, []byte(username)); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	if err := a.meta.Set(ctx, sessionRoleKey, []byte(role)); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	if err := a.meta.Set(ctx, sessionTokenKey, []byte(a.client.AccessToken())); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}

	return Session{Username: username, Role: role}, nil
}

func (a *authService) CurrentSession(ctx context.Context) (*Session, error) {
	user, err := a.meta.Get(ctx, sessionUserKey)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	role, err := a.meta.Get(ctx, sessionRoleKey)
	if err != nil {
		return nil, err
	}
	return &Session{Username: string(user), Role: string(role)}, nil
}

func (a *authService) Restore(ctx context.Context) (*Session, error) {
	s, err := a.CurrentSession(ctx)
	if err != nil || s == nil {
		return s, err
	}
	token, err := a.meta.Get(ctx, sessionTokenKey)
	if err != nil {
		return nil, err
	}
	a.client.SetAccessToken(string(token))
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	for _, k := range []string{sessionUserKey, sessionRoleKey, sessionTokenKey} {
		if err := a.meta.Delete(ctx, k); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
