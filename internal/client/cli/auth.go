package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gateguard/internal/client/client"
	"github.com/dmitrijs2005/gateguard/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in against the directory. A
// successful login is followed by a sync, since the directory only serves
// passes to signed-in devices.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, userName, password)
	switch {
	case err == nil:
	case errors.Is(err, client.ErrUnavailable):
		return fmt.Errorf("directory unreachable, login needs a connection: %w", err)
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("invalid username or password: %w", err)
	default:
		return err
	}

	a.setSession(&s)
	a.printf("Signed in as %s (%s)\n", s.Username, s.Role)

	return a.Sync(ctx)
}

// Logout forgets the saved session. The local cache is kept.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setSession(nil)
	a.printf("Signed out\n")
	return nil
}
