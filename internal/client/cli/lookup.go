package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/gateguard/internal/client/connectivity"
	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/validation"
)

const timeLayout = "2006-01-02 15:04 MST"

// Sync refreshes the cache on request. A failed or refused sync is not an
// error for the guard: the cache keeps answering.
func (a *App) Sync(ctx context.Context) error {
	res, err := a.syncer.SyncNow(ctx)
	if errors.Is(err, connectivity.ErrOffline) {
		a.printf("offline, using cached data from %s\n", a.lastSyncText(ctx))
		return nil
	}
	if err != nil {
		return err
	}

	if !res.Success {
		a.log.Warn(ctx, "manual sync failed", "error", res.Err)
		a.printf("sync failed, using cached data from %s\n", a.lastSyncText(ctx))
		return nil
	}

	a.printf("synced %d passes", res.PassCount)
	if res.Skipped > 0 {
		a.printf(", %d malformed records skipped", res.Skipped)
	}
	a.printf("\n")
	return nil
}

// Status prints connectivity, cache size and the last sync time.
func (a *App) Status(ctx context.Context) error {
	a.setMode(a.currentMode())

	count, err := a.syncService.PassCount(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	mode, session := a.mode, a.session
	a.mu.Unlock()

	a.printf("Mode:        %s\n", mode)
	a.printf("Cached:      %d passes\n", count)
	a.printf("Last sync:   %s\n", a.lastSyncText(ctx))
	if session != nil {
		a.printf("Signed in:   %s (%s)\n", session.Username, session.Role)
	} else {
		a.printf("Signed in:   no\n")
	}
	return nil
}

// Plate looks a pass up by plate. Accepted forms: "plate ABC 1234",
// "plate ABC1234", or "plate" followed by prompts.
func (a *App) Plate(ctx context.Context, args []string) error {
	alpha, num, err := a.plateArgs(args)
	if err != nil {
		return err
	}
	alpha = validation.NormalizePlateAlpha(alpha)
	if err := validation.Plate(alpha, num); err != nil {
		return fmt.Errorf("invalid plate: %s", validation.Describe(err))
	}

	v, ok := a.verifier.ByPlate(ctx, alpha, num)
	if !ok {
		a.printNotFound("plate " + alpha + " " + num)
		return nil
	}
	a.printPass(v)
	return nil
}

// ID looks a pass up by its id.
func (a *App) ID(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter pass id")
	if err != nil {
		return err
	}

	v, ok := a.verifier.ByID(ctx, id)
	if !ok {
		a.printNotFound("id " + id)
		return nil
	}
	a.printPass(v)
	return nil
}

// Scan verifies the text of a scanned QR code.
func (a *App) Scan(ctx context.Context, args []string) error {
	text, err := a.argOrPrompt(args, "Scan or paste the QR payload")
	if err != nil {
		return err
	}

	res, err := a.verifier.ByQR(ctx, text)
	if err != nil {
		return err
	}
	if !res.Found {
		a.printNotFound("QR pass " + res.Payload.PassID)
		return nil
	}

	a.printPass(res.Pass)
	if res.PlateMismatch {
		a.printf("  WARNING: QR plate %s %s does not match the cached plate %s\n",
			res.Payload.PlateAlpha, res.Payload.PlateNum, res.Pass.Plate())
	}
	if res.ExpiryHintMismatch {
		a.printf("  Note: QR expiry %s differs from the cached expiry, the cached one applies\n",
			a.formatTime(res.Payload.ExpiresAt()))
	}
	return nil
}

func (a *App) plateArgs(args []string) (string, string, error) {
	switch len(args) {
	case 0:
		alpha, err := getSimpleText(a.reader, "Enter plate letters", a.out)
		if err != nil {
			return "", "", err
		}
		num, err := getSimpleText(a.reader, "Enter plate digits", a.out)
		if err != nil {
			return "", "", err
		}
		return alpha, num, nil
	case 1:
		alpha, num := splitPlate(args[0])
		return alpha, num, nil
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", errors.New("usage: plate <letters> <digits>")
	}
}

// splitPlate splits "ABC1234" into its letter prefix and the rest.
func splitPlate(s string) (string, string) {
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", errors.New("nothing entered")
	}
	return s, nil
}

func (a *App) printNotFound(what string) {
	d := models.DecisionUnknown
	a.printf("== %s ==\n", d.Title())
	a.printf("No cached pass for %s.\n", what)
}

func (a *App) printPass(v models.VerifiedPass) {
	d := v.Decision()
	a.printf("== %s ==\n", d.Title())
	a.printf("%s\n", d.Message())
	a.printf("  Pass:      %s\n", v.ID)
	a.printf("  Type:      %s\n", v.Type)
	a.printf("  Plate:     %s\n", v.Plate())

	switch det := v.Details.(type) {
	case models.StandardDetails:
		a.printf("  Owner:     %s\n", det.OwnerName)
		if det.OwnerCompany != "" {
			a.printf("  Company:   %s\n", det.OwnerCompany)
		}
		if det.Serial != "" {
			a.printf("  Serial:    %s\n", det.Serial)
		}
	case models.VisitorDetails:
		a.printf("  Visitor:   %s\n", det.VisitorName)
		if det.PersonToVisit != "" {
			a.printf("  Visiting:  %s\n", det.PersonToVisit)
		}
		if det.Purpose != "" {
			a.printf("  Purpose:   %s\n", det.Purpose)
		}
	}

	if v.Location != "" {
		a.printf("  Location:  %s\n", v.Location)
	}
	a.printf("  Expires:   %s\n", a.formatTime(v.ExpiresAt))
	a.printf("  Status:    %s (as of last sync)\n", v.Status)
}

func (a *App) lastSyncText(ctx context.Context) string {
	t, err := a.syncService.LastSyncTime(ctx)
	if err != nil {
		a.log.Warn(ctx, "cannot read last sync time", "error", err)
		return "unknown"
	}
	if t == nil {
		return "never"
	}
	return a.formatTime(*t)
}

func (a *App) formatTime(t time.Time) string {
	loc := a.location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(timeLayout)
}
