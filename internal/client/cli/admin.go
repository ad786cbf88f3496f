package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/client/services"
	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/validation"
)

// IssueStandard collects a standard pass draft and sends it to the directory.
// The local cache picks the new pass up on the next sync.
func (a *App) IssueStandard(ctx context.Context) error {
	return a.issue(ctx, models.PassTypeStandard, func(d *services.PassDraft) error {
		var err error
		if d.OwnerName, err = getSimpleText(a.reader, "Owner name", a.out); err != nil {
			return err
		}
		if d.OwnerCompany, err = getSimpleText(a.reader, "Owner company", a.out); err != nil {
			return err
		}
		d.Serial, err = getSimpleText(a.reader, "Serial", a.out)
		return err
	})
}

// IssueVisitor collects a visitor pass draft and sends it to the directory.
func (a *App) IssueVisitor(ctx context.Context) error {
	return a.issue(ctx, models.PassTypeVisitor, func(d *services.PassDraft) error {
		var err error
		if d.VisitorName, err = getSimpleText(a.reader, "Visitor name", a.out); err != nil {
			return err
		}
		if d.PersonToVisit, err = getSimpleText(a.reader, "Person to visit", a.out); err != nil {
			return err
		}
		d.Purpose, err = getSimpleText(a.reader, "Purpose of visit", a.out)
		return err
	})
}

func (a *App) issue(ctx context.Context, t models.PassType, details func(*services.PassDraft) error) error {
	d := services.PassDraft{Type: t}

	var err error
	if d.PlateAlpha, err = getSimpleText(a.reader, "Plate letters", a.out); err != nil {
		return err
	}
	if d.PlateNum, err = getSimpleText(a.reader, "Plate digits", a.out); err != nil {
		return err
	}
	if d.Location, err = GetChoice(a.reader, "Location", validation.Locations, a.out); err != nil {
		return err
	}
	if d.ExpiresAt, err = GetDate(a.reader, "Valid until", a.out); err != nil {
		return err
	}
	if err := details(&d); err != nil {
		return err
	}

	doc, err := a.adminService.Issue(ctx, d)
	if err != nil {
		return err
	}

	a.printf("Issued %s pass %s for %s %s\n", doc.Type, doc.ID, doc.PlateAlpha, doc.PlateNum)
	if doc.QR != "" {
		a.printf("QR payload: %s\n", doc.QR)
	}
	return nil
}

// Revoke revokes a pass in the directory. The cached copy changes on the
// next sync.
func (a *App) Revoke(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter pass id to revoke")
	if err != nil {
		return err
	}
	if err := a.adminService.Revoke(ctx, id); err != nil {
		return err
	}
	a.printf("Pass %s revoked\n", id)
	return nil
}

// AddUser creates a directory account.
func (a *App) AddUser(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "New username", a.out)
	if err != nil {
		return err
	}
	role, err := GetChoice(a.reader, "Role", []string{common.RoleGuard, common.RoleAdmin}, a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.adminService.CreateUser(ctx, username, password, role); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	a.printf("User %s created with role %s\n", username, role)
	return nil
}
