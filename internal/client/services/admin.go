package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/client/client"
	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/passrpc"
	"github.com/dmitrijs2005/gateguard/internal/validation"
)

// PassDraft is an administrator's request for a new pass.
type PassDraft struct {
	Type       models.PassType `validate:"oneof=standard visitor"`
	PlateAlpha string          `validate:"required,plate_alpha"`
	PlateNum   string          `validate:"required,plate_num"`
	Location   string          `validate:"required,location"`
	ExpiresAt  time.Time       `validate:"required"`

	OwnerName    string `validate:"required_if=Type standard"`
	OwnerCompany string `validate:"required_if=Type standard"`
	Serial       string `validate:"required_if=Type standard"`

	VisitorName   string `validate:"required_if=Type visitor"`
	PersonToVisit string `validate:"required_if=Type visitor"`
	Purpose       string `validate:"required_if=Type visitor"`
}

// AdminService forwards directory administration. It never touches the
// local cache: new or revoked passes reach it through the next sync.
type AdminService interface {
	Issue(ctx context.Context, draft PassDraft) (*passrpc.Document, error)
	Revoke(ctx context.Context, id string) error
	CreateUser(ctx context.Context, username string, password []byte, role string) error
}

type adminService struct {
	client client.Client
}

func NewAdminService(c client.Client) AdminService {
	return &adminService{client: c}
}

func (s *adminService) Issue(ctx context.Context, d PassDraft) (*passrpc.Document, error) {
	d.PlateAlpha = validation.NormalizePlateAlpha(d.PlateAlpha)
	if err := validation.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorValidation, validation.Describe(err))
	}

	doc := &passrpc.Document{
		Type:          string(d.Type),
		PlateAlpha:    d.PlateAlpha,
		PlateNum:      d.PlateNum,
		Location:      d.Location,
		ExpiresAt:     passrpc.FromTime(d.ExpiresAt),
		OwnerName:     d.OwnerName,
		OwnerCompany:  d.OwnerCompany,
		Serial:        d.Serial,
		VisitorName:   d.VisitorName,
		PersonToVisit: d.PersonToVisit,
		Purpose:       d.Purpose,
	}
	return s.client.IssuePass(ctx, doc)
}

func (s *adminService) Revoke(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: pass id is required", common.ErrorValidation)
	}
	return s.client.RevokePass(ctx, id)
}

func (s *adminService) CreateUser(ctx context.Context, username string, password []byte, role string) error {
	defer common.WipeByteArray(password)

	if username == "" || len(password) == 0 {
		return fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}
	if role != common.RoleAdmin && role != common.RoleGuard {
		return fmt.Errorf("%w: role must be %s or %s", common.ErrorValidation, common.RoleAdmin, common.RoleGuard)
	}
	return s.client.CreateUser(ctx, passrpc.NewUser{Username: username, Password: string(password), Role: role})
}
