package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/dbx"
	"github.com/dmitrijs2005/gateguard/internal/logging"
	"github.com/dmitrijs2005/gateguard/internal/qrx"
	"github.com/dmitrijs2005/gateguard/internal/server/models"
	"github.com/dmitrijs2005/gateguard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gateguard/internal/validation"
	"github.com/google/uuid"
)

// PassDraft is an issue request. Owner fields are required for standard
// passes, visitor fields for visitor passes.
type PassDraft struct {
	Type       string    `validate:"oneof=standard visitor"`
	PlateAlpha string    `validate:"required,plate_alpha"`
	PlateNum   string    `validate:"required,plate_num"`
	Location   string    `validate:"required,location"`
	ExpiresAt  time.Time `validate:"required"`

	OwnerName    string `validate:"required_if=Type standard"`
	OwnerCompany string `validate:"required_if=Type standard"`
	Serial       string `validate:"required_if=Type standard"`

	VisitorName   string `validate:"required_if=Type visitor"`
	PersonToVisit string `validate:"required_if=Type visitor"`
	Purpose       string `validate:"required_if=Type visitor"`
}

// IssuedPass is a stored pass together with its QR payload text.
type IssuedPass struct {
	Pass *models.Pass
	QR   string
}

type PassService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewPassService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *PassService {
	return &PassService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "passes"),
		now:         time.Now,
	}
}

// Issue validates d and stores a new active pass created by issuerID.
func (s *PassService) Issue(ctx context.Context, issuerID string, d PassDraft) (*IssuedPass, error) {
	d.PlateAlpha = validation.NormalizePlateAlpha(d.PlateAlpha)
	if err := validation.Struct(d); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorValidation, validation.Describe(err))
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	if !d.ExpiresAt.After(now) {
		return nil, fmt.Errorf("%w: expiresAt: must be in the future", common.ErrorValidation)
	}

	p := &models.Pass{
		ID:         uuid.NewString(),
		Type:       d.Type,
		PlateAlpha: d.PlateAlpha,
		PlateNum:   d.PlateNum,
		Location:   d.Location,
		ExpiresAt:  d.ExpiresAt.UTC().Truncate(time.Microsecond),
		CreatedAt:  now,
		CreatedBy:  issuerID,
	}
	switch d.Type {
	case models.PassTypeStandard:
		p.OwnerName, p.OwnerCompany, p.Serial = d.OwnerName, d.OwnerCompany, d.Serial
	case models.PassTypeVisitor:
		p.VisitorName, p.PersonToVisit, p.Purpose = d.VisitorName, d.PersonToVisit, d.Purpose
	}

	var stored *models.Pass
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Passes(tx)
		if err := repo.Create(ctx, p); err != nil {
			return err
		}
		var err error
		stored, err = repo.GetByID(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error issuing pass: %w", err)
	}

	qr, err := qrx.Build(stored.ID, stored.PlateAlpha, stored.PlateNum, stored.ExpiresAt).Encode()
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}

	s.log.Info(ctx, "pass issued", "pass_id", stored.ID, "type", stored.Type, "plate", stored.PlateAlpha+" "+stored.PlateNum)
	return &IssuedPass{Pass: stored, QR: qr}, nil
}

// Revoke marks the pass revoked. Ids that are not UUIDs cannot exist and
// yield common.ErrorNotFound without a query.
func (s *PassService) Revoke(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Passes(s.db).Revoke(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "pass revoked", "pass_id", id)
	return nil
}

// List returns passes with the given effective status ("" for all). The
// Status of every returned pass is its effective status.
func (s *PassService) List(ctx context.Context, status string) ([]*models.Pass, error) {
	now := s.now()

	list, err := s.repomanager.Passes(s.db).List(ctx, status, now)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Status = p.EffectiveStatus(now)
	}
	return list, nil
}
