// Package passes stores issued passes in PostgreSQL.
package passes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/dbx"
	"github.com/dmitrijs2005/gateguard/internal/server/models"
)

const selectQuery = `SELECT p.id, p.type, p.plate_alpha, p.plate_num, p.location, p.status,
		p.expires_at, p.created_at, p.revoked_at,
		COALESCE(p.created_by::text, ''), COALESCE(u.username, ''), COALESCE(u.company, ''),
		p.owner_name, p.owner_company, p.serial,
		p.visitor_name, p.person_to_visit, p.purpose
	FROM passes p
	LEFT JOIN users u ON u.id = p.created_by`

// PostgresRepository implements pass storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts pass as active. The id is chosen by the caller.
func (r *PostgresRepository) Create(ctx context.Context, pass *models.Pass) error {
	query := `
		INSERT INTO passes (id, type, plate_alpha, plate_num, location, status, expires_at, created_at,
			created_by, owner_name, owner_company, serial, visitor_name, person_to_visit, purpose)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		pass.ID, pass.Type, pass.PlateAlpha, pass.PlateNum, pass.Location, models.StatusActive,
		pass.ExpiresAt, pass.CreatedAt, nullIfEmpty(pass.CreatedBy),
		pass.OwnerName, pass.OwnerCompany, pass.Serial,
		pass.VisitorName, pass.PersonToVisit, pass.Purpose)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	pass.Status = models.StatusActive
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Pass, error) {
	row := r.db.QueryRowContext(ctx, selectQuery+` WHERE p.id = $1`, id)

	p, err := scanPass(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, status string, now time.Time) ([]*models.Pass, error) {
	var (
		where string
		args  []any
	)
	switch status {
	case "":
	case models.StatusActive:
		where, args = ` WHERE p.status = 'active' AND p.expires_at >= $1`, []any{now}
	case models.StatusExpired:
		where, args = ` WHERE p.status = 'active' AND p.expires_at < $1`, []any{now}
	case models.StatusRevoked:
		where = ` WHERE p.status = 'revoked'`
	default:
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, status)
	}

	rows, err := r.db.QueryContext(ctx, selectQuery+where+` ORDER BY p.created_at DESC, p.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select passes: %w", err)
	}
	defer rows.Close()

	var result []*models.Pass
	for rows.Next() {
		p, err := scanPass(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Revoke marks a pass revoked. Revoking twice keeps the first revocation time.
func (r *PostgresRepository) Revoke(ctx context.Context, id string) error {
	query := `UPDATE passes SET status = 'revoked', revoked_at = COALESCE(revoked_at, now()) WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPass(s scanner) (*models.Pass, error) {
	var (
		p         models.Pass
		revokedAt sql.NullTime
	)
	err := s.Scan(&p.ID, &p.Type, &p.PlateAlpha, &p.PlateNum, &p.Location, &p.Status,
		&p.ExpiresAt, &p.CreatedAt, &revokedAt,
		&p.CreatedBy, &p.CreatedByName, &p.CreatedByCompany,
		&p.OwnerName, &p.OwnerCompany, &p.Serial,
		&p.VisitorName, &p.PersonToVisit, &p.Purpose)
	if err != nil {
		return nil, err
	}
	if revokedAt.Valid {
		t := revokedAt.Time
		p.RevokedAt = &t
	}
	return &p, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
