package passes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/client/models"
	"github.com/dmitrijs2005/gateguard/internal/common"
	"github.com/dmitrijs2005/gateguard/internal/dbx"
	"github.com/dmitrijs2005/gateguard/internal/validation"
)

const selectColumns = `id, type, plate_alpha, plate_num, status, expires_at, created_at,
	location, created_by, created_by_name, created_by_company, details`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll swaps the whole table for passes in a single transaction.
// On any error the previous contents stay in place.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, passes []models.Pass) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM passes`); err != nil {
			return fmt.Errorf("clear passes: %w", err)
		}

		query := `INSERT INTO passes (` + selectColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

		for i := range passes {
			p := &passes[i]
			details, err := models.MarshalDetails(p.Details)
			if err != nil {
				return fmt.Errorf("encode details of pass %s: %w", p.ID, err)
			}
			_, err = tx.ExecContext(ctx, query,
				p.ID, string(p.Type), p.PlateAlpha, p.PlateNum, string(p.Status),
				toMicros(p.ExpiresAt), toMicros(p.CreatedAt),
				p.Location, p.CreatedBy, p.CreatedByName, p.CreatedByCompany,
				string(details),
			)
			if err != nil {
				return fmt.Errorf("insert pass %s: %w", p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: replace passes: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Pass, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM passes WHERE id = ?`, id)
	return scanOne(row, "get pass "+id)
}

// GetByPlate matches the letter part case-insensitively. When several passes
// share a plate the most recently created one is returned.
func (r *SQLiteRepository) GetByPlate(ctx context.Context, plateAlpha, plateNum string) (*models.Pass, error) {
	alpha := validation.NormalizePlateAlpha(plateAlpha)
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM passes
		WHERE plate_alpha = ? AND plate_num = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, alpha, plateNum)
	return scanOne(row, fmt.Sprintf("get pass by plate %s %s", alpha, plateNum))
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count passes: %w", common.ErrStorageUnavailable, err)
	}
	return n, nil
}

func scanOne(row *sql.Row, op string) (*models.Pass, error) {
	var (
		p                models.Pass
		passType, status string
		expires, created int64
		details          string
	)
	err := row.Scan(&p.ID, &passType, &p.PlateAlpha, &p.PlateNum, &status, &expires, &created,
		&p.Location, &p.CreatedBy, &p.CreatedByName, &p.CreatedByCompany, &details)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrStorageUnavailable, op, err)
	}

	p.Type = models.PassType(passType)
	p.Status = models.Status(status)
	p.ExpiresAt = fromMicros(expires)
	p.CreatedAt = fromMicros(created)

	d, err := models.UnmarshalDetails(p.Type, []byte(details))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: decode details: %w", common.ErrStorageUnavailable, op, err)
	}
	p.Details = d

	return &p, nil
}

// Times are stored as Unix microseconds, the precision kept by the directory.
func toMicros(t time.Time) int64 {
	return t.UnixMicro()
}

func fromMicros(us int64) time.Time {
	return time.UnixMicro(us).UTC()
}
