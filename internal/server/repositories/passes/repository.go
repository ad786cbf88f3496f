package passes

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gateguard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, pass *models.Pass) error
	GetByID(ctx context.Context, id string) (*models.Pass, error)
	// List returns passes whose effective status at now equals status, or all
	// passes for "". Newest first.
	List(ctx context.Context, status string, now time.Time) ([]*models.Pass, error)
	Revoke(ctx context.Context, id string) error
}
