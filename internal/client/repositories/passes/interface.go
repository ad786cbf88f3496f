package passes

import (
	"context"

	"github.com/dmitrijs2005/gateguard/internal/client/models"
)

type Repository interface {
	ReplaceAll(ctx context.Context, passes []models.Pass) error
	GetByID(ctx context.Context, id string) (*models.Pass, error)
	GetByPlate(ctx context.Context, plateAlpha, plateNum string) (*models.Pass, error)
	Count(ctx context.Context) (int, error)
}
