package siefiles

import (
	"context"

	"github.com/snugbooks/backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, file *models.SIEFile) (*models.SIEFile, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.SIEFile, error)
}
