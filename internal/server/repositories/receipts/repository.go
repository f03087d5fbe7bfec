package receipts

import (
	"context"

	"github.com/snugbooks/backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Receipt, error)
}
