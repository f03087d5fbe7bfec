package companies

import (
	"context"

	"github.com/snugbooks/backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Company, error)
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id int64) error
}
