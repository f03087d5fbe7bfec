package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/snugbooks/backend/internal/dbx"
	"github.com/snugbooks/backend/internal/server/models"
	"github.com/snugbooks/backend/internal/server/repositories/repomanager"
)

// CompanyService handles company profile CRUD.
type CompanyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCompanyService(db *sql.DB, m repomanager.RepositoryManager) *CompanyService {
	return &CompanyService{db: db, repomanager: m}
}

func (s *CompanyService) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	repo := s.repomanager.Companies(s.db)
	c, err := repo.Create(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("error creating company: %w", err)
	}
	return c, nil
}

func (s *CompanyService) ListByUser(ctx context.Context, userID int64) ([]*models.Company, error) {
	repo := s.repomanager.Companies(s.db)
	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing companies: %w", err)
	}
	return result, nil
}

// Update overwrites the mutable fields of an existing company. The stored
// user_id is kept; only the profile fields change. Unknown id yields
// common.ErrorNotFound.
func (s *CompanyService) Update(ctx context.Context, company *models.Company) (*models.Company, error) {
	var updated *models.Company
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Companies(tx)
		current, err := repo.GetByID(ctx, company.ID)
		if err != nil {
			return err
		}
		company.UserID = current.UserID
		company.CreatedAt = current.CreatedAt
		if err := repo.Update(ctx, company); err != nil {
			return err
		}
		updated = company
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the company row. Unknown id yields common.ErrorNotFound.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	repo := s.repomanager.Companies(s.db)
	return repo.Delete(ctx, id)
}
