package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/snugbooks/backend/internal/server/models"
	"github.com/snugbooks/backend/internal/server/repositories/repomanager"
)

// RecordService stores references to externally kept files: SIE exports and
// receipts. Only the metadata passes through here, never the bytes.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

func (s *RecordService) CreateSIEFile(ctx context.Context, file *models.SIEFile) (*models.SIEFile, error) {
	repo := s.repomanager.SIEFiles(s.db)
	f, err := repo.Create(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("error creating sie file: %w", err)
	}
	return f, nil
}

func (s *RecordService) ListSIEFiles(ctx context.Context, userID int64) ([]*models.SIEFile, error) {
	repo := s.repomanager.SIEFiles(s.db)
	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing sie files: %w", err)
	}
	return result, nil
}

func (s *RecordService) CreateReceipt(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error) {
	repo := s.repomanager.Receipts(s.db)
	r, err := repo.Create(ctx, receipt)
	if err != nil {
		return nil, fmt.Errorf("error creating receipt: %w", err)
	}
	return r, nil
}

func (s *RecordService) ListReceipts(ctx context.Context, userID int64) ([]*models.Receipt, error) {
	repo := s.repomanager.Receipts(s.db)
	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing receipts: %w", err)
	}
	return result, nil
}
