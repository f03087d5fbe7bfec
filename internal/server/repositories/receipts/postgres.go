package receipts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/snugbooks/backend/internal/dbx"
	"github.com/snugbooks/backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, receipt *models.Receipt) (*models.Receipt, error) {

	query :=
		`INSERT INTO receipts (user_id, filename, storage_path, note)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		receipt.UserID, receipt.Filename, receipt.StoragePath, dbx.NullString(receipt.Note)).
		Scan(&receipt.ID, &receipt.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return receipt, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Receipt, error) {
	query :=
		`SELECT id, user_id, filename, storage_path, note, created_at FROM receipts
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Receipt
	for rows.Next() {
		receipt := &models.Receipt{}
		var note sql.NullString
		if err := rows.Scan(&receipt.ID, &receipt.UserID, &receipt.Filename, &receipt.StoragePath, &note, &receipt.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		receipt.Note = dbx.StringPtr(note)
		result = append(result, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
