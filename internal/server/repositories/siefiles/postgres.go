package siefiles

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

func (r *PostgresRepository) Create(ctx context.Context, file *models.SIEFile) (*models.SIEFile, error) {

	query :=
		`INSERT INTO sie_files (user_id, filename, storage_path, period)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.UserID, file.Filename, file.StoragePath, dbx.NullString(file.Period)).
		Scan(&file.ID, &file.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.SIEFile, error) {
	query :=
		`SELECT id, user_id, filename, storage_path, period, created_at FROM sie_files
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SIEFile
	for rows.Next() {
		file := &models.SIEFile{}
		var period sql.NullString
		if err := rows.Scan(&file.ID, &file.UserID, &file.Filename, &file.StoragePath, &period, &file.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		file.Period = dbx.StringPtr(period)
		result = append(result, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
