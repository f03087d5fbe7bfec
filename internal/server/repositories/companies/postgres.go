package companies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/snugbooks/backend/internal/common"
	"github.com/snugbooks/backend/internal/dbx"
	"github.com/snugbooks/backend/internal/server/models"
)

const companyColumns = `id, user_id, company_name, org_number, address, postal_code, city, country, vat_number, fiscal_year_start, fiscal_year_end, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, company *models.Company) (*models.Company, error) {

	query :=
		`INSERT INTO companies (user_id, company_name, org_number, address, postal_code, city, country, vat_number, fiscal_year_start, fiscal_year_end)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		company.UserID,
		company.CompanyName,
		dbx.NullString(company.OrgNumber),
		dbx.NullString(company.Address),
		dbx.NullString(company.PostalCode),
		dbx.NullString(company.City),
		dbx.NullString(company.Country),
		dbx.NullString(company.VatNumber),
		dbx.NullString(company.FiscalYearStart),
		dbx.NullString(company.FiscalYearEnd)).
		Scan(&company.ID, &company.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return company, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Company
	for rows.Next() {
		company, err := scanCompany(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies
		 WHERE id = $1
		 `

	row := r.db.QueryRowContext(ctx, query, id)
	company, err := scanCompany(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return company, nil
}

func (r *PostgresRepository) Update(ctx context.Context, company *models.Company) error {
	query :=
		`UPDATE companies SET company_name = $1, org_number = $2, address = $3, postal_code = $4, city = $5, country = $6, vat_number = $7, fiscal_year_start = $8, fiscal_year_end = $9
		 WHERE id = $10
		 `

	res, err := r.db.ExecContext(ctx, query,
		company.CompanyName,
		dbx.NullString(company.OrgNumber),
		dbx.NullString(company.Address),
		dbx.NullString(company.PostalCode),
		dbx.NullString(company.City),
		dbx.NullString(company.Country),
		dbx.NullString(company.VatNumber),
		dbx.NullString(company.FiscalYearStart),
		dbx.NullString(company.FiscalYearEnd),
		company.ID)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM companies
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func scanCompany(scan func(dest ...any) error) (*models.Company, error) {
	company := &models.Company{}
	var orgNumber, address, postalCode, city, country, vatNumber, fyStart, fyEnd sql.NullString

	err := scan(
		&company.ID, &company.UserID, &company.CompanyName,
		&orgNumber, &address, &postalCode, &city, &country, &vatNumber,
		&fyStart, &fyEnd, &company.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	company.OrgNumber = dbx.StringPtr(orgNumber)
	company.Address = dbx.StringPtr(address)
	company.PostalCode = dbx.StringPtr(postalCode)
	company.City = dbx.StringPtr(city)
	company.Country = dbx.StringPtr(country)
	company.VatNumber = dbx.StringPtr(vatNumber)
	company.FiscalYearStart = dbx.StringPtr(fyStart)
	company.FiscalYearEnd = dbx.StringPtr(fyEnd)
	return company, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
