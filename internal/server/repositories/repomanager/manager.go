package repomanager

import (
	"context"
	"database/sql"

	"github.com/snugbooks/backend/internal/dbx"
	"github.com/snugbooks/backend/internal/server/repositories/companies"
	"github.com/snugbooks/backend/internal/server/repositories/receipts"
	"github.com/snugbooks/backend/internal/server/repositories/siefiles"
	"github.com/snugbooks/backend/internal/server/repositories/users"
)

// RepositoryManager vends entity repositories bound to a DBTX, so callers
// can use the same constructors inside and outside a transaction, and
// exposes the schema migration hook.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	SIEFiles(db dbx.DBTX) siefiles.Repository
	Receipts(db dbx.DBTX) receipts.Repository
	Companies(db dbx.DBTX) companies.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
