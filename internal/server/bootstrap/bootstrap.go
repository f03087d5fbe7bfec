// Package bootstrap prepares the database at process start: it applies the
// schema migrations, retrying while the store is still coming up, and then
// seeds the two well-known accounts. Both steps are idempotent, so repeated
// starts against an already-prepared database are no-ops.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/snugbooks/backend/internal/common"
	"github.com/snugbooks/backend/internal/logging"
	"github.com/snugbooks/backend/internal/server/auth"
	"github.com/snugbooks/backend/internal/server/models"
	"github.com/snugbooks/backend/internal/server/repositories/repomanager"
)

// seedAccount is one well-known account created (or repaired) at startup.
type seedAccount struct {
	Email    string
	Password string
	Role     string
}

var seedAccounts = []seedAccount{
	{Email: "test@test.com", Password: "test", Role: models.RoleUser},
	{Email: "admin@snug.local", Password: "admin", Role: models.RoleAdmin},
}

type Bootstrap struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger

	// Migration retry policy. The store may still be starting up under
	// container orchestration, so connectivity failures are retried with a
	// fixed delay before giving up for good.
	migrationAttempts uint64
	migrationDelay    time.Duration
}

func New(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *Bootstrap {
	return &Bootstrap{
		db:                db,
		repomanager:       m,
		logger:            logger,
		migrationAttempts: 10,
		migrationDelay:    2 * time.Second,
	}
}

// Run executes the full startup sequence. A returned error means the process
// must not start serving traffic.
func (b *Bootstrap) Run(ctx context.Context) error {
	if err := b.migrate(ctx); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	if err := b.seed(ctx); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	return nil
}

func (b *Bootstrap) migrate(ctx context.Context) error {
	backoff := retry.WithMaxRetries(b.migrationAttempts-1, retry.NewConstant(b.migrationDelay))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := b.repomanager.RunMigrations(ctx, b.db); err != nil {
			b.logger.Warn(ctx, "migration attempt failed", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		b.logger.Info(ctx, "migrations applied", "attempt", attempt)
		return nil
	})
}

// needsRepair reports whether a seeded row still carries a legacy plaintext
// password. Pure predicate over the row snapshot.
func needsRepair(user *models.User) bool {
	return !auth.IsHashed(user.Password)
}

// seed inserts the well-known accounts, or rehashes their passwords where a
// legacy plaintext value is found. One transaction covers the whole pass;
// it is committed only when at least one change was made, and rolled back
// (a no-op) otherwise.
func (b *Bootstrap) seed(ctx context.Context) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	repo := b.repomanager.Users(tx)
	changed := 0

	for _, account := range seedAccounts {
		existing, err := repo.GetByEmail(ctx, account.Email)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			hash, err := auth.Hash(account.Password)
			if err != nil {
				return fmt.Errorf("error hashing seed password: %w", err)
			}
			user := &models.User{Email: account.Email, Password: hash, Role: account.Role}
			if _, err := repo.Create(ctx, user); err != nil {
				return fmt.Errorf("error creating seed account: %w", err)
			}
			changed++
			b.logger.Info(ctx, "seeding account", "email", account.Email, "role", account.Role)

		case err != nil:
			return fmt.Errorf("error reading seed account: %w", err)

		case needsRepair(existing):
			hash, err := auth.Hash(existing.Password)
			if err != nil {
				return fmt.Errorf("error rehashing legacy password: %w", err)
			}
			if err := repo.UpdatePassword(ctx, existing.ID, hash); err != nil {
				return fmt.Errorf("error storing rehashed password: %w", err)
			}
			changed++
			b.logger.Info(ctx, "rehashing legacy plaintext password", "email", account.Email)
		}
	}

	if changed == 0 {
		b.logger.Info(ctx, "seed accounts already in place")
		return nil
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
