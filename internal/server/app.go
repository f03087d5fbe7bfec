// Package server initializes and runs the application: it opens the
// database, runs the startup bootstrap (migrations + seed accounts), wires
// the services, and serves the HTTP API until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/snugbooks/backend/internal/logging"
	"github.com/snugbooks/backend/internal/server/bootstrap"
	"github.com/snugbooks/backend/internal/server/config"
	"github.com/snugbooks/backend/internal/server/httpapi"
	"github.com/snugbooks/backend/internal/server/repositories/repomanager"
	"github.com/snugbooks/backend/internal/server/services"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	bootstrap *bootstrap.Bootstrap
	server    *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	b := bootstrap.New(db, rm, logger)

	us := services.NewUserService(db, rm)
	rs := services.NewRecordService(db, rm)
	cs := services.NewCompanyService(db, rm)

	srv, err := httpapi.NewServer(c.ListenAddr, logger, us, rs, cs, c.AdminToken)
	if err != nil {
		return nil, fmt.Errorf("http server init error: %w", err)
	}

	return &App{config: c, logger: logger, db: db, bootstrap: b, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run prepares the database and serves traffic until a signal arrives.
// A bootstrap failure is fatal: the API never starts on a broken schema.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.bootstrap.Run(ctx); err != nil {
		return fmt.Errorf("bootstrap error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	return nil
}
