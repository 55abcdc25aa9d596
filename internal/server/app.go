// Package server wires the school API: storage backend, services, the HTTP
// API and the gRPC health service, and runs them until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/schoolauth/internal/dbx"
	"github.com/dmitrijs2005/schoolauth/internal/logging"
	"github.com/dmitrijs2005/schoolauth/internal/server/auth"
	"github.com/dmitrijs2005/schoolauth/internal/server/config"
	"github.com/dmitrijs2005/schoolauth/internal/server/httpapi"
	"github.com/dmitrijs2005/schoolauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/schoolauth/internal/server/services"
	"github.com/dmitrijs2005/schoolauth/internal/server/storage"

	gs "github.com/dmitrijs2005/schoolauth/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	users   *services.UserService
	handler http.Handler
	health  *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		db    *sql.DB
		tx    dbx.Transactor
		repos repomanager.RepositoryManager
		st    storage.ObjectStorage
	)

	switch c.StorageMode {
	case config.ModeMemory:
		tx = dbx.NopTransactor{}
		repos = repomanager.NewMemoryRepositoryManager()
		st = storage.NewMemoryStorage()
	case config.ModePostgres:
		var err error
		db, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		pg := repomanager.NewPostgresRepositoryManager()
		if err := pg.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		s3, err := storage.NewS3Storage(ctx, storage.S3Options{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("object storage: %w", err)
		}
		tx, repos, st = dbx.NewSQLTransactor(db), pg, s3
	default:
		return nil, fmt.Errorf("unknown storage mode %q", c.StorageMode)
	}

	issuer := auth.NewIssuer([]byte(c.SecretKey), c.Issuer, c.AccessTokenTTL)
	us := services.NewUserService(tx, repos, issuer, c.RefreshTokenTTL)

	if c.AdminEmail != "" {
		created, err := us.EnsureAdmin(ctx, c.AdminEmail, c.AdminPassword)
		if err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, fmt.Errorf("seed admin: %w", err)
		}
		if created {
			logger.Info(ctx, "admin account created", "email", c.AdminEmail)
		}
	}

	h := httpapi.NewHandler(us,
		services.NewOfferService(tx, repos),
		services.NewCourseService(tx, repos),
		services.NewUploadService(st),
		logger,
	)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		users:   us,
		handler: h.Router(),
		health:  gs.NewHealthServer(c.GRPCAddr, logger),
	}, nil
}

// Run starts the HTTP API and the health service and blocks until ctx is
// cancelled or either of them fails. The first failure is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageMode)

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() { firstErr = err })
		cancelFunc()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		api := httpapi.NewServer(app.config.HTTPAddr, app.handler, app.logger, app.config.ShutdownTimeout)
		app.health.SetServing(true)
		if err := api.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			fail(err)
		}
		app.health.SetServing(false)
	}()
	go func() {
		defer wg.Done()
		if err := app.health.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			fail(err)
		}
	}()

	wg.Wait()
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return firstErr
}

func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
