package app

import (
	"context"
	"log"
	"os"
	"time"

	"zeeknet-ats/internal/config"
	"zeeknet-ats/internal/database"
	"zeeknet-ats/internal/database/migration"
	dbpostgres "zeeknet-ats/internal/database/postgres"
	"zeeknet-ats/internal/database/seeder"
	"zeeknet-ats/internal/infrastructure/cache"
	"zeeknet-ats/internal/infrastructure/storage"
	"zeeknet-ats/internal/repository"
	"zeeknet-ats/internal/service/activitylog"
	"zeeknet-ats/internal/usecase"
	"zeeknet-ats/internal/ws"
)

type Container struct {
	Config config.Config
	Logger *log.Logger

	DB        database.DB
	Cache     *cache.Redis
	Documents usecase.DocumentStore

	ActivityLog *activitylog.Logger
	Hub         *ws.Hub

	cancel context.CancelFunc
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	seeds := seeder.Runner{Seeders: seeder.Defaults()}
	if err := seeds.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(logger)

	var documents usecase.DocumentStore
	if cfg.Storage.Bucket != "" {
		store, err := storage.NewGCSDocumentStore(ctx, cfg.Storage)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		documents = store
	}

	activityRepo := repository.NewPostgresActivityRepository(db)
	activityLog := activitylog.NewLogger(activityRepo, logger)
	activityLog.SetFeedInvalidator(redisCache)
	activityLog.SetNotifier(ws.NotifyApplicationUpdated)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	bgCtx, bgCancel := context.WithCancel(context.Background())
	go hub.Run()
	go activityLog.Run(bgCtx)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Cache:       redisCache,
		Documents:   documents,
		ActivityLog: activityLog,
		Hub:         hub,
		cancel:      bgCancel,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
