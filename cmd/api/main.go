package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cookbook/internal/chat"
	"cookbook/internal/config"
	"cookbook/internal/database"
	"cookbook/internal/database/migration"
	"cookbook/internal/http/handler"
	"cookbook/internal/logger"
	"cookbook/internal/otel"
	"cookbook/internal/repository"
	"cookbook/internal/repository/mongodb"
	"cookbook/internal/repository/postgres"
	"cookbook/internal/repository/sqlite"
	"cookbook/internal/scheduler"
	"cookbook/internal/server"
	"cookbook/internal/service"
	"cookbook/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Cookbook API
// @version 1.0
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdownTracing(context.Background())

	users, health, closeStore, err := openUserStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	uploads, err := openUploads(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := server.New(server.Options{
		Log:       log,
		Registry:  reg,
		RateLimit: cfg.RateLimit,
		StaticDir: cfg.StaticDir,
		Tracing:   otel.Enabled(),
	}, handler.Deps{
		Users:   service.NewUserService(users),
		Uploads: uploads,
		Health:  health,
	})
	if err != nil {
		return err
	}

	hub := chat.NewHub(log)
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	chatSrv := &http.Server{
		Addr:              ":" + cfg.ChatPort,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sched := scheduler.New(log)
	if _, err := sched.Add(cfg.CronSpec, "heartbeat", func(context.Context) {
		log.Info().Int("chat_clients", hub.Count()).Msg("Running a task every minute")
	}); err != nil {
		return err
	}
	sched.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", ":"+cfg.Port).Msg("http server listening")
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		log.Info().Str("addr", chatSrv.Addr).Msg("chat server listening")
		if err := chatSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		hub.Close()
		return errors.Join(
			app.ShutdownWithContext(sctx),
			chatSrv.Shutdown(sctx),
			sched.Stop(sctx),
		)
	})

	return g.Wait()
}

// openUserStore connects the backend named by USER_STORE and migrates it.
func openUserStore(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (repository.UserRepository, handler.Pinger, func(), error) {
	switch cfg.UserStore {
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, migration.Postgres, log); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return postgres.NewUserPostgres(db), db, func() { db.Close() }, nil

	case config.StoreMongo:
		client, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		coll := client.Database(cfg.Mongo.Database).Collection(mongodb.Collection)
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return mongodb.NewUserMongo(coll), database.MongoPinger{Client: client}, closeFn, nil

	default:
		db, err := database.NewSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		if err := migration.EnsureMigrated(ctx, db, migration.SQLite, log); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return sqlite.NewUserSQLite(db), db, func() { db.Close() }, nil
	}
}

// openUploads prefers MinIO when configured and falls back to UPLOAD_DIR.
func openUploads(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) (service.UploadService, error) {
	if cfg.MinIO.Enabled() {
		store, err := storage.NewMinIO(ctx, cfg.MinIO, log)
		if err != nil {
			return nil, err
		}
		return service.NewUploadService(store), nil
	}
	store, err := storage.NewDisk(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return service.NewUploadService(store, service.WithKeyPrefix("")), nil
}
