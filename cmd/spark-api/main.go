package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "github.com/noah-isme/spark-api/api/swagger"
	"github.com/noah-isme/spark-api/internal/catalog"
	"github.com/noah-isme/spark-api/internal/repository"
	"github.com/noah-isme/spark-api/internal/service"
	"github.com/noah-isme/spark-api/migrations"
	"github.com/noah-isme/spark-api/pkg/cache"
	"github.com/noah-isme/spark-api/pkg/config"
	"github.com/noah-isme/spark-api/pkg/database"
	"github.com/noah-isme/spark-api/pkg/jobs"
	"github.com/noah-isme/spark-api/pkg/logger"
)

// @title Spark API
// @version 1.0.0
// @description Directory of high-school extracurricular programs with smart search, bookmarks and submissions.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	store, err := catalog.LoadStore(cfg.Catalog.File)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	tables, err := catalog.LoadKeywordTables(cfg.Catalog.KeywordsFile)
	if err != nil {
		return fmt.Errorf("load keyword tables: %w", err)
	}
	parser, err := catalog.NewParser(tables)
	if err != nil {
		return fmt.Errorf("build parser: %w", err)
	}
	memo, err := catalog.NewMemoParser(parser, cfg.Catalog.ParserCacheSize)
	if err != nil {
		return fmt.Errorf("build parser cache: %w", err)
	}
	logr.Info("catalog loaded", zap.Int("programs", store.Len()))

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	db := connectDatabase(ctx, cfg, logr)
	if db != nil {
		defer db.Close()
	}

	var bookmarkRepo service.BookmarkRepository
	switch {
	case cfg.Bookmarks.Backend == config.BookmarkBackendRedis:
		rdb, err := cache.NewRedis(ctx, cfg.Redis, cfg.ConnectTimeout, logr)
		if err != nil {
			logr.Warn("redis unreachable, bookmarking disabled", zap.Error(err))
			break
		}
		defer rdb.Close()
		bookmarkRepo = repository.NewRedisBookmarkRepository(rdb, logr)
	case db != nil:
		bookmarkRepo = repository.NewBookmarkRepository(db)
	}
	if bookmarkRepo != nil {
		logr.Info("bookmark store ready", zap.String("backend", cfg.Bookmarks.Backend))
	}

	deps, submissionSvc := buildDeps(cfg, logr, store, memo, db, bookmarkRepo, metrics)

	var queue *jobs.Queue
	if submissionSvc != nil {
		queue = jobs.NewQueue("submissions", submissionSvc.Handle, jobs.QueueConfig{
			Workers:    cfg.Submissions.Workers,
			MaxRetries: cfg.Submissions.Retries,
			RetryDelay: cfg.Submissions.RetryDelay,
			Logger:     logr,
		})
		queue.Start(context.Background())
		submissionSvc.UseQueue(queue)
	}

	router := newRouter(cfg, logr, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logr.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Error("http shutdown", zap.Error(err))
		}
		if queue == nil {
			return nil
		}
		if err := queue.Stop(shutdownCtx); err != nil {
			logr.Warn("submission queue did not drain", zap.Int("pending", queue.Pending()), zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}

// connectDatabase returns nil when Postgres is unreachable or cannot be migrated. The catalog
// does not depend on it, so the server starts with the storage-backed features offline.
func connectDatabase(ctx context.Context, cfg *config.Config, logr *zap.Logger) *sqlx.DB {
	db, err := database.NewPostgres(ctx, cfg.Database, cfg.ConnectTimeout, logr)
	if err != nil {
		logr.Warn("postgres unreachable, starting with accounts, bookmarks and intake offline", zap.Error(err))
		return nil
	}
	if err := migrations.Run(db.DB); err != nil {
		logr.Warn("migrations failed, starting with accounts, bookmarks and intake offline", zap.Error(err))
		_ = db.Close()
		return nil
	}
	return db
}

// buildDeps wires the services behind the router. The returned submission service is nil
// when db is nil; a nil bookmarkRepo turns bookmarking off.
func buildDeps(
	cfg *config.Config,
	logr *zap.Logger,
	store *catalog.Store,
	parser catalog.QueryParser,
	db *sqlx.DB,
	bookmarkRepo service.BookmarkRepository,
	metrics *service.MetricsService,
) (routeDeps, *service.SubmissionService) {
	validate := validator.New()
	authCfg := service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	}

	deps := routeDeps{
		catalog:     service.NewCatalogService(store, parser, bookmarkRepo, metrics, logr),
		bookmarks:   offlineBookmarks{},
		submissions: offlineSubmissions{},
		contacts:    offlineContacts{},
		metrics:     metrics,
		programs:    store,
	}
	if bookmarkRepo != nil {
		deps.bookmarks = service.NewBookmarkService(bookmarkRepo, store, cfg.Bookmarks.ReminderWindow, metrics, logr)
	}

	if db == nil {
		deps.auth = offlineAuth{service.NewAuthService(nil, validate, logr, authCfg)}
		return deps, nil
	}

	submissionSvc := service.NewSubmissionService(repository.NewSubmissionRepository(db), validate, metrics, logr)
	deps.auth = service.NewAuthService(repository.NewUserRepository(db), validate, logr, authCfg)
	deps.submissions = submissionSvc
	deps.contacts = service.NewContactService(repository.NewContactRepository(db), validate, logr)
	return deps, submissionSvc
}
