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

	"nexusconnect-backend/auth"
	"nexusconnect-backend/cache"
	"nexusconnect-backend/config"
	"nexusconnect-backend/events"
	"nexusconnect-backend/handlers"
	"nexusconnect-backend/logger"
	"nexusconnect-backend/metrics"
	"nexusconnect-backend/middleware"
	"nexusconnect-backend/repository"
	"nexusconnect-backend/service"
	"nexusconnect-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel, "nexusconnect-api")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// Initialize database connections
	db, err := initPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	defer db.Close()
	zl.Info("Postgres connection established")

	// Initialize storage
	fileStorage, err := storage.NewStorage(ctx, cfg.StorageConfig())
	if err != nil {
		zl.Fatal("Failed to initialize storage", zap.Error(err))
	}
	zl.Info("Storage initialized", zap.String("type", string(cfg.StorageType)))

	// Optional Redis for token revocation and rate limiting
	var redisCache *cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err = cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			zl.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisCache.Close()
		zl.Info("Redis connection established", zap.String("addr", cfg.RedisAddr))
	} else {
		zl.Warn("REDIS_ADDR not set: token revocation and contact rate limiting disabled")
	}

	// Optional Kafka for domain events
	var publisher events.Publisher = events.NopPublisher{}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		publisher = events.NewKafkaPublisher(brokers, zl)
		zl.Info("Kafka publisher initialized", zap.Strings("brokers", brokers))
	}
	defer publisher.Close()

	srv := newServer(cfg, deps{
		db:        db,
		storage:   fileStorage,
		cache:     redisCache,
		publisher: publisher,
		log:       zl,
	})

	go func() {
		zl.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}
	zl.Info("Server exited")
}

// deps are the process-wide clients shared by every request.
// cache is nil when Redis is not configured.
type deps struct {
	db        *pgxpool.Pool
	storage   storage.Storage
	cache     *cache.Cache
	publisher events.Publisher
	log       *zap.Logger
}

// newServer wires repositories, services and handlers into an http.Server.
func newServer(cfg *config.Config, d deps) *http.Server {
	var (
		revocations auth.RevocationStore
		rateCounter middleware.Counter
	)
	if d.cache != nil {
		revocations = d.cache
		rateCounter = d.cache
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, revocations)

	// Initialize repositories
	userRepo := repository.NewUserRepository(d.db)
	entrepreneurRepo := repository.NewEntrepreneurRepository(d.db, d.log)
	draftRepo := repository.NewDraftRepository(d.db)
	contactRepo := repository.NewContactRepository(d.db)

	// Initialize services
	entrepreneurService := service.NewEntrepreneurService(
		service.WithProfileStore(entrepreneurRepo),
		service.WithAccountFlagStore(userRepo),
		service.WithDraftCleanup(draftRepo),
		service.WithEventPublisher(d.publisher),
		service.WithLogger(d.log),
	)
	draftService := service.NewDraftService(service.DraftWithStore(draftRepo))
	authService := service.NewAuthService(
		service.AuthWithUserStore(userRepo),
		service.AuthWithTokenManager(tokens),
		service.AuthWithLogger(d.log),
	)
	contactService := service.NewContactService(
		service.ContactWithStore(contactRepo),
		service.ContactWithPublisher(d.publisher),
		service.ContactWithLogger(d.log),
	)
	logoService := service.NewLogoService(
		service.LogoWithStorage(d.storage),
		service.LogoWithMaxSize(cfg.MaxLogoSize),
		service.LogoWithLogger(d.log),
	)
	statsService := service.NewStatsService(userRepo, entrepreneurRepo)

	var uploadsDir string
	if local, ok := d.storage.(*storage.LocalStorage); ok {
		uploadsDir = local.Root()
	}

	// Initialize handlers
	router := handlers.NewRouter(handlers.RouterConfig{
		AppName:           cfg.AppName,
		AppVersion:        cfg.AppVersion,
		Auth:              handlers.NewAuthHandler(authService, d.log),
		Entrepreneur:      handlers.NewEntrepreneurHandler(entrepreneurService, draftService, d.log),
		Contact:           handlers.NewContactHandler(contactService, statsService, d.log),
		Storage:           handlers.NewStorageHandler(logoService, d.log),
		Tokens:            tokens,
		Metrics:           metrics.New("nexusconnect"),
		Log:               d.log,
		RateCounter:       rateCounter,
		ContactRateLimit:  cfg.ContactRateLimit,
		ContactRateWindow: cfg.ContactRateWindow,
		UploadsDir:        uploadsDir,
	})

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOriginList(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposedHeaders:   []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func initPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}
