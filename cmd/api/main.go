// @title           TaskTaco API
// @version         1.0
// @description     Personal Kanban boards with ordered columns and tasks
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	_ "github.com/RawanAyoub/TaskTaco-sub000/docs" // Swagger docs import

	"github.com/RawanAyoub/TaskTaco-sub000/internal/client"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/config"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/job"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/metrics"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/realtime"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/repository"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/router"
)

//go:generate swag init -g cmd/api/main.go -d ../.. -o ../../docs

const dbStatsInterval = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting TaskTaco",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.Bool("serializable_reorders", cfg.Database.SerializableReorders()),
	)

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	// Initialize Redis (optional, backs the token blacklist)
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedis(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis unavailable, logout will not revoke tokens", zap.Error(err))
			redisClient = nil
		}
	} else {
		logger.Info("Redis not configured, logout will not revoke tokens")
	}

	// Initialize S3 client
	var s3Client client.S3ClientInterface
	if cfg.S3.Bucket != "" && cfg.S3.Region != "" {
		c, err := client.NewS3Client(&cfg.S3, m)
		if err != nil {
			logger.Warn("Failed to initialize S3 client, profile pictures disabled", zap.Error(err))
		} else {
			s3Client = c
			logger.Info("S3 client initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	} else {
		logger.Warn("S3 configuration incomplete, profile pictures disabled")
	}

	// Live board feed
	hub := realtime.NewHub(logger, m)
	go hub.Run()

	app := &application{
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		s3:        s3Client,
		scheduler: job.NewScheduler(logger),
	}

	routerConfig := router.Config{
		Redis:                redisClient,
		Logger:               logger,
		BasePath:             cfg.Server.BasePath,
		Metrics:              m,
		JWT:                  cfg.JWT,
		S3Client:             s3Client,
		UploadTTL:            cfg.S3.UploadTTL,
		Hub:                  hub,
		CORSOrigins:          cfg.CORS.AllowedOrigins,
		SerializableReorders: cfg.Database.SerializableReorders(),
	}

	// Initialize database (the server starts either way so probes can answer)
	dbConfig := database.Config{
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	handler := &swappableHandler{}
	db, err := database.New(dbConfig)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		handler.Set(router.Setup(routerConfig))
		database.NewAsync(dbConfig, 5*time.Second, logger, func(db *gorm.DB) {
			app.onDatabase(db)
			routerConfig.DB = db
			handler.Set(router.Setup(routerConfig))
			logger.Info("API routes enabled")
		})
	} else {
		logger.Info("Database connected successfully")
		database.SetDB(db)
		app.onDatabase(db)
		routerConfig.DB = db
		handler.Set(router.Setup(routerConfig))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("TaskTaco started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	hub.Close()
	app.shutdown(ctx)
	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("Server exited gracefully")
}

// application owns the background workers that need a database
type application struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *metrics.Metrics
	s3        client.S3ClientInterface
	scheduler *job.Scheduler

	mu        sync.Mutex
	db        *gorm.DB
	collector *metrics.BusinessMetricsCollector
	statsDone chan struct{}
}

// onDatabase migrates the schema and starts the metric collectors and jobs
func (a *application) onDatabase(db *gorm.DB) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.db = db

	if err := database.AutoMigrateWithRetry(db, a.logger, 3); err != nil {
		a.logger.Warn("Failed to run database migrations", zap.Error(err))
	} else {
		a.logger.Info("Database migrations completed")
	}

	if err := database.RegisterMetricsCallbacks(db, a.metrics); err != nil {
		a.logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	a.statsDone = database.StartDBStatsCollector(db, a.metrics, dbStatsInterval)

	a.collector = metrics.NewBusinessMetricsCollector(db, a.metrics, a.logger)
	a.collector.Start()

	if !a.cfg.Jobs.Enabled {
		a.logger.Info("Background jobs disabled")
		return
	}

	tx := database.NewTransactor(db, database.TxOptions{Serializable: a.cfg.Database.SerializableReorders()})
	repair := job.NewOrderRepairJob(tx, repository.NewColumnRepository(db), repository.NewTaskRepository(db), a.metrics, a.logger)
	if err := a.scheduler.Add("order-repair", a.cfg.Jobs.OrderRepairSchedule, repair); err != nil {
		a.logger.Error("Failed to schedule order repair", zap.Error(err))
	}
	if a.s3 != nil {
		cleanup := job.NewCleanupJob(repository.NewAttachmentRepository(db), a.s3, a.logger)
		if err := a.scheduler.Add("upload-cleanup", a.cfg.Jobs.CleanupSchedule, cleanup); err != nil {
			a.logger.Error("Failed to schedule upload cleanup", zap.Error(err))
		}
	}
	a.scheduler.Start()
	a.logger.Info("Background jobs started", zap.Int("jobs", a.scheduler.Len()))
}

func (a *application) shutdown(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.scheduler.Stop(ctx)
	if a.collector != nil {
		a.collector.Stop()
	}
	if a.statsDone != nil {
		close(a.statsDone)
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Error("Failed to close database", zap.Error(err))
		}
	}
}

// swappableHandler lets the full router replace the probe-only one once the
// database comes up
type swappableHandler struct {
	engine atomic.Pointer[gin.Engine]
}

func (h *swappableHandler) Set(engine *gin.Engine) {
	h.engine.Store(engine)
}

func (h *swappableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.engine.Load().ServeHTTP(w, r)
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapConfig.Build()
}
