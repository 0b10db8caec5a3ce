package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/auth"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/client"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/config"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/handler"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/metrics"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/middleware"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/realtime"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/repository"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/service"
)

// Config holds router configuration
type Config struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Logger   *zap.Logger
	BasePath string
	Metrics  *metrics.Metrics
	JWT      config.JWTConfig
	// S3Client may be nil; profile picture uploads then answer 503
	S3Client    client.S3ClientInterface
	UploadTTL   time.Duration
	Hub         *realtime.Hub
	CORSOrigins []string
	// SerializableReorders runs reorder transactions at SERIALIZABLE
	SerializableReorders bool
}

// Setup sets up the router with all routes. Without a DB only the health,
// metrics and docs routes are registered.
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	healthHandler := handler.NewHealthHandler(func() *gorm.DB { return cfg.DB }, cfg.Redis)

	// Infrastructure routes are served at the root for probes and scrapers
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	api := r.Group(cfg.BasePath)
	// an empty or root base path would register the probes twice
	if cfg.BasePath != "" && cfg.BasePath != "/" {
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		api.GET("/health", healthHandler.Health)
		api.GET("/ready", healthHandler.Ready)
	}
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.DB == nil {
		cfg.Logger.Warn("Router started without a database, API routes disabled")
		return r
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	settingsRepo := repository.NewSettingsRepository(cfg.DB)
	boardRepo := repository.NewBoardRepository(cfg.DB)
	columnRepo := repository.NewColumnRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	attachmentRepo := repository.NewAttachmentRepository(cfg.DB)

	tx := database.NewTransactor(cfg.DB, database.TxOptions{Serializable: cfg.SerializableReorders})

	var blacklist auth.Blacklist
	if cfg.Redis != nil {
		blacklist = auth.NewRedisBlacklist(cfg.Redis)
	}
	var events service.EventPublisher
	if cfg.Hub != nil {
		events = cfg.Hub
	}
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL)

	// Initialize services
	authService := service.NewAuthService(tx, userRepo, settingsRepo, tokens, blacklist, cfg.JWT.BcryptCost, cfg.S3Client, cfg.Logger)
	userService := service.NewUserService(tx, userRepo, settingsRepo, boardRepo, columnRepo, taskRepo, attachmentRepo, cfg.S3Client, cfg.UploadTTL, cfg.Logger)
	boardService := service.NewBoardService(tx, boardRepo, columnRepo, taskRepo, events, cfg.Metrics, cfg.Logger)
	columnService := service.NewColumnService(tx, boardRepo, columnRepo, taskRepo, events, cfg.Metrics, cfg.Logger)
	taskService := service.NewTaskService(tx, boardRepo, columnRepo, taskRepo, events, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	boardHandler := handler.NewBoardHandler(boardService)
	columnHandler := handler.NewColumnHandler(columnService)
	taskHandler := handler.NewTaskHandler(taskService)

	authMiddleware := middleware.AuthWithValidator(authService)

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", authMiddleware, authHandler.Logout)
		authRoutes.PUT("/password", authMiddleware, authHandler.ChangePassword)
	}

	protected := api.Group("")
	protected.Use(authMiddleware)

	users := protected.Group("/users/me")
	{
		users.GET("", userHandler.GetMe)
		users.PUT("", userHandler.UpdateMe)
		users.DELETE("", userHandler.DeleteMe)
		users.GET("/settings", userHandler.GetSettings)
		users.PUT("/settings", userHandler.UpdateSettings)
		users.POST("/profile-image/presigned-url", userHandler.GenerateProfileImageURL)
		users.PUT("/profile-image", userHandler.ConfirmProfileImage)
		users.POST("/profile-image/upload", userHandler.UploadProfileImage)
		users.DELETE("/profile-image", userHandler.DeleteProfileImage)
	}

	boards := protected.Group("/boards")
	{
		boards.POST("", boardHandler.CreateBoard)
		boards.GET("", boardHandler.ListBoards)
		boards.GET("/:boardId", boardHandler.GetBoard)
		boards.PUT("/:boardId", boardHandler.UpdateBoard)
		boards.DELETE("/:boardId", boardHandler.DeleteBoard)
		boards.POST("/:boardId/columns", columnHandler.CreateColumn)
		boards.GET("/:boardId/columns", columnHandler.ListColumns)
	}

	columns := protected.Group("/columns")
	{
		columns.PUT("/:columnId", columnHandler.UpdateColumn)
		columns.DELETE("/:columnId", columnHandler.DeleteColumn)
		columns.PUT("/:columnId/move", columnHandler.MoveColumn)
		columns.POST("/:columnId/tasks", taskHandler.CreateTask)
		columns.GET("/:columnId/tasks", taskHandler.ListTasks)
	}

	tasks := protected.Group("/tasks")
	{
		tasks.GET("/:taskId", taskHandler.GetTask)
		tasks.PUT("/:taskId", taskHandler.UpdateTask)
		tasks.DELETE("/:taskId", taskHandler.DeleteTask)
		tasks.PUT("/:taskId/move", taskHandler.MoveTask)
	}

	// Live board feed; browsers pass the token as a query parameter
	if cfg.Hub != nil {
		wsHandler := handler.NewWSHandler(boardService, cfg.Hub, cfg.Logger)
		api.GET("/ws/boards/:boardId", middleware.QueryTokenAuth(authService), wsHandler.SubscribeBoard)
	}

	return r
}
