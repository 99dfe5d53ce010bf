package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"hedgefront_backend/internal/config"
	"hedgefront_backend/internal/controller"
	"hedgefront_backend/internal/repository"
	"hedgefront_backend/internal/service"
	"hedgefront_backend/pkg/database"
	"hedgefront_backend/pkg/logger"
	"hedgefront_backend/pkg/monitoring"
	"hedgefront_backend/pkg/security"
	"hedgefront_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configMu        sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	profile      *repository.ProfileRepository
	subscription *repository.SubscriptionRepository
	world        *repository.WorldRepository
	lesson       *repository.LessonRepository
	progress     *repository.ProgressRepository
	submission   *repository.SubmissionRepository
	comment      *repository.CommentRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	access      *service.AccessService
	course      *service.CourseService
	progression *service.ProgressionService
	review      *service.ReviewService
	user        *service.UserService
	admin       *service.AdminService
	billing     *service.BillingService
}

type controllers struct {
	auth       *controller.AuthController
	course     *controller.CourseController
	progress   *controller.ProgressController
	submission *controller.SubmissionController
	user       *controller.UserController
	admin      *controller.AdminController
	billing    *controller.BillingController
	health     *controller.HealthController
}

// RegisterConfigCallback adds a listener invoked whenever the config file is
// reloaded at runtime.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig swaps the active config and notifies listeners.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.configMu.Lock()
	a.Config = cfg
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.configMu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		profile:      repository.NewProfileRepository(db),
		subscription: repository.NewSubscriptionRepository(db),
		world:        repository.NewWorldRepository(db),
		lesson:       repository.NewLessonRepository(db),
		progress:     repository.NewProgressRepository(db),
		submission:   repository.NewSubmissionRepository(db),
		comment:      repository.NewCommentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(db, repos.user, cfg)
	s.access = service.NewAccessService(repos.world, repos.lesson, repos.progress, repos.submission, repos.subscription)
	s.course = service.NewCourseService(repos.world, repos.lesson, repos.progress, repos.comment, repos.user, repos.profile, s.access, rdb)
	s.progression = service.NewProgressionService(db)
	s.review = service.NewReviewService(db, repos.submission, repos.lesson, s.progression)
	s.user = service.NewUserService(repos.user, repos.profile, rdb)
	s.admin = service.NewAdminService(repos.user, repos.subscription, repos.submission, repos.world, repos.lesson, s.course, s.storage)
	s.billing = service.NewBillingService(repos.subscription)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		course:     controller.NewCourseController(s.course),
		progress:   controller.NewProgressController(s.progression),
		submission: controller.NewSubmissionController(s.review, s.storage),
		user:       controller.NewUserController(s.user),
		admin:      controller.NewAdminController(s.admin, s.review),
		billing:    controller.NewBillingController(s.billing, a.Config),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
		log.Fatalf("Failed to initialize services: %v", err)
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("hedgefront-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
