package app

import (
	"adhyeta_backend/internal/config"
	"adhyeta_backend/internal/controller"
	"adhyeta_backend/internal/repository"
	"adhyeta_backend/internal/service"
	"adhyeta_backend/pkg/database"
	"adhyeta_backend/pkg/logger"
	"adhyeta_backend/pkg/monitoring"
	"adhyeta_backend/pkg/security"
	"adhyeta_backend/pkg/tracing"
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user      *repository.UserRepository
	otp       *repository.OTPRepository
	course    *repository.CourseRepository
	progress  *repository.ProgressRepository
	quiz      *repository.QuizRepository
	plan      *repository.PlanRepository
	assistant *repository.AssistantRepository
	catalog   *repository.CatalogRepository
}

type services struct {
	auth      *service.AuthService
	learning  *service.LearningService
	seed      *service.SeedService
	quiz      *service.QuizService
	planner   *service.PlannerService
	assistant *service.AssistantService
	catalog   *service.CatalogService
	storage   *service.StorageService
}

type controllers struct {
	auth      *controller.AuthController
	learning  *controller.LearningController
	quiz      *controller.QuizController
	plan      *controller.PlanController
	assistant *controller.AssistantController
	catalog   *controller.CatalogController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		otp:       repository.NewOTPRepository(db),
		course:    repository.NewCourseRepository(db),
		progress:  repository.NewProgressRepository(db),
		quiz:      repository.NewQuizRepository(db),
		plan:      repository.NewPlanRepository(db),
		assistant: repository.NewAssistantRepository(db),
		catalog:   repository.NewCatalogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &services{
		auth:      service.NewAuthService(repos.user, repos.otp, rdb, cfg),
		learning:  service.NewLearningService(repos.course, repos.progress),
		seed:      service.NewSeedService(repos.course, repos.quiz),
		quiz:      service.NewQuizService(repos.quiz, repos.course, repos.progress, rng),
		planner:   service.NewPlannerService(repos.plan, repos.course, repos.progress),
		assistant: service.NewAssistantService(repos.assistant, repos.course, repos.progress),
		catalog:   service.NewCatalogService(repos.catalog, rdb),
		storage:   storage,
	}, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		learning:  controller.NewLearningController(s.learning, s.seed),
		quiz:      controller.NewQuizController(s.quiz),
		plan:      controller.NewPlanController(s.planner),
		assistant: controller.NewAssistantController(s.assistant),
		catalog:   controller.NewCatalogController(s.catalog, s.storage),
		health:    controller.NewHealthController(db, rdb),
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
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("adhyeta-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
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
