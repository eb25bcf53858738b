package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schoolhub_backend/internal/config"
	"schoolhub_backend/internal/controller"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/pkg/database"
	"schoolhub_backend/pkg/logger"
	"schoolhub_backend/pkg/monitoring"
	"schoolhub_backend/pkg/security"
	"schoolhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user           *repository.UserRepository
	school         *repository.SchoolRepository
	studentAccount *repository.StudentAccountRepository
	quiz           *repository.QuizRepository
	report         *repository.ReportRepository
	assignment     *repository.AssignmentRepository
	submission     *repository.SubmissionRepository
	announcement   *repository.AnnouncementRepository
}

type services struct {
	auth            *service.AuthService
	storage         *service.StorageService
	studentAccount  *service.StudentAccountService
	catalog         *service.CatalogService
	quizSession     *service.QuizSessionService
	quizAdmin       *service.QuizAdminService
	report          *service.ReportService
	assignment      *service.AssignmentService
	assignmentAdmin *service.AssignmentAdminService
	schoolAdmin     *service.SchoolAdminService
	announcement    *service.AnnouncementService
}

type controllers struct {
	auth            *controller.AuthController
	studentAccount  *controller.StudentAccountController
	catalog         *controller.CatalogController
	quizSession     *controller.QuizSessionController
	quiz            *controller.QuizController
	report          *controller.ReportController
	assignment      *controller.AssignmentController
	assignmentAdmin *controller.AssignmentAdminController
	schoolAdmin     *controller.SchoolAdminController
	announcement    *controller.AnnouncementController
	health          *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig swaps in a freshly loaded config and notifies the
// registered callbacks. Connection settings (DB, Redis) need a
// restart; callbacks cover the hot-reloadable parts.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	logger.Log.Info("configuration reloaded")
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		user:           repository.NewUserRepository(db),
		school:         repository.NewSchoolRepository(db),
		studentAccount: repository.NewStudentAccountRepository(db),
		quiz:           repository.NewQuizRepository(db, rdb, cfg.Catalog.CacheTTL),
		report:         repository.NewReportRepository(db),
		assignment:     repository.NewAssignmentRepository(db),
		submission:     repository.NewSubmissionRepository(db),
		announcement:   repository.NewAnnouncementRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.studentAccount = service.NewStudentAccountService(repos.studentAccount)
	s.catalog = service.NewCatalogService(repos.quiz)
	s.quizSession = service.NewQuizSessionService(s.catalog, repos.report)
	s.quizAdmin = service.NewQuizAdminService(repos.quiz)
	s.report = service.NewReportService(repos.report)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.submission)
	s.assignmentAdmin = service.NewAssignmentAdminService(repos.assignment, repos.submission)
	s.schoolAdmin = service.NewSchoolAdminService(repos.school, repos.studentAccount)
	s.announcement = service.NewAnnouncementService(repos.announcement)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:            controller.NewAuthController(s.auth),
		studentAccount:  controller.NewStudentAccountController(s.studentAccount),
		catalog:         controller.NewCatalogController(s.catalog, s.studentAccount),
		quizSession:     controller.NewQuizSessionController(s.quizSession, s.studentAccount),
		quiz:            controller.NewQuizController(s.quizAdmin),
		report:          controller.NewReportController(s.report, s.studentAccount),
		assignment:      controller.NewAssignmentController(s.assignment, s.studentAccount, s.storage),
		assignmentAdmin: controller.NewAssignmentAdminController(s.assignmentAdmin),
		schoolAdmin:     controller.NewSchoolAdminController(s.schoolAdmin),
		announcement:    controller.NewAnnouncementController(s.announcement, s.studentAccount),
		health:          controller.NewHealthController(db),
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

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	// release 模式下只在显式要求时执行迁移
	db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate || cfg.Server.Mode != "release")
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("schoolhub-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		// shut down with the server so in-flight spans are flushed
		app.tracerProvider = tp
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

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
