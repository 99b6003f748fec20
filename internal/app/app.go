package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"survey_backend/internal/config"
	"survey_backend/internal/controller"
	"survey_backend/internal/repository"
	"survey_backend/internal/service"
	"survey_backend/pkg/database"
	"survey_backend/pkg/logger"
	"survey_backend/pkg/monitoring"
	"survey_backend/pkg/security"
	"survey_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	creator     *repository.CreatorRepository
	interviewee *repository.IntervieweeRepository
	survey      *repository.SurveyRepository
	item        *repository.ItemRepository
	question    *repository.QuestionRepository
	option      *repository.OptionRepository
	section     *repository.SectionRepository
	precond     *repository.PreconditionRepository
	submission  *repository.SubmissionRepository
	answer      *repository.AnswerRepository
	sent        *repository.SurveySentRepository
}

type services struct {
	auth        *service.AuthService
	survey      *service.SurveyService
	item        *service.ItemService
	question    *service.QuestionService
	section     *service.SectionService
	precond     *service.PreconditionService
	submission  *service.SubmissionService
	answer      *service.AnswerService
	result      *service.ResultService
	export      *service.ExportService
	interviewee *service.IntervieweeService
	mail        *service.MailService
}

type controllers struct {
	auth        *controller.AuthController
	survey      *controller.SurveyController
	item        *controller.ItemController
	question    *controller.QuestionController
	section     *controller.SectionController
	precond     *controller.PreconditionController
	submission  *controller.SubmissionController
	result      *controller.ResultController
	interviewee *controller.IntervieweeController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		creator:     repository.NewCreatorRepository(db),
		interviewee: repository.NewIntervieweeRepository(db),
		survey:      repository.NewSurveyRepository(db),
		item:        repository.NewItemRepository(db),
		question:    repository.NewQuestionRepository(db),
		option:      repository.NewOptionRepository(db),
		section:     repository.NewSectionRepository(db),
		precond:     repository.NewPreconditionRepository(db),
		submission:  repository.NewSubmissionRepository(db),
		answer:      repository.NewAnswerRepository(db),
		sent:        repository.NewSurveySentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	storage, err := service.NewStorageProvider(cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage provider", zap.Error(err))
	}

	s.auth = service.NewAuthService(repos.creator, repos.survey, cfg)
	s.question = service.NewQuestionService(repos.question)
	s.item = service.NewItemService(repos.item, repos.question, repos.option,
		repos.section, repos.precond, repos.survey, db)
	s.section = service.NewSectionService(repos.section, repos.item, repos.question)
	s.precond = service.NewPreconditionService(repos.precond, repos.item, repos.option)
	s.survey = service.NewSurveyService(repos.survey, s.item, s.section, repos.sent, repos.submission)
	s.submission = service.NewSubmissionService(repos.submission, repos.survey, repos.sent, repos.answer)
	s.answer = service.NewAnswerService(repos.answer, repos.question, repos.item,
		repos.submission, repos.survey)
	s.result = service.NewResultService(repos.answer, repos.question, repos.item,
		repos.option, repos.submission, repos.sent, rdb)
	s.export = service.NewExportService(repos.survey, repos.question, repos.answer,
		repos.option, s.result, storage)
	s.interviewee = service.NewIntervieweeService(repos.interviewee, repos.creator)
	s.mail = service.NewMailService(repos.sent, repos.survey, repos.interviewee, repos.creator, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		survey:      controller.NewSurveyController(s.survey, s.mail),
		item:        controller.NewItemController(s.item),
		question:    controller.NewQuestionController(s.question),
		section:     controller.NewSectionController(s.section, s.item),
		precond:     controller.NewPreconditionController(s.precond),
		submission:  controller.NewSubmissionController(s.submission, s.answer),
		result:      controller.NewResultController(s.result, s.export),
		interviewee: controller.NewIntervieweeController(s.interviewee, s.mail),
		health:      controller.NewHealthController(db),
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

// ApplyConfig 配置热更新回调，仅下发运行期可调整的部分
func (a *App) ApplyConfig(cfg *config.Config) {
	if a.services != nil && a.services.mail != nil {
		a.services.mail.ApplyConfig(cfg)
	}
	logger.Log.Info("Runtime configuration reloaded")
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认不迁移，除非显式带 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migration completed")
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, db, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("survey-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/exports", cfg.Storage.LocalPath)
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

	log.Println("Server exiting")
}
