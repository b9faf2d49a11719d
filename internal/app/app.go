package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"python101_web/internal/client"
	"python101_web/internal/config"
	"python101_web/internal/controller"
	"python101_web/internal/modal"
	"python101_web/internal/model"
	"python101_web/internal/service"
	"python101_web/internal/session"
	"python101_web/internal/view"
	"python101_web/internal/workspace"
	"python101_web/pkg/database"
	"python101_web/pkg/logger"
	"python101_web/pkg/monitoring"
	"python101_web/pkg/security"
	"python101_web/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Redis           *redis.Client
	Client          *client.Client
	Sessions        *session.Store
	Modals          *modal.Service
	Workspaces      *workspace.Registry
	sweeper         *workspace.Sweeper
	tracer          *sdktrace.TracerProvider
	stop            chan struct{}
	configCallbacks []func(*config.Config)
}

type services struct {
	auth    *service.AuthService
	content *service.ContentService
	admin   *service.AdminService
}

type controllers struct {
	pages    *controller.PageController
	tutorial *controller.TutorialController
	question *controller.QuestionController
	auth     *controller.AuthController
	modal    *controller.ModalController
	admin    *controller.AdminController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 热加载时调用：只更新可以在运行中调整的配置项
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initStorage(cfg *config.Config) (session.Storage, error) {
	if cfg.Session.Storage == config.SessionStorageMemory {
		logger.Log.Warn("Using in-memory session storage; sessions are lost on restart")
		return session.NewMemoryStorage(), nil
	}
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.Redis = rdb
	return session.NewRedisStorage(rdb), nil
}

func (a *App) initServices() *services {
	return &services{
		auth:    service.NewAuthService(a.Client, a.Sessions),
		content: service.NewContentService(a.Client),
		admin:   service.NewAdminService(a.Client),
	}
}

func (a *App) initControllers(s *services) *controllers {
	pages := controller.NewPages(a.Modals)
	return &controllers{
		pages:    controller.NewPageController(pages, s.content),
		tutorial: controller.NewTutorialController(pages, s.content),
		question: controller.NewQuestionController(pages, s.content, a.Workspaces),
		auth:     controller.NewAuthController(pages, s.auth),
		modal:    controller.NewModalController(a.Modals),
		admin:    controller.NewAdminController(pages, s.admin),
		health:   controller.NewHealthController(a.Sessions),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window, a.stop))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerConfigCallbacks() {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		a.Client.SetTimeout(cfg.API.Timeout())
		a.Workspaces.SetExecuteTimeLimit(cfg.API.ExecuteTimeLimit)
		a.Workspaces.SetCelebrationWindow(cfg.Workspace.CelebrationWindow())
		a.Workspaces.SetSystemPrompt(cfg.Judge.SystemPrompt)
		logger.Log.Info("Runtime config applied",
			zap.Duration("api_timeout", cfg.API.Timeout()),
			zap.Float64("execute_time_limit", cfg.API.ExecuteTimeLimit),
			zap.Duration("celebration_window", cfg.Workspace.CelebrationWindow()),
		)
	})
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	app := &App{
		Config: cfg,
		stop:   make(chan struct{}),
	}

	apiClient, err := client.NewClient(cfg.API.BaseURL, cfg.API.Timeout())
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	app.Client = apiClient

	storage, err := app.initStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("init session storage: %w", err)
	}
	app.Sessions = session.NewStore(storage, cfg.Session.TTL())
	app.Modals = modal.NewService(storage, cfg.Session.TTL())

	app.Workspaces = workspace.NewRegistry(apiClient, app.Sessions, app.Modals, workspace.Options{
		CelebrationWindow: cfg.Workspace.CelebrationWindow(),
		IdleTimeout:       cfg.Workspace.IdleTimeout(),
		ExecuteTimeLimit:  cfg.API.ExecuteTimeLimit,
		SystemPrompt:      cfg.Judge.SystemPrompt,
	})
	// 退出登录时销毁该会话的题库工作区
	app.Sessions.Subscribe(func(sid string, user *model.User) {
		if user == nil {
			app.Workspaces.Release(sid)
		}
	})

	app.sweeper, err = workspace.NewSweeper(app.Workspaces, cfg.Workspace.SweepInterval())
	if err != nil {
		return nil, fmt.Errorf("init workspace sweeper: %w", err)
	}

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("python101-web", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing, continuing without it", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.HTMLRender = renderer
	app.Router = router

	app.setupMiddlewares(router, cfg)

	services := app.initServices()
	controllers := app.initControllers(services)
	codec := session.NewCookieCodec(cfg.Session.Secret, cfg.Session.TTL())
	app.registerRoutes(router, controllers, codec, cfg)

	app.registerConfigCallbacks()

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	a.sweeper.Start()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close 停止后台任务并释放连接
func (a *App) Close(ctx context.Context) {
	select {
	case <-a.stop:
	default:
		close(a.stop)
	}
	if a.sweeper != nil {
		a.sweeper.Stop()
	}
	if a.Workspaces != nil {
		a.Workspaces.Close()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Warn("Failed to close redis", zap.Error(err))
		}
	}
	_ = logger.Log.Sync()
}
