package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wellbeing_dashboard/internal/config"
	"wellbeing_dashboard/internal/controller"
	"wellbeing_dashboard/internal/middleware"
	"wellbeing_dashboard/internal/repository"
	"wellbeing_dashboard/internal/service"
	"wellbeing_dashboard/pkg/configwatcher"
	"wellbeing_dashboard/pkg/logger"
	"wellbeing_dashboard/pkg/monitoring"
	"wellbeing_dashboard/pkg/security"
	"wellbeing_dashboard/pkg/tracing"
	"wellbeing_dashboard/web"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Dataset         *repository.DatasetRepository
	services        *services
	limiter         *security.Limiter
	renderLimiter   *security.Limiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	charts    *service.ChartService
	dashboard *service.DashboardService
	render    *service.RenderService
}

type controllers struct {
	dashboard *controller.DashboardController
	page      *controller.PageController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initServices(cfg *config.Config, ds *repository.DatasetRepository) *services {
	s := &services{}
	s.charts = service.NewChartService(ds, cfg.Dashboard.HistogramBins)
	s.dashboard = service.NewDashboardService(s.charts, &cfg.Dashboard)
	s.render = service.NewRenderService()
	return s
}

func (a *App) initControllers(s *services, ds *repository.DatasetRepository) *controllers {
	return &controllers{
		dashboard: controller.NewDashboardController(s.dashboard, s.render),
		page:      controller.NewPageController(s.dashboard),
		health:    controller.NewHealthController(ds),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	if cfg.RateLimit.MaxRequests > 0 && cfg.RateLimit.WindowMinutes > 0 {
		a.limiter = security.NewLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
		router.Use(a.limiter.Middleware())
	}
	if cfg.RateLimit.RenderPerMinute > 0 {
		a.renderLimiter = security.NewLimiter(cfg.RateLimit.RenderPerMinute, time.Minute)
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp 初始化日志、加载数据集并组装服务；数据集无法加载时直接退出
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize dataset storage", zap.Error(err))
	}

	ds, err := storage.LoadDataset(context.Background())
	if err != nil {
		logger.Log.Fatal("Failed to load dataset", zap.Error(err))
	}

	// 监控初始化
	monitoring.Init()
	monitoring.DatasetRows.Set(float64(ds.Rows()))

	app := New(cfg, ds)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.RegisterConfigCallback(logger.SetLevel)

	return app
}

// New 基于已加载的数据集组装路由
func New(cfg *config.Config, ds *repository.DatasetRepository) *App {
	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	app := &App{
		Config:  cfg,
		Dataset: ds,
	}

	services := app.initServices(cfg, ds)
	app.services = services
	controllers := app.initControllers(services, ds)

	router := gin.New()
	app.Router = router

	tmpl, err := web.Templates()
	if err != nil {
		logger.Log.Fatal("Failed to parse page templates", zap.Error(err))
	}
	router.SetHTMLTemplate(tmpl)

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	return app
}

func (a *App) watchConfig(ctx context.Context) {
	err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, func(cfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(cfg)
		}
	})
	if err != nil {
		logger.Log.Warn("Config watcher disabled", zap.Error(err))
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go a.watchConfig(ctx)
	for _, l := range []*security.Limiter{a.limiter, a.renderLimiter} {
		if l != nil {
			go l.Cleanup(ctx)
		}
	}

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stopWatch()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
}
