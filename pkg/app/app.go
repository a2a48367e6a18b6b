// Package app 提供应用程序的初始化和配置功能.
package app

import (
	contextPkg "context"
	"fmt"
	"os"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yeisme/docvault/pkg/api"
	appcache "github.com/yeisme/docvault/pkg/cache"
	"github.com/yeisme/docvault/pkg/configs"
	"github.com/yeisme/docvault/pkg/context"
	"github.com/yeisme/docvault/pkg/internal/jobs"
	"github.com/yeisme/docvault/pkg/internal/router"
	"github.com/yeisme/docvault/pkg/internal/storage"
	"github.com/yeisme/docvault/pkg/log"
	"github.com/yeisme/docvault/pkg/metrics"
	"github.com/yeisme/docvault/pkg/middleware"
	"github.com/yeisme/docvault/pkg/scheduler"
	"github.com/yeisme/docvault/pkg/tracing"
)

type App struct {
	Engine    *gin.Engine
	config    *configs.AppConfig
	scheduler *scheduler.Scheduler
}

func NewApp(configPath string) *App {
	ctx := contextPkg.Background()
	engine := gin.New()

	// 初始化配置
	if err := configs.InitConfig(configPath); err != nil {
		fmt.Printf("Error initializing config: %v\n", err)
		os.Exit(1)
	}

	// 初始化追踪
	config := configs.GetConfig()
	if err := tracing.InitTracer(config.Tracing); err != nil {
		fmt.Printf("Error initializing tracing: %v\n", err)
		os.Exit(1)
	}

	// 初始化监控
	if err := metrics.InitMetrics(config.Metrics); err != nil {
		fmt.Printf("Error initializing metrics: %v\n", err)
		os.Exit(1)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		fmt.Printf("Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	context.WithStorageManager(ctx, manager)

	l := log.Logger()
	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	engine.Use(
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(config.Server),
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.StorageMiddleware(manager),
		middleware.AuthMiddleware(config.Auth),
		middleware.RoleMiddleware(),
		gzip.Gzip(gzip.DefaultCompression),
	)

	// KV 可用时为 GET 请求启用响应缓存
	if manager.KV != nil {
		engine.Use(middleware.CacheMiddleware(middleware.DefaultCacheConfig(appcache.NewCache(manager.KV))))
	}

	if config.RateLimit.Enabled {
		engine.Use(middleware.RateLimitMiddleware(config.RateLimit))
	}

	if config.CircuitBreaker.Enabled {
		engine.Use(middleware.CircuitBreakerMiddleware(config.CircuitBreaker))
	}

	if config.Metrics.Enabled {
		_ = metrics.StartMetricsServer(config.Metrics, engine)
	}

	// 定时任务：回收站自动清理
	sched, err := scheduler.NewScheduler()
	if err != nil {
		fmt.Printf("Error initializing scheduler: %v\n", err)
		os.Exit(1)
	}

	engine.Use(middleware.SchedulerMiddleware(sched))

	if err := jobs.RegisterCronJobs(sched, manager); err != nil {
		l.Warn().Err(err).Msg("register cron jobs failed")
	}

	sched.Start()

	// 业务路由与文档
	api.RegisterGroup(engine)
	router.RegisterSwaggerRoute(engine)

	return &App{
		Engine:    engine,
		config:    config,
		scheduler: sched,
	}
}

func (a *App) Run() error {
	defer func() {
		if a.scheduler != nil {
			_ = a.scheduler.Shutdown()
		}
	}()

	return a.Engine.Run(fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port))
}
