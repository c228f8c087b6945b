package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Laustrup/go-gig-booking/internal/api"
	"github.com/Laustrup/go-gig-booking/internal/api/handler"
	"github.com/Laustrup/go-gig-booking/internal/api/middleware"
	"github.com/Laustrup/go-gig-booking/internal/application"
	"github.com/Laustrup/go-gig-booking/internal/config"
	"github.com/Laustrup/go-gig-booking/internal/infrastructure/postgres"
	redisinfra "github.com/Laustrup/go-gig-booking/internal/infrastructure/redis"
	"github.com/Laustrup/go-gig-booking/internal/pkg/logger"
	"github.com/Laustrup/go-gig-booking/internal/pkg/metrics"
	"github.com/Laustrup/go-gig-booking/internal/worker"
)

func main() {
	// .env があれば読み込む（本番環境では環境変数を直接使用）
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	m := metrics.Init()

	// DB接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("DB接続エラー", zap.Error(err))
	}
	defer db.Close()

	// マイグレーション実行
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Fatal("マイグレーションエラー", zap.Error(err))
	}

	// Redis接続
	redisClient, err := redisinfra.NewClient(&redisinfra.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("Redis接続エラー", zap.Error(err))
	}
	defer redisClient.Close()

	lockManager := redisinfra.NewLockManager(redisClient)
	windowCache := redisinfra.NewWindowCache(redisClient)

	// リポジトリとサービス初期化
	eventRepo := postgres.NewEventRepository(db)
	txManager := postgres.NewTxManager(db)

	eventService := application.NewEventService(txManager, eventRepo, lockManager, windowCache, m)
	scheduleService := application.NewScheduleService(txManager, eventRepo, lockManager, windowCache, m)
	requestService := application.NewRequestService(txManager, eventRepo, lockManager, windowCache, m)
	participationService := application.NewParticipationService(txManager, eventRepo, lockManager, windowCache, m)

	eventHandler := handler.NewEventHandler(eventService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	requestHandler := handler.NewRequestHandler(requestService)
	participationHandler := handler.NewParticipationHandler(participationService)
	healthHandler := handler.NewHealthHandler()

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)
	e.Use(middleware.PrometheusMiddleware(m))

	e.GET("/health", healthHandler.Check)
	e.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{}),
	), middleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")
	v1.POST("/events", eventHandler.Create)
	v1.GET("/events", eventHandler.List)
	v1.GET("/events/:id", eventHandler.GetByID)
	v1.PUT("/events/:id", eventHandler.Update)
	v1.DELETE("/events/:id", eventHandler.Delete)
	v1.GET("/events/:id/window", eventHandler.GetWindow)
	v1.PUT("/events/:id/venue", eventHandler.SetVenue)
	v1.POST("/events/:id/cancellation", eventHandler.ChangeCancelledStatus)

	v1.POST("/events/:id/gigs", scheduleHandler.AddGigs)
	v1.DELETE("/events/:id/gigs", scheduleHandler.RemoveGigs)
	v1.PUT("/events/:id/gigs/:gigId", scheduleHandler.RescheduleGig)

	v1.GET("/events/:id/requests", requestHandler.List)
	v1.POST("/events/:id/requests/:requestId/accept", requestHandler.Accept)
	v1.POST("/events/:id/requests/:requestId/decline", requestHandler.Decline)
	v1.GET("/events/:id/venue-approval", requestHandler.VenueApproval)

	v1.POST("/events/:id/participations", participationHandler.Add)
	v1.PUT("/events/:id/participations/:participantId", participationHandler.Set)
	v1.DELETE("/events/:id/participations/:participantId", participationHandler.Remove)

	// 放置された承認チケットの自動拒否ワーカー
	cleanerCtx, cleanerCancel := context.WithCancel(context.Background())
	cleaner := worker.NewStaleRequestCleaner(
		requestService,
		eventRepo,
		m,
		cfg.Worker.CleanupInterval,
		cfg.Worker.RequestStaleDuration,
	)
	go cleaner.Start(cleanerCtx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()
	logger.Info("サーバー起動", zap.String("port", cfg.Server.Port))

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	cleanerCancel()
	cleaner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
