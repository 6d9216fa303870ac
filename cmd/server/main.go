package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/event-organizer/backend/config"
	"github.com/event-organizer/backend/internal/access"
	"github.com/event-organizer/backend/internal/auth"
	"github.com/event-organizer/backend/internal/categories"
	"github.com/event-organizer/backend/internal/events"
	"github.com/event-organizer/backend/internal/locations"
	"github.com/event-organizer/backend/internal/middleware"
	"github.com/event-organizer/backend/internal/notifications"
	"github.com/event-organizer/backend/internal/requests"
	"github.com/event-organizer/backend/pkg/database"
	"github.com/event-organizer/backend/pkg/queue"
	"github.com/event-organizer/backend/pkg/redis"
)

const roleCacheTTL = 5 * time.Minute

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	userRepo := auth.NewRepository(pool)
	resolver := auth.NewResolver(userRepo, rdb.Client, roleCacheTTL, logger)
	authHandler := auth.NewHandler(userRepo, jwtService, resolver, logger)

	eventRepo := events.NewRepository(pool)
	eventHandler := events.NewHandler(eventRepo)
	locationRepo := locations.NewRepository(pool)
	locationHandler := locations.NewHandler(locationRepo)
	categoryRepo := categories.NewRepository(pool)
	categoryHandler := categories.NewHandler(categoryRepo)

	jobQueue := queue.NewQueue(rdb.Client, logger)
	requestRepo := requests.NewRepository(pool, rdb.Client)
	engine := requests.NewEngine(pool, jobQueue, logger)
	requestHandler := requests.NewHandler(requestRepo, engine, eventRepo, locationRepo, categoryRepo, logger)

	notificationRepo := notifications.NewRepository(pool)
	notificationHandler := notifications.NewHandler(notificationRepo, logger)

	router := gin.New()
	router.Use(middleware.Logger(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Unauthenticated surface: registration, login, the public event feed.
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.GET("/public/events", eventHandler.ListPublic)

	authed := router.Group("/", middleware.JWT(jwtService))
	authed.GET("/auth/role", authHandler.Role)

	ev := authed.Group("/events")
	ev.GET("", middleware.Require(resolver, access.ResourceEvents, access.ActionRead), eventHandler.List)
	ev.GET("/:id", middleware.Require(resolver, access.ResourceEvents, access.ActionRead), eventHandler.GetByID)
	ev.POST("", middleware.Require(resolver, access.ResourceEvents, access.ActionWrite), eventHandler.Create)
	ev.PUT("/:id", middleware.Require(resolver, access.ResourceEvents, access.ActionWrite), eventHandler.Update)
	ev.DELETE("/:id", middleware.Require(resolver, access.ResourceEvents, access.ActionWrite), eventHandler.Delete)

	loc := authed.Group("/locations")
	loc.GET("", middleware.Require(resolver, access.ResourceLocations, access.ActionRead), locationHandler.List)
	loc.GET("/:id", middleware.Require(resolver, access.ResourceLocations, access.ActionRead), locationHandler.GetByID)
	loc.POST("", middleware.Require(resolver, access.ResourceLocations, access.ActionWrite), locationHandler.Create)
	loc.PUT("/:id", middleware.Require(resolver, access.ResourceLocations, access.ActionWrite), locationHandler.Update)
	loc.DELETE("/:id", middleware.Require(resolver, access.ResourceLocations, access.ActionWrite), locationHandler.Delete)

	cat := authed.Group("/categories")
	cat.GET("", middleware.Require(resolver, access.ResourceCategories, access.ActionRead), categoryHandler.List)
	cat.GET("/:id", middleware.Require(resolver, access.ResourceCategories, access.ActionRead), categoryHandler.GetByID)
	cat.POST("", middleware.Require(resolver, access.ResourceCategories, access.ActionWrite), categoryHandler.Create)
	cat.PUT("/:id", middleware.Require(resolver, access.ResourceCategories, access.ActionWrite), categoryHandler.Update)
	cat.DELETE("/:id", middleware.Require(resolver, access.ResourceCategories, access.ActionWrite), categoryHandler.Delete)

	req := authed.Group("/requests")
	req.POST("", middleware.Require(resolver, access.ResourceRequests, access.ActionSubmit), requestHandler.Submit)
	req.GET("", middleware.Require(resolver, access.ResourceRequests, access.ActionRead), requestHandler.List)
	req.GET("/:id", middleware.Require(resolver, access.ResourceRequests, access.ActionRead), requestHandler.GetByID)
	req.GET("/:id/diff", middleware.Require(resolver, access.ResourceRequests, access.ActionRead), requestHandler.Diff)
	req.PATCH("/:id", middleware.Require(resolver, access.ResourceRequests, access.ActionReview), requestHandler.Review)

	authed.GET("/notifications", middleware.Require(resolver, access.ResourceNotifications, access.ActionRead), notificationHandler.List)

	users := authed.Group("/users")
	users.GET("", middleware.Require(resolver, access.ResourceUsers, access.ActionRead), authHandler.List)
	users.PATCH("/:id/role", middleware.Require(resolver, access.ResourceUsers, access.ActionWrite), authHandler.UpdateRole)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
