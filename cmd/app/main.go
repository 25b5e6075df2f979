package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"shrinklink/internal/handler"
	"shrinklink/internal/i18n"
	"shrinklink/internal/middleware"
	"shrinklink/internal/ratelimit"
	"shrinklink/internal/reachability"
	"shrinklink/internal/repository"
	"shrinklink/internal/service"
	"shrinklink/internal/store"
	"shrinklink/pkg/logging"
)

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}
}

func newLimiter() ratelimit.Limiter {
	limit := viper.GetInt("ratelimit.limit")
	window := time.Duration(viper.GetInt("ratelimit.window_seconds")) * time.Second
	if viper.GetString("ratelimit.backend") == "redis" {
		return ratelimit.NewRedisLimiter(repository.RedisPool, limit, window)
	}
	return ratelimit.NewMemoryLimiter(limit, window)
}

func startServer(r *gin.Engine) {
	addr := viper.GetString("server.addr")
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logging.Logger.Info("Server is running on " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := repository.RedisPool.Close(); err != nil {
		logging.Logger.Warn("Redis pool close failed", zap.Error(err))
	}

	logging.Logger.Info("Server exiting")
}

func main() {
	initConfig()
	logging.InitLoggerFromConfig()

	logging.Logger.Info("Application started")

	repository.InitDB(logging.Logger, logging.AtomicLevel)
	repository.InitRedis()

	bundle, err := i18n.InitI18n([]string{
		"./i18n/en.toml",
		"./i18n/zh.toml",
	}, "en")
	if err != nil {
		panic(err)
	}

	linkStore := store.NewGormLinkStore(repository.DB)
	groupStore := store.NewGormGroupStore(repository.DB)

	linkSvc := service.NewLinkService(linkStore, groupStore, newLimiter(), reachability.NewChecker(), repository.RedisPool)
	groupSvc := service.NewGroupService(groupStore, linkStore, linkSvc)

	baseURL := viper.GetString("server.base_url")
	jwtSecret := []byte(viper.GetString("auth.jwt_secret"))

	linkHandler := handler.NewLinkHandler(linkSvc, baseURL)
	groupHandler := handler.NewGroupHandler(groupSvc)
	redirectHandler := handler.NewRedirectHandler(linkSvc)

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.GlobalErrorMiddleware())
	r.Use(middleware.ZapGinLogger(logging.Logger))
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.I18nMiddleware(bundle))

	api := r.Group("/api")
	{
		api.POST("/links", middleware.OptionalAuth(jwtSecret), linkHandler.Create)

		owned := api.Group("", middleware.RequireAuth(jwtSecret))
		{
			owned.GET("/links", linkHandler.List)
			owned.PATCH("/links/:id", linkHandler.Update)
			owned.DELETE("/links/:id", linkHandler.Delete)
			owned.GET("/links/:id/qr", linkHandler.QR)

			owned.POST("/groups", groupHandler.Create)
			owned.GET("/groups", groupHandler.List)
			owned.DELETE("/groups/:id", groupHandler.Delete)
		}
	}

	// Catch-all for short codes: any GET outside /api falls through to the
	// redirect handler.
	r.Use(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		redirectHandler.Redirect(c)
	})

	c := cron.New()

	flushSpec := viper.GetString("clicks.flush_cron")
	if flushSpec == "" {
		flushSpec = "*/5 * * * *"
	}
	_, addErr := c.AddFunc(flushSpec, func() {
		if err := linkSvc.FlushClicks(); err != nil {
			logging.Logger.Error("Click flush failed", zap.Error(err))
		}
	})
	if addErr != nil {
		logging.Logger.Fatal("Failed to schedule click flush", zap.Error(addErr))
	}

	c.Start()

	startServer(r)
}
