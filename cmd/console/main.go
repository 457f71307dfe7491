package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/apiclient"
	"shop_backoffice/internal/cache"
	"shop_backoffice/internal/config"
	"shop_backoffice/internal/database"
	"shop_backoffice/internal/webui"
)

func main() {
	config.Load()
	cfg := config.LoadConsole()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rdb, err := database.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		log.Printf("⚠️ Redis unavailable, login attempts are not limited: %v", err)
	}
	var limiter *cache.LoginLimiter
	if rdb != nil {
		limiter = cache.NewLoginLimiter(rdb)
	}

	var opts []apiclient.Option
	if cfg.ServiceJWTSecret != "" {
		opts = append(opts, apiclient.WithServiceToken(cfg.ServiceJWTSecret))
	}
	api := apiclient.New(cfg.APIBaseURL, opts...)

	console := webui.New(api, webui.Options{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		SessionSecret: cfg.SessionSecret,
		SecureCookie:  cfg.SecureCookie,
		Limiter:       limiter,
	})

	r := gin.Default()
	if err := console.Register(r); err != nil {
		log.Fatalf("❌ Console setup failed: %v", err)
	}

	log.Printf("🚀 Admin console on port %s, API at %s", cfg.Port, cfg.APIBaseURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Console stopped: %v", err)
	}
}
