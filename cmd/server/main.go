package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/cache"
	"shop_backoffice/internal/config"
	"shop_backoffice/internal/database"
	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/repository"
	"shop_backoffice/internal/routes"
	"shop_backoffice/internal/seed"
	"shop_backoffice/internal/services"
	"shop_backoffice/internal/utils"
)

func main() {
	config.Load()
	cfg := config.LoadAPI()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore := openStore(cfg)
	defer closeStore()

	if cfg.SeedFile != "" {
		if err := seed.LoadFile(ctx, store, cfg.SeedFile); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
	}

	rdb, err := database.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		log.Printf("⚠️ Redis unavailable, list caching disabled: %v", err)
	}
	es, err := database.ConnectElastic(cfg.Elastic)
	if err != nil {
		log.Printf("⚠️ Elasticsearch unavailable, search falls back to the store: %v", err)
	}
	mc, err := database.ConnectMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Printf("⚠️ MinIO unavailable, image upload disabled: %v", err)
	}

	mailer := utils.NewMailer(cfg.SMTP)
	if mailer == nil {
		log.Println("⚠️ SMTP not configured, order status e-mails disabled")
	}

	search := services.NewSearch(es)
	if search.Enabled() {
		reindexCtx, cancelReindex := context.WithTimeout(context.Background(), 2*time.Minute)
		n, err := search.Reindex(reindexCtx, store)
		cancelReindex()
		if err != nil {
			log.Printf("⚠️ Reindex stopped after %d documents: %v", n, err)
		} else {
			log.Printf("🔎 Indexed %d stored documents", n)
		}
	}

	deps := handlers.Deps{
		Store:   store,
		Cache:   cache.New(rdb),
		Search:  search,
		Images:  services.NewImages(mc, cfg.MinIO.Bucket, cfg.MinIO.Endpoint, cfg.MinIO.UseSSL),
		Mailer:  mailer,
		Auditor: utils.NewAuditor(store),
	}

	r := gin.Default()
	routes.RegisterRoutes(r, deps, routes.Options{
		CORSOrigins:      cfg.CORSOrigins,
		ServiceJWTSecret: cfg.ServiceJWTSecret,
	})

	log.Println("🚀 Back-office API listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}

// openStore picks the repository named by STORE.
func openStore(cfg config.API) (repository.Store, func()) {
	switch cfg.Store {
	case "scylla":
		manager, err := database.InitScylla(cfg.Scylla)
		if err != nil {
			log.Fatalf("❌ ScyllaDB init failed: %v", err)
		}
		catalog, users, orders, err := manager.Sessions()
		if err != nil {
			log.Fatalf("❌ ScyllaDB sessions: %v", err)
		}
		log.Println("✅ Using the ScyllaDB store")
		return repository.NewScylla(catalog, users, orders), manager.Close
	case "memory":
		log.Println("⚠️ Using the in-memory store, data is lost on restart")
		return repository.NewMemory(), func() {}
	default:
		log.Fatalf("❌ Unknown STORE %q (expected scylla or memory)", cfg.Store)
		return nil, nil
	}
}
