package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jobnest-app/jobnest-backend/config"
	apihttp "github.com/jobnest-app/jobnest-backend/internal/api/http"
	"github.com/jobnest-app/jobnest-backend/internal/api/http/middleware"
	"github.com/jobnest-app/jobnest-backend/internal/api/http/routes"
	"github.com/jobnest-app/jobnest-backend/internal/applications"
	"github.com/jobnest-app/jobnest-backend/internal/auth"
	"github.com/jobnest-app/jobnest-backend/internal/maintenance"
	"github.com/jobnest-app/jobnest-backend/internal/matching"
	"github.com/jobnest-app/jobnest-backend/internal/storage/postgres"
	"github.com/jobnest-app/jobnest-backend/internal/storage/redisdb"
)

const serviceName = "jobnest-backend"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := postgres.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	rdb, err := redisdb.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb == nil {
		log.Println("REDIS_URL not set, shared-list cache disabled")
	}

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	scorer, err := matching.NewGeminiScorer(ctx, &cfg.Gemini)
	if err != nil {
		log.Fatalf("gemini: %v", err)
	}

	appRepo := applications.NewRepo(pool)
	scheduler := maintenance.New(appRepo, cfg.App.PurgeAfterDays)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer scheduler.Stop()

	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.RequestIDMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-Id"}
	r.Use(cors.New(corsConfig))

	apihttp.NewHealthHandler(serviceName, cfg.App.Version, pool).RegisterRoutes(r)

	routes.RegisterV1(r, routes.V1Deps{
		DB:     pool,
		Redis:  rdb,
		Auth:   authClient,
		Scorer: scorer,
	})

	log.Printf("%s listening on :%s", serviceName, cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server: %v", err)
	}
}
