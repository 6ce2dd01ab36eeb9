package routes

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/jobnest-app/jobnest-backend/internal/applications"
	"github.com/jobnest-app/jobnest-backend/internal/auth"
	"github.com/jobnest-app/jobnest-backend/internal/matching"
	"github.com/jobnest-app/jobnest-backend/internal/profiles"
	"github.com/jobnest-app/jobnest-backend/internal/sharing"
)

type V1Deps struct {
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Auth   *fbauth.Client
	Scorer matching.Scorer
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/api/v1")

	// The scoring boundary validates its own inputs and holds no user data.
	matching.Register(api, dep.Scorer)

	authed := api.Group("")
	authed.Use(auth.RequireUser(dep.Auth))

	profileRepo := profiles.NewRepo(dep.DB)
	authed.Use(auth.WithProfile(profileRepo))

	profiles.Register(authed, profileRepo)

	appRepo := applications.NewRepo(dep.DB)
	applications.Register(authed.Group("/applications"), appRepo)

	shareRepo := sharing.NewRepo(dep.DB)
	sharing.Register(authed, shareRepo, sharing.NewListCache(dep.Redis), appRepo)
}
