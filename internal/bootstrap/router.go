package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/bosswatch/bosswatch-backend/config"
	httpapi "github.com/bosswatch/bosswatch-backend/internal/api/http"
	"github.com/bosswatch/bosswatch-backend/internal/api/http/middleware"
	"github.com/bosswatch/bosswatch-backend/internal/auth"
	authhttp "github.com/bosswatch/bosswatch-backend/internal/auth/http"
	bosshttp "github.com/bosswatch/bosswatch-backend/internal/bosses/http"
	bossrepo "github.com/bosswatch/bosswatch-backend/internal/bosses/repository"
	clickrepo "github.com/bosswatch/bosswatch-backend/internal/clicks/repository"
	"github.com/bosswatch/bosswatch-backend/internal/identity"
	"github.com/bosswatch/bosswatch-backend/internal/realtime"
	statshttp "github.com/bosswatch/bosswatch-backend/internal/stats/http"
	userhttp "github.com/bosswatch/bosswatch-backend/internal/users/http"
	userrepo "github.com/bosswatch/bosswatch-backend/internal/users/repository"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	Firebase    *Firebase
	Redis       *redis.Client
	Hub         *realtime.Hub
	Publisher   *realtime.Publisher
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = dep.Config.Server.CORSOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestID())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Config.App.Version, dep.Redis)
	healthHandler.RegisterRoutes(r)

	bossRepo := bossrepo.NewRepo(dep.Firebase.Firestore)
	clickRepo := clickrepo.NewRepo(dep.Firebase.Firestore)
	userRepo := userrepo.NewRepo(dep.Firebase.Firestore)

	idc := identity.NewClient(dep.Config.Firebase.WebAPIKey, dep.Config.Firebase.IdentityBaseURL)
	authHandler := authhttp.NewHandler(idc)

	public := r.Group("/api/v1")
	authHandler.RegisterPublic(public)

	api := r.Group("/api/v1")
	api.Use(auth.WithSession(dep.Firebase.Auth, userRepo, dep.Config.App.AdminEmail))

	authHandler.RegisterProtected(api)
	bosshttp.Register(api, bosshttp.NewHandler(bossRepo, clickRepo))
	userhttp.Register(api, userhttp.NewHandler(userRepo))
	statshttp.Register(api, statshttp.NewHandler(bossRepo, clickRepo, dep.Redis))
	realtime.NewHandler(dep.Hub, dep.Publisher).Register(api)

	return r
}
