// Package router builds the gin route table.
package router

import (
	"log/slog"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"recipebox/internal/app/di"
	platformhandler "recipebox/internal/platform/http/handler"
	"recipebox/internal/platform/http/middleware"
	jwtmw "recipebox/internal/platform/jwt"
	"recipebox/internal/platform/metrics"
)

// Deps is everything the router mounts.
type Deps struct {
	Logger      *slog.Logger
	Handlers    *di.Handlers
	Health      *platformhandler.HealthHandler
	Metrics     *metrics.Metrics
	AuthLimiter middleware.Limiter
	JWTSecret   string
	CORSOrigins []string
}

// NewRouter returns the engine serving the API.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger), d.Metrics.Middleware(), cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/healthz", d.Health.Health)
	r.HEAD("/healthz", d.Health.Health)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// A bearer token is optional on every API route; an invalid one is rejected.
	api := r.Group("/api")
	api.Use(jwtmw.AuthOptional(d.JWTSecret))

	recipes := api.Group("/recipes")
	{
		recipes.GET("", d.Handlers.Recipes.List)
		recipes.GET("/search/:query", d.Handlers.Recipes.Search)
		recipes.GET("/:id", d.Handlers.Recipes.Get)
		recipes.POST("", d.Handlers.Recipes.Create)
		recipes.DELETE("/:id", d.Handlers.Recipes.Delete)
	}

	authLimit := middleware.RateLimit(d.AuthLimiter)
	users := api.Group("/users")
	{
		users.GET("", d.Handlers.Users.List)
		users.GET("/:id", d.Handlers.Users.Get)
		users.GET("/:id/recipes", d.Handlers.Recipes.ListByUser)
		users.POST("/signup", authLimit, d.Handlers.Users.Signup)
		users.POST("/login", authLimit, d.Handlers.Users.Login)
		users.PUT("/:id/password", d.Handlers.Users.ChangePassword)
	}

	groups := api.Group("/groups")
	{
		groups.GET("", d.Handlers.Groups.List)
		groups.GET("/user/:userId", d.Handlers.Groups.ListForUser)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AddAllowHeaders("Authorization")
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
