package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/andinalabs/cataloghub/internal/auth"
	"github.com/andinalabs/cataloghub/internal/cache"
	"github.com/andinalabs/cataloghub/internal/config"
	"github.com/andinalabs/cataloghub/internal/domain/user"
	"github.com/andinalabs/cataloghub/internal/http/handlers"
	"github.com/andinalabs/cataloghub/internal/http/middlewares"
	"github.com/andinalabs/cataloghub/internal/observability"
	"github.com/andinalabs/cataloghub/internal/repo/postgres"
	"github.com/andinalabs/cataloghub/internal/session"
)

func NewRouter(
	cfg config.Config,
	log *slog.Logger,
	pool *pgxpool.Pool,
	redis *cache.Client,
	prom *observability.Prom,
	registry *prometheus.Registry,
	sessions *session.Manager,
	tokens *auth.Manager,
) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(otelgin.Middleware("cataloghub-api"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware([]string{"*"}))
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(middlewares.RequireJSON())

	// health

	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/", health.Root)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	r.GET("/docs", handlers.SwaggerUI)
	r.StaticFile("/docs/openapi.yaml", "./docs/openapi.yaml")

	// wire up repositories

	enterprisesRepo := postgres.NewEnterprisesRepo(pool, prom)
	productsRepo := postgres.NewProductsRepo(pool, prom)
	jobsRepo := postgres.NewJobsRepo(pool, prom)

	inventoryCache := cache.NewInventoryCache(redis, 30*time.Second, log)

	// wire up handlers

	usersHandler := handlers.NewUsersHandler(sessions, cfg)
	enterprisesHandler := handlers.NewEnterprisesHandler(enterprisesRepo)
	productsHandler := handlers.NewProductsHandler(productsRepo, enterprisesRepo, jobsRepo, inventoryCache)

	authMW := middlewares.NewAuthMiddleware(tokens)
	loginLimiter := middlewares.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	users := r.Group("/users/v1")
	{
		users.POST("/register", usersHandler.Register)
		users.POST("/register-admin", usersHandler.RegisterAdmin)
		users.POST("/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), usersHandler.Login)
		users.POST("/refresh", usersHandler.Refresh)
		users.POST("/logout", usersHandler.Logout)
	}

	products := r.Group("/products/v1")
	{
		products.GET("/products", productsHandler.Inventory)
		products.GET("/products/:id", productsHandler.GetByID)
		products.GET("/enterprise/:nit", productsHandler.InventoryByEnterprise)

		mutate := products.Group("", authMW.RequireAuth(), authMW.RequireRole(user.RoleAdmin))
		{
			mutate.POST("", productsHandler.Create)
			mutate.PUT("/:id", productsHandler.Update)
			mutate.DELETE("/:id", productsHandler.Delete)
		}

		products.POST("/export", authMW.RequireAuth(), productsHandler.ExportInventory)
	}

	enterprises := r.Group("/enterprises/v1")
	{
		enterprises.GET("", enterprisesHandler.List)
		enterprises.GET("/:nit", enterprisesHandler.GetByNIT)

		mutate := enterprises.Group("", authMW.RequireAuth(), authMW.RequireRole(user.RoleAdmin))
		{
			mutate.POST("", enterprisesHandler.Create)
			mutate.PUT("/:nit", enterprisesHandler.Update)
			mutate.DELETE("/:nit", enterprisesHandler.Delete)
		}
	}

	// demo data endpoint, never mounted in prod
	if cfg.Env != "prod" {
		fixturesHandler := handlers.NewFixturesHandler(sessions, enterprisesRepo, productsRepo)
		r.GET("/fixtures/v1/generate", fixturesHandler.Generate)
	}

	return r
}
