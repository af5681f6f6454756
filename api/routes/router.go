// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"movieapp/internal/activity"
	"movieapp/internal/auth"
	"movieapp/internal/customers"
	"movieapp/internal/genres"
	"movieapp/internal/languages"
	"movieapp/internal/movies"
	"movieapp/internal/sessions"
	"movieapp/internal/shared/config"
	"movieapp/internal/shared/database"
	"movieapp/internal/shared/middleware"
	"movieapp/internal/users"
	"movieapp/pkg/cache"

	_ "movieapp/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "movieapp-backend"

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher activity.Publisher
	cache     cache.Service

	// Shared services for dependency injection
	genreService    genres.Service
	languageService languages.Service
	movieService    movies.Service
	sessionService  sessions.Service
}

// NewRouter creates a new router instance. A nil publisher disables the activity stream.
func NewRouter(cfg *config.Config, db *database.DB, publisher activity.Publisher) *Router {
	if publisher == nil {
		publisher = activity.NoopPublisher{}
	}
	r := &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
	if db.GetRedis() != nil {
		r.cache = cache.NewService(db.GetRedis())
	}
	return r
}

// MovieService exposes the movie service to the background jobs.
// Only valid after SetupRoutes.
func (r *Router) MovieService() movies.Service {
	return r.movieService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	admin := api.Group("/admin",
		middleware.JWTAuthWithConfig(r.config),
		middleware.RequireAdmin(),
	)
	protected := api.Group("",
		middleware.JWTAuthWithConfig(r.config),
		middleware.RequireRoles(users.RoleUser, users.RoleAdmin),
	)

	r.setupAuthRoutes(api)

	// Order matters: each group consumes services built by the previous ones
	r.setupGenreRoutes(api, admin)
	r.setupLanguageRoutes(api, admin)
	r.setupMovieRoutes(api, admin)
	r.setupSessionRoutes(api, admin)
	r.setupCustomerRoutes(protected, admin)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	if r.cache != nil {
		authService.SetCacheService(r.cache)
	}
	authController := auth.NewController(authService)

	auth.NewRouter(authController, r.config).SetupRoutes(rg)
}

func (r *Router) setupGenreRoutes(rg, admin *gin.RouterGroup) {
	genreRepo := genres.NewRepository(r.db.GetPostgreSQL())
	r.genreService = genres.NewService(genreRepo)
	if r.cache != nil {
		r.genreService.SetCacheService(r.cache)
	}

	genres.SetupGenreRoutes(rg, admin, genres.NewController(r.genreService))
}

func (r *Router) setupLanguageRoutes(rg, admin *gin.RouterGroup) {
	languageRepo := languages.NewRepository(r.db.GetPostgreSQL())
	r.languageService = languages.NewService(languageRepo)
	if r.cache != nil {
		r.languageService.SetCacheService(r.cache)
	}

	languages.SetupLanguageRoutes(rg, admin, languages.NewController(r.languageService))
}

// setupMovieRoutes needs the genre service to resolve genre IDs
func (r *Router) setupMovieRoutes(rg, admin *gin.RouterGroup) {
	movieRepo := movies.NewRepository(r.db.GetPostgreSQL())
	r.movieService = movies.NewService(movieRepo, r.genreService)
	if r.cache != nil {
		r.movieService.SetCacheService(r.cache)
	}

	movies.SetupMovieRoutes(rg, admin, movies.NewController(r.movieService))
}

func (r *Router) setupSessionRoutes(rg, admin *gin.RouterGroup) {
	sessionRepo := sessions.NewRepository(r.db.GetPostgreSQL())
	r.sessionService = sessions.NewService(sessionRepo, r.movieService, r.languageService)
	if r.cache != nil {
		r.sessionService.SetCacheService(r.cache)
	}
	r.sessionService.SetPublisher(r.publisher)

	sessions.SetupSessionRoutes(rg, admin, sessions.NewController(r.sessionService))
}

// setupCustomerRoutes wires recommendations over the movie and session services
func (r *Router) setupCustomerRoutes(protected, admin *gin.RouterGroup) {
	customerRepo := customers.NewRepository(r.db.GetPostgreSQL())
	customerService := customers.NewService(customerRepo, r.movieService, r.movieService, r.sessionService)
	if r.cache != nil {
		customerService.SetCacheService(r.cache)
	}
	customerService.SetPublisher(r.publisher)

	customers.SetupCustomerRoutes(protected, admin, customers.NewController(customerService))
}
