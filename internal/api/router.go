package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/cineplex/reservation-system/docs"
	"github.com/cineplex/reservation-system/internal/api/handler"
	"github.com/cineplex/reservation-system/internal/api/middleware"
	"github.com/cineplex/reservation-system/internal/core/domain"
	"github.com/cineplex/reservation-system/internal/core/password"
	"github.com/cineplex/reservation-system/internal/core/roles"
	"github.com/cineplex/reservation-system/internal/core/service"
	"github.com/cineplex/reservation-system/internal/core/token"
	"github.com/cineplex/reservation-system/internal/infrastructure/config"
	mongodb "github.com/cineplex/reservation-system/internal/infrastructure/db/mongo"
	redisdb "github.com/cineplex/reservation-system/internal/infrastructure/db/redis"
	"github.com/cineplex/reservation-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	registry *roles.Registry,
	codec *token.Codec,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cinema"))

	// --- Core dependencies ---
	hasher := password.NewBcryptHasher(0)
	factory := token.NewFactory(
		codec,
		registry,
		cfg.JWT.Issuer,
		time.Duration(cfg.JWT.AccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLMinutes)*time.Minute,
	)
	verifier := token.NewVerifier(codec)

	userRepo := mongodb.NewUserRepository(db)
	movieRepo := mongodb.NewMovieRepository(db)
	showtimeRepo := mongodb.NewShowtimeRepository(db)
	hallRepo := mongodb.NewHallRepository(db)
	reservationRepo := mongodb.NewReservationRepository(db)
	seatHolder := redisdb.NewSeatHolder(rdb)

	authService := service.NewAuthService(userRepo, hasher, factory, verifier, log)
	userService := service.NewUserService(userRepo, hasher, registry, log)
	movieService := service.NewMovieService(movieRepo, log)
	showtimeService := service.NewShowtimeService(showtimeRepo, movieRepo, hallRepo, reservationRepo, log)
	reservationService := service.NewReservationService(reservationRepo, showtimeRepo, hallRepo, seatHolder, log)

	authHandler := handler.NewAuthHandler(authService, time.Duration(cfg.JWT.RefreshTTLMinutes)*time.Minute)
	userHandler := handler.NewUserHandler(userService, authService, registry)
	movieHandler := handler.NewMovieHandler(movieService)
	showtimeHandler := handler.NewShowtimeHandler(showtimeService)
	reservationHandler := handler.NewReservationHandler(reservationService, authService)

	authRequired := middleware.Auth(authService)
	staffOnly := middleware.RequireRoles(domain.RoleAdmin, domain.RoleStaff)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	authRate := middleware.NewRateLimiter(cfg.AuthRateLimitRPM).Middleware()

	// --- Auth ---
	auth := e.Group("/v1/auth")
	auth.POST("/login", authHandler.Login, authRate)
	auth.POST("/refresh", authHandler.Refresh, authRate)
	auth.POST("/logout", authHandler.Logout)

	// --- Users ---
	e.POST("/v1/users", userHandler.Register, authRate)
	me := e.Group("/v1/users/me", authRequired)
	me.GET("", userHandler.Me)
	me.PATCH("", userHandler.UpdateMe)
	me.DELETE("", userHandler.DeactivateMe)

	admin := e.Group("/v1/admin/users", authRequired, adminOnly)
	admin.GET("", userHandler.List)
	admin.GET("/:id", userHandler.GetByID)
	admin.PATCH("/:id", userHandler.UpdateByID)

	// --- Movies (reads are public, writes need staff) ---
	e.GET("/v1/movies", movieHandler.List)
	e.GET("/v1/movies/:id", movieHandler.Get)
	e.GET("/v1/movies/:id/showtimes", showtimeHandler.ListByMovie)
	e.POST("/v1/movies", movieHandler.Create, authRequired, staffOnly)
	e.PATCH("/v1/movies/:id", movieHandler.Update, authRequired, staffOnly)
	e.DELETE("/v1/movies/:id", movieHandler.Delete, authRequired, staffOnly)

	// --- Showtimes and halls ---
	e.GET("/v1/showtimes/:id", showtimeHandler.Get)
	e.GET("/v1/showtimes/:id/seats", showtimeHandler.Seats)
	e.GET("/v1/halls", showtimeHandler.Halls)
	e.POST("/v1/showtimes", showtimeHandler.Create, authRequired, staffOnly)
	e.DELETE("/v1/showtimes/:id", showtimeHandler.Delete, authRequired, staffOnly)

	// --- Reservations ---
	reservations := e.Group("/v1/reservations", authRequired)
	reservations.POST("", reservationHandler.Create)
	reservations.GET("", reservationHandler.List)
	reservations.GET("/:code", reservationHandler.Get)
	reservations.DELETE("/:code", reservationHandler.Cancel)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
