package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/userhub/dashboard-api/internal/api/handler"
	"github.com/userhub/dashboard-api/internal/api/metrics"
	"github.com/userhub/dashboard-api/internal/api/middleware"
	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/service"
	"github.com/userhub/dashboard-api/internal/infrastructure/config"
	mongodb "github.com/userhub/dashboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/userhub/dashboard-api/internal/infrastructure/db/redis"
	"github.com/userhub/dashboard-api/internal/infrastructure/email"
	"github.com/userhub/dashboard-api/internal/infrastructure/oauth"
	"github.com/userhub/dashboard-api/pkg/logger"
)

// NewRouter wires repositories, services and handlers and returns the
// Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Origins(),
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(echoprometheus.NewMiddleware("dashboard"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	logRepo := mongodb.NewActivityLogRepository(db)
	analyticsRepo := mongodb.NewAnalyticsRepository(db)
	otpStore := redisdb.NewOTPStore(rdb)

	// --- Services ---
	tokens := service.NewTokenService(
		service.TokenConfig{Secret: cfg.JWT.AccessSecret, TTL: cfg.JWT.AccessExpires},
		service.TokenConfig{Secret: cfg.JWT.RefreshSecret, TTL: cfg.JWT.RefreshExpires},
		service.TokenConfig{Secret: cfg.JWT.ResetSecret, TTL: cfg.JWT.ResetExpires},
	)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	mailer := email.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.From)

	logService := service.NewActivityLogService(logRepo, logger.Component("activity-log"), metrics.ActivityLogDropsTotal.Inc)
	otpService := service.NewOTPService(userRepo, otpStore, mailer, logService, logger.Component("otp"))
	userService := service.NewUserService(userRepo, hasher, logService)
	authService := service.NewAuthService(userRepo, tokens, hasher, logService, otpService, mailer, cfg.FrontendURL, logger.Component("auth"))
	analyticsService := service.NewAnalyticsService(analyticsRepo, logService)

	// --- Handlers ---
	cookies := handler.CookieManager{
		Domain:     cfg.Cookie.Domain,
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.JWT.AccessExpires,
		RefreshTTL: cfg.JWT.RefreshExpires,
	}
	google := oauth.NewGoogleProvider(cfg.OAuth.GoogleClientID, cfg.OAuth.GoogleClientSecret, cfg.OAuth.GoogleCallbackURL)
	state := oauth.NewStateCodec(cfg.SessionSecret)

	authHandler := handler.NewAuthHandler(authService, tokens, google, state, cookies, cfg.FrontendURL)
	userHandler := handler.NewUserHandler(userService)
	otpHandler := handler.NewOTPHandler(otpService)
	logHandler := handler.NewActivityLogHandler(logService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	authed := middleware.CheckAuth(userRepo, tokens)
	adminOnly := middleware.CheckAuth(userRepo, tokens, domain.RoleAdmin)

	v1 := e.Group("/api/v1")

	// --- Auth ---
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/change-password", authHandler.ChangePassword, authed)
	auth.POST("/set-password", authHandler.SetPassword, authed)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/google", authHandler.GoogleRedirect)
	auth.GET("/google/callback", authHandler.GoogleCallback)

	// --- Users ---
	users := v1.Group("/user")
	users.POST("/register", userHandler.Register)
	users.GET("/all-users", userHandler.List, adminOnly)
	users.GET("/me", userHandler.Me, authed)
	users.GET("/:id", userHandler.GetByID, adminOnly)
	users.PATCH("/:id", userHandler.Update, authed)

	// --- OTP ---
	otp := v1.Group("/otp")
	otp.POST("/send", otpHandler.Send)
	otp.POST("/verify", otpHandler.Verify)

	// --- Activity logs ---
	logs := v1.Group("/activity-logs")
	logs.GET("", logHandler.List, adminOnly)
	logs.GET("/recent", logHandler.Recent, adminOnly)
	logs.GET("/my-activity", logHandler.MyActivity, authed)
	logs.GET("/type/:type", logHandler.ListByType, adminOnly)
	logs.GET("/user/:userId", logHandler.ListByUser, adminOnly)
	logs.DELETE("/cleanup", logHandler.Cleanup, adminOnly)

	// --- Analytics ---
	analytics := v1.Group("/analytics", adminOnly)
	analytics.GET("/user-stats", analyticsHandler.UserStats)
	analytics.GET("/role-distribution", analyticsHandler.RoleDistribution)
	analytics.GET("/status-distribution", analyticsHandler.StatusDistribution)
	analytics.GET("/registration-trends", analyticsHandler.RegistrationTrends)
	analytics.GET("/monthly-registrations", analyticsHandler.NewUsersThisMonth)
	analytics.GET("/recent-users", analyticsHandler.RecentUsers)
	analytics.GET("/dashboard-overview", analyticsHandler.DashboardOverview)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
