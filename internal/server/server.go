// Package server contains the HTTP handlers and routing for the application.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Talha-Ak/clucker/internal/cache"
	"github.com/Talha-Ak/clucker/internal/config"
	"github.com/Talha-Ak/clucker/internal/database"
	"github.com/Talha-Ak/clucker/internal/middleware"
	"github.com/Talha-Ak/clucker/internal/models"
	"github.com/Talha-Ak/clucker/internal/repository"
	"github.com/Talha-Ak/clucker/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// sessionCookieName is the cookie carrying the session token for browser
// clients. API clients may send the same token as a Bearer header instead.
const sessionCookieName = "clucker_session"

// sessionLifetime is how long an issued session token stays valid unless
// revoked by an explicit log-out.
const sessionLifetime = 7 * 24 * time.Hour

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	sessions       *cache.SessionStore
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	followRepo     repository.FollowRepository
	credentials    *service.CredentialService
	accounts       *service.AccountService
	follows        *service.FollowService
	feeds          *service.FeedService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)

	prom := middleware.InitMetrics("clucker-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		sessions:       cache.NewSessionStore(redisClient),
		userRepo:       userRepo,
		postRepo:       postRepo,
		followRepo:     followRepo,
	}
	server.credentials = service.NewCredentialService(userRepo)
	server.accounts = service.NewAccountService(userRepo, server.credentials)
	server.follows = service.NewFollowService(followRepo, userRepo)
	server.feeds = service.NewFeedService(postRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Distributed tracing
	app.Use(middleware.TracingMiddleware())

	// CORS middleware runs before middlewares that can short-circuit (e.g.
	// limiter) so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/api/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Routes for visitors only: a logged-in user is redirected away.
	app.Get("/", s.requireAnonymous(), s.Home)
	app.Get("/sign_up/", s.requireAnonymous(), s.SignUpPrompt)
	app.Post("/sign_up/", s.requireAnonymous(), middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.SignUp)
	// GET /log_in/ is where the auth gate sends anonymous visitors; it tells
	// an API client what to submit instead of rendering a form.
	app.Get("/log_in/", s.requireAnonymous(), s.LogInPrompt)
	app.Post("/log_in/", s.requireAnonymous(), middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.LogIn)

	// Logging out is never gated: with or without a live session the outcome
	// is the same anonymous visitor on the home page.
	app.Post("/log_out/", s.LogOut)

	// Routes for authenticated users only.
	app.Get("/feed/", s.requireAuthenticated(), s.Feed)
	app.Post("/new_post/", s.requireAuthenticated(), middleware.RateLimit(
		s.redis, 12, time.Minute, "new_post"), s.NewPost)
	app.Get("/users/", s.requireAuthenticated(), s.ListUsers)
	app.Get("/user/:id/", s.requireAuthenticated(), s.ShowUser)
	app.Post("/follow_toggle/:id/", s.requireAuthenticated(), s.FollowToggle)
	app.Get("/update_profile/", s.requireAuthenticated(), s.EditProfile)
	app.Post("/update_profile/", s.requireAuthenticated(), s.UpdateProfile)
	app.Get("/update_password/", s.requireAuthenticated(), s.EditPassword)
	app.Post("/update_password/", s.requireAuthenticated(), s.UpdatePassword)
}

// HealthCheck is a simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is optional: without it log-out degrades to cookie clearing and
	// rate limits fail open, so it does not gate readiness.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Clucker",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// requireAuthenticated gates a route to logged-in users. Anonymous requests
// are redirected to the log-in page with the original path preserved in the
// "next" query parameter, so a successful log-in can resume where the visitor
// was headed.
func (s *Server) requireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := s.sessionUserID(c)
		if !ok {
			target := s.config.LoginURL + "?next=" + c.Path()
			return c.Redirect(target, fiber.StatusFound)
		}

		c.Locals("userID", userID)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// requireAnonymous gates a route to visitors. A logged-in user is redirected
// to the configured landing page instead.
func (s *Server) requireAnonymous() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := s.sessionUserID(c); ok {
			return c.Redirect(s.config.LoggedInURL, fiber.StatusFound)
		}
		return c.Next()
	}
}

// sessionUserID extracts and validates the session token from the request,
// returning the authenticated user's ID. A missing, malformed, expired or
// revoked token all read as "not logged in"; the gates turn that into a
// redirect rather than an error.
func (s *Server) sessionUserID(c *fiber.Ctx) (uint, bool) {
	tokenString := s.tokenFromRequest(c)
	if tokenString == "" {
		return 0, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithIssuer("clucker-api"),
		jwt.WithAudience("clucker-web"),
	)
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}

	// An explicitly logged-out token is dead even before its expiry.
	if jti, exists := claims["jti"].(string); exists && jti != "" {
		if s.sessions.IsRevoked(c.Context(), jti) {
			return 0, false
		}
	}

	return uint(userID), true
}

// tokenFromRequest reads the session token from the cookie set at log-in, or
// from a Bearer Authorization header for non-browser clients.
func (s *Server) tokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(sessionCookieName); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return ""
}

// generateToken creates a session token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"iss":      "clucker-api",                          // Issuer
		"aud":      "clucker-web",                          // Audience
		"exp":      now.Add(sessionLifetime).Unix(),        // Expiration
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      s.generateJTI(),                        // JWT ID (revocation handle)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique token ID so an individual session can be revoked
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// setSessionCookie stores the session token in the browser cookie.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(sessionLifetime),
		HTTPOnly: true,
		Secure:   s.config.Env == "production" || s.config.Env == "prod",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// sanitizeNext validates a post-login redirect target taken from the request.
// Only local absolute paths pass; anything else (external URLs, protocol-
// relative tricks, empty values) falls back to the default landing page.
func (s *Server) sanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return s.config.LoggedInURL
	}
	if strings.ContainsAny(next, "\r\n\\") {
		return s.config.LoggedInURL
	}
	return next
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Clucker",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
