// Package server wires the forum's HTTP and WebSocket handlers.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	_ "forumapi/docs" // swagger docs
	"forumapi/internal/auth"
	"forumapi/internal/cache"
	"forumapi/internal/config"
	"forumapi/internal/database"
	"forumapi/internal/middleware"
	"forumapi/internal/notifications"
	"forumapi/internal/repository"
	"forumapi/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	defaultRateLimitMax    = 90
	defaultRateLimitWindow = time.Minute
)

// wireableHub is implemented by every WebSocket hub that can be wired to
// Redis pub/sub and gracefully shut down.
type wireableHub interface {
	Name() string
	StartWiring(ctx context.Context, n *notifications.Notifier) error
	Shutdown(ctx context.Context) error
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	// mu guards the fields Start and Shutdown touch from different goroutines.
	mu          sync.Mutex
	app         *fiber.App
	shutdownCtx context.Context
	shutdownFn  context.CancelFunc

	tokens         *auth.TokenManager
	threadRepo     repository.ThreadRepository
	notifier       *notifications.Notifier
	threadHub      *notifications.ThreadHub
	hubs           []wireableHub
	userService    *service.UserService
	authService    *service.AuthService
	threadService  *service.ThreadService
	commentService *service.CommentService
	replyService   *service.ReplyService
}

// NewServer connects to the database and Redis, brings the schema up to date
// and builds the server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.ApplySchema(context.Background(), db, cfg); err != nil {
		return nil, fmt.Errorf("schema bootstrap failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil; rate limiting then stays process-local and events
// only reach watchers connected to this process.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	authRepo := repository.NewAuthenticationRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	replyRepo := repository.NewReplyRepository(db)

	tokens := auth.NewTokenManager(cfg)
	hasher := auth.NewBcryptHasher()

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("forum-api"),
		tokens:         tokens,
		threadRepo:     threadRepo,
		threadHub:      notifications.NewThreadHub(),
	}
	server.userService = service.NewUserService(userRepo, hasher)
	server.authService = service.NewAuthService(userRepo, authRepo, hasher, tokens)
	server.threadService = service.NewThreadService(threadRepo, commentRepo, replyRepo)
	server.commentService = service.NewCommentService(commentRepo, threadRepo)
	server.replyService = service.NewReplyService(replyRepo, commentRepo, threadRepo)

	server.hubs = []wireableHub{server.threadHub}
	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	return server, nil
}

// NewApp builds the Fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Forum API",
		BodyLimit:    1 * 1024 * 1024,
		ProxyHeader:  s.config.ProxyHeader,
		ErrorHandler: s.errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.mu.Lock()
	s.app = app
	s.mu.Unlock()
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and trace ID
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       86400,
	}))
}

func (s *Server) threadRateLimit() fiber.Handler {
	limit := s.config.RateLimitMax
	if limit <= 0 {
		limit = defaultRateLimitMax
	}
	window := s.config.RateLimitWindow
	if window <= 0 {
		window = defaultRateLimitWindow
	}
	return middleware.SlidingWindowRateLimit(s.redis, middleware.RateLimitConfig{
		Name:   "threads",
		Max:    limit,
		Window: window,
	})
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Forum API Metrics Dashboard",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	requireAuth := middleware.AuthRequired(s.tokens)

	app.Post("/users", s.RegisterUser)

	authentications := app.Group("/authentications")
	authentications.Post("/", s.Login)
	authentications.Put("/", s.RefreshAccessToken)
	authentications.Delete("/", s.Logout)

	threads := app.Group("/threads", s.threadRateLimit())
	threads.Post("/", requireAuth, s.AddThread)
	// Define specific /:threadId/:resource routes BEFORE generic /:threadId route
	threads.Get("/:threadId/comments", s.CommentsReady)
	threads.Post("/:threadId/comments", requireAuth, s.AddComment)
	threads.Delete("/:threadId/comments/:commentId", requireAuth, s.DeleteComment)
	threads.Put("/:threadId/comments/:commentId/likes", requireAuth, s.ToggleCommentLike)
	threads.Post("/:threadId/comments/:commentId/replies", requireAuth, s.AddReply)
	threads.Delete("/:threadId/comments/:commentId/replies/:replyId", requireAuth, s.DeleteReply)
	threads.Get("/:threadId", s.GetThreadDetail)

	ws := app.Group("/ws", s.requireUpgrade)
	ws.Get("/threads/:threadId", s.resolveWatchedThread, s.WatchThreadHandler())
}

// Root godoc
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} object{message=string}
// @Router / [get]
func (s *Server) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Forum API is running"})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports 503 unless the database and Redis both answer.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

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
	if dbStatus != "healthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// StartHubs wires every hub to the Redis subscriber until Shutdown.
func (s *Server) StartHubs() {
	s.mu.Lock()
	if s.shutdownCtx == nil {
		s.shutdownCtx, s.shutdownFn = context.WithCancel(context.Background())
	}
	ctx := s.shutdownCtx
	s.mu.Unlock()

	if s.notifier == nil {
		return
	}
	for _, h := range s.hubs {
		if err := h.StartWiring(ctx, s.notifier); err != nil {
			middleware.Logger.Error("failed to start hub wiring",
				slog.String("hub", h.Name()),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Start listens on the configured port and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", ":"+s.config.Port)
	if err != nil {
		return fmt.Errorf("listen on port %s: %w", s.config.Port, err)
	}
	return s.Serve(ln)
}

// Serve builds the app, wires hubs and blocks serving HTTP on ln.
func (s *Server) Serve(ln net.Listener) error {
	app := s.NewApp()
	s.StartHubs()

	middleware.Logger.Info("Server starting", slog.String("addr", ln.Addr().String()))
	return app.Listener(ln)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	app, stopWiring := s.app, s.shutdownFn
	s.mu.Unlock()

	// Cancel the server-scoped context to stop all wiring goroutines
	if stopWiring != nil {
		stopWiring()
	}

	if app != nil {
		if err := app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	for _, h := range s.hubs {
		if err := h.Shutdown(ctx); err != nil {
			middleware.Logger.Error("error shutting down hub",
				slog.String("hub", h.Name()),
				slog.String("error", err.Error()),
			)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
