package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/The-Aegis-Project/SideGig/internal/account"
	"github.com/The-Aegis-Project/SideGig/internal/auth"
	"github.com/The-Aegis-Project/SideGig/internal/config"
	"github.com/The-Aegis-Project/SideGig/internal/idcheck"
	"github.com/The-Aegis-Project/SideGig/internal/linking"
	"github.com/The-Aegis-Project/SideGig/internal/middleware"
	"github.com/The-Aegis-Project/SideGig/internal/notification"
	"github.com/The-Aegis-Project/SideGig/internal/profile"
	"github.com/The-Aegis-Project/SideGig/internal/routing"
	"github.com/The-Aegis-Project/SideGig/internal/verification"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	// Repositories, falling back to in-memory stores in dev without a DB.
	var profileRepo profile.Repository
	var accountRepo account.Repository
	if d.DB != nil {
		profileRepo = profile.NewPostgresRepository(d.DB)
		accountRepo = account.NewPostgresRepository(d.DB)
	} else {
		profileRepo = profile.NewMemoryRepository()
		accountRepo = account.NewMemoryRepository()
	}

	var idSessions idcheck.SessionStore
	if d.Cache != nil {
		idSessions = idcheck.NewRedisSessionStore(d.Cache, 24*time.Hour)
	} else {
		idSessions = idcheck.NewMemorySessionStore()
	}

	// Services and handlers.
	notifier := notification.NewLoggerNotifier(d.Logger)
	profileSvc := profile.NewService(profileRepo)
	accountSvc := account.NewService(accountRepo, profileSvc)
	tokenSvc := auth.NewService(d.Cfg, accountRepo)
	resolver := routing.NewResolver(accountRepo, profileRepo)
	contactSvc := verification.NewService(verification.NewContactStore(profileRepo), notifier, notification.KindContactCode)
	mailSvc := verification.NewService(verification.NewMailStore(profileRepo), notifier, notification.KindMailCode)
	linkSvc := linking.NewService(profileRepo)
	idAdapter := idcheck.NewAdapter(profileRepo, idcheck.StaticVendor{}, idSessions)
	authHandler := auth.NewHandler(accountSvc, tokenSvc, resolver)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes.
	loginLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRateLimit)
	RegisterAuthRoutes(api, authHandler, loginLimiter)

	// Protected routes.
	protected := api.Group("", middleware.JWTAuth(d.Cfg, accountRepo))
	protected.Post("/auth/logout", authHandler.Logout)
	RegisterRoutingRoutes(protected, resolver)
	RegisterProfileRoutes(protected, accountSvc, profileSvc, d.Logger)
	RegisterVerificationRoutes(protected, contactSvc, mailSvc, linkSvc, idAdapter, d.Logger)

	return nil
}

// session rebuilds the authenticated session value from the JWT middleware
// locals.
func session(c *fiber.Ctx) account.Session {
	uid, _ := c.Locals("user_id").(string)
	return account.Session{Authenticated: uid != "", UserID: uid}
}

// fail maps the domain error taxonomy onto HTTP statuses. Every failure in
// the trust flows is recoverable by the caller.
func fail(err error) error {
	switch {
	case errors.Is(err, profile.ErrNotFound), errors.Is(err, account.ErrNotFound):
		return fiber.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, verification.ErrNotInitiated):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, verification.ErrInvalidCode):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, verification.ErrCodeExpired):
		return fiber.NewError(http.StatusGone, err.Error())
	case errors.Is(err, account.ErrUnauthorizedRoleUpdate):
		return fiber.NewError(http.StatusForbidden, err.Error())
	case errors.Is(err, account.ErrMissingProfileDetails):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, account.ErrInvalidCredentials):
		return fiber.NewError(http.StatusUnauthorized, err.Error())
	default:
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}
