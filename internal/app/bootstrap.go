package app

import (
	"fmt"
	"slices"
	"strings"

	"next-hire/internal/config"
	"next-hire/internal/delivery/http/handler"
	"next-hire/internal/delivery/http/middleware"
	"next-hire/internal/delivery/http/routes"
	v1 "next-hire/internal/delivery/http/routes/v1"
	"next-hire/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: cfg.App.BodyLimit,
	})

	registerGlobalMiddleware(f, cfg, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

func Bootstrap(cfg config.Config, l *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, l *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(l).Middleware())
	app.Use(corsMiddleware(cfg.CORS))
	app.Use(middleware.NewErrorMiddleware(l).Middleware())
}

func corsMiddleware(cfg config.CORSConfig) fiber.Handler {
	wildcard := len(cfg.AllowedOrigins) == 0 || slices.Contains(cfg.AllowedOrigins, "*")
	origins := cfg.AllowedOrigins
	if wildcard {
		origins = []string{"*"}
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:     []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization, middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID},
		AllowCredentials: !wildcard,
	})
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	authMW := middleware.NewAuthMiddleware(c.Auth)
	wsHandler := ws.NewHandler(c.Hub, c.Logger, c.Config.CORS.AllowedOrigins)

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		wsHandler.HandleJobsWS,
		v1.Handlers{
			Auth:   handler.NewAuthHandler(c.Auth),
			Users:  handler.NewUserHandler(),
			Jobs:   handler.NewJobsHandler(c.Jobs),
			Resume: handler.NewResumeHandler(c.Resume),
			AuthMW: authMW,
		},
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
