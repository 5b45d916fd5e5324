package app

import (
	"context"
	"fmt"
	"strings"

	"fate-inyeon/internal/config"
	"fate-inyeon/internal/delivery/http/handler"
	"fate-inyeon/internal/delivery/http/middleware"
	"fate-inyeon/internal/delivery/http/routes"
	"fate-inyeon/internal/infrastructure/lock"
	"fate-inyeon/internal/pkg/jwt"
	"fate-inyeon/internal/pkg/validate"
	"fate-inyeon/internal/usecase"
	ucauth "fate-inyeon/internal/usecase/auth"
	"fate-inyeon/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
}

// New assembles the HTTP application on top of c. The returned stop function
// ends the websocket hub.
func New(c *Container) (*App, func()) {
	cfg := c.Config

	f := fiber.New(fiber.Config{
		AppName:         cfg.App.AppName,
		StructValidator: validate.New(),
	})

	hub := ws.NewHub(c.Logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.App.AppName)
	locker := lock.NewPairLocker(c.Redis, cfg.Redis.PairLockTTL, c.Logger)
	notifier := ws.NewNotifier(hub)

	authUC := usecase.NewAuthUsecase(ucauth.NewService(c.Accounts), jwtSvc, usecase.TokenLifetimes{
		Signup: cfg.JWT.SignupExpiresIn,
		Login:  cfg.JWT.LoginExpiresIn,
	})
	profileUC := usecase.NewProfileUsecase(c.Profiles)
	candidateUC := usecase.NewCandidateUsecase(c.Profiles)
	interactionUC := usecase.NewInteractionUsecase(c.Profiles, c.Matches, locker, notifier, c.Logger)
	matchUC := usecase.NewMatchUsecase(c.Profiles, c.Matches, locker, notifier, c.Logger)

	checks := make(map[string]handler.HealthCheck, len(c.Checks))
	for name, fn := range c.Checks {
		checks[name] = fn
	}

	registerGlobalMiddleware(f, c)

	registry := &routes.Registry{
		Auth:       middleware.NewAuthMiddleware(jwtSvc),
		Health:     handler.NewHealthHandler(checks),
		Users:      handler.NewAuthHandler(authUC),
		Profiles:   handler.NewProfileHandler(profileUC),
		Candidates: handler.NewCandidateHandler(candidateUC, interactionUC),
		Matches:    handler.NewMatchHandler(matchUC),
		Realtime:   ws.NewHandler(hub, cfg.App.ClientURL, c.Logger).HandleMatchesWS,
		Metrics:    true,
	}
	registry.Register(f)

	return &App{Fiber: f, Hub: hub}, stopHub
}

// Bootstrap builds the container and the application. cleanup stops the hub
// and closes every backing store.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	a, stop := New(c)
	cleanup := func() error {
		stop()
		return c.Close()
	}
	return a, cleanup, nil
}

// registerGlobalMiddleware installs access logging outermost so it records
// the status written by the error middleware.
func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins(c.Config.App.ClientURL),
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions},
	}))
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func allowedOrigins(clientURL string) []string {
	out := []string{}
	for _, o := range strings.Split(clientURL, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
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
