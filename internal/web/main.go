// Package web wires the HTTP API of the console.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/rbac-console/rbac-console/internal/auth"
	"github.com/rbac-console/rbac-console/internal/config"
	"github.com/rbac-console/rbac-console/internal/directory"
	fiberlogger "github.com/rbac-console/rbac-console/internal/logger/adapter/fiber"
	"github.com/rbac-console/rbac-console/internal/web/handler"
	authhandler "github.com/rbac-console/rbac-console/internal/web/handler/auth"
	"github.com/rbac-console/rbac-console/internal/web/handler/permission"
	"github.com/rbac-console/rbac-console/internal/web/handler/role"
	"github.com/rbac-console/rbac-console/internal/web/handler/user"
	authmiddleware "github.com/rbac-console/rbac-console/internal/web/middleware/auth"
)

const (
	defaultAppName = "rbac-console"
	metricsPath    = "/metrics"
)

// Deps are the services behind the HTTP API.
type Deps struct {
	Provider  *auth.LocalProvider
	Tokens    *auth.TokenIssuer
	Directory *directory.Service
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// InfoResponse is served on the root path.
type InfoResponse struct {
	Name string `json:"name"`
	API  string `json:"api"`
}

// Start listens on the configured port until the app is shut down.
func (s *Service) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Msg("starting http server")

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("fiber listen error: %w", err)
	}

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and stops the app gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown drains and stops the http server.
// Unless fast shutdown is set, checkalive reports 503 during the drain window
// so load balancers can take the instance out first.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// SetFastShutdown skips the drain window on shutdown.
func (s *Service) SetFastShutdown(fast bool) {
	s.fastShutDown = fast
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, deps Deps) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if deps.Provider == nil || deps.Tokens == nil || deps.Directory == nil {
		panic("web dependencies cannot be nil")
	}

	appName := cfg.Title
	if appName == "" {
		appName = defaultAppName
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        appName,
			CaseSensitive:  false,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	service := &Service{
		cfg: cfg,
		App: app,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: cfg.Webserver.CheckAliveURI,
		UserFunc:      authmiddleware.Subject,
	}))

	app.Get(cfg.Webserver.CheckAliveURI, service.checkAlive)
	app.Get(metricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(authmiddleware.New(authmiddleware.Config{
		Verifier:    deps.Tokens,
		APIPrefix:   cfg.Webserver.APIPrefix,
		AssetPrefix: cfg.Webserver.AssetPrefix,
	}))

	if cfg.Webserver.StaticDir != "" {
		app.Static(cfg.Webserver.AssetPrefix, cfg.Webserver.StaticDir, fiber.Static{Browse: cfg.DevMode})
	}

	app.Get(handler.RootPath, func(c *fiber.Ctx) error {
		return c.JSON(InfoResponse{Name: appName, API: cfg.Webserver.APIPrefix})
	})

	api := app.Group(cfg.Webserver.APIPrefix)

	for _, h := range []handler.Service{
		authhandler.New(deps.Provider),
		permission.New(deps.Directory),
		role.New(deps.Directory),
		user.New(deps.Directory),
	} {
		h.Init(api)
	}

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}
