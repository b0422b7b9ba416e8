package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"github.com/whopu/challenge/pkg/config"
	"github.com/whopu/challenge/pkg/infra/prometheus"
	"github.com/whopu/challenge/pkg/server/router"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type Server interface {
	Run(ctx context.Context) error
	Shutdown() error
}

type BaseServer struct {
	Config     *config.Config
	Logger     *logrus.Logger
	Router     *fiber.App
	metricsApp *fiber.App
}

func NewBaseServer(cfg *config.Config, logger *logrus.Logger) *BaseServer {
	bodyLimit := cfg.Server.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 1024 * 1024
	}
	r := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReduceMemoryUsage:     true,
		Network:               fiber.NetworkTCP,
		BodyLimit:             bodyLimit,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
	})
	r.Server().NoDefaultServerHeader = true

	return &BaseServer{
		Config: cfg,
		Logger: logger,
		Router: r,
	}
}

func (s *BaseServer) WithRouters(routers ...router.ServerRouter) *BaseServer {
	for _, r := range routers {
		if err := r.BuildRoutes(s.Router); err != nil {
			s.Logger.WithError(err).Error("failed to build routes")
		}
	}
	return s
}

// Run serves the API and, when enabled, the metrics endpoint until ctx is
// cancelled or either listener fails.
func (s *BaseServer) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	g.Go(func() error {
		s.Logger.WithField("addr", addr).Info("starting http server")
		if err := s.Router.Listen(addr); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if s.Config.Metrics.Enabled {
		s.metricsApp = newMetricsApp()
		metricsAddr := fmt.Sprintf(":%d", s.Config.Server.MetricsPort)
		g.Go(func() error {
			s.Logger.WithField("addr", metricsAddr).Info("starting metrics server")
			if err := s.metricsApp.Listen(metricsAddr); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	} else {
		s.Logger.Info("prometheus metrics are disabled by configuration")
	}

	g.Go(func() error {
		<-ctx.Done()
		return s.Shutdown()
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *BaseServer) Shutdown() error {
	s.Logger.Info("shutting down http server")
	err := s.Router.ShutdownWithTimeout(shutdownTimeout)
	if s.metricsApp != nil {
		err = errors.Join(err, s.metricsApp.ShutdownWithTimeout(shutdownTimeout))
	}
	return err
}

func newMetricsApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	handler := fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(prometheus.Gatherer(), promhttp.HandlerOpts{}),
	)
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	})
	return app
}
