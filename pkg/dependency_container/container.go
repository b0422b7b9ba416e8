package dependency_container

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	appcheckout "github.com/whopu/challenge/pkg/app/checkout"
	"github.com/whopu/challenge/pkg/app/countdown"
	"github.com/whopu/challenge/pkg/app/homework"
	apprsvp "github.com/whopu/challenge/pkg/app/rsvp"
	apptelemetry "github.com/whopu/challenge/pkg/app/telemetry"
	"github.com/whopu/challenge/pkg/common"
	"github.com/whopu/challenge/pkg/config"
	"github.com/whopu/challenge/pkg/domain/checkout"
	"github.com/whopu/challenge/pkg/domain/rsvp"
	"github.com/whopu/challenge/pkg/domain/submission"
	domaintelemetry "github.com/whopu/challenge/pkg/domain/telemetry"
	handlers "github.com/whopu/challenge/pkg/handlers/http"
	"github.com/whopu/challenge/pkg/handlers/http/request"
	"github.com/whopu/challenge/pkg/infra/cache"
	"github.com/whopu/challenge/pkg/infra/database"
	"github.com/whopu/challenge/pkg/infra/dispatch"
	"github.com/whopu/challenge/pkg/infra/httpx"
	"github.com/whopu/challenge/pkg/infra/jwt"
	"github.com/whopu/challenge/pkg/infra/mail"
	"github.com/whopu/challenge/pkg/infra/prometheus"
	"github.com/whopu/challenge/pkg/infra/ratelimit"
	"github.com/whopu/challenge/pkg/infra/repository"
	"github.com/whopu/challenge/pkg/infra/sheets"
	infratelemetry "github.com/whopu/challenge/pkg/infra/telemetry"
	"github.com/whopu/challenge/pkg/infra/telemetry/kafka"
	"github.com/whopu/challenge/pkg/infra/telemetry/logexporter"
	"github.com/whopu/challenge/pkg/middleware"
	"github.com/whopu/challenge/pkg/version"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	workerShutdownTimeout = 10 * time.Second
)

type Container struct {
	Config              *config.Config
	Logger              *logrus.Logger
	DB                  *database.DB
	Redis               *redis.Client
	Worker              dispatch.Worker
	Publisher           apptelemetry.Publisher
	JWTManager          jwt.Manager
	HandlerTransport    *handlers.HandlerTransport
	MiddlewareTransport *middleware.Transport
}

type ContainerDI struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	// DB is optional; when nil and database.enabled is set the container
	// opens its own connection.
	DB *database.DB
	// Now is the clock used by the countdown and submission ids.
	Now func() time.Time
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg
	logger := di.Logger
	now := di.Now
	if now == nil {
		now = time.Now
	}

	prometheus.Initialize(prometheus.MetricsConfig{EnableLatency: cfg.Metrics.EnableLatency})

	c := &Container{
		Config:     cfg,
		Logger:     logger,
		DB:         di.DB,
		JWTManager: jwt.NewJwtManager(cfg.Server.SecretKey, cfg.Admin.TokenTTL),
	}

	if c.DB == nil && cfg.Database.Enabled {
		db, err := database.NewDB(logger, &database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
	}

	if cfg.Redis.Enabled {
		client, err := cache.NewClient(cache.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS:      cfg.Redis.TLS,
		}, logger)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = client
	}

	submissions, err := c.submissionRepository()
	if err != nil {
		c.Close()
		return nil, err
	}
	rsvpRepo, err := c.rsvpRepository()
	if err != nil {
		c.Close()
		return nil, err
	}
	checkoutEvents, err := c.checkoutEventRepository()
	if err != nil {
		c.Close()
		return nil, err
	}

	// background work
	c.Worker = dispatch.NewWorker(logger, cfg.Events.QueueSize)
	c.Worker.StartWorkers(cfg.Events.Workers)

	exporters, err := buildExporters(logger, cfg.Events.Exporters)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Publisher = apptelemetry.NewPublisher(logger, c.Worker, exporters)

	// outbound integrations
	httpClient := httpx.NewFastHTTPClient(
		httpx.WithTimeout(cfg.Sheets.Timeout),
		httpx.WithUserAgent(version.AppName+"/"+version.Version),
	)
	breaker := httpx.NewCircuitBreaker(
		"sheets",
		cfg.Sheets.BreakerTimeout,
		uint32(cfg.Sheets.BreakerMaxFailures),
		func(name, from, to string) {
			logger.WithFields(logrus.Fields{"breaker": name, "from": from, "to": to}).Warn("circuit breaker state changed")
		},
	)
	webhookURL := ""
	if cfg.Sheets.Enabled {
		webhookURL = cfg.Sheets.WebhookURL
	}
	forwarder := sheets.NewForwarder(logger, httpClient, breaker, webhookURL)

	mailer := mail.NewNoopMailer()
	if cfg.Mail.Enabled {
		mailer = mail.NewMailgunMailer(logger, cfg.Mail.Domain, cfg.Mail.APIKey, cfg.Mail.Sender)
	}

	// services
	submitter := homework.NewSubmitter(
		logger, submissions, forwarder, mailer, c.Worker, c.Publisher, submission.NewIDGenerator(now),
	)
	reviewer := homework.NewReviewer(logger, submissions, c.Publisher)
	counter := apprsvp.NewCounter(logger, rsvpRepo, c.Publisher)

	verifier, err := appcheckout.NewVerifier(cfg.Checkout.Provider, cfg.Checkout.Secret, cfg.Checkout.SignatureHeader)
	if err != nil {
		c.Close()
		return nil, err
	}
	if cfg.Checkout.Secret == "" {
		logger.Warn("checkout webhook secret is empty, every webhook will be rejected")
	}
	processor := appcheckout.NewProcessor(logger, verifier, checkoutEvents, counter, c.Publisher, cfg.Checkout.PlanID)

	start, err := cfg.Challenge.Start()
	if err != nil {
		c.Close()
		return nil, err
	}
	clock := countdown.NewClock(start, now)

	// middleware
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		if c.Redis == nil {
			logger.Warn("rate limiting requires redis, submissions will not be limited")
		} else {
			limiter = ratelimit.NewSlidingWindowLimiter(c.Redis, cfg.RateLimit.Limit, cfg.RateLimit.Window, nil)
		}
	}
	c.MiddlewareTransport = &middleware.Transport{
		AdminAuthMiddleware: middleware.NewAdminAuthMiddleware(logger, c.JWTManager),
		CORSMiddleware: middleware.NewCORSGlobalMiddleware(
			cfg.CORS.AllowOrigins,
			cfg.CORS.AllowMethods,
			cfg.CORS.AllowCredentials,
			[]string{common.RetryAfterHeader},
			strconv.Itoa(cfg.CORS.MaxAge),
		),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(cfg.Metrics.EnableLatency),
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		SecurityMiddleware:     middleware.NewSecurityMiddleware(),
	}
	if limiter != nil {
		c.MiddlewareTransport.RateLimitMiddleware = middleware.NewRateLimitMiddleware(logger, limiter, common.HomeworkRateLimitScope)
	}

	c.HandlerTransport = &handlers.HandlerTransport{
		SubmitWorksheetHandler: handlers.NewSubmitHomeworkHandler(logger, submitter, 1,
			func() request.HomeworkForm { return &request.WorksheetSubmissionRequest{} }),
		SubmitMarketResearchHandler: handlers.NewSubmitHomeworkHandler(logger, submitter, 2,
			func() request.HomeworkForm { return &request.MarketResearchSubmissionRequest{} }),
		SubmitDocLinkHandler: handlers.NewSubmitHomeworkHandler(logger, submitter, 3,
			func() request.HomeworkForm { return &request.DocLinkSubmissionRequest{} }),
		SubmitStoreLinkHandler: handlers.NewSubmitHomeworkHandler(logger, submitter, 4,
			func() request.HomeworkForm { return &request.StoreLinkSubmissionRequest{} }),
		SubmitProfileLinkHandler: handlers.NewSubmitHomeworkHandler(logger, submitter, 5,
			func() request.HomeworkForm { return &request.ProfileLinkSubmissionRequest{} }),

		GetRSVPHandler:       handlers.NewGetRSVPHandler(logger, counter),
		IncrementRSVPHandler: handlers.NewIncrementRSVPHandler(logger, counter),

		CheckoutWebhookHandler: handlers.NewCheckoutWebhookHandler(logger, processor),

		CountdownHandler: handlers.NewCountdownHandler(clock),

		ListSubmissionsHandler:        handlers.NewListSubmissionsHandler(logger, reviewer),
		GetSubmissionHandler:          handlers.NewGetSubmissionHandler(logger, reviewer),
		UpdateSubmissionStatusHandler: handlers.NewUpdateSubmissionStatusHandler(logger, reviewer),

		HealthHandler:     handlers.NewHealthHandler(logger, c.healthChecks()),
		GetVersionHandler: handlers.NewGetVersionHandler(),
	}

	return c, nil
}

func (c *Container) submissionRepository() (submission.Repository, error) {
	if c.DB != nil {
		return repository.NewSubmissionRepository(c.DB.DB), nil
	}
	c.Logger.Warn("database disabled, submissions are kept in memory")
	return repository.NewMemorySubmissionRepository(), nil
}

func (c *Container) rsvpRepository() (rsvp.Repository, error) {
	switch backend := c.Config.RSVP.Backend; backend {
	case BackendMemory, "":
		return repository.NewMemoryRSVPRepository(c.Config.RSVP.Initial), nil
	case BackendRedis:
		if c.Redis == nil {
			return nil, fmt.Errorf("rsvp backend %q requires redis.enabled", backend)
		}
		return repository.NewRedisRSVPRepository(c.Redis, c.Config.RSVP.Key), nil
	case BackendPostgres:
		if c.DB == nil {
			return nil, fmt.Errorf("rsvp backend %q requires database.enabled", backend)
		}
		return repository.NewPostgresRSVPRepository(c.DB.DB), nil
	default:
		return nil, fmt.Errorf("unknown rsvp backend: %s", backend)
	}
}

// checkoutEventRepository keeps dedupe markers next to the counter they guard.
func (c *Container) checkoutEventRepository() (checkout.EventRepository, error) {
	ttl := c.Config.Checkout.DedupeTTL
	switch {
	case c.Redis != nil:
		return repository.NewRedisCheckoutEventRepository(c.Redis, ttl), nil
	case c.DB != nil:
		return repository.NewPostgresCheckoutEventRepository(c.DB.DB), nil
	default:
		return repository.NewMemoryCheckoutEventRepository(ttl), nil
	}
}

func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.Redis.Ping(ctx).Err()
		}
	}
	if c.DB != nil {
		checks["postgres"] = func(ctx context.Context) error {
			sqlDB, err := c.DB.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	return checks
}

func buildExporters(logger *logrus.Logger, configs []config.ExporterConfig) ([]domaintelemetry.Exporter, error) {
	locator := infratelemetry.NewExporterLocator(
		infratelemetry.WithExporter(logexporter.ExporterName, logexporter.NewLogExporter(logger)),
		infratelemetry.WithExporter(kafka.ExporterName, kafka.NewKafkaExporter()),
	)
	domainConfigs := make([]domaintelemetry.ExporterConfig, 0, len(configs))
	for _, ec := range configs {
		domainConfigs = append(domainConfigs, domaintelemetry.ExporterConfig{
			Name:     ec.Name,
			Settings: ec.Settings,
		})
	}
	exporters, err := apptelemetry.NewExportersBuilder(locator).Build(domainConfigs)
	if err != nil {
		return nil, fmt.Errorf("failed to build event exporters: %w", err)
	}
	return exporters, nil
}

// Close drains background work and releases connections.
func (c *Container) Close() {
	if c.Worker != nil {
		c.Worker.Shutdown(workerShutdownTimeout)
	}
	if c.Publisher != nil {
		c.Publisher.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.WithError(err).Warn("failed to close redis client")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.WithError(err).Warn("failed to close database")
		}
	}
}
