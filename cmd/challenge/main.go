package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/whopu/challenge/pkg/config"
	"github.com/whopu/challenge/pkg/dependency_container"
	"github.com/whopu/challenge/pkg/infra/database"
	"github.com/whopu/challenge/pkg/infra/jwt"
	infraLogger "github.com/whopu/challenge/pkg/infra/logger"
	_ "github.com/whopu/challenge/pkg/infra/migrations"
	"github.com/whopu/challenge/pkg/server"
	"github.com/whopu/challenge/pkg/server/router"
	"github.com/whopu/challenge/pkg/version"
)

const migrationTimeout = 2 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           version.AppName,
		Short:         "5 Day Challenge site API",
		Version:       version.GetInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./config", "directory holding config.yaml")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newMigrateCmd(&configPath))
	root.AddCommand(newAdminTokenCmd(&configPath))
	return root
}

// bootstrap loads the env file, the logger and the configuration shared by
// every command.
func bootstrap(configPath, service string) (*config.Config, *logrus.Logger, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger(service)
	if err := config.Load(configPath); err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return config.GetConfig(), logger, nil
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(*configPath, "api")
			if err != nil {
				return err
			}

			var db *database.DB
			if cfg.Database.Enabled {
				db, err = openDB(cfg, logger)
				if err != nil {
					return err
				}
				if err := db.Migrate(migrationTimeout); err != nil {
					_ = db.Close()
					return err
				}
			}

			container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
				Cfg:    cfg,
				Logger: logger,
				DB:     db,
			})
			if err != nil {
				if db != nil {
					_ = db.Close()
				}
				return err
			}
			defer container.Close()

			srv := server.NewBaseServer(cfg, logger).WithRouters(
				router.NewAPIRouter(container.MiddlewareTransport, container.HandlerTransport),
				router.NewAdminRouter(container.MiddlewareTransport, container.HandlerTransport),
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger.WithField("version", version.Version).Info("challenge api starting")
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			logger.Info("server exited gracefully")
			return nil
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(*configPath, "migrate")
			if err != nil {
				return err
			}
			db, err := openDB(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if dryRun {
				pending, err := database.NewMigrationsManager(db.DB).Pending()
				if err != nil {
					return err
				}
				for _, id := range pending {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}
			return db.Migrate(migrationTimeout)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list pending migrations without applying them")
	return cmd
}

func newAdminTokenCmd(configPath *string) *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "Print a signed admin bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := bootstrap(*configPath, "admin-token")
			if err != nil {
				return err
			}
			token, err := jwt.NewJwtManager(cfg.Server.SecretKey, cfg.Admin.TokenTTL).CreateToken(subject)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "reviewer name stored in the token")
	return cmd
}

func openDB(cfg *config.Config, logger *logrus.Logger) (*database.DB, error) {
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
	return db, nil
}
