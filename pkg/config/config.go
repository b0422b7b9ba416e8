package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type MetricsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	EnableLatency bool `mapstructure:"enable_latency"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	RSVP      RSVPConfig      `mapstructure:"rsvp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Checkout  CheckoutConfig  `mapstructure:"checkout"`
	Challenge ChallengeConfig `mapstructure:"challenge"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Mail      MailConfig      `mapstructure:"mail"`
	Events    EventsConfig    `mapstructure:"events"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	Host        string `mapstructure:"host"`
	BodyLimit   int    `mapstructure:"body_limit"`
	SecretKey   string `mapstructure:"secret_key"`
}

type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type SheetsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	WebhookURL         string        `mapstructure:"webhook_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
	BreakerMaxFailures int           `mapstructure:"breaker_max_failures"`
}

type RSVPConfig struct {
	// Backend is one of "memory", "redis" or "postgres".
	Backend string `mapstructure:"backend"`
	Key     string `mapstructure:"key"`
	Initial int64  `mapstructure:"initial"`
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

type CheckoutConfig struct {
	// Provider is either "hmac" or "stripe".
	Provider        string        `mapstructure:"provider"`
	Secret          string        `mapstructure:"secret"`
	SignatureHeader string        `mapstructure:"signature_header"`
	DedupeTTL       time.Duration `mapstructure:"dedupe_ttl"`
	PlanID          string        `mapstructure:"plan_id"`
}

type ChallengeConfig struct {
	StartsAt string `mapstructure:"starts_at"`
	Days     int    `mapstructure:"days"`
}

// Start parses StartsAt as RFC3339.
func (c ChallengeConfig) Start() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, c.StartsAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid challenge.starts_at %q: %w", c.StartsAt, err)
	}
	return t, nil
}

type AdminConfig struct {
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type MailConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Domain  string `mapstructure:"domain"`
	APIKey  string `mapstructure:"api_key"`
	Sender  string `mapstructure:"sender"`
}

type EventsConfig struct {
	Workers   int              `mapstructure:"workers"`
	QueueSize int              `mapstructure:"queue_size"`
	Exporters []ExporterConfig `mapstructure:"exporters"`
}

type ExporterConfig struct {
	Name     string                 `mapstructure:"name"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

var globalConfig Config

func Load(configPath string) error {
	setDefaultValues()
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
		// environment and defaults only
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

// setDefaultValues registers every key so AutomaticEnv can override it
// even when the key is absent from the yaml file.
func setDefaultValues() {
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.metrics_port", 9090)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.body_limit", 1024*1024)
	viper.SetDefault("server.secret_key", "")

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.enable_latency", true)

	viper.SetDefault("cors.allow_origins", []string{"*"})
	viper.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "OPTIONS"})
	viper.SetDefault("cors.allow_credentials", false)
	viper.SetDefault("cors.max_age", 600)

	viper.SetDefault("database.enabled", false)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.name", "challenge")
	viper.SetDefault("database.sslmode", "disable")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.tls", false)

	viper.SetDefault("sheets.enabled", false)
	viper.SetDefault("sheets.webhook_url", "")
	viper.SetDefault("sheets.timeout", 10*time.Second)
	viper.SetDefault("sheets.breaker_timeout", 30*time.Second)
	viper.SetDefault("sheets.breaker_max_failures", 5)

	viper.SetDefault("rsvp.backend", "memory")
	viper.SetDefault("rsvp.key", "challenge:rsvp:count")
	viper.SetDefault("rsvp.initial", 0)

	viper.SetDefault("rate_limit.enabled", false)
	viper.SetDefault("rate_limit.limit", 10)
	viper.SetDefault("rate_limit.window", time.Minute)

	viper.SetDefault("checkout.provider", "hmac")
	viper.SetDefault("checkout.secret", "")
	viper.SetDefault("checkout.signature_header", "X-Whop-Signature")
	viper.SetDefault("checkout.dedupe_ttl", 7*24*time.Hour)
	viper.SetDefault("checkout.plan_id", "plan_6qlhHFelOu6cx")

	viper.SetDefault("challenge.starts_at", "2026-01-26T21:00:00Z")
	viper.SetDefault("challenge.days", 5)

	viper.SetDefault("admin.token_ttl", 24*time.Hour)

	viper.SetDefault("mail.enabled", false)
	viper.SetDefault("mail.domain", "")
	viper.SetDefault("mail.api_key", "")
	viper.SetDefault("mail.sender", "")

	viper.SetDefault("events.workers", 2)
	viper.SetDefault("events.queue_size", 1000)
}

func GetConfig() *Config {
	return &globalConfig
}
