// Package config loads the relay configuration from the environment.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverBadger   = "badger"
)

// Config holds every environment-driven setting of the relay.
type Config struct {
	Host string `envconfig:"RELAY_HOST" default:""`
	Port int    `envconfig:"RELAY_PORT" default:"3001" validate:"min=1,max=65535"`

	OfflineMode bool   `envconfig:"OFFLINE_MODE" default:"false"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres" validate:"oneof=postgres sqlite badger"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	BadgerPath  string `envconfig:"BADGER_PATH"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0" validate:"min=0"`
	RedisChannel  string `envconfig:"REDIS_CHANNEL" default:"relay:events"`

	JWTSecret         string `envconfig:"AUTH_JWT_SECRET"`
	EnforceRoles      bool   `envconfig:"ENFORCE_ROLES" default:"false"`
	StrictTransitions bool   `envconfig:"STRICT_STATUS_TRANSITIONS" default:"false"`

	TelegramToken  string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `envconfig:"TELEGRAM_CHAT_ID"`

	LogLevel       string        `envconfig:"LOG_LEVEL" default:"INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	PersistTimeout time.Duration `envconfig:"PERSIST_TIMEOUT" default:"5s" validate:"gt=0"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

var validate = validator.New()

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Offline reports whether the backing store must be bypassed. Absence of the
// credential required by the selected driver forces offline mode.
func (c Config) Offline() bool {
	if c.OfflineMode {
		return true
	}
	switch c.StoreDriver {
	case DriverBadger:
		return c.BadgerPath == ""
	default:
		return c.DatabaseURL == ""
	}
}

// TelegramEnabled reports whether new reports are forwarded to responders.
func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// OriginAllowed checks a WebSocket Origin header against ALLOWED_ORIGINS.
func (c Config) OriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}
