package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const devJWTSecret = "dev-secret-change-in-production"

var (
	ErrJWTSecretRequired  = errors.New("JWT_SECRET must be set outside development")
	ErrDriveConfigMissing = errors.New("google drive credentials are incomplete")
	ErrUnknownDBDriver    = errors.New("DB_DRIVER must be mysql or sqlite")
)

// DriveConfig holds the OAuth2 credentials and destination folder for résumé uploads.
type DriveConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	FolderID     string
}

// Complete reports whether every credential needed for an upload is present.
func (d DriveConfig) Complete() bool {
	return d.ClientID != "" && d.ClientSecret != "" && d.RefreshToken != "" && d.FolderID != ""
}

func (d DriveConfig) empty() bool {
	return d.ClientID == "" && d.ClientSecret == "" && d.RefreshToken == "" && d.FolderID == ""
}

type Config struct {
	Port        string
	Env         string
	DBDriver    string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration

	Drive DriveConfig

	RabbitMQURL   string
	RabbitMQQueue string

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// Production reports whether the service runs with production settings (secure cookies, strict config).
func (c Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from defaults, an optional config.yaml in the working
// directory, and the environment, in increasing order of precedence.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("db_driver", "mysql")
	v.SetDefault("database_dsn", "root:password@tcp(127.0.0.1:3306)/jobboard?parseTime=true")
	v.SetDefault("jwt_expiry", 24*time.Hour)
	v.SetDefault("rabbitmq_queue", "jobboard_events")
	v.SetDefault("auth_rate_limit_rps", 5.0)
	v.SetDefault("auth_rate_limit_burst", 10)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:        v.GetString("port"),
		Env:         strings.ToLower(v.GetString("env")),
		DBDriver:    strings.ToLower(v.GetString("db_driver")),
		DatabaseDSN: v.GetString("database_dsn"),
		JWTSecret:   v.GetString("jwt_secret"),
		JWTExpiry:   v.GetDuration("jwt_expiry"),
		Drive: DriveConfig{
			ClientID:     v.GetString("google_client_id"),
			ClientSecret: v.GetString("google_client_secret"),
			RefreshToken: v.GetString("google_refresh_token"),
			FolderID:     v.GetString("google_drive_folder_id"),
		},
		RabbitMQURL:        v.GetString("rabbitmq_url"),
		RabbitMQQueue:      v.GetString("rabbitmq_queue"),
		AuthRateLimitRPS:   v.GetFloat64("auth_rate_limit_rps"),
		AuthRateLimitBurst: v.GetInt("auth_rate_limit_burst"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBDriver != "mysql" && c.DBDriver != "sqlite" {
		return ErrUnknownDBDriver
	}

	if c.JWTSecret == "" {
		if c.Env != "development" {
			return ErrJWTSecretRequired
		}
		slog.Warn("JWT_SECRET not set, using insecure development secret")
		c.JWTSecret = devJWTSecret
	}

	if !c.Drive.Complete() {
		if c.Production() {
			return ErrDriveConfigMissing
		}
		if !c.Drive.empty() {
			slog.Warn("google drive credentials are incomplete, résumé uploads disabled")
		}
	}

	if c.JWTExpiry <= 0 {
		c.JWTExpiry = 24 * time.Hour
	}
	return nil
}
