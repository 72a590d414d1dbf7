package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	Env      string `env:"ENV" env-default:"development"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	MongoURI        string `env:"MONGO_URI" env-required:"true"`
	MongoDatabase   string `env:"MONGO_DATABASE" env-default:"review_portal"`
	PostgresConnStr string `env:"POSTGRES_CONN_STR" env-required:"true"`

	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	JWTTTL    time.Duration `env:"JWT_TTL" env-default:"24h"`

	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH"`
	FirebaseStorageBucket   string `env:"FIREBASE_STORAGE_BUCKET"`
	UploadDir               string `env:"UPLOAD_DIR" env-default:"./uploads"`
	PublicBaseURL           string `env:"PUBLIC_BASE_URL" env-default:"http://localhost:8080"`

	MetricsPort         string        `env:"METRICS_PORT" env-default:"9090"`
	DashboardCacheTTL   time.Duration `env:"DASHBOARD_CACHE_TTL" env-default:"10s"`
	OrphanSweepInterval time.Duration `env:"ORPHAN_SWEEP_INTERVAL" env-default:"0"`
	CORSAllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.DashboardCacheTTL < 0 {
		errs = append(errs, errors.New("DASHBOARD_CACHE_TTL must not be negative"))
	}
	if c.OrphanSweepInterval < 0 {
		errs = append(errs, errors.New("ORPHAN_SWEEP_INTERVAL must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// UploadsURL is the public prefix of files kept in UploadDir.
func (c *Config) UploadsURL() string {
	return strings.TrimRight(c.PublicBaseURL, "/") + "/uploads"
}
