package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/enrollment-eligibility/internal/platform/envutil"
)

const (
	configPathEnv = "ELIGIBILITY_CONFIG_PATH"
	envFileEnv    = "ELIGIBILITY_ENV_FILE"
)

// Load resolves configuration in order: defaults, YAML file, .env file, process
// environment. The result is validated before it is returned.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := defaultConfig()

	cfgPath, explicit := envutil.String(configPathEnv)
	if !explicit {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)
	normalize(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv() error {
	path, ok := envutil.String(envFileEnv)
	if !ok {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v, ok := envutil.String("LOG_MODE"); ok {
		cfg.Env = v
	}
	if v, ok := envutil.String("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}

	if v, ok := envutil.String("HTTP_ADDR"); ok {
		cfg.HTTP.Addr = v
	} else if v, ok := envutil.String("PORT"); ok {
		cfg.HTTP.Addr = ":" + v
	}
	cfg.HTTP.ShutdownTimeout = envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout)
	if v, ok := envutil.String("CORS_ALLOWED_ORIGINS"); ok {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}

	if v, ok := envutil.String("DB_DRIVER"); ok {
		cfg.DB.Driver = v
	}
	if v, ok := envutil.String("POSTGRES_HOST"); ok {
		cfg.DB.Host = v
	}
	if v, ok := envutil.String("POSTGRES_PORT"); ok {
		cfg.DB.Port = v
	}
	if v, ok := envutil.String("POSTGRES_USER"); ok {
		cfg.DB.User = v
	}
	if v, ok := envutil.String("POSTGRES_PASSWORD"); ok {
		cfg.DB.Password = v
	}
	if v, ok := envutil.String("POSTGRES_NAME"); ok {
		cfg.DB.Name = v
	}
	if v, ok := envutil.String("POSTGRES_SSLMODE"); ok {
		cfg.DB.SSLMode = v
	}
	if v, ok := envutil.String("SQLITE_PATH"); ok {
		cfg.DB.SQLitePath = v
	}
	cfg.DB.AutoMigrate = envutil.Bool("DB_AUTOMIGRATE", cfg.DB.AutoMigrate)
	cfg.DB.SlowThreshold = envutil.Duration("DB_SLOW_THRESHOLD", cfg.DB.SlowThreshold)

	if v, ok := envutil.String("REDIS_ADDR"); ok {
		cfg.Cache.RedisAddr = v
	}
	cfg.Cache.RedisDB = envutil.Int("REDIS_DB", cfg.Cache.RedisDB)
	cfg.Cache.TTL = envutil.Duration("CACHE_TTL", cfg.Cache.TTL)
	if v, ok := envutil.String("CACHE_KEY_PREFIX"); ok {
		cfg.Cache.KeyPrefix = v
	}

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	if v, ok := envutil.String("OTEL_SERVICE_NAME"); ok {
		cfg.Otel.ServiceName = v
	}
	if v, ok := envutil.String("OTEL_EXPORTER"); ok {
		cfg.Otel.Exporter = v
	}
	if v, ok := envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT"); ok {
		cfg.Otel.Endpoint = v
	}
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Otel.SampleRatio)

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)
}

func normalize(cfg *Config) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	switch cfg.Env {
	case "prod":
		cfg.Env = "production"
	case "dev", "":
		cfg.Env = "development"
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	cfg.Otel.Exporter = strings.ToLower(strings.TrimSpace(cfg.Otel.Exporter))
	cfg.Cache.KeyPrefix = strings.Trim(strings.TrimSpace(cfg.Cache.KeyPrefix), ":")
}

// Validate checks struct constraints and returns the first failures joined
// into one error.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
