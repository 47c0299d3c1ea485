package config

import "time"

type Config struct {
	Env   string      `yaml:"env" validate:"required,oneof=development production test"`
	Log   LogConfig   `yaml:"log"`
	HTTP  HTTPConfig  `yaml:"http"`
	DB    DBConfig    `yaml:"db"`
	Cache CacheConfig `yaml:"cache"`
	Otel  OtelConfig  `yaml:"otel"`

	Metrics MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type DBConfig struct {
	// Driver is "postgres" or "sqlite". sqlite is meant for local runs and tests.
	Driver   string `yaml:"driver" validate:"required,oneof=postgres sqlite"`
	Host     string `yaml:"host" validate:"required_if=Driver postgres"`
	Port     string `yaml:"port" validate:"required_if=Driver postgres"`
	User     string `yaml:"user" validate:"required_if=Driver postgres"`
	Password string `yaml:"password"`
	Name     string `yaml:"name" validate:"required_if=Driver postgres"`
	SSLMode  string `yaml:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`

	SQLitePath string `yaml:"sqlite_path" validate:"required_if=Driver sqlite"`

	// AutoMigrate creates the read-model tables on boot. Off by default since
	// the tables are owned by the enrollment system of record.
	AutoMigrate   bool          `yaml:"auto_migrate"`
	SlowThreshold time.Duration `yaml:"slow_threshold" validate:"gte=0"`
}

type CacheConfig struct {
	// RedisAddr empty disables caching. With an address set, TTL must be
	// positive; a zero expiry would keep rows in Redis forever.
	RedisAddr string        `yaml:"redis_addr"`
	RedisDB   int           `yaml:"redis_db" validate:"gte=0"`
	TTL       time.Duration `yaml:"ttl" validate:"required_with=RedisAddr,gte=0"`
	KeyPrefix string        `yaml:"key_prefix"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Exporter    string  `yaml:"exporter" validate:"omitempty,oneof=stdout otlp"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio" validate:"gte=0,lte=1"`
}

// MetricsConfig exposes Prometheus text metrics on GET /metrics when enabled.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

func defaultConfig() *Config {
	return &Config{
		Env: "development",
		Log: LogConfig{Level: "debug"},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 15 * time.Second,
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:5173",
			},
		},
		DB: DBConfig{
			Driver:        "postgres",
			Host:          "localhost",
			Port:          "5432",
			User:          "postgres",
			Name:          "enrollment",
			SSLMode:       "disable",
			SQLitePath:    "file::memory:?cache=shared",
			SlowThreshold: time.Second,
		},
		Cache: CacheConfig{
			TTL:       30 * time.Second,
			KeyPrefix: "eligibility",
		},
		Otel: OtelConfig{
			ServiceName: "enrollment-eligibility",
			Exporter:    "stdout",
			SampleRatio: 0.1,
		},
	}
}
