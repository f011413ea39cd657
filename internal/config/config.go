package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Session   SessionConfig   `mapstructure:"session"`
	Fixtures  FixturesConfig  `mapstructure:"fixtures"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	Port               string        `mapstructure:"port"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"` // postgres | sqlite
	DSN         string `mapstructure:"dsn"`
	MaxRetries  int    `mapstructure:"max_retries"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	MaxRetries int           `mapstructure:"max_retries"`
	ListTTL    time.Duration `mapstructure:"list_ttl"`
}

type KafkaConfig struct {
	Broker        string        `mapstructure:"broker"`
	ConsumerGroup string        `mapstructure:"consumer_group"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
}

type SessionConfig struct {
	Secret      string `mapstructure:"secret"`
	LandingPath string `mapstructure:"landing_path"`
	PolicyPath  string `mapstructure:"policy_path"`
}

type FixturesConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Delay   time.Duration `mapstructure:"delay"`
	Seed    int64         `mapstructure:"seed"`
}

type DashboardConfig struct {
	VacationDaysPerYear int    `mapstructure:"vacation_days_per_year"`
	SavingsFundLimit    int64  `mapstructure:"savings_fund_limit"` // cents
	LateAfter           string `mapstructure:"late_after"`         // HH:MM
}

type StorageConfig struct {
	DocumentDir string `mapstructure:"document_dir"`
	MaxUpload   int64  `mapstructure:"max_upload"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configPath when it exists and overlays environment variables.
// An empty configPath means environment and defaults only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Server.CORSAllowedOrigins = splitList(cfg.Server.CORSAllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_retries", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.max_retries", 5)
	v.SetDefault("redis.list_ttl", 5*time.Minute)

	v.SetDefault("kafka.consumer_group", "hr-portal-notifications")
	v.SetDefault("kafka.poll_interval", 3*time.Second)

	v.SetDefault("session.landing_path", "/")

	v.SetDefault("fixtures.enabled", false)
	v.SetDefault("fixtures.delay", 500*time.Millisecond)
	v.SetDefault("fixtures.seed", 42)

	v.SetDefault("dashboard.vacation_days_per_year", 12)
	v.SetDefault("dashboard.savings_fund_limit", 1500000)
	v.SetDefault("dashboard.late_after", "09:15")

	v.SetDefault("storage.document_dir", "data/documents")
	v.SetDefault("storage.max_upload", 10<<20)

	v.SetDefault("logger.level", "debug")
}

func bindEnv(v *viper.Viper) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	_ = v.BindEnv("database.driver", "DATABASE_DRIVER")
	_ = v.BindEnv("database.dsn", "DATABASE_DSN", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("kafka.broker", "KAFKA_BROKER")
	_ = v.BindEnv("session.secret", "NEXTAUTH_SECRET")
	_ = v.BindEnv("session.landing_path", "LANDING_PATH")
	_ = v.BindEnv("session.policy_path", "RBAC_POLICY_PATH")
	_ = v.BindEnv("fixtures.enabled", "FIXTURES_ENABLED")
	_ = v.BindEnv("fixtures.delay", "FIXTURES_DELAY")
	_ = v.BindEnv("storage.document_dir", "DOCUMENT_DIR")
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
}

func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return errors.New("NEXTAUTH_SECRET is required")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	if c.Dashboard.VacationDaysPerYear < 0 {
		return errors.New("dashboard.vacation_days_per_year cannot be negative")
	}
	if _, err := time.Parse("15:04", c.Dashboard.LateAfter); err != nil {
		return fmt.Errorf("dashboard.late_after must be HH:MM: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// splitList accepts both a yaml list and a comma separated env value.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
