package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Navigation   NavigationConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds connection values for the optional read-only catalog.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret         string
	BcryptCost        int
	LoginLatencyMs    int
	DemoUserEmail     string
	DemoUserPassword  string
	DemoAdminEmail    string
	DemoAdminPassword string
}

// NavigationConfig controls the view state controller.
type NavigationConfig struct {
	// Mode is "guarded" or "permissive".
	Mode              string
	SessionStore      string
	SessionTTLMinutes int
	// IdleEvictMinutes drops untouched controllers from memory; their
	// snapshots stay in the session store.
	IdleEvictMinutes     int
	SweepIntervalSeconds int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "healthwatch-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("AUTH_JWT_SECRET", "dev-secret"),
			BcryptCost:        getEnvAsInt("AUTH_BCRYPT_COST", 12),
			LoginLatencyMs:    getEnvAsInt("AUTH_LOGIN_LATENCY_MS", 1000),
			DemoUserEmail:     getEnv("AUTH_DEMO_USER_EMAIL", "citizen@healthwatch.local"),
			DemoUserPassword:  getEnv("AUTH_DEMO_USER_PASSWORD", "healthwatch"),
			DemoAdminEmail:    getEnv("AUTH_DEMO_ADMIN_EMAIL", "authority@healthwatch.local"),
			DemoAdminPassword: getEnv("AUTH_DEMO_ADMIN_PASSWORD", "healthwatch"),
		},
		Navigation: NavigationConfig{
			Mode:                 getEnv("NAV_MODE", "guarded"),
			SessionStore:         getEnv("NAV_SESSION_STORE", SessionStoreMemory),
			SessionTTLMinutes:    getEnvAsInt("NAV_SESSION_TTL_MINUTES", 120),
			IdleEvictMinutes:     getEnvAsInt("NAV_IDLE_EVICT_MINUTES", 15),
			SweepIntervalSeconds: getEnvAsInt("NAV_SWEEP_INTERVAL_SECONDS", 60),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@healthwatch.local"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if cfg.Navigation.Mode != "guarded" && cfg.Navigation.Mode != "permissive" {
		return nil, fmt.Errorf("invalid NAV_MODE %q", cfg.Navigation.Mode)
	}
	if cfg.Navigation.SessionStore != SessionStoreMemory && cfg.Navigation.SessionStore != SessionStoreRedis {
		return nil, fmt.Errorf("invalid NAV_SESSION_STORE %q", cfg.Navigation.SessionStore)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// LoginLatency returns the simulated authentication round trip.
func (a AuthConfig) LoginLatency() time.Duration {
	if a.LoginLatencyMs <= 0 {
		return 0
	}
	return time.Duration(a.LoginLatencyMs) * time.Millisecond
}

// SessionTTL returns how long idle session snapshots are kept.
func (n NavigationConfig) SessionTTL() time.Duration {
	if n.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(n.SessionTTLMinutes) * time.Minute
}

// IdleEvict returns how long a controller may stay untouched in memory.
func (n NavigationConfig) IdleEvict() time.Duration {
	return time.Duration(n.IdleEvictMinutes) * time.Minute
}

// SweepInterval returns how often idle controllers are evicted.
func (n NavigationConfig) SweepInterval() time.Duration {
	return time.Duration(n.SweepIntervalSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
