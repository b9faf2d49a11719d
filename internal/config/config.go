package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	API       APIConfig       `mapstructure:"api"`
	Session   SessionConfig   `mapstructure:"session"`
	Redis     RedisConfig
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Judge     JudgeConfig     `mapstructure:"judge"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// APIConfig 远端 Python-101 后端
type APIConfig struct {
	BaseURL          string  `mapstructure:"base_url"`
	TimeoutSeconds   int     `mapstructure:"timeout_seconds"`
	ExecuteTimeLimit float64 `mapstructure:"execute_time_limit"`
}

func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type SessionConfig struct {
	CookieName string `mapstructure:"cookie_name"`
	Secret     string `mapstructure:"secret"`
	TTLHours   int    `mapstructure:"ttl_hours"`
	Storage    string `mapstructure:"storage"`
	Secure     bool   `mapstructure:"secure"`
}

func (c SessionConfig) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.TTLHours) * time.Hour
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type WorkspaceConfig struct {
	CelebrationMS int `mapstructure:"celebration_ms"`
	IdleMinutes   int `mapstructure:"idle_minutes"`
	SweepSeconds  int `mapstructure:"sweep_seconds"`
}

func (c WorkspaceConfig) CelebrationWindow() time.Duration {
	if c.CelebrationMS <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.CelebrationMS) * time.Millisecond
}

func (c WorkspaceConfig) IdleTimeout() time.Duration {
	if c.IdleMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.IdleMinutes) * time.Minute
}

func (c WorkspaceConfig) SweepInterval() time.Duration {
	if c.SweepSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.SweepSeconds) * time.Second
}

type JudgeConfig struct {
	SystemPrompt string `mapstructure:"system_prompt"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

const (
	SessionStorageRedis  = "redis"
	SessionStorageMemory = "memory"
)

func LoadConfig(path string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("PYTHON101")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// API
	v.BindEnv("api.base_url", "API_BASE_URL")
	v.BindEnv("api.timeout_seconds", "API_TIMEOUT_SECONDS")

	// Session
	v.BindEnv("session.secret", "SESSION_SECRET")
	v.BindEnv("session.storage", "SESSION_STORAGE")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5173")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("api.base_url", "http://127.0.0.1:8000")
	v.SetDefault("api.timeout_seconds", 10)
	v.SetDefault("session.cookie_name", "python101_sid")
	v.SetDefault("session.storage", SessionStorageRedis)
	v.SetDefault("session.ttl_hours", 720)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("workspace.celebration_ms", 3000)
	v.SetDefault("workspace.idle_minutes", 30)
	v.SetDefault("workspace.sweep_seconds", 60)
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("log.path", "logs/app.log")
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode)
	}
	switch c.Session.Storage {
	case SessionStorageRedis, SessionStorageMemory:
	default:
		return fmt.Errorf("session.storage must be %q or %q, got %q", SessionStorageRedis, SessionStorageMemory, c.Session.Storage)
	}
	// 生产环境校验会话密钥强度
	if c.Server.Mode == "release" && len(c.Session.Secret) < 32 {
		return fmt.Errorf("session secret is too short (%d chars), must be at least 32 characters in release mode", len(c.Session.Secret))
	}
	return nil
}
