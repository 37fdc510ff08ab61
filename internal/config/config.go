package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Redis      RedisConfig      `mapstructure:"redis"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Callback   CallbackConfig   `mapstructure:"callback"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
	Debug       bool   `mapstructure:"debug"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AuthConfig holds the shared key clients must present in x-api-key
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
	TLS       bool   `mapstructure:"tls"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	TimeFormat string `mapstructure:"time_format"`
}

type LLMConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ClassifierConfig points at the exported model artifacts. Both files must
// exist for the trained tier; otherwise the keyword tier runs alone.
type ClassifierConfig struct {
	ModelPath      string `mapstructure:"model_path"`
	VectorizerPath string `mapstructure:"vectorizer_path"`
}

type CallbackConfig struct {
	URL         string        `mapstructure:"url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	WorkerCount int           `mapstructure:"worker_count"`
	QueueSize   int           `mapstructure:"queue_size"`
}

// Load reads configuration from file and environment variables. A missing
// config file is fine; defaults plus environment cover everything.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/honeytrap-lab")
	}

	setDefaults(v)

	// Environment variables
	v.SetEnvPrefix("HONEYTRAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested env vars explicitly (viper doesn't auto-bind nested struct fields)
	v.BindEnv("server.host", "HONEYTRAP_SERVER_HOST")
	v.BindEnv("server.http_port", "HONEYTRAP_SERVER_HTTP_PORT")
	v.BindEnv("auth.api_key", "HONEYTRAP_AUTH_API_KEY")
	v.BindEnv("redis.enabled", "HONEYTRAP_REDIS_ENABLED")
	v.BindEnv("redis.host", "HONEYTRAP_REDIS_HOST")
	v.BindEnv("redis.port", "HONEYTRAP_REDIS_PORT")
	v.BindEnv("redis.password", "HONEYTRAP_REDIS_PASSWORD")
	v.BindEnv("redis.tls", "HONEYTRAP_REDIS_TLS")
	v.BindEnv("ratelimit.enabled", "HONEYTRAP_RATELIMIT_ENABLED")
	v.BindEnv("llm.api_key", "HONEYTRAP_LLM_API_KEY")
	v.BindEnv("llm.model", "HONEYTRAP_LLM_MODEL")
	v.BindEnv("llm.base_url", "HONEYTRAP_LLM_BASE_URL")
	v.BindEnv("classifier.model_path", "HONEYTRAP_CLASSIFIER_MODEL_PATH")
	v.BindEnv("classifier.vectorizer_path", "HONEYTRAP_CLASSIFIER_VECTORIZER_PATH")
	v.BindEnv("callback.url", "HONEYTRAP_CALLBACK_URL")
	v.BindEnv("logger.level", "HONEYTRAP_LOGGER_LEVEL")
	v.BindEnv("logger.format", "HONEYTRAP_LOGGER_FORMAT")
	v.BindEnv("app.environment", "HONEYTRAP_APP_ENVIRONMENT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadDefault loads configuration with default path
func LoadDefault() (*Config, error) {
	return Load("")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "honeytrap-lab")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "2.0.0")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("auth.api_key", "hackathon-secret-key")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.key_prefix", "honeytrap:")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Content-Type", "x-api-key"})
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("ratelimit.requests_per_minute", 120)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.time_format", time.RFC3339)

	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetDefault("classifier.model_path", "models/classifier.json")
	v.SetDefault("classifier.vectorizer_path", "models/vectorizer.json")

	v.SetDefault("callback.url", "https://hackathon.guvi.in/api/updateHoneyPotFinalResult")
	v.SetDefault("callback.timeout", 10*time.Second)
	v.SetDefault("callback.worker_count", 2)
	v.SetDefault("callback.queue_size", 256)
}
