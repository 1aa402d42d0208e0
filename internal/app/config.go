package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/brainsync-backend/internal/data/db"
	"github.com/yungbote/brainsync-backend/internal/modules/ai/retrieval"
	"github.com/yungbote/brainsync-backend/internal/observability"
	"github.com/yungbote/brainsync-backend/internal/platform/envutil"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
	"github.com/yungbote/brainsync-backend/internal/platform/openai"
	"github.com/yungbote/brainsync-backend/internal/realtime/bus"
	"github.com/yungbote/brainsync-backend/internal/services"
)

type ProviderConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	EmbedModel     string `yaml:"embed_model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

type OtelSettings struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Config is resolved from defaults, then the YAML file at $CONFIG_FILE, then the environment.
type Config struct {
	Port        string   `yaml:"port"`
	Env         string   `yaml:"env"`
	LogMode     string   `yaml:"log_mode"`
	ServiceName string   `yaml:"service_name"`
	CORSOrigins []string `yaml:"cors_origins"`

	JWTSecret   string `yaml:"jwt_secret"`
	JWTTTLHours int    `yaml:"jwt_ttl_hours"`
	BcryptCost  int    `yaml:"bcrypt_cost"`

	DBDriver    string `yaml:"db_driver"`
	DatabaseURL string `yaml:"database_url"`
	SQLitePath  string `yaml:"sqlite_path"`

	OpenAI ProviderConfig `yaml:"openai"`
	Gemini ProviderConfig `yaml:"gemini"`

	RetrieverMode string `yaml:"retriever_mode"`
	RetrievalTopK int    `yaml:"retrieval_top_k"`

	RedisAddr    string `yaml:"redis_addr"`
	RedisChannel string `yaml:"redis_channel"`

	MetricsEnabled bool         `yaml:"metrics_enabled"`
	Otel           OtelSettings `yaml:"otel"`
}

func DefaultConfig() Config {
	return Config{
		Port:        "5000",
		Env:         "development",
		LogMode:     "development",
		ServiceName: "brainsync-backend",
		JWTTTLHours: int(services.DefaultAccessTTL / time.Hour),
		BcryptCost:  services.DefaultBcryptCost,
		DBDriver:    db.DriverPostgres,
		SQLitePath:  "brainsync.db",
		OpenAI: ProviderConfig{
			Model:          openai.DefaultOpenAIModel,
			TimeoutSeconds: int(openai.DefaultTimeout / time.Second),
		},
		Gemini: ProviderConfig{
			BaseURL:        openai.DefaultGeminiBaseURL,
			Model:          openai.DefaultGeminiModel,
			EmbedModel:     openai.DefaultGeminiEmbedModel,
			TimeoutSeconds: int(openai.DefaultTimeout / time.Second),
		},
		RetrievalTopK:  retrieval.DefaultK,
		RedisChannel:   bus.DefaultChannel,
		MetricsEnabled: true,
		Otel:           OtelSettings{SampleRatio: 1},
	}
}

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := DefaultConfig()

	if path := envutil.String("CONFIG_FILE", "", log); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.applyEnv(log)
	if strings.TrimSpace(cfg.JWTSecret) == "" && !cfg.IsProduction() {
		secret, err := ephemeralSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.JWTSecret = secret
		log.Warn("JWT_SECRET unset; using a random per-process secret, tokens will not survive a restart")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ephemeralSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate JWT secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (c *Config) applyEnv(log *logger.Logger) {
	c.Port = envutil.String("PORT", c.Port, log)
	c.Env = envutil.String("APP_ENV", c.Env, log)
	c.LogMode = envutil.String("LOG_MODE", c.LogMode, log)
	c.ServiceName = envutil.String("OTEL_SERVICE_NAME", c.ServiceName, log)
	c.CORSOrigins = envutil.List("CORS_ORIGINS", c.CORSOrigins, log)

	c.JWTSecret = envutil.String("JWT_SECRET", c.JWTSecret, log)
	c.JWTTTLHours = envutil.Int("JWT_TTL_HOURS", c.JWTTTLHours, log)
	c.BcryptCost = envutil.Int("BCRYPT_COST", c.BcryptCost, log)

	c.DBDriver = envutil.String("DB_DRIVER", c.DBDriver, log)
	c.DatabaseURL = envutil.String("DATABASE_URL", c.DatabaseURL, log)
	c.SQLitePath = envutil.String("SQLITE_PATH", c.SQLitePath, log)

	c.OpenAI.APIKey = envutil.String("OPENAI_API_KEY", c.OpenAI.APIKey, log)
	c.OpenAI.BaseURL = envutil.String("OPENAI_BASE_URL", c.OpenAI.BaseURL, log)
	c.OpenAI.Model = envutil.String("OPENAI_MODEL", c.OpenAI.Model, log)
	c.OpenAI.TimeoutSeconds = envutil.Int("OPENAI_TIMEOUT_SECONDS", c.OpenAI.TimeoutSeconds, log)

	c.Gemini.APIKey = envutil.String("GEMINI_API_KEY", c.Gemini.APIKey, log)
	c.Gemini.BaseURL = envutil.String("GEMINI_BASE_URL", c.Gemini.BaseURL, log)
	c.Gemini.Model = envutil.String("GEMINI_MODEL", c.Gemini.Model, log)
	c.Gemini.EmbedModel = envutil.String("GEMINI_EMBED_MODEL", c.Gemini.EmbedModel, log)
	c.Gemini.TimeoutSeconds = envutil.Int("GEMINI_TIMEOUT_SECONDS", c.Gemini.TimeoutSeconds, log)

	c.RetrieverMode = envutil.String("RETRIEVER_MODE", c.RetrieverMode, log)
	c.RetrievalTopK = envutil.Int("RETRIEVAL_TOP_K", c.RetrievalTopK, log)

	c.RedisAddr = envutil.String("REDIS_ADDR", c.RedisAddr, log)
	c.RedisChannel = envutil.String("REDIS_CHANNEL", c.RedisChannel, log)

	c.MetricsEnabled = envutil.Bool("METRICS_ENABLED", c.MetricsEnabled, log)
	c.Otel.Enabled = envutil.Bool("OTEL_ENABLED", c.Otel.Enabled, log)
	c.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", c.Otel.Endpoint, log)
	c.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", c.Otel.Headers, log)
	c.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", c.Otel.Insecure, log)
}

func (c Config) IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "prod", "production":
		return true
	}
	return false
}

// Retriever returns the configured mode, defaulting by driver.
func (c Config) Retriever() string {
	if strings.TrimSpace(c.RetrieverMode) != "" {
		return strings.ToLower(strings.TrimSpace(c.RetrieverMode))
	}
	if strings.EqualFold(c.DBDriver, db.DriverSQLite) {
		return retrieval.ModeScan
	}
	return retrieval.ModePGVector
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.DBDriver)) {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	mode, err := retrieval.ParseMode(c.Retriever())
	if err != nil {
		return err
	}
	if mode == retrieval.ModePGVector && strings.EqualFold(c.DBDriver, db.DriverSQLite) {
		return fmt.Errorf("retriever mode %q needs postgres", mode)
	}
	if c.RetrievalTopK <= 0 {
		return fmt.Errorf("RETRIEVAL_TOP_K must be positive")
	}
	if c.JWTTTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive")
	}
	return nil
}

func (c Config) OtelConfig(version string) observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: c.ServiceName,
		Environment: c.Env,
		Version:     version,
		Endpoint:    c.Otel.Endpoint,
		Headers:     observability.ParseHeaders(c.Otel.Headers),
		Insecure:    c.Otel.Insecure,
		SampleRatio: c.Otel.SampleRatio,
	}
}
