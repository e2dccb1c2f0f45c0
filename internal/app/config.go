package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/lessonquiz-backend/internal/platform/envutil"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultJWTSecret  = "defaultsecret"
	defaultSQLitePath = "lessonquiz.db"
	defaultDSN        = "host=localhost user=postgres password=postgres dbname=lessonquiz port=5432 sslmode=disable"
)

type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type QuizConfig struct {
	Provider       string         `yaml:"provider"`
	QuestionCount  int            `yaml:"question_count"`
	TimeoutSeconds int            `yaml:"timeout_seconds"`
	Gemini         ProviderConfig `yaml:"gemini"`
	OpenAI         ProviderConfig `yaml:"openai"`
}

func (q QuizConfig) Timeout() time.Duration {
	if q.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(q.TimeoutSeconds) * time.Second
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Port    string `yaml:"port"`
	LogMode string `yaml:"log_mode"`

	Database DatabaseConfig `yaml:"database"`

	JWTSecretKey          string `yaml:"jwt_secret_key"`
	AccessTokenTTLMinutes int    `yaml:"access_token_ttl_minutes"`

	Quiz QuizConfig `yaml:"quiz"`

	CORSAllowOrigins []string        `yaml:"cors_allow_origins"`
	Telemetry        TelemetryConfig `yaml:"telemetry"`
}

func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLMinutes) * time.Minute
}

func (c Config) Production() bool {
	switch strings.ToLower(c.LogMode) {
	case "prod", "production":
		return true
	}
	return false
}

func defaultConfig() Config {
	return Config{
		Port:    "8080",
		LogMode: "development",
		Database: DatabaseConfig{
			Driver: "postgres",
			URL:    defaultDSN,
		},
		JWTSecretKey:          defaultJWTSecret,
		AccessTokenTTLMinutes: 30,
		Quiz: QuizConfig{
			Provider:      ProviderGemini,
			QuestionCount: 3,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "lessonquiz",
			SampleRatio: 0.1,
		},
	}
}

// loadDotEnv reads .env when present. Variables already set win.
func loadDotEnv() (bool, error) {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// LoadConfig layers defaults, the YAML file named by CONFIG_FILE, and the
// environment, in that order.
func LoadConfig(log *logger.Logger) (Config, error) {
	loaded, err := loadDotEnv()
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if loaded {
		log.Info("Loaded .env file")
	}

	cfg := defaultConfig()
	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}
	applyEnv(&cfg)
	if strings.EqualFold(cfg.Database.Driver, "sqlite") && cfg.Database.URL == defaultDSN {
		cfg.Database.URL = defaultSQLitePath
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecretKey == defaultJWTSecret {
		log.Warn("JWT_SECRET_KEY not set, using development default")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = envutil.String("PORT", cfg.Port)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)

	cfg.Database.Driver = envutil.String("DATABASE_DRIVER", cfg.Database.Driver)
	cfg.Database.URL = envutil.String("DATABASE_URL", cfg.Database.URL)
	cfg.Database.MaxOpenConns = envutil.Int("DATABASE_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = envutil.Int("DATABASE_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)

	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.AccessTokenTTLMinutes = envutil.Int("ACCESS_TOKEN_TTL_MINUTES", cfg.AccessTokenTTLMinutes)

	cfg.Quiz.Provider = strings.ToLower(envutil.String("QUIZ_PROVIDER", cfg.Quiz.Provider))
	cfg.Quiz.QuestionCount = envutil.Int("QUIZ_QUESTION_COUNT", cfg.Quiz.QuestionCount)
	cfg.Quiz.TimeoutSeconds = envutil.Int("AI_TIMEOUT_SECONDS", cfg.Quiz.TimeoutSeconds)
	cfg.Quiz.Gemini.APIKey = envutil.String("GEMINI_API_KEY", cfg.Quiz.Gemini.APIKey)
	cfg.Quiz.Gemini.Model = envutil.String("GEMINI_MODEL", cfg.Quiz.Gemini.Model)
	cfg.Quiz.Gemini.BaseURL = envutil.String("GEMINI_BASE_URL", cfg.Quiz.Gemini.BaseURL)
	cfg.Quiz.OpenAI.APIKey = envutil.String("OPENAI_API_KEY", cfg.Quiz.OpenAI.APIKey)
	cfg.Quiz.OpenAI.Model = envutil.String("OPENAI_MODEL", cfg.Quiz.OpenAI.Model)
	cfg.Quiz.OpenAI.BaseURL = envutil.String("OPENAI_BASE_URL", cfg.Quiz.OpenAI.BaseURL)

	cfg.CORSAllowOrigins = envutil.List("CORS_ALLOW_ORIGINS", cfg.CORSAllowOrigins)

	cfg.Telemetry.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
	cfg.Telemetry.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Telemetry.Environment)
	cfg.Telemetry.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Telemetry.Insecure)
	cfg.Telemetry.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Telemetry.SampleRatio)
}

func (c Config) validate() error {
	switch c.Quiz.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown QUIZ_PROVIDER %q", c.Quiz.Provider)
	}
	if c.Quiz.QuestionCount <= 0 {
		return fmt.Errorf("QUIZ_QUESTION_COUNT must be positive")
	}
	if c.AccessTokenTTLMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL_MINUTES must be positive")
	}
	if c.Production() && (c.JWTSecretKey == "" || c.JWTSecretKey == defaultJWTSecret) {
		return fmt.Errorf("JWT_SECRET_KEY is required in production")
	}
	return nil
}
