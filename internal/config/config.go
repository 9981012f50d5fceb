package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"commendai/internal/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	ErrPortEmpty       = errors.New("port cannot be empty")
	ErrDBPathEmpty     = errors.New("db_path cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config.yaml")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrDatabaseURL     = errors.New("database_url is required for the postgres driver")
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultPort            = "8080"
	defaultDBPath          = "commendai.db"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultGeminiModel     = "gemini-2.0-flash"
	defaultRequestTimeout  = 15 * time.Second
	defaultModelTimeout    = 45 * time.Second
	defaultMaxTopComments  = 10
	defaultTranscriptChars = 12000
	defaultYouTubeRPS      = 5.0
	defaultLanguage        = "en"
)

type Config struct {
	Port           string   `yaml:"port"`
	DBDriver       string   `yaml:"db_driver"`
	DBPath         string   `yaml:"db_path"`
	DatabaseURL    string   `yaml:"database_url"`
	LogLevel       string   `yaml:"log_level"`
	LogFormat      string   `yaml:"log_format"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`

	YouTubeAPIKey           string `yaml:"youtube_api_key"`
	YouTubeOAuthTokenFile   string `yaml:"youtube_oauth_token_file"`
	YouTubeClientSecretFile string `yaml:"youtube_client_secret_file"`

	RedisURL string `yaml:"redis_url"`

	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ModelTimeout       time.Duration `yaml:"model_timeout"`
	MaxTopComments     int           `yaml:"max_top_comments"`
	TranscriptMaxChars int           `yaml:"transcript_max_chars"`
	YouTubeRPS         float64       `yaml:"youtube_rps"`

	DebugErrors     bool   `yaml:"debug_errors"`
	DefaultLanguage string `yaml:"default_language"`
}

func defaults() *Config {
	return &Config{
		Port:               defaultPort,
		DBDriver:           DriverSQLite,
		DBPath:             defaultDBPath,
		LogLevel:           defaultLogLevel,
		LogFormat:          defaultLogFormat,
		AllowedOrigins:     []string{"*"},
		GeminiModel:        defaultGeminiModel,
		RequestTimeout:     defaultRequestTimeout,
		ModelTimeout:       defaultModelTimeout,
		MaxTopComments:     defaultMaxTopComments,
		TranscriptMaxChars: defaultTranscriptChars,
		YouTubeRPS:         defaultYouTubeRPS,
		DefaultLanguage:    defaultLanguage,
	}
}

// Load builds the configuration from defaults, config.yaml (or CONFIG_PATH),
// a .env file and environment variables, in that order of precedence.
func Load(ctx context.Context) (*Config, error) {
	log := logger.FromContext(ctx)

	config := defaults()

	log.Info("Loading configuration with defaults", "port", config.Port, "db_driver", config.DBDriver, "db_path", config.DBPath, "log_level", config.LogLevel)

	// Try to read from config file (CONFIG_PATH env var or default config.yaml)
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	if data, err := os.ReadFile(configPath); err == nil {
		log.Info("Found config file, parsing", "path", configPath)
		if err := yaml.Unmarshal(data, config); err != nil {
			log.Error("Failed to parse config file", "path", configPath, "error", err)
			return nil, ErrConfigParse
		}
		log.Info("Configuration loaded from file", "path", configPath, "port", config.Port, "db_path", config.DBPath, "log_level", config.LogLevel)
	} else {
		log.Info("No config file found, using defaults", "tried_path", configPath)
	}

	// .env never overrides variables already present in the environment
	if err := godotenv.Load(); err == nil {
		log.Info("Loaded environment from .env")
	}

	config.applyEnv(log)

	if err := config.validateAndFix(log); err != nil {
		return nil, err
	}

	log.Info("Configuration loaded successfully",
		"port", config.Port,
		"db_driver", config.DBDriver,
		"log_level", config.LogLevel,
		"gemini_model", config.GeminiModel,
		"has_gemini_key", config.GeminiAPIKey != "",
		"has_youtube_key", config.YouTubeAPIKey != "",
		"redis", config.RedisURL != "")
	return config, nil
}

// Environment variables override config file
func (c *Config) applyEnv(log *slog.Logger) {
	str := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			log.Debug("Overriding from environment", "var", name)
			*dst = v
		}
	}

	str("PORT", &c.Port)
	str("DB_DRIVER", &c.DBDriver)
	str("DB_PATH", &c.DBPath)
	str("DATABASE_URL", &c.DatabaseURL)
	str("LOG_FORMAT", &c.LogFormat)
	str("GEMINI_API_KEY", &c.GeminiAPIKey)
	str("GEMINI_MODEL", &c.GeminiModel)
	str("YOUTUBE_API_KEY", &c.YouTubeAPIKey)
	str("YOUTUBE_OAUTH_TOKEN_FILE", &c.YouTubeOAuthTokenFile)
	str("YOUTUBE_CLIENT_SECRET_FILE", &c.YouTubeClientSecretFile)
	str("REDIS_URL", &c.RedisURL)
	str("DEFAULT_LANGUAGE", &c.DefaultLanguage)

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		if !isValidLogLevel(logLevel) {
			log.Warn("Invalid LOG_LEVEL from environment, using default", "invalid", logLevel, "default", defaultLogLevel)
		} else {
			log.Info("Overriding log_level from environment", "log_level", logLevel)
			c.LogLevel = logLevel
		}
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}

	for name, dst := range map[string]*time.Duration{
		"REQUEST_TIMEOUT": &c.RequestTimeout,
		"MODEL_TIMEOUT":   &c.ModelTimeout,
	} {
		if v := os.Getenv(name); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				log.Warn("Invalid duration from environment, ignoring", "var", name, "invalid", v)
				continue
			}
			*dst = d
		}
	}

	if v := os.Getenv("MAX_TOP_COMMENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTopComments = n
		} else {
			log.Warn("Invalid MAX_TOP_COMMENTS from environment, ignoring", "invalid", v)
		}
	}
	if v := os.Getenv("TRANSCRIPT_MAX_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TranscriptMaxChars = n
		} else {
			log.Warn("Invalid TRANSCRIPT_MAX_CHARS from environment, ignoring", "invalid", v)
		}
	}
	if v := os.Getenv("YOUTUBE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.YouTubeRPS = f
		} else {
			log.Warn("Invalid YOUTUBE_RPS from environment, ignoring", "invalid", v)
		}
	}
	if v := os.Getenv("DEBUG_ERRORS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DebugErrors = b
		}
	}
}

func (c *Config) validateAndFix(log *slog.Logger) error {
	if c.Port == "" {
		log.Warn("Invalid port configuration (empty), using default", "default", defaultPort)
		c.Port = defaultPort
	}

	c.DBDriver = strings.ToLower(c.DBDriver)
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		log.Warn("Invalid db_driver configuration, using default", "invalid", c.DBDriver, "default", DriverSQLite)
		c.DBDriver = DriverSQLite
	}

	if c.DBDriver == DriverPostgres && c.DatabaseURL == "" {
		return ErrDatabaseURL
	}

	if c.DBPath == "" {
		log.Warn("Invalid db_path configuration (empty), using default", "default", defaultDBPath)
		c.DBPath = defaultDBPath
	}

	if !isValidLogLevel(c.LogLevel) {
		log.Warn("Invalid log_level configuration, using default", "invalid", c.LogLevel, "default", defaultLogLevel)
		c.LogLevel = defaultLogLevel
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		log.Warn("Invalid log_format configuration, using default", "invalid", c.LogFormat, "default", defaultLogFormat)
		c.LogFormat = defaultLogFormat
	}

	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}

	if c.GeminiModel == "" {
		c.GeminiModel = defaultGeminiModel
	}

	if c.RequestTimeout <= 0 {
		log.Warn("Invalid request_timeout configuration, using default", "default", defaultRequestTimeout)
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.ModelTimeout <= 0 {
		log.Warn("Invalid model_timeout configuration, using default", "default", defaultModelTimeout)
		c.ModelTimeout = defaultModelTimeout
	}

	// The YouTube API caps a single commentThreads page at 100.
	if c.MaxTopComments <= 0 || c.MaxTopComments > 100 {
		log.Warn("Invalid max_top_comments configuration, using default", "invalid", c.MaxTopComments, "default", defaultMaxTopComments)
		c.MaxTopComments = defaultMaxTopComments
	}
	if c.TranscriptMaxChars <= 0 {
		c.TranscriptMaxChars = defaultTranscriptChars
	}
	if c.YouTubeRPS <= 0 {
		c.YouTubeRPS = defaultYouTubeRPS
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = defaultLanguage
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) GetSlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
