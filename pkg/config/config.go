package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Data        DataConfig
	Rotation    RotationConfig
	Thresholds  ThresholdConfig
	Language    LanguageConfig
	Translation TranslationConfig
	Sentiment   SentimentConfig
	Summary     SummaryConfig
	Redis       RedisConfig
	Database    DatabaseConfig
	Logging     LoggingConfig
	Telemetry   TelemetryConfig
}

// ServerConfig holds HTTP server configuration for both services
type ServerConfig struct {
	Host          string
	GeneratorPort int
	AnalyzerPort  int
}

// DataConfig points at the static dataset directory
type DataConfig struct {
	Dir string
}

// RotationConfig holds comment rotation configuration
type RotationConfig struct {
	BatchSize       int
	ResetAfter      int
	DailyReset      bool
	RotateFallbacks bool
	Seed            uint64 // 0 means seed from time
}

// ThresholdConfig holds comment eligibility thresholds
type ThresholdConfig struct {
	LongMinWords      int
	ShortMinChars     int
	CrossPostMinWords int
	FallbackMinWords  int
	MinimumWords      int
	PrefixMaxChars    int
}

// LanguageConfig holds language classification configuration
type LanguageConfig struct {
	HinglishThreshold int
}

// TranslationConfig holds translation provider configuration
type TranslationConfig struct {
	Enabled          bool
	APIKey           string
	RPS              float64
	Burst            int
	Timeout          time.Duration
	GlossaryFallback bool
}

// SentimentConfig holds sentiment model configuration
type SentimentConfig struct {
	URL      string
	APIToken string
	Timeout  time.Duration
	MaxChars int
}

// SummaryConfig holds summarization configuration
type SummaryConfig struct {
	Enabled  bool
	APIKey   string
	Model    string
	MaxWords int
	Timeout  time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL     string
	Enabled bool
	TTL     time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string
	Format       string // "json" or "text"
	ScalyrFormat bool   // Enable Scalyr-compatible JSON format
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	PrometheusPort    int
	ServiceName       string
	Environment       string  // reported as deployment.environment
	SampleRatio       float64 // fraction of root traces sampled
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	// Load from environment
	viper.SetEnvPrefix("LOKVAANI")
	viper.AutomaticEnv()

	// Load from config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.lokvaani")
	viper.AddConfigPath("/etc/lokvaani")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:          getString("http_server_host", "0.0.0.0"),
			GeneratorPort: getInt("generator_port", 8000),
			AnalyzerPort:  getInt("analyzer_port", 5000),
		},
		Data: DataConfig{
			Dir: getString("data_dir", "./data"),
		},
		Rotation: RotationConfig{
			BatchSize:       getInt("rotation_batch_size", 15),
			ResetAfter:      getInt("rotation_reset_after", 500),
			DailyReset:      getBool("rotation_daily_reset", true),
			RotateFallbacks: getBool("rotation_rotate_fallbacks", false),
			Seed:            uint64(getInt("rotation_seed", 0)),
		},
		Thresholds: ThresholdConfig{
			LongMinWords:      getInt("long_min_words", 50),
			ShortMinChars:     getInt("short_min_chars", 10),
			CrossPostMinWords: getInt("cross_post_min_words", 35),
			FallbackMinWords:  getInt("fallback_min_words", 30),
			MinimumWords:      getInt("minimum_words", 50),
			PrefixMaxChars:    getInt("prefix_max_chars", 50),
		},
		Language: LanguageConfig{
			HinglishThreshold: getInt("hinglish_threshold", 2),
		},
		Translation: TranslationConfig{
			Enabled:          getBool("translation_enabled", true),
			APIKey:           getString("translation_api_key", ""),
			RPS:              getFloat("translation_rps", 4),
			Burst:            getInt("translation_burst", 4),
			Timeout:          GetDuration("translation_timeout", 10*time.Second),
			GlossaryFallback: getBool("translation_glossary_fallback", true),
		},
		Sentiment: SentimentConfig{
			URL:      getString("sentiment_url", "https://api-inference.huggingface.co/models/cardiffnlp/twitter-roberta-base-sentiment"),
			APIToken: getString("sentiment_api_token", ""),
			Timeout:  GetDuration("sentiment_timeout", 20*time.Second),
			MaxChars: getInt("sentiment_max_chars", 512),
		},
		Summary: SummaryConfig{
			Enabled:  getBool("summary_enabled", true),
			APIKey:   getString("summary_api_key", ""),
			Model:    getString("summary_model", "gemini-2.5-flash-lite"),
			MaxWords: getInt("summary_max_words", 40),
			Timeout:  GetDuration("summary_timeout", 15*time.Second),
		},
		Redis: RedisConfig{
			URL:     getString("redis_url", ""),
			Enabled: getString("redis_url", "") != "",
			TTL:     GetDuration("redis_ttl", 24*time.Hour),
		},
		Database: DatabaseConfig{
			URL:     getString("database_url", ""),
			Enabled: getString("database_url", "") != "",
		},
		Logging: LoggingConfig{
			Level:        getString("log_level", "INFO"),
			Format:       getString("log_format", "json"),
			ScalyrFormat: getBool("log_scalyr_format", true),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", true),
			JaegerURL:         getString("jaeger_url", ""),
			PrometheusEnabled: getBool("prometheus_enabled", true),
			PrometheusPort:    getInt("prometheus_port", 9090),
			ServiceName:       getString("service_name", "lokvaani"),
			Environment:       getString("telemetry_environment", "development"),
			SampleRatio:       getFloat("telemetry_sample_ratio", 1),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("http_server_host", "0.0.0.0")
	viper.SetDefault("generator_port", 8000)
	viper.SetDefault("analyzer_port", 5000)
	viper.SetDefault("data_dir", "./data")
	viper.SetDefault("rotation_batch_size", 15)
	viper.SetDefault("rotation_reset_after", 500)
	viper.SetDefault("rotation_daily_reset", true)
	viper.SetDefault("long_min_words", 50)
	viper.SetDefault("short_min_chars", 10)
	viper.SetDefault("cross_post_min_words", 35)
	viper.SetDefault("fallback_min_words", 30)
	viper.SetDefault("minimum_words", 50)
	viper.SetDefault("hinglish_threshold", 2)
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("log_scalyr_format", true)
	viper.SetDefault("telemetry_enabled", true)
	viper.SetDefault("prometheus_enabled", true)
	viper.SetDefault("prometheus_port", 9090)
	viper.SetDefault("service_name", "lokvaani")
	viper.SetDefault("telemetry_environment", "development")
	viper.SetDefault("telemetry_sample_ratio", 1.0)
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	// Also check environment variable directly
	if val := os.Getenv("LOKVAANI_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("LOKVAANI_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	if val := os.Getenv("LOKVAANI_" + toEnvKey(key)); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("LOKVAANI_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	// Convert snake_case to UPPER_SNAKE_CASE
	result := make([]rune, 0, len(key))
	for _, r := range key {
		switch {
		case r == '-':
			result = append(result, '_')
		case r >= 'a' && r <= 'z':
			result = append(result, r-'a'+'A')
		default:
			result = append(result, r)
		}
	}
	return string(result)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Rotation.BatchSize <= 0 || c.Rotation.BatchSize > 1000 {
		return fmt.Errorf("rotation_batch_size must be between 1 and 1000")
	}
	if c.Rotation.ResetAfter <= 0 {
		return fmt.Errorf("rotation_reset_after must be positive")
	}
	if c.Thresholds.MinimumWords <= 0 || c.Thresholds.MinimumWords > 500 {
		return fmt.Errorf("minimum_words must be between 1 and 500")
	}
	if c.Thresholds.LongMinWords <= 0 || c.Thresholds.CrossPostMinWords <= 0 || c.Thresholds.FallbackMinWords <= 0 {
		return fmt.Errorf("word thresholds must be positive")
	}
	if c.Thresholds.ShortMinChars < 0 {
		return fmt.Errorf("short_min_chars must not be negative")
	}
	if c.Language.HinglishThreshold < 1 {
		return fmt.Errorf("hinglish_threshold must be at least 1")
	}
	if c.Translation.RPS <= 0 || c.Translation.Burst <= 0 {
		return fmt.Errorf("translation_rps and translation_burst must be positive")
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry_sample_ratio must be between 0 and 1")
	}
	return nil
}

// GetDuration returns a duration from config key, with default
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	if val := os.Getenv("LOKVAANI_" + toEnvKey(key)); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}
