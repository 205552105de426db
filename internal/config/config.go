package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	ShutdownTimeout    time.Duration
	CORSAllowedOrigins []string

	// OpenWeather provider configuration.
	OpenWeatherAPIKey    string
	OpenWeatherEnabled   bool
	OpenWeatherBaseURL   string
	OpenWeatherTimeout   time.Duration
	OpenWeatherCacheSize int
	OpenWeatherCacheTTL  time.Duration

	// ModelPath points at a regression artifact. Empty disables regression.
	ModelPath string
	StoreDSN  string
	MockSeed  int64

	// Forecast pipeline configuration.
	PipelineEnabled    bool
	KafkaBrokers       []string
	KafkaSourceTopic   string
	KafkaSinkTopic     string
	KafkaGroupID       string
	BatchSize          int
	BatchFlushInterval time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	owTimeout, err := parsePositiveDuration("OPENWEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	owCacheTTL, err := parsePositiveDuration("OPENWEATHER_CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}

	mockSeed, err := strconv.ParseInt(sharedcfg.EnvOrDefault("MOCK_SEED", "42"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid MOCK_SEED")
	}

	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	owEnabled := apiKey != ""
	if v := os.Getenv("OPENWEATHER_ENABLED"); v != "" {
		owEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		CORSAllowedOrigins: parseList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		OpenWeatherAPIKey:    apiKey,
		OpenWeatherEnabled:   owEnabled,
		OpenWeatherBaseURL:   strings.TrimRight(sharedcfg.EnvOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"), "/"),
		OpenWeatherTimeout:   owTimeout,
		OpenWeatherCacheSize: parseCacheSize(),
		OpenWeatherCacheTTL:  owCacheTTL,

		ModelPath: os.Getenv("MODEL_PATH"),
		StoreDSN:  sharedcfg.EnvOrDefault("STORE_DSN", "file:urban-risk.db?_pragma=busy_timeout(5000)"),
		MockSeed:  mockSeed,

		PipelineEnabled:    os.Getenv("PIPELINE_ENABLED") == "true",
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-weather-forecasts"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "risk-assessments"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "urban-risk"),
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
	}

	if cfg.OpenWeatherEnabled && cfg.OpenWeatherAPIKey == "" {
		return nil, errors.New("OPENWEATHER_ENABLED is true but OPENWEATHER_API_KEY is not set")
	}
	if cfg.StoreDSN == "" {
		return nil, errors.New("STORE_DSN is required")
	}
	if cfg.PipelineEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaSourceTopic == "" {
			return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_SINK_TOPIC is required")
		}
	}

	return cfg, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseCacheSize() int {
	if s := os.Getenv("OPENWEATHER_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 500
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
