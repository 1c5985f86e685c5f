package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/distance-matrix-service/internal/domain"
)

// DefaultBaseURL is the distance matrix endpoint without the output format segment.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/distancematrix"

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Distance matrix client configuration.
	DistanceMatrixAPIKey  string
	DistanceMatrixBaseURL string
	DistanceMatrixTimeout time.Duration
	DistanceMatrixOptions domain.Options
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

	apiTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("DISTANCE_MATRIX_TIMEOUT", "5s"))
	if err != nil || apiTimeout <= 0 {
		return nil, errors.New("invalid DISTANCE_MATRIX_TIMEOUT")
	}

	opts, err := loadOptions()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "distance-lookup-requests"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "distance-lookup-results"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "distance-matrix-service"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		DistanceMatrixAPIKey:  os.Getenv("DISTANCE_MATRIX_API_KEY"),
		DistanceMatrixBaseURL: sharedcfg.EnvOrDefault("DISTANCE_MATRIX_BASE_URL", DefaultBaseURL),
		DistanceMatrixTimeout: apiTimeout,
		DistanceMatrixOptions: opts,
	}

	if cfg.DistanceMatrixAPIKey == "" {
		return nil, errors.New("DISTANCE_MATRIX_API_KEY is required")
	}
	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

// loadOptions validates the DISTANCE_MATRIX_* option variables through
// domain.NewOptions so a bad value fails startup.
func loadOptions() (domain.Options, error) {
	policy := domain.CoordinatePolicyLenient
	switch v := strings.ToLower(os.Getenv("DISTANCE_MATRIX_STRICT_COORDINATES")); v {
	case "", "false":
	case "true":
		policy = domain.CoordinatePolicyStrict
	default:
		return domain.Options{}, fmt.Errorf("invalid DISTANCE_MATRIX_STRICT_COORDINATES %q", v)
	}

	opts, err := domain.NewOptions(domain.OptionsConfig{
		Mode:             os.Getenv("DISTANCE_MATRIX_MODE"),
		Units:            os.Getenv("DISTANCE_MATRIX_UNITS"),
		Avoid:            os.Getenv("DISTANCE_MATRIX_AVOID"),
		Language:         os.Getenv("DISTANCE_MATRIX_LANGUAGE"),
		Output:           os.Getenv("DISTANCE_MATRIX_OUTPUT"),
		Sensor:           os.Getenv("DISTANCE_MATRIX_SENSOR"),
		CoordinatePolicy: policy,
	})
	if err != nil {
		var cerr *domain.ConfigurationError
		if errors.As(err, &cerr) {
			return domain.Options{}, fmt.Errorf("invalid DISTANCE_MATRIX_%s: %w", strings.ToUpper(cerr.Field), err)
		}
		return domain.Options{}, err
	}
	return opts, nil
}
