package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/halocline/station-map-etl/internal/domain"
)

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
	BatchSize        int

	// Coordinate parsing.
	CoordSeparator rune // 0 means detect from the first record
	Convention     domain.Convention
	CastType       string

	// Zone enrichment configuration.
	ZonesURL          string
	ZonesEnabled      bool
	ZonesTimeout      time.Duration
	ZonesCacheSize    int
	ZoneLabels        []string
	ZoneLabelProperty string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	batchSize, err := parsePositiveInt("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}

	separator, err := parseSeparator(os.Getenv("COORD_SEPARATOR"))
	if err != nil {
		return nil, err
	}

	convention, err := domain.ParseConvention(os.Getenv("HEMISPHERE_CONVENTION"))
	if err != nil {
		return nil, err
	}

	zonesTimeout, err := parsePositiveDuration("ZONES_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	zonesCacheSize, err := parsePositiveInt("ZONES_CACHE_SIZE", 32)
	if err != nil {
		return nil, err
	}

	zonesURL := os.Getenv("ZONES_URL")
	zonesEnabled := zonesURL != ""
	if v := os.Getenv("ZONES_ENABLED"); v != "" {
		zonesEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:     splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic: envOrDefault("KAFKA_SOURCE_TOPIC", "raw-station-logs"),
		KafkaSinkTopic:   envOrDefault("KAFKA_SINK_TOPIC", "station-map-features"),
		KafkaGroupID:     envOrDefault("KAFKA_GROUP_ID", "station-map-etl"),
		HTTPAddr:         envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		BatchSize:        batchSize,

		CoordSeparator: separator,
		Convention:     convention,
		CastType:       envOrDefault("CAST_TYPE", "Bongo"),

		ZonesURL:          zonesURL,
		ZonesEnabled:      zonesEnabled,
		ZonesTimeout:      zonesTimeout,
		ZonesCacheSize:    zonesCacheSize,
		ZoneLabels:        splitList(os.Getenv("ZONE_LABELS")),
		ZoneLabelProperty: envOrDefault("ZONE_LABEL_PROPERTY", "zone"),
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
	if cfg.ZonesEnabled {
		if cfg.ZonesURL == "" {
			return nil, errors.New("ZONES_ENABLED is true but ZONES_URL is not set")
		}
		if len(cfg.ZoneLabels) == 0 {
			return nil, errors.New("ZONES_ENABLED is true but ZONE_LABELS is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated list, trimming whitespace and dropping
// empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func parsePositiveDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

// parseSeparator accepts a single rune or empty (detect per batch).
func parseSeparator(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("COORD_SEPARATOR must be a single character, got %q", s)
	}
	return r, nil
}
