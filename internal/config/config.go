// Package config defines service configuration and its loading layers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// TopK caps the number of matches returned per request.
	TopK int `koanf:"top_k" validate:"min=1"`

	// MaxDistance is the degree distance at which location similarity
	// reaches zero.
	MaxDistance float64 `koanf:"max_distance" validate:"gt=0"`

	// MaxFeatures caps the TF-IDF vocabulary per matching call.
	MaxFeatures int `koanf:"max_features" validate:"min=1"`

	// Factor weights for the composite score.
	SkillWeight       float64 `koanf:"skill_weight" validate:"gte=0"`
	LocationWeight    float64 `koanf:"location_weight" validate:"gte=0"`
	ReliabilityWeight float64 `koanf:"reliability_weight" validate:"gte=0"`
	ResponseWeight    float64 `koanf:"response_weight" validate:"gte=0"`

	// DefaultReliability seeds helpers the tracker has never scored.
	DefaultReliability float64 `koanf:"default_reliability" validate:"gte=0.1,lte=1"`

	// OutcomeQueueSize bounds the in-memory outcome queue.
	OutcomeQueueSize int `koanf:"outcome_queue_size" validate:"min=1"`

	// WorkerCount sets the number of learning workers.
	WorkerCount int `koanf:"worker_count" validate:"min=1"`

	// DedupeSize bounds the outcome idempotency cache.
	DedupeSize int `koanf:"dedupe_size" validate:"min=0"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		TopK:               5,
		MaxDistance:        0.5,
		MaxFeatures:        100,
		SkillWeight:        0.4,
		LocationWeight:     0.3,
		ReliabilityWeight:  0.2,
		ResponseWeight:     0.1,
		DefaultReliability: 0.7,
		OutcomeQueueSize:   10_000,
		WorkerCount:        4,
		DedupeSize:         50_000,
	}
}
