// README: Config loader; ETA_* environment with defaults plus the immutable tariff shared by generator, estimator and pricing.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"deliveryeta/internal/types"
)

const (
	BackendCSV      = "csv"
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	HTTP struct {
		Addr        string        `envconfig:"ETA_HTTP_ADDR" default:":8080"`
		CORSOrigins []string      `envconfig:"ETA_HTTP_CORS_ORIGINS" default:"*"`
		ReadTimeout time.Duration `envconfig:"ETA_HTTP_READ_TIMEOUT" default:"10s"`
	}
	DB struct {
		// Empty DSN disables the Postgres dataset store and quote log.
		DSN string `envconfig:"ETA_DB_DSN" default:""`
	}
	Redis struct {
		// Empty address disables the estimate cache.
		Addr string        `envconfig:"ETA_REDIS_ADDR" default:""`
		TTL  time.Duration `envconfig:"ETA_REDIS_TTL" default:"10m"`
	}
	Log struct {
		Level    string `envconfig:"ETA_LOG_LEVEL" default:"info"`
		Encoding string `envconfig:"ETA_LOG_ENCODING" default:"json"`
	}
	Model struct {
		// Backend is "file" (Dir) or "postgres" (model_artifacts table).
		Backend string `envconfig:"ETA_MODEL_BACKEND" default:"file"`
		Dir     string `envconfig:"ETA_MODEL_DIR" default:"models"`
	}
	Dataset  DatasetConfig
	Training TrainingConfig
	Catalog  struct {
		// Empty path uses the embedded Laguna catalog.
		Path string `envconfig:"ETA_CATALOG_PATH" default:""`
	}

	Tariff Tariff `ignored:"true"`
}

type DatasetConfig struct {
	// Backend is "csv" (Path) or "postgres" (observations table).
	Backend string `envconfig:"ETA_DATASET_BACKEND" default:"csv"`
	Path    string `envconfig:"ETA_DATASET_PATH" default:"synthetic_delivery_data.csv"`
	Samples int    `envconfig:"ETA_DATASET_SAMPLES" default:"5000"`
	Seed    int64  `envconfig:"ETA_DATASET_SEED" default:"42"`
}

type TrainingConfig struct {
	Seed            int64   `envconfig:"ETA_TRAINING_SEED" default:"42"`
	TestFraction    float64 `envconfig:"ETA_TRAINING_TEST_FRACTION" default:"0.2"`
	Trees           int     `envconfig:"ETA_TRAINING_TREES" default:"100"`
	MaxDepth        int     `envconfig:"ETA_TRAINING_MAX_DEPTH" default:"10"`
	MinSamplesSplit int     `envconfig:"ETA_TRAINING_MIN_SAMPLES_SPLIT" default:"5"`
	Workers         int     `envconfig:"ETA_TRAINING_WORKERS" default:"0"`
}

// Tariff holds every constant of the delivery-time and fee formulas.
// It is built once and passed by value; nothing mutates it after Load.
type Tariff struct {
	Hub            types.Point
	BaseMinutes    float64
	MinutesPerKm   float64
	MinutesPerItem float64
	MinMinutes     float64
	BaseFee        float64
	FeePerMinute   float64
	Currency       string
}

// DefaultTariff is the San Pablo City hub tariff.
func DefaultTariff() Tariff {
	return Tariff{
		Hub:            types.Point{Lat: 14.0703, Lng: 121.3253},
		BaseMinutes:    15,
		MinutesPerKm:   2.5,
		MinutesPerItem: 0.5,
		MinMinutes:     20,
		BaseFee:        50,
		FeePerMinute:   0.5,
		Currency:       "PHP",
	}
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	cfg.Tariff = DefaultTariff()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Dataset.Backend {
	case BackendCSV, BackendPostgres:
	default:
		return fmt.Errorf("%w: dataset backend %q", ErrInvalid, c.Dataset.Backend)
	}
	switch c.Model.Backend {
	case BackendFile, BackendPostgres:
	default:
		return fmt.Errorf("%w: model backend %q", ErrInvalid, c.Model.Backend)
	}
	if (c.Dataset.Backend == BackendPostgres || c.Model.Backend == BackendPostgres) && c.DB.DSN == "" {
		return fmt.Errorf("%w: postgres backend needs ETA_DB_DSN", ErrInvalid)
	}
	if c.Training.TestFraction <= 0 || c.Training.TestFraction >= 1 {
		return fmt.Errorf("%w: test fraction %v outside (0,1)", ErrInvalid, c.Training.TestFraction)
	}
	return nil
}
