package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	AdapterPGXPool = "pgx.pool"
	AdapterSQLDB   = "sql.db"
	AdapterSQLXDB  = "sqlx.db"
)

const (
	envHTTPAddr            = "HTTP_ADDR"
	EnvStore               = "STORE"
	envDBAdapter           = "DB_ADAPTER"
	envPostgresDSN         = "POSTGRES_DSN"
	envPostgresReplicaDSN  = "POSTGRES_REPLICA_DSN"
	envEventsTable         = "EVENTS_TABLE"
	envSnapshotsTable      = "SNAPSHOTS_TABLE"
	envLogLevel            = "LOG_LEVEL"
	envOverdueScanInterval = "OVERDUE_SCAN_INTERVAL"
	envOTelEnabled         = "OTEL_ENABLED"
	envOTelEndpoint        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envSnapshotCacheSize   = "SNAPSHOT_CACHE_SIZE"
	envServiceName         = "OTEL_SERVICE_NAME"
)

const (
	defaultHTTPAddr            = ":8080"
	defaultEventsTable         = "events"
	defaultSnapshotsTable      = "snapshots"
	defaultOverdueScanInterval = 24 * time.Hour
	defaultOTelEndpoint        = "localhost:4317"
	defaultSnapshotCacheSize   = 128
	defaultServiceName         = "library-lending"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingPostgresDSN   = errors.New(envPostgresDSN + " must be set when " + EnvStore + "=" + StorePostgres)
)

// Config is the complete runtime configuration.
type Config struct {
	HTTPAddr            string
	Store               string
	DBAdapter           string
	PostgresDSN         string
	PostgresReplicaDSN  string
	EventsTable         string
	SnapshotsTable      string
	LogLevel            slog.Level
	OverdueScanInterval time.Duration
	OTelEnabled         bool
	OTelEndpoint        string
	ServiceName         string
	SnapshotCacheSize   int
}

// Load reads the .env file from the working directory, if there is one, and then the environment.
// Variables that are already set in the environment win over the .env file.
func Load() (Config, error) {
	return LoadWith(nil)
}

// LoadWith is Load with the variables in overrides taking precedence, empty overrides are ignored.
// The command line flags of lendingctl end up here.
func LoadWith(overrides map[string]string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Join(ErrInvalidConfiguration, err)
	}

	return FromLookup(func(key string) (string, bool) {
		if value := overrides[key]; value != "" {
			return value, true
		}

		return os.LookupEnv(key)
	})
}

// FromLookup builds the Config from a lookup function, os.LookupEnv in production.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}

		return fallback
	}

	cfg := Config{
		HTTPAddr:           get(envHTTPAddr, defaultHTTPAddr),
		Store:              strings.ToLower(get(EnvStore, StorePostgres)),
		DBAdapter:          strings.ToLower(get(envDBAdapter, AdapterPGXPool)),
		PostgresDSN:        get(envPostgresDSN, ""),
		PostgresReplicaDSN: get(envPostgresReplicaDSN, ""),
		EventsTable:        get(envEventsTable, defaultEventsTable),
		SnapshotsTable:     get(envSnapshotsTable, defaultSnapshotsTable),
		OTelEndpoint:       get(envOTelEndpoint, defaultOTelEndpoint),
		ServiceName:        get(envServiceName, defaultServiceName),
	}

	var errs []error

	if err := cfg.LogLevel.UnmarshalText([]byte(get(envLogLevel, "info"))); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", envLogLevel, err))
	}

	interval, err := time.ParseDuration(get(envOverdueScanInterval, defaultOverdueScanInterval.String()))
	if err != nil || interval < 0 {
		errs = append(errs, fmt.Errorf("%s: must be a non-negative duration", envOverdueScanInterval))
	}
	cfg.OverdueScanInterval = interval

	cfg.OTelEnabled, err = strconv.ParseBool(get(envOTelEnabled, "false"))
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", envOTelEnabled, err))
	}

	cfg.SnapshotCacheSize, err = strconv.Atoi(get(envSnapshotCacheSize, strconv.Itoa(defaultSnapshotCacheSize)))
	if err != nil || cfg.SnapshotCacheSize <= 0 {
		errs = append(errs, fmt.Errorf("%s: must be a positive integer", envSnapshotCacheSize))
	}

	switch cfg.Store {
	case StorePostgres:
		if cfg.PostgresDSN == "" {
			errs = append(errs, ErrMissingPostgresDSN)
		}
	case StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("%s: unsupported store %q", EnvStore, cfg.Store))
	}

	switch cfg.DBAdapter {
	case AdapterPGXPool, AdapterSQLDB, AdapterSQLXDB:
	default:
		errs = append(errs, fmt.Errorf("%s: unsupported adapter %q", envDBAdapter, cfg.DBAdapter))
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(append([]error{ErrInvalidConfiguration}, errs...)...)
	}

	return cfg, nil
}
