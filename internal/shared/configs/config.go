package configs

import (
	"errors"
	"time"
)

const (
	DriverFile   = "file"
	DriverBadger = "badger"
	DriverSqlite = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	BucketStore BucketStoreConfig `mapstructure:"bucket_store" validate:"required"`
	Query       QueryConfig       `mapstructure:"query" validate:"required"`
	Facade      FacadeConfig      `mapstructure:"facade" validate:"required"`
	Intake      IntakeConfig      `mapstructure:"intake" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds file storage configuration.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// BucketStoreConfig selects and tunes the backend that serves metric buckets.
type BucketStoreConfig struct {
	Driver       string       `mapstructure:"driver" validate:"required,oneof=file badger sqlite"`
	FetchTimeout int          `mapstructure:"fetch_timeout" validate:"required,min=1"` // seconds
	Badger       BadgerConfig `mapstructure:"badger"`
	Sqlite       SqliteConfig `mapstructure:"sqlite"`
	Cache        CacheConfig  `mapstructure:"cache"`
}

// BadgerConfig holds badger backend configuration.
type BadgerConfig struct {
	Path        string `mapstructure:"path"`
	InMemory    bool   `mapstructure:"in_memory"`
	MaxMemoryMB int64  `mapstructure:"max_memory_mb" validate:"min=0"`
}

// SqliteConfig holds sqlite backend configuration.
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds the fetch cache placed in front of the backend.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	Size       int  `mapstructure:"size" validate:"required_if=Enabled true,min=0"`
	TTLSeconds int  `mapstructure:"ttl_seconds" validate:"required_if=Enabled true,min=0"`
}

// QueryConfig bounds the work a single query may trigger.
type QueryConfig struct {
	MaxWindowHours    int `mapstructure:"max_window_hours" validate:"required,min=1,max=744"`
	MaxSeriesPoints   int `mapstructure:"max_series_points" validate:"required,min=1,max=10080"`
	SeriesConcurrency int `mapstructure:"series_concurrency" validate:"required,min=1,max=64"`
}

// FacadeConfig holds dashboard refresh configuration.
type FacadeConfig struct {
	RefreshIntervalSeconds       int `mapstructure:"refresh_interval_seconds" validate:"required,min=1"`
	SeriesRefreshIntervalSeconds int `mapstructure:"series_refresh_interval_seconds" validate:"required,min=1"`
	HourlyAlignmentMinutes       int `mapstructure:"hourly_alignment_minutes" validate:"required,oneof=1 5 15 60"`
}

// IntakeConfig holds bucket intake configuration.
type IntakeConfig struct {
	MaxBatchBytes   int `mapstructure:"max_batch_bytes" validate:"required,min=1024"`
	QueuePartitions int `mapstructure:"queue_partitions" validate:"required,min=1,max=256"`
	QueueBuffer     int `mapstructure:"queue_buffer" validate:"required,min=1"`
}

var (
	errBadgerPathRequired = errors.New("bucket_store.badger.path (required unless in_memory)")
	errSqlitePathRequired = errors.New("bucket_store.sqlite.path (required)")
)

// validateDriver checks the settings of the selected driver only.
func (c *BucketStoreConfig) validateDriver() error {
	switch c.Driver {
	case DriverBadger:
		if c.Badger.Path == "" && !c.Badger.InMemory {
			return errBadgerPathRequired
		}
	case DriverSqlite:
		if c.Sqlite.Path == "" {
			return errSqlitePathRequired
		}
	}
	return nil
}

func (c *BucketStoreConfig) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c *QueryConfig) MaxWindow() time.Duration {
	return time.Duration(c.MaxWindowHours) * time.Hour
}

func (c *FacadeConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

func (c *FacadeConfig) SeriesRefreshInterval() time.Duration {
	return time.Duration(c.SeriesRefreshIntervalSeconds) * time.Second
}

func (c *FacadeConfig) HourlyAlignment() time.Duration {
	return time.Duration(c.HourlyAlignmentMinutes) * time.Minute
}
