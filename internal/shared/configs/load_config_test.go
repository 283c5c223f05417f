package configs

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseConfig = `server:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
log:
  level: debug
file_storage:
  root_dir: ./data
bucket_store:
  driver: file
  fetch_timeout: 5
  cache:
    enabled: true
    size: 128
    ttl_seconds: 60
query:
  max_window_hours: 168
  max_series_points: 1440
  series_concurrency: 8
facade:
  refresh_interval_seconds: 30
  series_refresh_interval_seconds: 300
  hourly_alignment_minutes: 5
intake:
  max_batch_bytes: 2097152
  queue_partitions: 8
  queue_buffer: 1024
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.yml")
	require.NoError(t, err)
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, baseConfig))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Server.WriteTimeout)
	assert.Equal(t, 60, cfg.Server.IdleTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./data", cfg.FileStorage.RootDir)
	assert.Equal(t, DriverFile, cfg.BucketStore.Driver)
	assert.Equal(t, "5s", cfg.BucketStore.FetchTimeoutDuration().String())
	assert.True(t, cfg.BucketStore.Cache.Enabled)
	assert.Equal(t, 128, cfg.BucketStore.Cache.Size)
	assert.Equal(t, "168h0m0s", cfg.Query.MaxWindow().String())
	assert.Equal(t, 8, cfg.Query.SeriesConcurrency)
	assert.Equal(t, "30s", cfg.Facade.RefreshInterval().String())
	assert.Equal(t, "5m0s", cfg.Facade.HourlyAlignment().String())
	assert.Equal(t, 8, cfg.Intake.QueuePartitions)
}

func TestLoadConfig_MissingRequiredFields(t *testing.T) {
	invalidConfig := strings.Replace(baseConfig, "  port: 8080\n", "", 1)

	cfg, err := LoadConfig(writeConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "port")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	invalidConfig := strings.Replace(baseConfig, "level: debug", "level: invalid", 1)

	cfg, err := LoadConfig(writeConfig(t, invalidConfig))
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "invalid", cfg.Log.Level)
}

func TestLoadConfig_InvalidPortRange(t *testing.T) {
	invalidConfig := strings.Replace(baseConfig, "port: 8080", "port: 70000", 1)

	cfg, err := LoadConfig(writeConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "port")
}

func TestLoadConfig_MissingFileStorageRootDir(t *testing.T) {
	invalidConfig := strings.Replace(baseConfig, "file_storage:\n  root_dir: ./data\n", "file_storage: {}\n", 1)

	cfg, err := LoadConfig(writeConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), " filestorage.rootdir")
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	invalidConfig := strings.Replace(baseConfig, "driver: file", "driver: postgres", 1)

	cfg, err := LoadConfig(writeConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucketstore.driver (oneof=file badger sqlite)")
}

func TestLoadConfig_DriverSettings(t *testing.T) {
	tests := []struct {
		name      string
		driver    string
		extra     string
		wantError string
	}{
		{
			name:      "badger without path",
			driver:    "driver: badger",
			wantError: "bucket_store.badger.path",
		},
		{
			name:   "badger in memory",
			driver: "driver: badger",
			extra:  "  badger:\n    in_memory: true\n",
		},
		{
			name:      "sqlite without path",
			driver:    "driver: sqlite",
			wantError: "bucket_store.sqlite.path",
		},
		{
			name:   "sqlite with path",
			driver: "driver: sqlite",
			extra:  "  sqlite:\n    path: ./data/buckets.db\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.Replace(baseConfig, "driver: file\n", tt.driver+"\n"+tt.extra, 1)

			cfg, err := LoadConfig(writeConfig(t, content))
			if tt.wantError != "" {
				assert.Nil(t, cfg)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimPrefix(tt.driver, "driver: "), cfg.BucketStore.Driver)
		})
	}
}

func TestLoadConfig_CacheSizeRequiredWhenEnabled(t *testing.T) {
	invalidConfig := strings.Replace(baseConfig, "    size: 128\n", "", 1)

	cfg, err := LoadConfig(writeConfig(t, invalidConfig))
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucketstore.cache.size (required when Enabled true)")
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	t.Setenv("BUCKET_METRICS_SERVER_PORT", "9090")
	t.Setenv("BUCKET_METRICS_BUCKET_STORE_DRIVER", "badger")
	t.Setenv("BUCKET_METRICS_BUCKET_STORE_BADGER_IN_MEMORY", "true")

	// overrides only apply to keys present in the file
	content := strings.Replace(baseConfig, "  cache:\n", "  badger:\n    in_memory: false\n  cache:\n", 1)

	cfg, err := LoadConfig(writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverBadger, cfg.BucketStore.Driver)
	assert.True(t, cfg.BucketStore.Badger.InMemory)
}
