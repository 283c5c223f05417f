package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"bucket-metrics/internal/app"
	"bucket-metrics/internal/models"
	"bucket-metrics/internal/shared/configs"
	"bucket-metrics/internal/shared/filestorages"
	"bucket-metrics/internal/shared/loggers"
	"bucket-metrics/internal/stores"

	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	accountID  string
	recordKind string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "rollupctl",
		Short: "Query pre-aggregated metric buckets",
		Long:  "rollupctl reads the bucket store directly and answers window, series and dashboard queries without the HTTP service.",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.PersistentFlags().StringVar(&opts.configPath, "config", "./configs/configs.yml", "Config file path")
	root.PersistentFlags().StringVar(&opts.logLevel, "loglevel", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.accountID, "account", "", "Account ID")
	root.PersistentFlags().StringVar(&opts.recordKind, "kind", string(models.RecordKindItems), "Record kind")
	_ = root.MarkPersistentFlagRequired("account")

	root.AddCommand(newQueryCmd(opts))
	root.AddCommand(newChartCmd(opts))
	root.AddCommand(newLoadCmd(opts))
	return root
}

// session is an opened bucket store plus the services over it.
type session struct {
	ctx         context.Context
	services    app.Services
	bucketStore stores.BucketStore
}

func (s *session) Close() error {
	return s.bucketStore.Close()
}

func openSession(ctx context.Context, opts *rootOptions) (*session, error) {
	config, err := configs.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger, err := loggers.NewWithWriter(opts.logLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = logger.With().Str(loggers.FieldApp, "rollupctl").Logger()

	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	bucketStore, err := app.OpenBucketStore(config, fileStorage)
	if err != nil {
		return nil, err
	}

	return &session{
		ctx:         logger.WithContext(ctx),
		services:    app.NewServices(config, bucketStore),
		bucketStore: bucketStore,
	}, nil
}

// windowFlags are --start/--end, RFC3339 instants or durations relative to now (e.g. -24h).
type windowFlags struct {
	start string
	end   string
}

func (f *windowFlags) register(cmd *cobra.Command, defaultStart string) {
	cmd.Flags().StringVar(&f.start, "start", defaultStart, "Window start (RFC3339 or offset from now, e.g. -1h)")
	cmd.Flags().StringVar(&f.end, "end", "0s", "Window end (RFC3339 or offset from now)")
}

func (f *windowFlags) window(now time.Time) (models.TimeWindow, error) {
	start, err := parseInstant(f.start, now)
	if err != nil {
		return models.TimeWindow{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := parseInstant(f.end, now)
	if err != nil {
		return models.TimeWindow{}, fmt.Errorf("invalid --end: %w", err)
	}
	return models.NewTimeWindow(start, end)
}

func parseInstant(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if instant, err := time.Parse(time.RFC3339, raw); err == nil {
		return instant.UTC(), nil
	}
	offset, err := time.ParseDuration(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither RFC3339 nor a duration", raw)
	}
	return now.Add(offset).UTC().Truncate(time.Minute), nil
}
