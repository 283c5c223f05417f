package main

import (
	"encoding/json"
	"time"

	"bucket-metrics/internal/models"

	"github.com/spf13/cobra"
)

type queryOutput struct {
	Result     *models.AggregationResult `json:"result"`
	HourlyRate models.HourlyRate         `json:"hourlyRate"`
}

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var flags windowFlags
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Aggregate one window and print the result with its hourly rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			window, err := flags.window(time.Now())
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			result, err := s.services.AggregationService.AggregateWindow(s.ctx, opts.accountID, models.RecordKind(opts.recordKind), window)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(queryOutput{
				Result:     result,
				HourlyRate: s.services.RateNormalizer.NormalizeToHourly(result),
			})
		},
	}
	flags.register(cmd, "-1h")
	return cmd
}
