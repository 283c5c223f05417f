package main

import (
	"encoding/json"
	"fmt"
	"io"

	"bucket-metrics/internal/facades"
	"bucket-metrics/internal/models"

	"github.com/spf13/cobra"
)

func newLoadCmd(opts *rootOptions) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load the dashboard view (last hour rate and last 24h series)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			callbacks := facades.Callbacks{}
			if !quiet {
				callbacks.OnProgress = func(view *models.MetricsView) {
					printProgress(out, view)
				}
			}
			view, err := s.services.MetricsFacade.Load(s.ctx, opts.accountID, models.RecordKind(opts.recordKind), callbacks)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the final view")
	return cmd
}

func printProgress(w io.Writer, view *models.MetricsView) {
	rate := "n/a"
	if view.HasHourlyData {
		rate = fmt.Sprintf("%d/h", view.PerHourRate)
	}
	fmt.Fprintf(w, "progress: rate=%s points=%d total24h=%d complete=%t\n",
		rate, len(view.ChartSeries), view.Total24h, view.IsComplete)
}
