package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"bucket-metrics/internal/charts"
	"bucket-metrics/internal/models"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

func newChartCmd(opts *rootOptions) *cobra.Command {
	var (
		flags    windowFlags
		interval time.Duration
		height   int
	)
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Plot a series as an ASCII chart",
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

			points, err := s.services.SeriesGenerator.GenerateSeries(s.ctx, charts.SeriesRequest{
				AccountID:     opts.accountID,
				RecordKind:    models.RecordKind(opts.recordKind),
				Window:        window,
				PointInterval: interval,
			}, nil)
			if err != nil {
				return err
			}
			return renderChart(cmd.OutOrStdout(), opts.recordKind, points, height)
		},
	}
	flags.register(cmd, "-24h")
	cmd.Flags().DurationVar(&interval, "interval", time.Hour, "Point interval (whole minutes)")
	cmd.Flags().IntVar(&height, "height", 12, "Chart height in rows")
	return cmd
}

// renderChart plots point values followed by the series summary. Incomplete points are counted in
// the footer since the plot cannot mark them.
func renderChart(w io.Writer, title string, points []models.ChartPoint, height int) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "no points in window")
		return err
	}

	values := make([]float64, len(points))
	for i, point := range points {
		values[i] = point.Value
	}
	caption := fmt.Sprintf("%s %s .. %s", title,
		points[0].Time.Format(time.RFC3339),
		points[len(points)-1].Time.Format(time.RFC3339))
	graph := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)

	summary := models.SummarizeSeries(points)
	var b strings.Builder
	b.WriteString(graph)
	b.WriteString("\n")
	fmt.Fprintf(&b, "peak %.0f  average %.1f  total %.0f  (%d/%d points complete)\n",
		summary.Peak, summary.Average, summary.Total, summary.CompletePoints, summary.Points)
	_, err := io.WriteString(w, b.String())
	return err
}
