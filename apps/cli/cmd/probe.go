package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/odatakit/odatacall/packages/probe"
)

var (
	probeRateFlag     float64
	probeDurationFlag time.Duration
	probeWorkersFlag  int
)

var probeCmd = &cobra.Command{
	Use:   "probe <url>",
	Short: "Measure endpoint latency with rate-limited GET calls",
	Long: `Measure endpoint latency with rate-limited GET calls.

Examples:
  odatacall probe https://service.example.com/odata/Products --rate 20 --duration 30s
  odatacall probe https://service.example.com/odata/Products --rate 100 --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpointCaller, headers, cleanup, err := newCaller()
		if err != nil {
			return err
		}
		defer cleanup()

		p := probe.New(endpointCaller,
			probe.WithRate(probeRateFlag),
			probe.WithDuration(probeDurationFlag),
			probe.WithWorkers(probeWorkersFlag),
			probe.WithHeaders(headers),
		)
		summary := p.Run(cmd.Context(), args[0])

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "calls:  %d (%d errors, %.1f%% error rate)\n",
			summary.Total, summary.Errors, summary.ErrorRate*100)
		fmt.Fprintf(out, "p50:    %s\n", summary.P50)
		fmt.Fprintf(out, "p95:    %s\n", summary.P95)
		fmt.Fprintf(out, "p99:    %s\n", summary.P99)
		fmt.Fprintf(out, "max:    %s\n", summary.Max)
		fmt.Fprintf(out, "mean:   %s\n", summary.Mean)
		return nil
	},
}

func init() {
	probeCmd.Flags().Float64VarP(&probeRateFlag, "rate", "r", 10, "target calls per second")
	probeCmd.Flags().DurationVarP(&probeDurationFlag, "duration", "d", 10*time.Second, "probe duration")
	probeCmd.Flags().IntVar(&probeWorkersFlag, "workers", 1, "concurrent callers")
}
