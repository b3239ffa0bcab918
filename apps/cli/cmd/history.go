package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/odatakit/odatacall/packages/trace"
)

var (
	historyLimitFlag int
	historyClearFlag bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear the recorded call history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyFlag == "" {
			return fmt.Errorf("no history database given, use --history")
		}
		history, err := trace.NewHistorySink(historyFlag)
		if err != nil {
			return err
		}
		defer history.Close()

		if historyClearFlag {
			return history.Clear()
		}

		calls, err := history.List(historyLimitFlag)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, call := range calls {
			status := color.GreenString("%d", call.StatusCode)
			if call.Error != "" {
				status = color.RedString("%d %s", call.StatusCode, call.Error)
			}
			fmt.Fprintf(out, "%s  %-6s %s  %s (%dms)\n",
				call.CreatedAt.Format("2006-01-02 15:04:05"),
				call.Method, call.URL, status, call.DurationMs)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 50, "maximum calls to show")
	historyCmd.Flags().BoolVar(&historyClearFlag, "clear", false, "remove all recorded calls")
}
