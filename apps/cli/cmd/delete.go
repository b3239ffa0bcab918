package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <url>",
	Short: "DELETE the addressed entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpointCaller, headers, cleanup, err := newCaller()
		if err != nil {
			return err
		}
		defer cleanup()

		return endpointCaller.DoDeleteEntity(headers, args[0])
	},
}
