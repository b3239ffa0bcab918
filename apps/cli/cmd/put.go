package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odatakit/odatacall/packages/caller"
)

var (
	putDataFlag     string
	putDataFileFlag string
	putTypeFlag     string
)

var putCmd = &cobra.Command{
	Use:   "put <url>",
	Short: "PUT an entity and print the drained response body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpointCaller, headers, cleanup, err := newCaller()
		if err != nil {
			return err
		}
		defer cleanup()

		body, err := requestBody(putDataFlag, putDataFileFlag)
		if err != nil {
			return err
		}

		response, err := endpointCaller.DoPutEntity(headers, args[0], body, caller.MediaType(putTypeFlag))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), response)
		return nil
	},
}

func init() {
	putCmd.Flags().StringVarP(&putDataFlag, "data", "d", "", "request body")
	putCmd.Flags().StringVar(&putDataFileFlag, "data-file", "", "read the request body from a file")
	putCmd.Flags().StringVar(&putTypeFlag, "type", caller.AtomXML.String(), "media type used for both Content-Type and Accept")
}
