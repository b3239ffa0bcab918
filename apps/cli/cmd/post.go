package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odatakit/odatacall/packages/caller"
)

var (
	dataFlag        string
	dataFileFlag    string
	contentTypeFlag string
	acceptFlag      string
)

var postCmd = &cobra.Command{
	Use:   "post <url>",
	Short: "POST an entity and print the drained response body",
	Long: `POST an entity and print the drained response body.

Examples:
  odatacall post https://service.example.com/odata/Products --data '<entry/>'
  odatacall post https://service.example.com/odata/Products --data-file entry.xml --content-type application/atom+xml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpointCaller, headers, cleanup, err := newCaller()
		if err != nil {
			return err
		}
		defer cleanup()

		body, err := requestBody(dataFlag, dataFileFlag)
		if err != nil {
			return err
		}

		response, err := endpointCaller.DoPostEntity(headers, args[0], body,
			caller.MediaType(contentTypeFlag), caller.MediaType(acceptFlag))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), response)
		return nil
	},
}

func init() {
	postCmd.Flags().StringVarP(&dataFlag, "data", "d", "", "request body")
	postCmd.Flags().StringVar(&dataFileFlag, "data-file", "", "read the request body from a file")
	postCmd.Flags().StringVar(&contentTypeFlag, "content-type", caller.AtomXML.String(), "request Content-Type")
	postCmd.Flags().StringVar(&acceptFlag, "accept", caller.AtomXML.String(), "request Accept type")
}

// requestBody resolves the body from --data or --data-file.
func requestBody(data, dataFile string) (string, error) {
	if dataFile != "" {
		content, err := os.ReadFile(dataFile)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	return data, nil
}
