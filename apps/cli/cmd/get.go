package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/odatakit/odatacall/packages/caller"
	"github.com/odatakit/odatacall/packages/config"
	"github.com/odatakit/odatacall/packages/validate"
)

var (
	streamFlag string
	schemaFlag string
	watchFlag  bool
)

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "GET an endpoint and print the drained response body",
	Long: `GET an endpoint and print the drained response body.

Examples:
  odatacall get https://service.example.com/odata/Products
  odatacall get https://service.example.com/odata/Products --schema products.schema.json
  odatacall get https://service.example.com/odata/$metadata --stream metadata.xml
  odatacall get https://service.example.com/odata/Products -c client.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !watchFlag {
			return executeGet(cmd, args[0])
		}
		if configFlag == "" {
			return fmt.Errorf("--watch requires --config")
		}
		if err := executeGet(cmd, args[0]); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("Error: %s", formatError(err)))
		}
		// Re-issues the call on every change to the properties file; the
		// caller is rebuilt per call, so edits take effect immediately.
		return config.Watch(cmd.Context(), configFlag, func(*config.ClientProperties) {
			if err := executeGet(cmd, args[0]); err != nil {
				fmt.Fprintln(os.Stderr, color.RedString("Error: %s", formatError(err)))
			}
		})
	},
}

func init() {
	getCmd.Flags().StringVar(&streamFlag, "stream", "", "write the raw, undrained response stream to a file")
	getCmd.Flags().StringVar(&schemaFlag, "schema", "", "validate the JSON response against a schema file")
	getCmd.Flags().BoolVar(&watchFlag, "watch", false, "re-issue the call whenever the properties file changes")
}

func executeGet(cmd *cobra.Command, url string) error {
	endpointCaller, headers, cleanup, err := newCaller()
	if err != nil {
		return err
	}
	defer cleanup()

	if streamFlag != "" {
		return streamToFile(endpointCaller, headers, url, streamFlag)
	}

	body, err := endpointCaller.CallEndpoint(headers, url)
	if err != nil {
		return err
	}

	if schemaFlag != "" {
		result, err := validate.ResponseAgainstFile(body, schemaFlag)
		if err != nil {
			return err
		}
		if !result.Valid {
			for _, desc := range result.Errors {
				fmt.Fprintln(os.Stderr, color.RedString("schema: %s", desc))
			}
			return fmt.Errorf("response does not match schema %s", schemaFlag)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), body)
	return nil
}

// streamToFile copies the raw response stream to a file without draining it
// into memory first.
func streamToFile(endpointCaller caller.EndpointCaller, headers map[string]string, url, path string) error {
	stream, err := endpointCaller.GetInputStream(headers, url)
	if err != nil {
		return err
	}
	defer stream.Close()

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, stream)
	return err
}
