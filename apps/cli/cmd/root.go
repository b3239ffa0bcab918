package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/odatakit/odatacall/packages/caller"
	"github.com/odatakit/odatacall/packages/config"
	"github.com/odatakit/odatacall/packages/trace"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	configFlag    string
	timeoutFlag   int
	proxyFlag     string
	proxyPortFlag int
	headerFlags   []string
	verboseFlag   bool
	noColorFlag   bool
	historyFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "odatacall",
	Short: "Call OData service endpoints from the command line.",
	Long: `odatacall issues single GET, POST, PUT and DELETE calls against an
OData service endpoint, optionally through an HTTP proxy, and prints the
drained response body or the classified failure.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", formatError(err)))
		os.Exit(1)
	}
}

// formatError renders a classified call failure for the terminal. For HTTP
// status failures the service's own error message is extracted from the
// drained body, which is far shorter than the raw OData error document.
func formatError(err error) string {
	var ce *caller.Error
	if errors.As(err, &ce) && ce.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d): %s", ce.Kind, ce.StatusCode, ce.ServiceMessage())
	}
	return err.Error()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to a properties file")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "connection timeout in milliseconds")
	rootCmd.PersistentFlags().StringVar(&proxyFlag, "proxy", "", "HTTP proxy host")
	rootCmd.PersistentFlags().IntVar(&proxyPortFlag, "proxy-port", 0, "HTTP proxy port")
	rootCmd.PersistentFlags().StringArrayVarP(&headerFlags, "header", "H", nil, "request header, 'Name: Value' (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose call trace")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&historyFlag, "history", "", "record calls to a SQLite history database")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// newCaller assembles the endpoint caller from the properties file and flag
// overrides. The returned cleanup closes the history database, if any.
func newCaller() (*caller.BasicCaller, map[string]string, func(), error) {
	properties, err := config.Load(configFlag)
	if err != nil {
		return nil, nil, nil, err
	}
	properties = properties.Merge(&config.ClientProperties{
		TimeoutMillis: timeoutFlag,
		ProxyHostName: proxyFlag,
		ProxyPort:     proxyPortFlag,
	})

	sinks := trace.MultiSink{
		trace.NewConsoleSink(
			trace.WithWriter(os.Stderr),
			trace.WithVerbose(verboseFlag),
			trace.WithNoColor(noColorFlag),
		),
	}
	cleanup := func() {}
	if historyFlag != "" {
		history, err := trace.NewHistorySink(historyFlag)
		if err != nil {
			return nil, nil, nil, err
		}
		sinks = append(sinks, history)
		cleanup = func() { _ = history.Close() }
	}

	headers, err := parseHeaders(headerFlags, properties.Headers)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	return caller.NewBasicCaller(properties, caller.WithSink(sinks)), headers, cleanup, nil
}

// parseHeaders merges properties-file headers with --header flags, flags
// winning on conflict.
func parseHeaders(flags []string, defaults map[string]string) (map[string]string, error) {
	headers := make(map[string]string, len(defaults)+len(flags))
	for name, value := range defaults {
		headers[name] = value
	}
	for _, flag := range flags {
		name, value, found := strings.Cut(flag, ":")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, expected 'Name: Value'", flag)
		}
		headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return headers, nil
}
