// night-device-report — send host health facts to a central collection endpoint.
//
// Usage:
//
//	night-device-report                     — collect and send a device report
//	night-device-report collect             — collect and print the report locally
//	night-device-report cron <job> <cmd>... — run a job and report its exit status
//	night-device-report edit                — edit the configuration record
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nightreport/cmd/collect"
	"nightreport/cmd/cron"
	"nightreport/cmd/edit"
	"nightreport/cmd/report"
	"nightreport/internal/transport"
	"nightreport/pkg/config"
)

var version = "dev"

var (
	configPath    string
	collectOutput string
	collectFormat string
)

var rootCmd = &cobra.Command{
	Use:   "night-device-report",
	Short: "Report device health to the night collection endpoint",
	Long: `night-device-report collects disk space, pending upgrades and restart
status of this machine and sends them to the collection endpoint.

Run without a subcommand to send a report (equivalent to 'report').`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runReport,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Collect and send a device report",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect a device report and write it locally without sending",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return collect.Run(configPath, collect.Options{OutputFile: collectOutput, Format: collectFormat})
	},
}

var cronCmd = &cobra.Command{
	Use:   "cron <job> <command> [args...]",
	Short: "Run a scheduled job and report its exit status",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cron.Run(configPath, version, args[0], args[1:])
	},
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the configuration record in $EDITOR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit.Run(editPath(configPath))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("night-device-report %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config record (default: fenhl/night.json on the XDG config path)")

	collectCmd.Flags().StringVarP(&collectOutput, "output", "o", "", "write the report to file instead of stdout")
	collectCmd.Flags().StringVar(&collectFormat, "format", collect.FormatJSON, "output format: json or msgpack")

	// Flags after <command> belong to the job.
	cronCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(reportCmd, collectCmd, cronCmd, editCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	return report.Run(configPath, version)
}

// printError writes err for the operator. A rejected report also shows the
// endpoint's response body.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var rejected *transport.RemoteRejectionError
	if errors.As(err, &rejected) && rejected.Body != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(rejected.Body, "\n"))
	}
}

// editPath returns the record to edit: the explicit path, the discovered
// record, or the default location for a new one.
func editPath(explicit string) string {
	if explicit != "" {
		return config.ExpandPath(explicit)
	}
	return config.DefaultPath()
}
