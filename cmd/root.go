package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gmail-analysis application
var rootCmd = &cobra.Command{
	Use:   "gmail-analysis",
	Short: "Aggregates Gmail threads into usage reports",
	Long: `gmail-analysis scans the Gmail threads matching a search query and rolls
them up into usage metrics: overall totals, per-sender, per-domain and
per-label tables. Reports are printed to the terminal or written to a
Google Sheets spreadsheet.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "gmail-analysis version %s\n" .Version}}`)

	// If no subcommand is provided, run the report command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "report")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
