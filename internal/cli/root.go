package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/ui"
)

// Global flags
var (
	cfgFile   string
	debugFlag bool
)

// Root command flags
var graphFlag bool

// rootCmd launches the dashboard when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "hostdash",
	Short: "Terminal dashboard for local system metrics",
	Long: `hostdash is a full-screen terminal dashboard for the machine it runs on.

Pick an entry from the menu to see system, memory, disk or GPU information,
or open a live CPU graph that updates every second.

Keyboard shortcuts:
  up/k, down/j  Move selection
  Home, End     First / last entry
  Enter         Select
  q / Esc       Leave the live graph
  ?             Show all keys
  Ctrl+C        Quit

Examples:
  hostdash
  hostdash --graph
  hostdash --config ./dash.yaml --debug
  hostdash snapshot
  hostdash doctor`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cfgFile, debugFlag, graphFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./.hostdash.yaml, then ~/.config/hostdash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write debug messages to the log file")
	rootCmd.Flags().BoolVar(&graphFlag, "graph", false, "open directly in the live CPU graph")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); name != "" {
				err = errors.New(errors.ErrConfig,
					fmt.Sprintf("Unknown command '%s'", name),
					"Run 'hostdash --help' to see available commands")
			} else {
				err = errors.WrapWithCode(err, errors.ErrConfig,
					"Invalid arguments",
					"Run 'hostdash --help' for usage")
			}
		}
		fmt.Fprintln(os.Stderr, ui.FormatError(err))
		os.Exit(1)
	}
}

// isUnknownCommandError checks if the error is cobra's unknown command/flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "hostdash"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
