package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/rileyhilliard/pimon/internal/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Global flags
var (
	cfgFile      string
	urlFlag      string
	intervalFlag string
	debugFlag    bool
	noColorFlag  bool
)

// rootCmd is the base command. Without a subcommand it opens the dashboard
// on a terminal and prints help otherwise.
var rootCmd = &cobra.Command{
	Use:   "pimon",
	Short: "Kiosk dashboard for a node_exporter endpoint",
	Long: `pimon scrapes a Prometheus node_exporter endpoint and shows CPU, memory,
disk I/O and network throughput as rolling charts in the terminal.

Examples:
  pimon
  pimon --url http://raspberrypi.local:9100/metrics
  pimon watch --json --count 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			logger.SetDebug(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return cmd.Help()
		}
		return runMonitor()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .pimon.yaml, then ~/.config/pimon/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&urlFlag, "url", "", "metrics endpoint, overrides config and METRICS_URL")
	rootCmd.PersistentFlags().StringVar(&intervalFlag, "interval", "", "refresh interval (e.g., 1s, 500ms)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log per-scrape debug output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colors")

	// Cobra only sets this lazily while executing; SuggestionsFor needs it up front.
	rootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return
	}

	if MachineMode() {
		_ = WriteJSONFromError(os.Stdout, err)
		os.Exit(1)
	}

	if isUnknownCommandError(err) {
		if name := extractUnknownCommand(err); name != "" {
			if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
				fmt.Fprintf(os.Stderr, "Unknown command %q. Did you mean %s?\n", name, strings.Join(suggestions, " or "))
				os.Exit(1)
			}
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "Run 'pimon --help' for usage.")
		os.Exit(1)
	}

	fmt.Fprint(os.Stderr, err.Error())
	if !strings.HasSuffix(err.Error(), "\n") {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(1)
}

// isUnknownCommandError reports whether err came from cobra's argument parsing.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "pimon"` message.
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

// colorProfile maps the color setting to a lipgloss profile. The second
// result is false when the terminal's detected profile should be kept.
func colorProfile(mode string, noColor bool) (termenv.Profile, bool) {
	switch {
	case noColor, mode == config.ColorNever, os.Getenv("NO_COLOR") != "":
		return termenv.Ascii, true
	case mode == config.ColorAlways:
		return termenv.TrueColor, true
	default:
		return termenv.Ascii, false
	}
}

// applyColorMode sets the global lipgloss profile for this run.
func applyColorMode(mode string, noColor bool) {
	if profile, ok := colorProfile(mode, noColor); ok {
		lipgloss.SetColorProfile(profile)
	}
}
