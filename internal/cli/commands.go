package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/rileyhilliard/pimon/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	monitorLogFile     string
	watchJSONFlag      bool
	watchCountFlag     int
	initForce          bool
	initNonInteractive bool
	initSkipCheck      bool
	configSetGlobal    bool
)

// monitorCmd opens the full-screen dashboard
var monitorCmd = &cobra.Command{
	Use:     "monitor",
	Aliases: []string{"dash", "top"},
	Short:   "Full-screen metrics dashboard",
	Long: `Open the kiosk dashboard for the configured endpoint.

Rows show CPU, memory, disk read/write and network receive/transmit as rolling
charts. Press u to change the URL, d for per-device detail, ? for help, q to quit.

Examples:
  pimon monitor
  pimon monitor --url http://raspberrypi.local:9100/metrics --interval 2s
  pimon monitor --log-file /tmp/pimon.log --debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMonitor()
	},
}

// watchCmd prints samples without the TUI
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print one line per sample without the dashboard",
	Long: `Scrape the endpoint and print every computed sample to stdout.

The first scrape only primes the rate computation, so output starts after the
second. Stop with Ctrl+C or --count.

Examples:
  pimon watch
  pimon watch --json --count 10 | jq .data.cpu_usage`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = watchJSONFlag

		cfg, _, err := loadSettings(cfgFile, globalOverrides())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return watchCommand(ctx, cfg, WatchOptions{JSON: watchJSONFlag, Count: watchCountFlag}, cmd.OutOrStdout())
	},
}

// initCmd creates a config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .pimon.yaml in the current directory",
	Long: `Create a .pimon.yaml configuration file.

Prompts for the endpoint and refresh interval unless --url is given,
--non-interactive is set, or CI is set in the environment. The endpoint is
scraped once before saving; --skip-check saves without it.

Examples:
  pimon init
  pimon init --url http://raspberrypi.local:9100/metrics --interval 2s
  pimon init --force --non-interactive`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(InitOptions{
			URL:            urlFlag,
			Interval:       intervalFlag,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive,
			SkipCheck:      initSkipCheck,
		}, cmd.OutOrStdout())
	},
}

// configCmd groups config inspection and editing
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration pimon would run with, after the config file,
.env, METRICS_URL, PIMON_* variables and flags have been applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowCommand(cfgFile, globalOverrides(), cmd.OutOrStdout())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set one configuration key",
	Long: `Set a key in the config file, keeping its comments and layout.

Examples:
  pimon config set url http://raspberrypi.local:9100/metrics
  pimon config set interval 2s
  pimon config set --global color never`,
	Args: cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.Keys, cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(cfgFile, configSetGlobal, args[0], args[1], cmd.OutOrStdout())
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for pimon.

Examples:
  # Bash
  pimon completion bash > /etc/bash_completion.d/pimon

  # Zsh
  pimon completion zsh > "${fpath[1]}/_pimon"

  # Fish
  pimon completion fish > ~/.config/fish/completions/pimon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrConfig,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// monitor command flags
	monitorCmd.Flags().StringVar(&monitorLogFile, "log-file", "", "write log output to this file while the dashboard runs")

	// watch command flags
	watchCmd.Flags().BoolVar(&watchJSONFlag, "json", false, "print each sample as a JSON object")
	watchCmd.Flags().IntVar(&watchCountFlag, "count", 0, "stop after this many samples (0 = until interrupted)")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use flags or defaults")
	initCmd.Flags().BoolVar(&initSkipCheck, "skip-check", false, "save without scraping the endpoint first")

	// config set flags
	configSetCmd.Flags().BoolVar(&configSetGlobal, "global", false, "write to ~/.config/pimon/config.yaml")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)

	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}
