// Package cli implements the pimon command-line interface.
//
// The package is organized around Cobra commands. Each command resolves the
// configuration, then hands off to the sampler and, for the dashboard, the
// monitor package.
//
// # Command Structure
//
// The root command is "pimon" with subcommands:
//
//	pimon               - Dashboard when stdout is a terminal, help otherwise
//	pimon monitor       - Full-screen dashboard
//	pimon watch         - Headless: one line (or JSON object) per sample
//	pimon init          - Create .pimon.yaml
//	pimon config show   - Print the effective configuration
//	pimon config set    - Change one key in the config file
//	pimon doctor        - Check the config and probe the endpoint
//	pimon completion    - Shell completion scripts
//	pimon version       - Build information
//
// # Configuration
//
// Settings are resolved in this order, later wins:
//
//  1. Built-in defaults
//  2. The config file found by config.Find (--config, ./.pimon.yaml, parents, ~/.config/pimon)
//  3. Environment: .env in the working directory, METRICS_URL, PIMON_*
//  4. The --url and --interval flags
//
// # Flag Handling
//
// Global flags (--config, --url, --interval, --debug, --no-color) are
// defined on the root command and available to all subcommands.
package cli
