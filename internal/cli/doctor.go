package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/rileyhilliard/pimon/internal/doctor"
	"github.com/rileyhilliard/pimon/internal/sampler"
	"github.com/rileyhilliard/pimon/internal/ui"
	"github.com/spf13/cobra"
)

var doctorJSON bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}

// doctorCmd diagnoses configuration and endpoint problems
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and endpoint issues",
	Long: `Check the config file, the resolved settings and the metrics endpoint.

The endpoint is scraped once. Its payload is run through the strict Prometheus
text parser and checked for the series each dashboard row needs.

Examples:
  pimon doctor
  pimon doctor --url http://raspberrypi.local:9100/metrics
  pimon doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		machineMode = doctorJSON
		return doctorCommand(cmd.Context(), cfgFile, globalOverrides(), doctorJSON, cmd.OutOrStdout())
	},
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	URL        string           `json:"url"`
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorTarget picks the endpoint to probe. A broken config still yields a
// target, falling back to the defaults, so endpoint checks run regardless.
func doctorTarget(configPath string, o Overrides) *config.Config {
	cfg, _, err := config.Resolve(configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if u := strings.TrimSpace(o.URL); u != "" {
		cfg.URL = u
	}
	return cfg
}

// collectChecks gathers every diagnostic in report order.
func collectChecks(configPath string, cfg *config.Config) []doctor.Check {
	var checks []doctor.Check
	checks = append(checks, doctor.NewConfigChecks(configPath)...)
	fetcher := sampler.NewHTTPFetcher(nil, cfg.ConnectTimeout)
	checks = append(checks, doctor.NewEndpointChecks(cfg.URL, fetcher)...)
	return checks
}

// doctorCommand implements the doctor command logic.
func doctorCommand(ctx context.Context, configPath string, o Overrides, jsonOut bool, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cfg := doctorTarget(configPath, o)
	checks := collectChecks(configPath, cfg)
	results := doctor.RunAll(ctx, checks)

	if jsonOut {
		return WriteJSONSuccess(out, buildDoctorOutput(cfg.URL, checks, results))
	}
	renderDoctorText(out, cfg.URL, checks, results)
	return nil
}

// buildDoctorOutput groups results by category in first-seen order.
func buildDoctorOutput(url string, checks []doctor.Check, results []doctor.CheckResult) DoctorOutput {
	grouped := make(map[string][]doctor.CheckResult)
	var categoryOrder []string

	for i, check := range checks {
		cat := check.Category()
		if _, exists := grouped[cat]; !exists {
			categoryOrder = append(categoryOrder, cat)
		}
		grouped[cat] = append(grouped[cat], results[i])
	}

	output := DoctorOutput{
		URL:        url,
		Categories: make([]CategoryOutput, 0, len(categoryOrder)),
	}
	for _, cat := range categoryOrder {
		output.Categories = append(output.Categories, CategoryOutput{Name: cat, Results: grouped[cat]})
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: !doctor.HasIssues(results),
	}
	return output
}

// renderDoctorText writes the human-readable report.
func renderDoctorText(out io.Writer, url string, checks []doctor.Check, results []doctor.CheckResult) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("pimon Diagnostic Report"))
	fmt.Fprintf(out, "%s\n\n", mutedStyle.Render(url))

	grouped := make(map[string][]int)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], i)
	}

	for _, category := range []string{doctor.CategoryConfig, doctor.CategoryEndpoint} {
		indices := grouped[category]
		if len(indices) == 0 {
			continue
		}

		fmt.Fprintln(out, headerStyle.Render(category))
		for _, idx := range indices {
			result := results[idx]

			symbol, style := ui.SymbolSuccess, successStyle
			switch result.Status {
			case doctor.StatusWarn:
				symbol, style = ui.SymbolPending, warnStyle
			case doctor.StatusFail:
				symbol, style = ui.SymbolFail, errorStyle
			}

			fmt.Fprintf(out, "  %s %s\n", style.Render(symbol), result.Message)
			if result.Suggestion != "" && result.Status != doctor.StatusPass {
				for _, line := range strings.Split(result.Suggestion, "\n") {
					fmt.Fprintf(out, "    %s\n", mutedStyle.Render(line))
				}
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintln(out)

	if doctor.HasIssues(results) {
		fmt.Fprintf(out, "%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Fprintf(out, "%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	}
	fmt.Fprintln(out)
}
