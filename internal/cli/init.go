package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/pimon/internal/config"
	"github.com/rileyhilliard/pimon/internal/errors"
	"github.com/rileyhilliard/pimon/internal/metrics"
	"github.com/rileyhilliard/pimon/internal/sampler"
	"github.com/rileyhilliard/pimon/internal/ui"
	"golang.org/x/term"
)

// probeTimeout bounds the endpoint check run before saving.
const probeTimeout = 10 * time.Second

// InitOptions holds options for the init command.
type InitOptions struct {
	URL            string // Metrics endpoint
	Interval       string // Refresh interval, e.g. "1s"
	Dir            string // Directory to write into, default "."
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
	SkipCheck      bool   // Don't scrape the endpoint before saving
}

// getInitDefaults reads init defaults from the environment.
func getInitDefaults() InitOptions {
	return InitOptions{
		URL:            os.Getenv(config.EnvURL),
		Interval:       os.Getenv(config.EnvPrefix + "_INTERVAL"),
		NonInteractive: os.Getenv(config.EnvPrefix+"_NON_INTERACTIVE") == "true" || os.Getenv("CI") != "",
	}
}

// mergeInitOptions fills empty flag values from the environment. A URL given
// on the command line skips the prompts.
func mergeInitOptions(opts InitOptions) InitOptions {
	defaults := getInitDefaults()

	if opts.URL == "" {
		opts.URL = defaults.URL
	} else {
		opts.NonInteractive = true
	}
	if opts.Interval == "" {
		opts.Interval = defaults.Interval
	}
	if defaults.NonInteractive {
		opts.NonInteractive = true
	}
	return opts
}

// checkExistingConfig reports whether init may write configPath.
func checkExistingConfig(configPath string, opts InitOptions) (bool, error) {
	if _, err := os.Stat(configPath); err != nil || opts.Overwrite {
		return true, nil
	}

	if opts.NonInteractive {
		return false, errors.New(errors.ErrConfig,
			fmt.Sprintf("There's already a config file at %s", configPath),
			"Use --force to overwrite")
	}

	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running with --force to overwrite")
	}
	return overwrite, nil
}

// validateURLInput is the huh validator for the endpoint prompt.
func validateURLInput(s string) error {
	_, err := sampler.ValidateURL(strings.TrimSpace(s))
	return err
}

// validateIntervalInput is the huh validator for the interval prompt.
func validateIntervalInput(s string) error {
	d, err := ParseInterval(s)
	if err != nil {
		return err
	}
	if d < config.MinInterval {
		return fmt.Errorf("interval must be at least %s", config.MinInterval)
	}
	return nil
}

// buildInitConfig turns the collected answers into a validated config.
func buildInitConfig(rawURL, interval string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if rawURL = strings.TrimSpace(rawURL); rawURL != "" {
		if _, err := sampler.ValidateURL(rawURL); err != nil {
			return nil, err
		}
		cfg.URL = rawURL
	}
	if interval != "" {
		d, err := ParseInterval(interval)
		if err != nil {
			return nil, err
		}
		cfg.Interval = d
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// promptInitValues asks for the endpoint and interval.
func promptInitValues(opts InitOptions) (string, string, error) {
	rawURL := opts.URL
	if rawURL == "" {
		rawURL = config.DefaultURL
	}
	interval := opts.Interval
	if interval == "" {
		interval = config.DefaultInterval.String()
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Metrics URL").
				Description("node_exporter endpoint to scrape").
				Placeholder("http://raspberrypi.local:9100/metrics").
				Value(&rawURL).
				Validate(validateURLInput),
			huh.NewInput().
				Title("Refresh interval").
				Description("Time between scrapes").
				Placeholder(time.Second.String()).
				Value(&interval).
				Validate(validateIntervalInput),
		),
	)
	if err := form.Run(); err != nil {
		return "", "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	return rawURL, interval, nil
}

// Init creates a new .pimon.yaml and returns its path. An empty path with a
// nil error means the user declined to overwrite.
func Init(opts InitOptions, out io.Writer) (string, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	proceed, err := checkExistingConfig(configPath, opts)
	if err != nil {
		return "", err
	}
	if !proceed {
		fmt.Fprintln(out, "Cancelled.")
		return "", nil
	}

	rawURL, interval := opts.URL, opts.Interval
	if !opts.NonInteractive {
		rawURL, interval, err = promptInitValues(opts)
		if err != nil {
			return "", err
		}
	}

	cfg, err := buildInitConfig(rawURL, interval)
	if err != nil {
		return "", err
	}
	if !opts.SkipCheck {
		if err := checkEndpoint(cfg, opts.NonInteractive, out); err != nil {
			return "", err
		}
	}

	if err := config.Write(configPath, cfg); err != nil {
		return "", err
	}

	fmt.Fprintf(out, "Created %s\n", configPath)
	fmt.Fprintf(out, "Run 'pimon' to watch %s\n", cfg.URL)
	return configPath, nil
}

// probeEndpoint scrapes the configured URL once and returns how many CPUs
// it reports. A payload with neither CPU nor memory series is rejected.
func probeEndpoint(ctx context.Context, cfg *config.Config) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	body, err := sampler.NewHTTPFetcher(nil, cfg.ConnectTimeout).Fetch(ctx, cfg.URL)
	if err != nil {
		return 0, err
	}

	snap := metrics.NewRawSnapshot()
	metrics.Populate(&snap, body)
	if len(snap.CPUSecondsTotal) == 0 && snap.MemoryTotalBytes == 0 {
		return 0, errors.New(errors.ErrParse,
			fmt.Sprintf("%s doesn't look like a node_exporter endpoint", cfg.URL),
			"Point the URL at node_exporter's /metrics path, usually port 9100")
	}
	return len(snap.CPUSecondsTotal), nil
}

// checkEndpoint runs probeEndpoint behind a spinner. Interactive runs may
// choose to save anyway after a failure.
func checkEndpoint(cfg *config.Config, nonInteractive bool, out io.Writer) error {
	spinner := ui.NewSpinner("Checking "+cfg.URL, out, isTerminalWriter(out))
	spinner.Start()

	cpus, err := probeEndpoint(context.Background(), cfg)
	if err == nil {
		spinner.Success(fmt.Sprintf("%d cpus", cpus))
		return nil
	}
	spinner.Fail(errors.Summarize(err))

	if nonInteractive {
		return err
	}

	var saveAnyway bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save config anyway? (You can start node_exporter later)").
				Value(&saveAnyway),
		),
	)
	if formErr := form.Run(); formErr != nil || !saveAnyway {
		return err
	}
	return nil
}

// isTerminalWriter reports whether out is an interactive terminal.
func isTerminalWriter(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// initCommand merges flags with the environment and runs Init.
func initCommand(opts InitOptions, out io.Writer) error {
	_, err := Init(mergeInitOptions(opts), out)
	return err
}
