package doctor

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/common/expfmt"

	"github.com/rileyhilliard/pimon/internal/errors"
	"github.com/rileyhilliard/pimon/internal/exposition"
	"github.com/rileyhilliard/pimon/internal/metrics"
	"github.com/rileyhilliard/pimon/internal/sampler"
)

// Scrape fetches the endpoint at most once and shares the payload between
// the endpoint checks.
type Scrape struct {
	URL     string
	Fetcher sampler.Fetcher

	once    sync.Once
	body    []byte
	err     error
	latency time.Duration
}

// Get performs the fetch on first call and returns the cached outcome after.
func (s *Scrape) Get(ctx context.Context) ([]byte, time.Duration, error) {
	s.once.Do(func() {
		start := time.Now()
		s.body, s.err = s.Fetcher.Fetch(ctx, s.URL)
		s.latency = time.Since(start)
	})
	return s.body, s.latency, s.err
}

// EndpointReachableCheck verifies the endpoint answers with a 200.
type EndpointReachableCheck struct {
	Scrape *Scrape
}

func (c *EndpointReachableCheck) Name() string     { return "endpoint_reachable" }
func (c *EndpointReachableCheck) Category() string { return CategoryEndpoint }

func (c *EndpointReachableCheck) Run(ctx context.Context) CheckResult {
	body, latency, err := c.Scrape.Get(ctx)
	if err != nil {
		result := failFromError(c.Name(), err, "Check that node_exporter is running")
		result.Message = errors.Summarize(err)
		return result
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s answered in %dms (%d bytes)", c.Scrape.URL, latency.Milliseconds(), len(body)),
	}
}

// EndpointFormatCheck runs the payload through the strict Prometheus text
// parser. The dashboard's own parser tolerates malformed lines, so a failure
// here is only a warning.
type EndpointFormatCheck struct {
	Scrape *Scrape
}

func (c *EndpointFormatCheck) Name() string     { return "endpoint_format" }
func (c *EndpointFormatCheck) Category() string { return CategoryEndpoint }

func (c *EndpointFormatCheck) Run(ctx context.Context) CheckResult {
	body, _, err := c.Scrape.Get(ctx)
	if err != nil {
		return skippedResult(c.Name())
	}

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Payload is not valid exposition text: %v", err),
			Suggestion: "Malformed lines are skipped, but the target may be misconfigured",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d metric families", len(families)),
	}
}

// coverageGroups are the dashboard rows and the series that feed them.
var coverageGroups = []struct {
	name    string
	metrics []string
}{
	{"cpu", []string{metrics.MetricCPUSeconds}},
	{"memory", []string{metrics.MetricMemTotal, metrics.MetricMemAvailable}},
	{"disk", []string{metrics.MetricDiskReadBytes, metrics.MetricDiskWritten}},
	{"net", []string{metrics.MetricNetReceiveBytes, metrics.MetricNetTransmitByte}},
	{"boot_time", []string{metrics.MetricBootTime}},
	{"load", []string{metrics.MetricLoad1}},
}

// EndpointCoverageCheck warns when the payload lacks series a dashboard row
// needs. Missing rows render as flat zero lines.
type EndpointCoverageCheck struct {
	Scrape *Scrape
}

func (c *EndpointCoverageCheck) Name() string     { return "endpoint_coverage" }
func (c *EndpointCoverageCheck) Category() string { return CategoryEndpoint }

func (c *EndpointCoverageCheck) Run(ctx context.Context) CheckResult {
	body, _, err := c.Scrape.Get(ctx)
	if err != nil {
		return skippedResult(c.Name())
	}

	present := seriesNames(body)
	var missing []string
	for _, group := range coverageGroups {
		for _, name := range group.metrics {
			if !present[name] {
				missing = append(missing, group.name)
				break
			}
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Missing series for: %s", strings.Join(missing, ", ")),
			Suggestion: "Enable the matching node_exporter collectors",
		}
	}

	snap := metrics.NewRawSnapshot()
	metrics.Populate(&snap, body)
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("All dashboard series present, %d cpu%s", len(snap.CPUSecondsTotal), pluralize(len(snap.CPUSecondsTotal))),
	}
}

// seriesNames collects the known metric names that appear on sample lines.
func seriesNames(body []byte) map[string]bool {
	names := make(nameCollector)
	exposition.Parse(body, names)
	return names
}

// nameCollector is an exposition.Listener that records metric names.
type nameCollector map[string]bool

func (c nameCollector) OnMetricsBegin(name string) {
	if metrics.IsKnownMetric(name) {
		c[name] = true
	}
}

func (c nameCollector) OnMetricsLabel(string, string) {}
func (c nameCollector) OnMetricsValue(string)         {}
func (c nameCollector) OnMetricsEnd()                 {}

func skippedResult(name string) CheckResult {
	return CheckResult{
		Name:    name,
		Status:  StatusWarn,
		Message: "Skipped, endpoint unreachable",
	}
}

// NewEndpointChecks creates the endpoint checks for url. They share a single
// scrape made with fetcher.
func NewEndpointChecks(url string, fetcher sampler.Fetcher) []Check {
	scrape := &Scrape{URL: url, Fetcher: fetcher}
	return []Check{
		&EndpointReachableCheck{Scrape: scrape},
		&EndpointFormatCheck{Scrape: scrape},
		&EndpointCoverageCheck{Scrape: scrape},
	}
}
