package metrics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/prometheus/prompb"
)

// DefaultTimeout is the default timeout for remote write requests.
const DefaultTimeout = 30 * time.Second

// Metric represents a single metric point.
type Metric struct {
	Name      string
	Value     float64
	Labels    map[string]string
	Timestamp time.Time
}

// PushConfig configures a Client.
type PushConfig struct {
	// URL is the base URL of the remote write endpoint (e.g., "http://localhost:8428").
	URL string
	// Prefix is prepended to every metric name, followed by an underscore.
	Prefix string
	// Job is the job label for all metrics.
	Job string
	// Instance is the instance label for all metrics.
	Instance string
	// Timeout is the HTTP client timeout. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client pushes batches of samples to a Prometheus remote write endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	prefix     string
	job        string
	instance   string
}

// NewClient creates a remote write client.
func NewClient(cfg PushConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:        cfg.URL + "/api/v1/write",
		httpClient: &http.Client{Timeout: timeout},
		prefix:     cfg.Prefix,
		job:        cfg.Job,
		instance:   cfg.Instance,
	}
}

// PushMetrics sends all metrics in a single write request.
func (c *Client) PushMetrics(ctx context.Context, metrics ...Metric) error {
	if len(metrics) == 0 {
		return nil
	}

	timeseries := make([]prompb.TimeSeries, 0, len(metrics))
	for _, m := range metrics {
		timeseries = append(timeseries, c.metricToTimeSeries(m))
	}

	data, err := proto.Marshal(&prompb.WriteRequest{Timeseries: timeseries})
	if err != nil {
		return fmt.Errorf("marshaling write request: %w", err)
	}

	compressed := snappy.Encode(nil, data)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(compressed))
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Encoding", "snappy")
	httpReq.Header.Set("Content-Type", "application/x-protobuf")
	httpReq.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// metricToTimeSeries converts a Metric to Prometheus TimeSeries format.
// Labels are sorted by name as remote write receivers expect.
func (c *Client) metricToTimeSeries(m Metric) prompb.TimeSeries {
	name := m.Name
	if c.prefix != "" {
		name = c.prefix + "_" + name
	}

	labels := map[string]string{"__name__": name}
	if c.job != "" {
		labels["job"] = c.job
	}
	if c.instance != "" {
		labels["instance"] = c.instance
	}
	for k, v := range m.Labels {
		labels[k] = v
	}

	promLabels := make([]prompb.Label, 0, len(labels))
	for k, v := range labels {
		promLabels = append(promLabels, prompb.Label{Name: k, Value: v})
	}
	sort.Slice(promLabels, func(i, j int) bool {
		return promLabels[i].Name < promLabels[j].Name
	})

	timestamp := m.Timestamp.UnixMilli()
	if m.Timestamp.IsZero() {
		timestamp = time.Now().UnixMilli()
	}

	return prompb.TimeSeries{
		Labels: promLabels,
		Samples: []prompb.Sample{{
			Value:     m.Value,
			Timestamp: timestamp,
		}},
	}
}
