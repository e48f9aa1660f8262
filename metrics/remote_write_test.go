package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/prometheus/prompb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWriteServer returns a test server that decodes remote write requests
// and forwards the received series on the returned channel.
func newWriteServer(t *testing.T, status int) (*httptest.Server, <-chan []prompb.TimeSeries) {
	t.Helper()
	received := make(chan []prompb.TimeSeries, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/write", r.URL.Path)
		assert.Equal(t, "snappy", r.Header.Get("Content-Encoding"))
		assert.Equal(t, "application/x-protobuf", r.Header.Get("Content-Type"))
		assert.Equal(t, "0.1.0", r.Header.Get("X-Prometheus-Remote-Write-Version"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		decoded, err := snappy.Decode(nil, body)
		require.NoError(t, err)

		var writeReq prompb.WriteRequest
		require.NoError(t, proto.Unmarshal(decoded, &writeReq))

		received <- writeReq.Timeseries
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, received
}

func findLabel(labels []prompb.Label, name string) string {
	for _, l := range labels {
		if l.Name == name {
			return l.Value
		}
	}
	return ""
}

func TestClient_PushMetrics(t *testing.T) {
	server, received := newWriteServer(t, http.StatusNoContent)

	client := NewClient(PushConfig{
		URL:      server.URL,
		Prefix:   "mergington",
		Job:      "activities",
		Instance: "test",
	})

	ts := time.UnixMilli(1700000000000)
	err := client.PushMetrics(context.Background(),
		Metric{Name: "participants", Value: 3, Labels: map[string]string{"activity": "Chess Club"}, Timestamp: ts},
		Metric{Name: "capacity", Value: 12, Labels: map[string]string{"activity": "Chess Club"}, Timestamp: ts},
	)
	require.NoError(t, err)

	select {
	case series := <-received:
		require.Len(t, series, 2)

		first := series[0]
		assert.Equal(t, "mergington_participants", findLabel(first.Labels, "__name__"))
		assert.Equal(t, "activities", findLabel(first.Labels, "job"))
		assert.Equal(t, "test", findLabel(first.Labels, "instance"))
		assert.Equal(t, "Chess Club", findLabel(first.Labels, "activity"))
		require.Len(t, first.Samples, 1)
		assert.Equal(t, 3.0, first.Samples[0].Value)
		assert.Equal(t, int64(1700000000000), first.Samples[0].Timestamp)

		for i := 1; i < len(first.Labels); i++ {
			assert.Less(t, first.Labels[i-1].Name, first.Labels[i].Name, "labels must be sorted")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for metrics to be received")
	}
}

func TestClient_PushMetrics_Empty(t *testing.T) {
	client := NewClient(PushConfig{URL: "http://127.0.0.1:1"})
	assert.NoError(t, client.PushMetrics(context.Background()))
}

func TestClient_PushMetrics_ErrorStatus(t *testing.T) {
	server, _ := newWriteServer(t, http.StatusBadRequest)
	client := NewClient(PushConfig{URL: server.URL})

	err := client.PushMetrics(context.Background(), Metric{Name: "participants", Value: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 400")
}
