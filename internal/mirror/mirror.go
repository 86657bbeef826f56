// Package mirror pushes the current data set to a remote document store.
//
// The mirror is best effort by design: local state is authoritative and
// already committed when a push starts. A failed push is logged, counted
// and published on the Results channel so that callers can warn the user
// that the change may not have synced. Pushes are never retried and a
// failure never rolls anything back.
package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var pushErrorCount = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "credtrack_mirror_push_errors_total",
		Help: "How many pushes to the remote document mirror failed.",
	},
)

// Result reports the outcome of a single push.
type Result struct {
	Time time.Time
	Err  error // nil on success
}

// Mirror pushes JSON documents to a remote HTTP endpoint.
type Mirror struct {
	url     string
	client  *http.Client
	results chan Result
}

// New returns a mirror pushing to the given URL.
func New(url string) *Mirror {
	return &Mirror{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Buffered so that slow consumers never block a push
		results: make(chan Result, 16),
	}
}

// Results is the failure channel of the mirror. Consuming it is
// optional: results are dropped when the channel is full.
func (m *Mirror) Results() <-chan Result {
	return m.results
}

// Push sends the document to the remote store in the background and
// returns immediately.
func (m *Mirror) Push(document any) {
	go func() {
		err := m.push(document)
		if err != nil {
			pushErrorCount.Inc()
			log.Warn().Err(err).Str("url", m.url).Msg("mirror push failed, local data is unaffected")
		}

		select {
		case m.results <- Result{Time: time.Now(), Err: err}:
		default:
		}
	}()
}

func (m *Mirror) push(document any) error {
	body, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("marshaling mirror document: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building mirror request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("pushing to mirror: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("mirror returned HTTP %d", resp.StatusCode)
	}

	return nil
}
