package providers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

type BreakerConfig struct {
	Interval    time.Duration
	Timeout     time.Duration
	MaxFailures uint32
}

// BreakerClient trips after MaxFailures consecutive transport errors or 5xx
// responses and then fails fast until Timeout elapses. It never retries.
type BreakerClient struct {
	cb      *gobreaker.CircuitBreaker
	wrapped HTTPClient
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped HTTPClient) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
	}
	return &BreakerClient{
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

func (b *BreakerClient) Do(req *http.Request) (*http.Response, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		resp, err := b.wrapped.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.cb.Name(), err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("%s returned unexpected result", b.cb.Name())
	}
	return resp, nil
}

func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}
