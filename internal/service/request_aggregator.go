package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"ulascansenturk/farm-records/internal/observability"
)

var ErrShuttingDown = errors.New("ingestion is shutting down")

type IngestResponse struct {
	Result IngestResult
	Err    error
}

type ingestFunc func(ctx context.Context, farmID uint) (IngestResult, error)

// IngestRequestAggregator runs at most one ingestion per farm at a time.
// Requests that arrive while a farm is in flight wait for and share its result.
type IngestRequestAggregator interface {
	AddRequest(ctx context.Context, farmID uint) (<-chan IngestResponse, error)
	Shutdown()
}

type farmQueue struct {
	channels []chan IngestResponse
}

type ingestAggregator struct {
	ingest  ingestFunc
	timeout time.Duration
	metrics *observability.Metrics

	mu     sync.Mutex
	queues map[uint]*farmQueue
	closed bool
	wg     sync.WaitGroup
}

func NewIngestRequestAggregator(ingest ingestFunc, timeout time.Duration, metrics *observability.Metrics) IngestRequestAggregator {
	return &ingestAggregator{
		ingest:  ingest,
		timeout: timeout,
		metrics: metrics,
		queues:  make(map[uint]*farmQueue),
	}
}

func (a *ingestAggregator) AddRequest(ctx context.Context, farmID uint) (<-chan IngestResponse, error) {
	// buffered so delivery never blocks on a caller that gave up
	responseChan := make(chan IngestResponse, 1)

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrShuttingDown
	}

	if queue, exists := a.queues[farmID]; exists {
		queue.channels = append(queue.channels, responseChan)
		if a.metrics != nil {
			a.metrics.IngestionsCoalesced.Inc()
		}
		return responseChan, nil
	}

	a.queues[farmID] = &farmQueue{channels: []chan IngestResponse{responseChan}}
	a.wg.Add(1)

	// followers share the run, so it must outlive the first caller's cancellation
	go a.process(context.WithoutCancel(ctx), farmID)

	return responseChan, nil
}

func (a *ingestAggregator) process(ctx context.Context, farmID uint) {
	defer a.wg.Done()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	result, err := a.ingest(ctx, farmID)

	a.mu.Lock()
	queue := a.queues[farmID]
	delete(a.queues, farmID)
	a.mu.Unlock()

	if queue == nil {
		return
	}

	for _, ch := range queue.channels {
		ch <- IngestResponse{Result: result, Err: err}
		close(ch)
	}
}

// Shutdown rejects new requests and waits for in-flight ingestions to deliver.
func (a *ingestAggregator) Shutdown() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	a.wg.Wait()
}
