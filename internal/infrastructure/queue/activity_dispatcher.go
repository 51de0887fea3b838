package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/eventsphere/registration-api/internal/core/domain"
	"github.com/eventsphere/registration-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var (
	ErrQueueFull = errors.New("activity queue full")
	ErrStopped   = errors.New("activity dispatcher stopped")
)

// ActivityDispatcher moves audit writes off the request path. Entries are
// sharded by event id so each event's history is written in order.
type ActivityDispatcher struct {
	workers []chan domain.Activity
	sink    ports.ActivityRepository
	log     zerolog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewActivityDispatcher creates a dispatcher writing to sink with numWorkers
// shards. If numWorkers <= 0, defaultWorkers is used.
func NewActivityDispatcher(numWorkers int, sink ports.ActivityRepository, log zerolog.Logger) *ActivityDispatcher {
	return newActivityDispatcher(numWorkers, channelBuffer, sink, log)
}

func newActivityDispatcher(numWorkers, buffer int, sink ports.ActivityRepository, log zerolog.Logger) *ActivityDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &ActivityDispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, buffer)
	}
	return d
}

// Start launches the workers. ctx is used for the sink writes.
func (d *ActivityDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues a copy of a without blocking. It satisfies
// ports.ActivityRepository so services can use the dispatcher directly.
func (d *ActivityDispatcher) Record(_ context.Context, a *domain.Activity) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}
	select {
	case d.workers[d.shardIndex(a.EventID)] <- *a:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop refuses new entries, then waits until the queued ones are written.
func (d *ActivityDispatcher) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *ActivityDispatcher) shardIndex(eventID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(eventID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *ActivityDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	defer d.wg.Done()
	for a := range ch {
		if err := d.sink.Record(ctx, &a); err != nil {
			d.log.Warn().Err(err).
				Str("event_id", a.EventID).
				Str("action", string(a.Action)).
				Int("worker_id", id).
				Msg("activity write failed")
		}
	}
}
