package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrStopped is returned by Do once the workers have been stopped.
var ErrStopped = errors.New("serializer stopped")

// QueueDepthObserver receives the pending job count of a worker after each enqueue.
type QueueDepthObserver func(workerID string, depth int)

type job struct {
	ctx  context.Context
	fn   func(context.Context) error
	done chan error
}

// Serializer runs jobs on a fixed set of workers, routing every job for the
// same key to the same worker. Jobs sharing a key therefore run one at a
// time and in submission order, which makes each device's read-modify-write
// of its stored state atomic.
type Serializer struct {
	workers  []chan job
	stopped  chan struct{}
	observer QueueDepthObserver
	log      zerolog.Logger
}

// NewSerializer creates a Serializer with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewSerializer(numWorkers int, log zerolog.Logger) *Serializer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Serializer{
		workers: make([]chan job, numWorkers),
		stopped: make(chan struct{}),
		log:     log,
	}
	for i := range s.workers {
		s.workers[i] = make(chan job, channelBuffer)
	}
	return s
}

// ObserveDepth registers a callback for queue depth, e.g. a metrics gauge.
// Call before Start.
func (s *Serializer) ObserveDepth(o QueueDepthObserver) {
	s.observer = o
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (s *Serializer) Start(ctx context.Context) {
	for i, ch := range s.workers {
		go s.runWorker(ctx, i, ch)
	}
	go func() {
		<-ctx.Done()
		close(s.stopped)
	}()
}

// Do runs fn on the worker owning key and waits for its result. It returns
// early with ctx.Err() if ctx ends first; a job already picked up still runs
// to completion.
func (s *Serializer) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	j := job{ctx: ctx, fn: fn, done: make(chan error, 1)}
	idx := s.shardIndex(key)

	select {
	case s.workers[idx] <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrStopped
	}
	if s.observer != nil {
		s.observer(strconv.Itoa(idx), len(s.workers[idx]))
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrStopped
	}
}

// shardIndex maps a key deterministically to a worker index.
func (s *Serializer) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(s.workers)))
}

func (s *Serializer) runWorker(ctx context.Context, id int, ch <-chan job) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			if j.ctx.Err() != nil {
				j.done <- j.ctx.Err()
				continue
			}
			err := s.run(j)
			if err != nil {
				s.log.Debug().Err(err).Int("worker_id", id).Msg("job returned error")
			}
			j.done <- err
		}
	}
}

func (s *Serializer) run(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("job panicked")
			err = errors.New("job panicked")
		}
	}()
	return j.fn(j.ctx)
}
