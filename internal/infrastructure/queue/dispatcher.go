package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodexpress/delivery-api/internal/api/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

var ErrStopped = errors.New("dispatcher stopped")

const (
	jobPending int32 = iota
	jobClaimed
	jobAbandoned
)

// job state moves from pending to exactly one of claimed (a worker runs fn)
// or abandoned (the caller gave up first and fn never runs).
type job[S any] struct {
	key   string
	fn    func(S)
	state atomic.Int32
	done  chan struct{}
}

func (j *job[S]) claim() bool   { return j.state.CompareAndSwap(jobPending, jobClaimed) }
func (j *job[S]) abandon() bool { return j.state.CompareAndSwap(jobPending, jobAbandoned) }

// Dispatcher routes jobs to a fixed set of workers using consistent hashing
// on a key. Each worker owns a private shard state S that only its jobs see,
// so every key has exactly one writer and its jobs run in submission order.
type Dispatcher[S any] struct {
	workers  []chan *job[S]
	newShard func() S
	log      zerolog.Logger

	stopped chan struct{}
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// starting from newShard(). If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher[S any](numWorkers int, newShard func() S, log zerolog.Logger) *Dispatcher[S] {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher[S]{
		workers:  make([]chan *job[S], numWorkers),
		newShard: newShard,
		log:      log,
		stopped:  make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan *job[S], channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// Wait blocks until they have returned.
func (d *Dispatcher[S]) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		<-ctx.Done()
		close(d.stopped)
	}()
}

func (d *Dispatcher[S]) Wait() {
	d.wg.Wait()
}

// Do runs fn on the worker that owns key and blocks until it has run. A nil
// return means fn ran exactly once; any error means it never runs. If ctx ends
// while fn is already running, Do waits for it and returns nil.
func (d *Dispatcher[S]) Do(ctx context.Context, key string, fn func(S)) error {
	start := time.Now()
	idx := d.shardIndex(key)
	j := &job[S]{key: key, fn: fn, done: make(chan struct{})}

	select {
	case d.workers[idx] <- j:
		metrics.CartQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	case <-d.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	var err error
	select {
	case <-j.done:
	case <-d.stopped:
		err = ErrStopped
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		if j.abandon() {
			return err
		}
		<-j.done
	}
	metrics.CartJobDuration.Observe(time.Since(start).Seconds())
	return nil
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher[S]) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher[S]) runWorker(ctx context.Context, id int, ch <-chan *job[S]) {
	defer d.wg.Done()
	shard := d.newShard()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-ch:
			d.run(id, shard, j)
			metrics.CartQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
		}
	}
}

func (d *Dispatcher[S]) run(id int, shard S, j *job[S]) {
	defer close(j.done)
	if !j.claim() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Interface("panic", r).
				Str("key", j.key).
				Int("worker_id", id).
				Msg("dispatcher job panicked")
		}
	}()
	j.fn(shard)
}
