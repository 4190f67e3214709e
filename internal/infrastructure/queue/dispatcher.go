package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/share2care/admin-console/internal/api/metrics"
	"github.com/share2care/admin-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ErrStopped is returned by Submit once Stop has been called.
var ErrStopped = errors.New("dispatcher stopped")

// Config tunes the delivery pool.
type Config struct {
	Workers int
	// RatePerSecond caps deliveries across all workers; zero disables pacing.
	RatePerSecond float64
}

// Dispatcher routes broadcast deliveries to a fixed set of workers using
// consistent hashing on the recipient id, so one volunteer never receives two
// messages out of order.
//
// Submitted batches go to a backlog that a single feeder goroutine moves into
// the worker channels in submission order, so callers never wait on a full
// worker buffer.
type Dispatcher struct {
	workers []chan ports.Delivery
	sender  ports.DeliverySender
	limiter *rate.Limiter
	log     zerolog.Logger

	mu            sync.Mutex
	stopped       bool
	backlog       [][]ports.Delivery
	wake          chan struct{}
	quit          context.Context
	stopFeeder    context.CancelFunc
	feederDone    chan struct{}
	cancelWorkers context.CancelFunc
	wg            sync.WaitGroup
}

var _ ports.DeliveryQueue = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher. If cfg.Workers <= 0, defaultWorkers is used.
func NewDispatcher(cfg Config, sender ports.DeliverySender, log zerolog.Logger) *Dispatcher {
	n := cfg.Workers
	if n <= 0 {
		n = defaultWorkers
	}
	limit, burst := rate.Inf, 0
	if cfg.RatePerSecond > 0 {
		limit, burst = rate.Limit(cfg.RatePerSecond), 1
	}
	quit, stop := context.WithCancel(context.Background())
	d := &Dispatcher{
		workers:    make([]chan ports.Delivery, n),
		sender:     sender,
		limiter:    rate.NewLimiter(limit, burst),
		log:        log,
		wake:       make(chan struct{}, 1),
		quit:       quit,
		stopFeeder: stop,
		feederDone: make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Delivery, channelBuffer)
	}
	go d.feed()
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Stop has drained their channels.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	d.mu.Lock()
	d.cancelWorkers = cancel
	d.mu.Unlock()

	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Submit appends a batch to the backlog and returns immediately.
func (d *Dispatcher) Submit(batch []ports.Delivery) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return ErrStopped
	}
	if len(batch) > 0 {
		d.backlog = append(d.backlog, batch)
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
	return nil
}

// feed moves backlog batches into the worker channels. It returns once Stop
// has been called and the backlog is empty, or when the drain is abandoned.
func (d *Dispatcher) feed() {
	defer close(d.feederDone)
	for {
		d.mu.Lock()
		pending := d.backlog
		d.backlog = nil
		stopped := d.stopped
		d.mu.Unlock()

		for i, batch := range pending {
			for j, del := range batch {
				if err := d.enqueue(d.quit, del); err != nil {
					d.requeue(pending[i:], j)
					return
				}
			}
		}
		if len(pending) > 0 {
			continue
		}
		if stopped {
			return
		}

		select {
		case <-d.wake:
		case <-d.quit.Done():
			return
		}
	}
}

// requeue puts batches the feeder could not finish back in front of the
// backlog, skipping the first sent deliveries of the head batch.
func (d *Dispatcher) requeue(pending [][]ports.Delivery, sent int) {
	rest := append([][]ports.Delivery{pending[0][sent:]}, pending[1:]...)
	d.mu.Lock()
	d.backlog = append(rest, d.backlog...)
	d.mu.Unlock()
}

// enqueue blocks until the recipient's worker has room or ctx ends.
func (d *Dispatcher) enqueue(ctx context.Context, del ports.Delivery) error {
	idx := d.shardIndex(del.Recipient.ID.String())
	select {
	case d.workers[idx] <- del:
	case <-ctx.Done():
		return ctx.Err()
	}
	metrics.DeliveryQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// Stop refuses new batches and waits until the backlog and the worker
// channels are sent. When ctx ends first the feeder and the workers are
// cancelled, whatever is left is dropped, and ctx.Err() is returned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	cancelWorkers := d.cancelWorkers
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}

	done := make(chan struct{})
	go func() {
		<-d.feederDone
		for _, ch := range d.workers {
			close(ch)
		}
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.stopFeeder()
		if cancelWorkers != nil {
			cancelWorkers()
		}
		<-done
		dropped := d.Backlog()
		for _, ch := range d.workers {
			dropped += len(ch)
		}
		d.log.Warn().Int("dropped", dropped).Msg("delivery drain timed out")
		return ctx.Err()
	}
}

// Backlog reports how many submitted deliveries have not reached a worker
// channel yet.
func (d *Dispatcher) Backlog() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, b := range d.backlog {
		n += len(b)
	}
	return n
}

// shardIndex maps a recipient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Delivery) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case del, ok := <-ch:
			if !ok {
				return
			}
			metrics.DeliveryQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.limiter.Wait(ctx); err != nil {
				return
			}
			d.deliver(ctx, id, del)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, workerID int, del ports.Delivery) {
	ctx = ports.WithToken(ctx, del.Token)
	if err := d.sender.Deliver(ctx, del); err != nil {
		d.log.Warn().Err(err).
			Str("broadcast_id", del.BroadcastID).
			Str("recipient_id", del.Recipient.ID.String()).
			Int("worker_id", workerID).
			Msg("delivery failed")
	}
}
