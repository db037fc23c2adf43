package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventrsvp/rsvp-api/internal/api/metrics"
	"github.com/eventrsvp/rsvp-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 15 * time.Second
)

// Deduper suppresses repeated notifications. Implemented by the Redis
// dedup checker.
type Deduper interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Dispatcher delivers notifications on a fixed set of workers. Notifications
// are sharded by recipient so mail to one address is sent in order.
type Dispatcher struct {
	workers []chan ports.Notification
	sender  ports.MailSender
	dedup   Deduper
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. dedup may be nil.
func NewDispatcher(numWorkers int, sender ports.MailSender, dedup Deduper, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Notification, numWorkers),
		sender:  sender,
		dedup:   dedup,
		log:     log.With().Str("component", "notify").Logger(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Notify hands n to the worker owning its recipient. It never blocks: when
// the worker's buffer is full the notification is dropped.
func (d *Dispatcher) Notify(n ports.Notification) {
	idx := d.shardIndex(n.To)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.NotificationsTotal.WithLabelValues(n.Kind, "dropped").Inc()
		d.log.Warn().Str("to", n.To).Str("kind", n.Kind).Int("worker_id", idx).Msg("notification queue full, dropping")
	}
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(to string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(to))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.deliver(ctx, id, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id int, n ports.Notification) {
	log := d.log.With().Str("to", n.To).Str("kind", n.Kind).Int("worker_id", id).Logger()

	claimed := false
	if d.dedup != nil && n.DedupKey != "" {
		ok, err := d.dedup.Claim(ctx, n.DedupKey)
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("dedup check failed, sending anyway")
		case !ok:
			metrics.NotificationsTotal.WithLabelValues(n.Kind, "duplicate").Inc()
			log.Debug().Str("dedup_key", n.DedupKey).Msg("duplicate notification skipped")
			return
		default:
			claimed = true
		}
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.sender.Send(sendCtx, n.To, n.Subject, n.HTML)
	result := "sent"
	if err != nil {
		result = "failed"
	}
	metrics.NotificationSendDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	metrics.NotificationsTotal.WithLabelValues(n.Kind, result).Inc()

	if err != nil {
		log.Error().Err(err).Msg("notification delivery failed")
		if claimed {
			if relErr := d.dedup.Release(ctx, n.DedupKey); relErr != nil {
				log.Warn().Err(relErr).Msg("failed to release dedup key")
			}
		}
		return
	}
	log.Info().Msg("notification sent")
}
