package analytics

import (
	"context"
	"log/slog"

	"github.com/textlens/textlens/pkg/kafka"
)

// Collector buffers analysis events and publishes them to Kafka in the
// background so the request path never blocks on the broker.
type Collector struct {
	producer *kafka.Producer
	eventCh  chan AnalysisEvent
	logger   *slog.Logger
	done     chan struct{}
	onDrop   func()
}

// NewCollector creates a Collector with the given buffer size. onDrop is
// invoked whenever an event is discarded because the buffer is full; it may
// be nil.
func NewCollector(producer *kafka.Producer, bufferSize int, onDrop func()) *Collector {
	if bufferSize <= 0 {
		bufferSize = 10000
	}
	return &Collector{
		producer: producer,
		eventCh:  make(chan AnalysisEvent, bufferSize),
		logger:   slog.Default().With("component", "analytics-collector"),
		done:     make(chan struct{}),
		onDrop:   onDrop,
	}
}

// Start launches the publish loop. It drains remaining buffered events when
// ctx is cancelled.
func (c *Collector) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		for {
			select {
			case event, ok := <-c.eventCh:
				if !ok {
					return
				}
				if err := c.producer.Publish(ctx, kafka.Event{
					Key:   string(event.Kind),
					Value: event,
				}); err != nil {
					c.logger.Error("failed to publish analysis event", "error", err)
				}
			case <-ctx.Done():
				c.drainRemaining()
				return
			}
		}
	}()
	c.logger.Info("analytics collector started", "buffer_size", cap(c.eventCh))
}

// Track enqueues an event without blocking; full buffers drop the event.
func (c *Collector) Track(event AnalysisEvent) {
	select {
	case c.eventCh <- event:
	default:
		if c.onDrop != nil {
			c.onDrop()
		}
		c.logger.Warn("analysis event dropped (buffer full)")
	}
}

// Close stops accepting events and waits for the publish loop to finish.
func (c *Collector) Close() {
	close(c.eventCh)
	<-c.done
}

func (c *Collector) drainRemaining() {
	for {
		select {
		case event, ok := <-c.eventCh:
			if !ok {
				return
			}
			if err := c.producer.Publish(context.Background(), kafka.Event{
				Key:   string(event.Kind),
				Value: event,
			}); err != nil {
				c.logger.Error("failed to publish remaining event", "error", err)
			}
		default:
			return
		}
	}
}
