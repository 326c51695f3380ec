// internal/events/dispatcher.go
package events

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Handler consumes a single event. A returned error is logged by the
// dispatcher; it never reaches the code that emitted the event.
type Handler interface {
	Handle(event Event) error
}

type HandlerFunc func(event Event) error

func (f HandlerFunc) Handle(event Event) error { return f(event) }

// Dispatcher enqueues events for asynchronous, at-least-once delivery.
// Dispatch must never block the caller's transaction path for long and must
// never surface delivery failures to it.
type Dispatcher interface {
	Dispatch(event Event)
}

// AsyncDispatcher fans events out to a handler from a bounded queue serviced
// by worker goroutines.
type AsyncDispatcher struct {
	handler Handler
	queue   chan Event
	wg      sync.WaitGroup
	closed  chan struct{}
	once    sync.Once
}

func NewAsyncDispatcher(handler Handler, queueSize, workers int) *AsyncDispatcher {
	if queueSize < 1 {
		queueSize = 64
	}
	if workers < 1 {
		workers = 1
	}

	d := &AsyncDispatcher{
		handler: handler,
		queue:   make(chan Event, queueSize),
		closed:  make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

func (d *AsyncDispatcher) worker() {
	defer d.wg.Done()

	for event := range d.queue {
		if err := d.handler.Handle(event); err != nil {
			logrus.WithError(err).WithField("event_type", event.EventType()).
				Error("Event delivery failed")
		}
	}
}

// Dispatch enqueues the event. When the queue is saturated the event is
// handed to a throwaway goroutine instead of blocking the caller.
func (d *AsyncDispatcher) Dispatch(event Event) {
	select {
	case <-d.closed:
		return
	default:
	}

	select {
	case d.queue <- event:
	default:
		logrus.WithField("event_type", event.EventType()).
			Warn("Event queue full, delivering out of band")
		go func() {
			if err := d.handler.Handle(event); err != nil {
				logrus.WithError(err).WithField("event_type", event.EventType()).
					Error("Event delivery failed")
			}
		}()
	}
}

// Close drains the queue and stops the workers. Used on server shutdown.
func (d *AsyncDispatcher) Close() {
	d.once.Do(func() {
		close(d.closed)
		close(d.queue)
	})
	d.wg.Wait()
}
