// internal/events/dispatcher_test.go
package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHandler struct {
	mu      sync.Mutex
	handled []Event
	fail    func(Event) bool
}

func (h *countingHandler) Handle(event Event) error {
	h.mu.Lock()
	h.handled = append(h.handled, event)
	h.mu.Unlock()

	if h.fail != nil && h.fail(event) {
		return errors.New("handler failure")
	}
	return nil
}

func (h *countingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestAsyncDispatcherDeliversAll(t *testing.T) {
	handler := &countingHandler{}
	dispatcher := NewAsyncDispatcher(handler, 8, 2)

	for i := 0; i < 20; i++ {
		dispatcher.Dispatch(OrderCreated{OrderID: uuid.New()})
	}
	dispatcher.Close()

	assert.Equal(t, 20, handler.count())
}

func TestAsyncDispatcherSurvivesHandlerErrors(t *testing.T) {
	handler := &countingHandler{
		fail: func(Event) bool { return true },
	}
	dispatcher := NewAsyncDispatcher(handler, 8, 1)

	dispatcher.Dispatch(OrderCreated{OrderID: uuid.New()})
	dispatcher.Dispatch(FulfillmentCreated{FulfillmentID: uuid.New()})
	dispatcher.Close()

	// Failed deliveries are logged, not retried, and never stop the worker
	assert.Equal(t, 2, handler.count())
}

func TestAsyncDispatcherCloseIsIdempotent(t *testing.T) {
	handler := &countingHandler{}
	dispatcher := NewAsyncDispatcher(handler, 4, 1)

	dispatcher.Dispatch(OrderCreated{OrderID: uuid.New()})
	dispatcher.Close()
	dispatcher.Close()

	require.Equal(t, 1, handler.count())

	// Dispatch after close is dropped silently
	dispatcher.Dispatch(OrderCreated{OrderID: uuid.New()})
	assert.Equal(t, 1, handler.count())
}

func TestHandlerFunc(t *testing.T) {
	var got Event
	fn := HandlerFunc(func(event Event) error {
		got = event
		return nil
	})

	event := FulfillmentCreated{FulfillmentID: uuid.New()}
	require.NoError(t, fn.Handle(event))
	assert.Equal(t, event, got)
}
