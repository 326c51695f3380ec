// internal/events/events.go
package events

import (
	"github.com/google/uuid"

	"github.com/fastr/fastr-backend/internal/models"
)

// Event type constants
const (
	TypeOrderCreated             = "OrderCreated"
	TypeFulfillmentCreated       = "FulfillmentCreated"
	TypeFulfillmentStatusChanged = "FulfillmentStatusChanged"
)

// Event is a state-change fact emitted by the core after its transaction has
// committed. Consumers (the notification dispatcher) may fail independently.
type Event interface {
	EventType() string
}

type OrderCreated struct {
	OrderID uuid.UUID `json:"order_id"`
}

func (OrderCreated) EventType() string { return TypeOrderCreated }

type FulfillmentCreated struct {
	FulfillmentID uuid.UUID `json:"fulfillment_id"`
}

func (FulfillmentCreated) EventType() string { return TypeFulfillmentCreated }

type FulfillmentStatusChanged struct {
	FulfillmentID uuid.UUID                `json:"fulfillment_id"`
	NewStatus     models.FulfillmentStatus `json:"new_status"`
}

func (FulfillmentStatusChanged) EventType() string { return TypeFulfillmentStatusChanged }
