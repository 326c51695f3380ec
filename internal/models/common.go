// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the primary key so the same models work on every
// supported dialect (postgres in production, sqlite in tests).
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Enums
type UserType string

const (
	UserTypeBuyer  UserType = "buyer"
	UserTypeSeller UserType = "seller"
	UserTypeStaff  UserType = "staff"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// FulfillmentStatus is the per-shop order lifecycle.
type FulfillmentStatus string

const (
	FulfillmentStatusNew       FulfillmentStatus = "new"
	FulfillmentStatusConfirmed FulfillmentStatus = "confirmed"
	FulfillmentStatusAssembled FulfillmentStatus = "assembled"
	FulfillmentStatusSent      FulfillmentStatus = "sent"
	FulfillmentStatusDelivered FulfillmentStatus = "delivered"
	FulfillmentStatusCanceled  FulfillmentStatus = "canceled"
)

func (s FulfillmentStatus) IsValid() bool {
	switch s {
	case FulfillmentStatusNew, FulfillmentStatusConfirmed, FulfillmentStatusAssembled,
		FulfillmentStatusSent, FulfillmentStatusDelivered, FulfillmentStatusCanceled:
		return true
	}
	return false
}

func (s FulfillmentStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are expected. Status
// writes are deliberately permissive (see FulfillmentService), so this is
// informational rather than enforced.
func (s FulfillmentStatus) IsTerminal() bool {
	return s == FulfillmentStatusDelivered || s == FulfillmentStatusCanceled
}
