// internal/models/order.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is created once per cart conversion and is immutable afterwards;
// only the status of its per-shop fulfillments changes.
type Order struct {
	BaseModel
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	ShippingNoteID uuid.UUID `json:"shipping_note_id" gorm:"type:uuid;not null"`

	User         User          `json:"-" gorm:"foreignKey:UserID"`
	ShippingNote ShippingNote  `json:"shipping_note,omitempty" gorm:"foreignKey:ShippingNoteID"`
	Lines        []OrderLine   `json:"lines,omitempty" gorm:"foreignKey:OrderID"`
	Fulfillments []Fulfillment `json:"fulfillments,omitempty" gorm:"foreignKey:OrderID"`
}

// Total sums the loaded lines at their sold prices.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].Sum())
	}
	return total
}

// OrderLine snapshots one cart line at conversion time. SoldPrice is the
// product price captured at that instant; later price changes never touch it.
type OrderLine struct {
	BaseModel
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_product"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_product"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	SoldPrice decimal.Decimal `json:"sold_price" gorm:"type:decimal(10,2);not null"`

	Order   Order   `json:"-" gorm:"foreignKey:OrderID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (l *OrderLine) Sum() decimal.Decimal {
	return l.SoldPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Fulfillment is the per-shop slice of an order, one per distinct shop among
// the order's lines, tracked through its own status lifecycle.
type Fulfillment struct {
	BaseModel
	OrderID uuid.UUID         `json:"order_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_shop"`
	ShopID  uuid.UUID         `json:"shop_id" gorm:"type:uuid;not null;uniqueIndex:idx_order_shop"`
	Status  FulfillmentStatus `json:"status" gorm:"type:varchar(9);not null;default:'new'"`

	Order Order `json:"order,omitempty" gorm:"foreignKey:OrderID"`
	Shop  Shop  `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
}
