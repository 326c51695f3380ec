// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the single mutable basket of a buyer. It exists for the lifetime of
// the account; only its lines come and go.
type Cart struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`

	User  User       `json:"-" gorm:"foreignKey:UserID"`
	Lines []CartLine `json:"lines,omitempty" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

type CartLine struct {
	BaseModel
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	Quantity  int       `json:"quantity" gorm:"not null"`

	Cart    Cart    `json:"-" gorm:"foreignKey:CartID"`
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// Sum is the line total at the product's live price. It is computed, never
// stored, so it always reflects the current price until conversion locks it.
func (l *CartLine) Sum() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
