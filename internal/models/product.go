// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	ShopID        uuid.UUID       `json:"shop_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_products_shop_name"`
	CategoryID    uuid.UUID       `json:"category_id" gorm:"type:uuid;not null;index"`
	SKU           string          `json:"sku" gorm:"size:25;not null"`
	Name          string          `json:"name" gorm:"size:150;not null;uniqueIndex:idx_products_shop_name"`
	Description   string          `json:"description" gorm:"size:500"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Images        pq.StringArray  `json:"images" gorm:"type:text[]"`

	// Relationships
	Shop            Shop                    `json:"shop,omitempty" gorm:"foreignKey:ShopID"`
	Category        Category                `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	AttributeValues []ProductAttributeValue `json:"attribute_values,omitempty" gorm:"foreignKey:ProductID"`
}

// ProductAttributeValue attaches an attribute string value to a product.
// One value per (product, attribute) pair.
type ProductAttributeValue struct {
	BaseModel
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_attribute"`
	AttributeID uuid.UUID `json:"attribute_id" gorm:"type:uuid;not null;uniqueIndex:idx_product_attribute"`
	Value       string    `json:"value" gorm:"size:100;not null"`

	Product   Product   `json:"-" gorm:"foreignKey:ProductID"`
	Attribute Attribute `json:"attribute,omitempty" gorm:"foreignKey:AttributeID"`
}
