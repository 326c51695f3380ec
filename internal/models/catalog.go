// internal/models/catalog.go
package models

import (
	"github.com/google/uuid"
)

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:50;not null"`

	Shops []Shop `json:"-" gorm:"many2many:shop_categories"`
}

type Attribute struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:30;not null"`
}

type Shop struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Name   string    `json:"name" gorm:"uniqueIndex;size:50;not null"`
	IsOpen bool      `json:"is_open" gorm:"default:true"`

	// Relationships
	User       User       `json:"-" gorm:"foreignKey:UserID"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:shop_categories"`
	Products   []Product  `json:"products,omitempty" gorm:"foreignKey:ShopID"`
}

type ShippingNote struct {
	BaseModel
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Country  string    `json:"country" gorm:"size:50;not null"`
	City     string    `json:"city" gorm:"size:70;not null"`
	Street   string    `json:"street" gorm:"size:100;not null"`
	House    string    `json:"house" gorm:"size:15"`
	Building string    `json:"building" gorm:"size:15"`
	Office   string    `json:"office" gorm:"size:15"`
	Phone    string    `json:"phone" gorm:"size:30;not null"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
