// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	FirstName    string     `json:"first_name" gorm:"size:50"`
	LastName     string     `json:"last_name" gorm:"size:50"`
	Company      string     `json:"company" gorm:"size:40"`
	Position     string     `json:"position" gorm:"size:40"`
	UserType     UserType   `json:"user_type" gorm:"type:varchar(10);not null;default:'buyer'"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Shop          *Shop          `json:"shop,omitempty" gorm:"foreignKey:UserID"`
	Cart          *Cart          `json:"cart,omitempty" gorm:"foreignKey:UserID"`
	ShippingNotes []ShippingNote `json:"shipping_notes,omitempty" gorm:"foreignKey:UserID"`
	Orders        []Order        `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// ShortName is used in notification emails.
func (u *User) ShortName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

func (u *User) IsBuyer() bool {
	return u.UserType == UserTypeBuyer
}

func (u *User) IsSeller() bool {
	return u.UserType == UserTypeSeller
}
