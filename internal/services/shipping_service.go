// internal/services/shipping_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/models"
	"github.com/fastr/fastr-backend/internal/utils"
)

// ShippingService manages a buyer's shipping note address book.
type ShippingService struct {
	db *gorm.DB
}

type CreateShippingNoteRequest struct {
	Country  string `json:"country" validate:"required,max=50"`
	City     string `json:"city" validate:"required,max=70"`
	Street   string `json:"street" validate:"required,max=100"`
	House    string `json:"house,omitempty" validate:"omitempty,max=15"`
	Building string `json:"building,omitempty" validate:"omitempty,max=15"`
	Office   string `json:"office,omitempty" validate:"omitempty,max=15"`
	Phone    string `json:"phone" validate:"required,max=30"`
}

func NewShippingService(db *gorm.DB) *ShippingService {
	return &ShippingService{db: db}
}

func (s *ShippingService) CreateShippingNote(buyerID uuid.UUID, req *CreateShippingNoteRequest) (*models.ShippingNote, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	note := &models.ShippingNote{
		UserID:   buyerID,
		Country:  req.Country,
		City:     req.City,
		Street:   req.Street,
		House:    req.House,
		Building: req.Building,
		Office:   req.Office,
		Phone:    req.Phone,
	}

	if err := s.db.Create(note).Error; err != nil {
		return nil, NewStorageError(err)
	}

	return note, nil
}

func (s *ShippingService) ListShippingNotes(buyerID uuid.UUID) ([]models.ShippingNote, error) {
	var notes []models.ShippingNote
	if err := s.db.Where("user_id = ?", buyerID).Order("created_at desc").Find(&notes).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return notes, nil
}

func (s *ShippingService) GetShippingNote(id, buyerID uuid.UUID) (*models.ShippingNote, error) {
	var note models.ShippingNote
	if err := s.db.Where("id = ? AND user_id = ?", id, buyerID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("shipping_note")
		}
		return nil, NewStorageError(err)
	}
	return &note, nil
}
