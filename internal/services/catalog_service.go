// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/models"
	"github.com/fastr/fastr-backend/internal/utils"
)

// CatalogService serves categories and product attributes. Categories are
// read-only through the API; they are seeded by operations.
type CatalogService struct {
	db *gorm.DB
}

type CreateAttributeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=30"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("category")
		}
		return nil, NewStorageError(err)
	}
	return &category, nil
}

func (s *CatalogService) CreateAttribute(req *CreateAttributeRequest) (*models.Attribute, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Attribute{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, NewStorageError(err)
	}
	if count > 0 {
		return nil, NewValidationError("name", "attribute with this name already exists")
	}

	attribute := &models.Attribute{Name: req.Name}
	if err := s.db.Create(attribute).Error; err != nil {
		return nil, NewStorageError(err)
	}

	return attribute, nil
}

func (s *CatalogService) ListAttributes() ([]models.Attribute, error) {
	var attributes []models.Attribute
	if err := s.db.Order("name asc").Find(&attributes).Error; err != nil {
		return nil, NewStorageError(err)
	}
	return attributes, nil
}

func (s *CatalogService) GetAttribute(id uuid.UUID) (*models.Attribute, error) {
	var attribute models.Attribute
	if err := s.db.First(&attribute, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("attribute")
		}
		return nil, NewStorageError(err)
	}
	return &attribute, nil
}
