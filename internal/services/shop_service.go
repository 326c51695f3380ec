// internal/services/shop_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/models"
	"github.com/fastr/fastr-backend/internal/utils"
)

type ShopService struct {
	db *gorm.DB
}

type CreateShopRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=50"`
	CategoryIDs []uuid.UUID `json:"categories,omitempty"`
	IsOpen      *bool       `json:"is_open,omitempty"`
}

type UpdateShopRequest struct {
	Name        string      `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	CategoryIDs []uuid.UUID `json:"categories,omitempty"`
	IsOpen      *bool       `json:"is_open,omitempty"`
}

func NewShopService(db *gorm.DB) *ShopService {
	return &ShopService{db: db}
}

// CreateShop registers the seller's storefront. A seller owns at most one.
func (s *ShopService) CreateShop(sellerID uuid.UUID, req *CreateShopRequest) (*models.Shop, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Shop{}).Where("user_id = ?", sellerID).Count(&count).Error; err != nil {
		return nil, NewStorageError(err)
	}
	if count > 0 {
		return nil, NewValidationError("", "you already have shop")
	}

	if err := s.db.Model(&models.Shop{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, NewStorageError(err)
	}
	if count > 0 {
		return nil, NewValidationError("name", "shop with this name already exists")
	}

	categories, err := s.resolveCategories(req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	shop := &models.Shop{
		UserID: sellerID,
		Name:   req.Name,
		IsOpen: true,
	}
	if req.IsOpen != nil {
		shop.IsOpen = *req.IsOpen
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shop).Error; err != nil {
			return err
		}
		if len(categories) > 0 {
			if err := tx.Model(shop).Association("Categories").Append(&categories); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, NewStorageError(err)
	}

	s.db.Preload("Categories").First(shop, shop.ID)
	return shop, nil
}

// GetOwnShop returns the seller's shop with its categories.
func (s *ShopService) GetOwnShop(sellerID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Preload("Categories").Where("user_id = ?", sellerID).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("shop")
		}
		return nil, NewStorageError(err)
	}
	return &shop, nil
}

func (s *ShopService) UpdateShop(sellerID uuid.UUID, req *UpdateShopRequest) (*models.Shop, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	shop, err := s.GetOwnShop(sellerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" && req.Name != shop.Name {
		var count int64
		if err := s.db.Model(&models.Shop{}).
			Where("name = ? AND id <> ?", req.Name, shop.ID).Count(&count).Error; err != nil {
			return nil, NewStorageError(err)
		}
		if count > 0 {
			return nil, NewValidationError("name", "shop with this name already exists")
		}
		updates["name"] = req.Name
	}
	if req.IsOpen != nil {
		updates["is_open"] = *req.IsOpen
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(shop).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.CategoryIDs != nil {
			categories, err := s.resolveCategories(req.CategoryIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(shop).Association("Categories").Replace(&categories); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		return nil, NewStorageError(err)
	}

	s.db.Preload("Categories").First(shop, shop.ID)
	return shop, nil
}

// ListOpenShops returns open shops for the public storefront, optionally
// filtered by name.
func (s *ShopService) ListOpenShops(params utils.PaginationParams) ([]models.Shop, int64, error) {
	query := s.db.Model(&models.Shop{}).Where("is_open = ?", true).Preload("Categories")

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, NewStorageError(err)
	}

	allowedSortFields := []string{"created_at", "name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var shops []models.Shop
	if err := query.Find(&shops).Error; err != nil {
		return nil, 0, NewStorageError(err)
	}

	return shops, total, nil
}

func (s *ShopService) GetOpenShop(id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := s.db.Preload("Categories").
		Where("id = ? AND is_open = ?", id, true).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("shop")
		}
		return nil, NewStorageError(err)
	}
	return &shop, nil
}

func (s *ShopService) resolveCategories(ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var categories []models.Category
	if err := s.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, NewStorageError(err)
	}
	if len(categories) != len(ids) {
		return nil, NewValidationError("categories", "unknown category id")
	}
	return categories, nil
}
