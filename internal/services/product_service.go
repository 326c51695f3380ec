// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/models"
	"github.com/fastr/fastr-backend/internal/utils"
)

// Product price and stock bounds.
var (
	maxProductPrice  = decimal.NewFromInt(99999999)
	minStockQuantity = 1
	maxStockQuantity = 32000
)

type ProductService struct {
	db          *gorm.DB
	shopService *ShopService
}

type ProductAttributeValueRequest struct {
	AttributeID uuid.UUID `json:"id" validate:"required"`
	Value       string    `json:"value" validate:"required,max=100"`
}

type CreateProductRequest struct {
	CategoryID      uuid.UUID                      `json:"category" validate:"required"`
	SKU             string                         `json:"sku" validate:"required,max=25"`
	Name            string                         `json:"name" validate:"required,min=1,max=150"`
	Description     string                         `json:"description" validate:"max=500"`
	StockQuantity   int                            `json:"stock_quantity" validate:"required"`
	Price           decimal.Decimal                `json:"price"`
	AttributeValues []ProductAttributeValueRequest `json:"product_attributes,omitempty" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	CategoryID      *uuid.UUID                     `json:"category,omitempty"`
	SKU             string                         `json:"sku,omitempty" validate:"omitempty,max=25"`
	Name            string                         `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description     *string                        `json:"description,omitempty"`
	StockQuantity   *int                           `json:"stock_quantity,omitempty"`
	Price           *decimal.Decimal               `json:"price,omitempty"`
	AttributeValues []ProductAttributeValueRequest `json:"product_attributes,omitempty" validate:"omitempty,dive"`
}

func NewProductService(db *gorm.DB, shopService *ShopService) *ProductService {
	return &ProductService{
		db:          db,
		shopService: shopService,
	}
}

// validatePrice enforces the catalog price bounds: positive, at most
// 99,999,999.00, no more than two decimal places.
func validatePrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("price", "must be greater than zero")
	}
	if price.GreaterThan(maxProductPrice) {
		return NewValidationError("price", "must not exceed %s", maxProductPrice.StringFixed(2))
	}
	if price.Exponent() < -2 {
		return NewValidationError("price", "must have at most two decimal places")
	}
	return nil
}

func validateStock(quantity int) error {
	if quantity < minStockQuantity || quantity > maxStockQuantity {
		return NewValidationError("stock_quantity", "must be between %d and %d", minStockQuantity, maxStockQuantity)
	}
	return nil
}

func (s *ProductService) CreateProduct(sellerID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}
	if err := validateStock(req.StockQuantity); err != nil {
		return nil, err
	}

	shop, err := s.shopService.GetOwnShop(sellerID)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("category", "unknown category id")
		}
		return nil, NewStorageError(err)
	}

	// Product names are unique within a shop.
	var count int64
	if err := s.db.Model(&models.Product{}).
		Where("shop_id = ? AND name = ?", shop.ID, req.Name).Count(&count).Error; err != nil {
		return nil, NewStorageError(err)
	}
	if count > 0 {
		return nil, NewValidationError("name", "shop already have product with that name")
	}

	product := &models.Product{
		ShopID:        shop.ID,
		CategoryID:    req.CategoryID,
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		StockQuantity: req.StockQuantity,
		Price:         req.Price,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}

		for _, av := range req.AttributeValues {
			value := models.ProductAttributeValue{
				ProductID:   product.ID,
				AttributeID: av.AttributeID,
				Value:       av.Value,
			}
			if err := tx.Create(&value).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, NewStorageError(err)
	}

	s.db.Preload("Category").Preload("AttributeValues.Attribute").First(product, product.ID)
	return product, nil
}

func (s *ProductService) UpdateProduct(id, sellerID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.getOwnProduct(id, sellerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("category", "unknown category id")
			}
			return nil, NewStorageError(err)
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.SKU != "" {
		updates["sku"] = req.SKU
	}
	if req.Name != "" && req.Name != product.Name {
		var count int64
		if err := s.db.Model(&models.Product{}).
			Where("shop_id = ? AND name = ? AND id <> ?", product.ShopID, req.Name, product.ID).
			Count(&count).Error; err != nil {
			return nil, NewStorageError(err)
		}
		if count > 0 {
			return nil, NewValidationError("name", "shop already have product with that name")
		}
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StockQuantity != nil {
		if err := validateStock(*req.StockQuantity); err != nil {
			return nil, err
		}
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
		updates["price"] = *req.Price
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(product).Updates(updates).Error; err != nil {
				return err
			}
		}

		// Attribute values upsert on the (product, attribute) pair.
		for _, av := range req.AttributeValues {
			var existing models.ProductAttributeValue
			err := tx.Where("product_id = ? AND attribute_id = ?", product.ID, av.AttributeID).
				First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Model(&existing).Update("value", av.Value).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				value := models.ProductAttributeValue{
					ProductID:   product.ID,
					AttributeID: av.AttributeID,
					Value:       av.Value,
				}
				if err := tx.Create(&value).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, NewStorageError(err)
	}

	s.db.Preload("Category").Preload("AttributeValues.Attribute").First(product, product.ID)
	return product, nil
}

// GetOwnProducts lists the seller's own products regardless of shop state.
func (s *ProductService) GetOwnProducts(sellerID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	shop, err := s.shopService.GetOwnShop(sellerID)
	if err != nil {
		return nil, 0, err
	}

	query := s.db.Model(&models.Product{}).Where("shop_id = ?", shop.ID).
		Preload("Category").Preload("AttributeValues.Attribute")

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, NewStorageError(err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "stock_quantity"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, NewStorageError(err)
	}

	return products, total, nil
}

func (s *ProductService) GetOwnProduct(id, sellerID uuid.UUID) (*models.Product, error) {
	product, err := s.getOwnProduct(id, sellerID)
	if err != nil {
		return nil, err
	}

	s.db.Preload("Category").Preload("AttributeValues.Attribute").First(product, product.ID)
	return product, nil
}

// SearchProducts lists products from open shops for the public storefront.
func (s *ProductService) SearchProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Select("products.*").
		Joins("JOIN shops ON shops.id = products.shop_id").
		Where("shops.is_open = ?", true).
		Preload("Shop").Preload("Category").Preload("AttributeValues.Attribute")

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, NewStorageError(err)
	}

	allowedSortFields := []string{"created_at", "name", "price"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, NewStorageError(err)
	}

	return products, total, nil
}

func (s *ProductService) GetPublicProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.
		Select("products.*").
		Joins("JOIN shops ON shops.id = products.shop_id").
		Where("products.id = ? AND shops.is_open = ?", id, true).
		Preload("Shop").Preload("Category").Preload("AttributeValues.Attribute").
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("product")
		}
		return nil, NewStorageError(err)
	}
	return &product, nil
}

// AddImages appends uploaded image URLs to the product.
func (s *ProductService) AddImages(id, sellerID uuid.UUID, urls []string) (*models.Product, error) {
	if len(urls) == 0 {
		return nil, NewValidationError("images", "required field, not be empty")
	}

	product, err := s.getOwnProduct(id, sellerID)
	if err != nil {
		return nil, err
	}

	product.Images = append(product.Images, urls...)
	if err := s.db.Model(product).Update("images", product.Images).Error; err != nil {
		return nil, NewStorageError(err)
	}

	return product, nil
}

func (s *ProductService) getOwnProduct(id, sellerID uuid.UUID) (*models.Product, error) {
	shop, err := s.shopService.GetOwnShop(sellerID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.Where("id = ? AND shop_id = ?", id, shop.ID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("product")
		}
		return nil, NewStorageError(err)
	}
	return &product, nil
}
