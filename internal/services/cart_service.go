// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/database"
	"github.com/fastr/fastr-backend/internal/models"
	"github.com/fastr/fastr-backend/internal/utils"
)

// CartService manages the single cart each buyer owns. Lines are
// stock-guarded: a line can never request more units than the product
// currently has on hand.
type CartService struct {
	db *gorm.DB
}

type CartLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=999"`
}

type CartLinesRequest struct {
	Lines []CartLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type RemoveCartLinesRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids" validate:"required,min=1"`
}

// CartView is the buyer-facing cart projection with computed sums.
type CartView struct {
	ID    uuid.UUID       `json:"id"`
	Lines []CartLineView  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

type CartLineView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Sum       decimal.Decimal `json:"sum"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddLines creates new cart lines. A product already present in the cart
// is rejected; use UpdateLines to change its quantity.
func (s *CartService) AddLines(buyerID uuid.UUID, req *CartLinesRequest) (*CartView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.getCart(tx, buyerID)
		if err != nil {
			return err
		}

		for _, line := range req.Lines {
			product, err := s.getProductForUpdate(tx, line.ProductID)
			if err != nil {
				return err
			}
			if line.Quantity > product.StockQuantity {
				return NewValidationError("quantity",
					"product %s has only %d units in stock", product.Name, product.StockQuantity)
			}

			var existing models.CartLine
			err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&existing).Error
			if err == nil {
				return NewValidationError("product_id", "product %s is already in your cart", product.Name)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return NewStorageError(err)
			}

			newLine := &models.CartLine{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
			}
			if err := tx.Create(newLine).Error; err != nil {
				return NewStorageError(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.ViewCart(buyerID)
}

// UpdateLines replaces quantities on lines already in the cart. Products
// not present in the cart are skipped.
func (s *CartService) UpdateLines(buyerID uuid.UUID, req *CartLinesRequest) (*CartView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.getCart(tx, buyerID)
		if err != nil {
			return err
		}

		for _, line := range req.Lines {
			var existing models.CartLine
			err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, line.ProductID).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return NewStorageError(err)
			}

			product, err := s.getProductForUpdate(tx, line.ProductID)
			if err != nil {
				return err
			}
			if line.Quantity > product.StockQuantity {
				return NewValidationError("quantity",
					"product %s has only %d units in stock", product.Name, product.StockQuantity)
			}

			if err := tx.Model(&existing).Update("quantity", line.Quantity).Error; err != nil {
				return NewStorageError(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.ViewCart(buyerID)
}

// RemoveLines deletes the lines matching the given products. Products not
// in the cart are ignored.
func (s *CartService) RemoveLines(buyerID uuid.UUID, req *RemoveCartLinesRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := s.getCart(tx, buyerID)
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ? AND product_id IN ?", cart.ID, req.ProductIDs).
			Delete(&models.CartLine{}).Error; err != nil {
			return NewStorageError(err)
		}
		return nil
	})
}

// ViewCart returns the buyer's cart with per-line and total sums computed
// from current product prices.
func (s *CartService) ViewCart(buyerID uuid.UUID) (*CartView, error) {
	var cart models.Cart
	err := s.db.Preload("Lines.Product").Where("user_id = ?", buyerID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("cart")
		}
		return nil, NewStorageError(err)
	}

	view := &CartView{
		ID:    cart.ID,
		Lines: make([]CartLineView, 0, len(cart.Lines)),
		Total: decimal.Zero,
	}
	for _, line := range cart.Lines {
		sum := line.Sum()
		view.Lines = append(view.Lines, CartLineView{
			ProductID: line.ProductID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Sum:       sum,
		})
		view.Total = view.Total.Add(sum)
	}

	return view, nil
}

func (s *CartService) getCart(tx *gorm.DB, buyerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Where("user_id = ?", buyerID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("cart")
		}
		return nil, NewStorageError(err)
	}
	return &cart, nil
}

func (s *CartService) getProductForUpdate(tx *gorm.DB, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := database.ForUpdate(tx).
		Select("products.*").
		Joins("JOIN shops ON shops.id = products.shop_id").
		Where("products.id = ? AND shops.is_open = ?", productID, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("product")
		}
		return nil, NewStorageError(err)
	}
	return &product, nil
}
