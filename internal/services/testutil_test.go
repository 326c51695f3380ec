// internal/services/testutil_test.go
package services

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fastr/fastr-backend/internal/events"
	"github.com/fastr/fastr-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Attribute{},
		&models.Shop{},
		&models.ShippingNote{},
		&models.Product{},
		&models.ProductAttributeValue{},
		&models.Cart{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderLine{},
		&models.Fulfillment{},
	)
	require.NoError(t, err)

	return db
}

func createBuyer(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		UserType: models.UserTypeBuyer,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Passw0rd"))
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID}).Error)

	return user
}

func createSellerWithShop(t *testing.T, db *gorm.DB, email, shopName string) (*models.User, *models.Shop) {
	t.Helper()

	user := &models.User{
		Email:    email,
		UserType: models.UserTypeSeller,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Passw0rd"))
	require.NoError(t, db.Create(user).Error)

	shop := &models.Shop{
		UserID: user.ID,
		Name:   shopName,
		IsOpen: true,
	}
	require.NoError(t, db.Create(shop).Error)

	return user, shop
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createProduct(t *testing.T, db *gorm.DB, shopID, categoryID uuid.UUID, name, price string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ShopID:        shopID,
		CategoryID:    categoryID,
		SKU:           "SKU-" + name,
		Name:          name,
		StockQuantity: stock,
		Price:         decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// recordingDispatcher captures dispatched events synchronously for
// assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Dispatch(event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) byType(eventType string) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	var matched []events.Event
	for _, event := range d.events {
		if event.EventType() == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}
