// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/models"
	"github.com/fastr/fastr-backend/internal/utils"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *ProductService
	seller   *models.User
	shop     *models.Shop
	category *models.Category
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewProductService(suite.db, NewShopService(suite.db))

	suite.seller, suite.shop = createSellerWithShop(suite.T(), suite.db, "seller@example.com", "Lamps & Co")
	suite.category = createCategory(suite.T(), suite.db, "Home")
}

func (suite *ProductServiceTestSuite) createRequest(name, price string, stock int) *CreateProductRequest {
	return &CreateProductRequest{
		CategoryID:    suite.category.ID,
		SKU:           "SKU-001",
		Name:          name,
		StockQuantity: stock,
		Price:         decimal.RequireFromString(price),
	}
}

func (suite *ProductServiceTestSuite) TestCreateProduct() {
	product, err := suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Desk Lamp", "25.50", 40))
	suite.Require().NoError(err)

	suite.Equal("Desk Lamp", product.Name)
	suite.Equal(suite.shop.ID, product.ShopID)
	suite.Equal("25.50", product.Price.StringFixed(2))
}

func (suite *ProductServiceTestSuite) TestCreateProductWithAttributes() {
	attribute := &models.Attribute{Name: "Color"}
	suite.Require().NoError(suite.db.Create(attribute).Error)

	req := suite.createRequest("Desk Lamp", "25.50", 40)
	req.AttributeValues = []ProductAttributeValueRequest{
		{AttributeID: attribute.ID, Value: "Black"},
	}

	product, err := suite.service.CreateProduct(suite.seller.ID, req)
	suite.Require().NoError(err)

	var values []models.ProductAttributeValue
	suite.Require().NoError(suite.db.Where("product_id = ?", product.ID).Find(&values).Error)
	suite.Require().Len(values, 1)
	suite.Equal("Black", values[0].Value)
}

func (suite *ProductServiceTestSuite) TestCreateProductDuplicateNameInShop() {
	_, err := suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Desk Lamp", "25.50", 40))
	suite.Require().NoError(err)

	_, err = suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Desk Lamp", "30.00", 10))
	suite.Require().Error(err)

	var validationErr *ValidationError
	suite.ErrorAs(err, &validationErr)
}

func (suite *ProductServiceTestSuite) TestSameNameAllowedAcrossShops() {
	otherSeller, _ := createSellerWithShop(suite.T(), suite.db, "other@example.com", "Other Shop")

	_, err := suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Desk Lamp", "25.50", 40))
	suite.Require().NoError(err)

	_, err = suite.service.CreateProduct(otherSeller.ID, suite.createRequest("Desk Lamp", "19.99", 5))
	suite.NoError(err)
}

func (suite *ProductServiceTestSuite) TestPriceBounds() {
	var validationErr *ValidationError

	_, err := suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Free Lamp", "0", 40))
	suite.Require().Error(err)
	suite.ErrorAs(err, &validationErr)

	_, err = suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Gold Lamp", "100000000.00", 40))
	suite.Require().Error(err)
	suite.ErrorAs(err, &validationErr)

	_, err = suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Odd Lamp", "9.999", 40))
	suite.Require().Error(err)
	suite.ErrorAs(err, &validationErr)
}

func (suite *ProductServiceTestSuite) TestStockBounds() {
	var validationErr *ValidationError

	_, err := suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Lamp", "25.50", 0))
	suite.Require().Error(err)

	_, err = suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Lamp", "25.50", 32001))
	suite.Require().Error(err)
	suite.ErrorAs(err, &validationErr)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct() {
	product, err := suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Desk Lamp", "25.50", 40))
	suite.Require().NoError(err)

	newPrice := decimal.RequireFromString("29.99")
	newStock := 15
	updated, err := suite.service.UpdateProduct(product.ID, suite.seller.ID, &UpdateProductRequest{
		Price:         &newPrice,
		StockQuantity: &newStock,
	})
	suite.Require().NoError(err)

	suite.Equal("29.99", updated.Price.StringFixed(2))
	suite.Equal(15, updated.StockQuantity)
}

func (suite *ProductServiceTestSuite) TestUpdateForeignProduct() {
	product, err := suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Desk Lamp", "25.50", 40))
	suite.Require().NoError(err)

	otherSeller, _ := createSellerWithShop(suite.T(), suite.db, "other@example.com", "Other Shop")

	newStock := 1
	_, err = suite.service.UpdateProduct(product.ID, otherSeller.ID, &UpdateProductRequest{
		StockQuantity: &newStock,
	})
	suite.Require().Error(err)

	var notFoundErr *NotFoundError
	suite.ErrorAs(err, &notFoundErr)
}

func (suite *ProductServiceTestSuite) TestSearchOnlyOpenShops() {
	_, err := suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Desk Lamp", "25.50", 40))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Model(suite.shop).Update("is_open", false).Error)

	products, total, err := suite.service.SearchProducts(utils.PaginationParams{Page: 1, Limit: 20})
	suite.Require().NoError(err)
	suite.EqualValues(0, total)
	suite.Empty(products)
}

func (suite *ProductServiceTestSuite) TestSearchByName() {
	_, err := suite.service.CreateProduct(suite.seller.ID, suite.createRequest("Desk Lamp", "25.50", 40))
	suite.Require().NoError(err)

	req := suite.createRequest("Coffee Mug", "5.00", 10)
	_, err = suite.service.CreateProduct(suite.seller.ID, req)
	suite.Require().NoError(err)

	products, total, err := suite.service.SearchProducts(utils.PaginationParams{Page: 1, Limit: 20, Search: "lamp"})
	suite.Require().NoError(err)
	suite.EqualValues(1, total)
	suite.Require().Len(products, 1)
	suite.Equal("Desk Lamp", products[0].Name)
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
