// internal/services/shipping_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/fastr/fastr-backend/internal/models"
)

type ShippingServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ShippingService
	buyer   *models.User
}

func (suite *ShippingServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.service = NewShippingService(suite.db)
	suite.buyer = createBuyer(suite.T(), suite.db, "buyer@example.com")
}

func (suite *ShippingServiceTestSuite) TestCreateAndList() {
	note, err := suite.service.CreateShippingNote(suite.buyer.ID, &CreateShippingNoteRequest{
		Country: "Kazakhstan",
		City:    "Almaty",
		Street:  "Abay Avenue",
		House:   "12",
		Phone:   "+7 700 000 0000",
	})
	suite.Require().NoError(err)
	suite.Equal(suite.buyer.ID, note.UserID)

	notes, err := suite.service.ListShippingNotes(suite.buyer.ID)
	suite.Require().NoError(err)
	suite.Len(notes, 1)
}

func (suite *ShippingServiceTestSuite) TestNotesAreOwnerScoped() {
	note, err := suite.service.CreateShippingNote(suite.buyer.ID, &CreateShippingNoteRequest{
		Country: "Kazakhstan",
		City:    "Almaty",
		Street:  "Abay Avenue",
		Phone:   "+7 700 000 0000",
	})
	suite.Require().NoError(err)

	other := createBuyer(suite.T(), suite.db, "other@example.com")

	_, err = suite.service.GetShippingNote(note.ID, other.ID)
	suite.Require().Error(err)

	var notFoundErr *NotFoundError
	suite.ErrorAs(err, &notFoundErr)

	notes, err := suite.service.ListShippingNotes(other.ID)
	suite.Require().NoError(err)
	suite.Empty(notes)
}

func TestShippingServiceSuite(t *testing.T) {
	suite.Run(t, new(ShippingServiceTestSuite))
}
