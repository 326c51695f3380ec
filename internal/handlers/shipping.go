// internal/handlers/shipping.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fastr/fastr-backend/internal/i18n"
	"github.com/fastr/fastr-backend/internal/services"
	"github.com/fastr/fastr-backend/internal/utils"
)

type ShippingHandler struct {
	shippingService *services.ShippingService
}

func NewShippingHandler(shippingService *services.ShippingService) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
	}
}

// POST /shipping-notes
func (h *ShippingHandler) CreateShippingNote(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateShippingNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	note, err := h.shippingService.CreateShippingNote(buyerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyShippingNoteCreated),
		"shipping_note": note,
	})
}

// GET /shipping-notes
func (h *ShippingHandler) ListShippingNotes(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	notes, err := h.shippingService.ListShippingNotes(buyerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shipping_notes": notes,
	})
}

// GET /shipping-notes/:id
func (h *ShippingHandler) GetShippingNote(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	note, err := h.shippingService.GetShippingNote(id, buyerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shipping_note": note,
	})
}
