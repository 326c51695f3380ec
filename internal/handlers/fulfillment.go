// internal/handlers/fulfillment.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fastr/fastr-backend/internal/i18n"
	"github.com/fastr/fastr-backend/internal/services"
	"github.com/fastr/fastr-backend/internal/utils"
)

type FulfillmentHandler struct {
	fulfillmentService *services.FulfillmentService
}

func NewFulfillmentHandler(fulfillmentService *services.FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{
		fulfillmentService: fulfillmentService,
	}
}

// GET /shop/fulfillments
func (h *FulfillmentHandler) ListFulfillments(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	fulfillments, total, err := h.fulfillmentService.ListFulfillments(sellerID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(fulfillments, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /shop/fulfillments/:id
func (h *FulfillmentHandler) GetFulfillment(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.fulfillmentService.GetFulfillment(id, sellerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"fulfillment":   detail.Fulfillment,
		"lines":         detail.Lines,
		"shipping_note": detail.ShippingNote,
	})
}

// PATCH /shop/fulfillments/:id
func (h *FulfillmentHandler) UpdateStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateFulfillmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	fulfillment, err := h.fulfillmentService.UpdateStatus(id, sellerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyFulfillmentUpdated),
		"fulfillment": fulfillment,
	})
}
