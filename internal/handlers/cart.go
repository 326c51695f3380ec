// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fastr/fastr-backend/internal/i18n"
	"github.com/fastr/fastr-backend/internal/services"
	"github.com/fastr/fastr-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// GET /cart
func (h *CartHandler) ViewCart(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.ViewCart(buyerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"cart": cart,
	})
}

// POST /cart/lines
func (h *CartHandler) AddLines(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CartLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	cart, err := h.cartService.AddLines(buyerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartLinesAdded),
		"cart":    cart,
	})
}

// PATCH /cart/lines
func (h *CartHandler) UpdateLines(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CartLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	cart, err := h.cartService.UpdateLines(buyerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartLinesUpdated),
		"cart":    cart,
	})
}

// DELETE /cart/lines
func (h *CartHandler) RemoveLines(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.RemoveCartLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.cartService.RemoveLines(buyerID, &req); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
