// internal/handlers/shop.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fastr/fastr-backend/internal/i18n"
	"github.com/fastr/fastr-backend/internal/services"
	"github.com/fastr/fastr-backend/internal/utils"
)

type ShopHandler struct {
	shopService *services.ShopService
}

func NewShopHandler(shopService *services.ShopService) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
	}
}

// POST /shop
func (h *ShopHandler) CreateShop(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	shop, err := h.shopService.CreateShop(sellerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyShopCreated),
		"shop":    shop,
	})
}

// GET /shop
func (h *ShopHandler) GetOwnShop(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	shop, err := h.shopService.GetOwnShop(sellerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shop": shop,
	})
}

// PATCH /shop
func (h *ShopHandler) UpdateShop(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	shop, err := h.shopService.UpdateShop(sellerID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyShopUpdated),
		"shop":    shop,
	})
}

// GET /shops
func (h *ShopHandler) ListOpenShops(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	shops, total, err := h.shopService.ListOpenShops(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(shops, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /shops/:id
func (h *ShopHandler) GetOpenShop(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	shop, err := h.shopService.GetOpenShop(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"shop": shop,
	})
}
