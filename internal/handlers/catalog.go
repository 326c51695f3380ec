// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fastr/fastr-backend/internal/i18n"
	"github.com/fastr/fastr-backend/internal/services"
	"github.com/fastr/fastr-backend/internal/utils"
)

// CatalogHandler serves the shared catalog vocabulary: the fixed category
// list and the attribute dictionary.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// GET /categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"category": category,
	})
}

// POST /attributes
func (h *CatalogHandler) CreateAttribute(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	attribute, err := h.catalogService.CreateAttribute(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyAttributeCreated),
		"attribute": attribute,
	})
}

// GET /attributes
func (h *CatalogHandler) ListAttributes(c *gin.Context) {
	attributes, err := h.catalogService.ListAttributes()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"attributes": attributes,
	})
}

// GET /attributes/:id
func (h *CatalogHandler) GetAttribute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	attribute, err := h.catalogService.GetAttribute(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"attribute": attribute,
	})
}
