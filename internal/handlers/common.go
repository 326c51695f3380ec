// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fastr/fastr-backend/internal/services"
	"github.com/fastr/fastr-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Validation and precondition failures are the caller's fault; storage
// failures are ours and get logged with the request path.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		permissionErr *services.PermissionError
		notFoundErr   *services.NotFoundError
		storageErr    *services.StorageError
	)

	switch {
	case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrInvalidAddress):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.As(err, &validationErr):
		utils.BadRequestResponse(c, validationErr.Message, gin.H{"field": validationErr.Field})
	case errors.As(err, &permissionErr):
		utils.ForbiddenResponse(c, permissionErr.Message)
	case errors.As(err, &notFoundErr):
		utils.NotFoundResponse(c, notFoundErr.Resource)
	case errors.As(err, &storageErr):
		logrus.WithError(storageErr.Err).WithField("path", c.Request.URL.Path).Error("Storage failure")
		utils.InternalErrorResponse(c, "internal error")
	default:
		utils.BadRequestResponse(c, err.Error(), nil)
	}
}

// currentUserID reads the authenticated user id injected by the auth
// middleware. A missing or malformed id aborts the request.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	return userID, true
}

// pathID parses a uuid path parameter.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
