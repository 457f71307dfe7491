// Package handlers holds what every API handler group shares: its
// dependencies and the mapping from errors to JSON responses.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/cache"
	"shop_backoffice/internal/listview"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
	"shop_backoffice/internal/services"
	"shop_backoffice/internal/utils"
)

// Deps is handed to each handler group. Only Store is required; the other
// backends degrade to no-ops when nil or disabled.
type Deps struct {
	Store   repository.Store
	Cache   *cache.Cache
	Search  *services.Search
	Images  *services.Images
	Mailer  *utils.Mailer
	Auditor *utils.Auditor
}

// RespondError maps repository and validation errors to status codes.
// Unexpected errors are logged and hidden behind a generic message.
func RespondError(c *gin.Context, err error, action string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": verr.Messages})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("❌ %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// BadRequest answers 400 for malformed bodies.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// ContainsFold is the case-insensitive substring match used when search falls
// back to filtering in memory.
func ContainsFold(s, substr string) bool {
	return listview.ContainsFold(s, substr)
}

// LogSearchFallback logs search failures other than search being disabled.
func LogSearchFallback(what string, err error) {
	if !errors.Is(err, services.ErrSearchDisabled) {
		log.Printf("⚠️ %s search fell back to the store: %v", what, err)
	}
}
