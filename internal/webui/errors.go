package webui

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/apiclient"
	"shop_backoffice/internal/models"
)

// messages turns a failure into the lines shown to the operator.
func messages(err error, fallback string) []string {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr.Messages
	}
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		if len(apiErr.Details) > 0 {
			return apiErr.Details
		}
		if apiErr.Message != "" {
			return []string{apiErr.Message}
		}
	}
	return []string{fallback}
}

// fail logs err and queues its messages for the next page.
func (s *Server) fail(c *gin.Context, err error, action, fallback string) {
	log.Printf("❌ %s: %v", action, err)
	for _, msg := range messages(err, fallback) {
		s.flash(c, flashError, msg)
	}
}

func isNotFound(err error) bool {
	var apiErr *apiclient.Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
