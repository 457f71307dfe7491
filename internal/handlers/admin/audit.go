package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/handlers"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 500
)

// GetAuditLogs returns the latest audit entries, filtered by ?resource=, ?action= and ?limit=.
func GetAuditLogs(store repository.AuditLogs) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
		if err != nil || limit <= 0 {
			limit = defaultAuditLimit
		}
		if limit > maxAuditLimit {
			limit = maxAuditLimit
		}

		filter := models.AuditFilter{
			Resource: c.Query("resource"),
			Action:   c.Query("action"),
			Limit:    limit,
		}
		logs, err := store.ListAudit(c.Request.Context(), filter)
		if err != nil {
			handlers.RespondError(c, err, "list audit logs")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"logs":  logs,
			"total": len(logs),
			"filters": gin.H{
				"resource": filter.Resource,
				"action":   filter.Action,
				"limit":    limit,
			},
		})
	}
}
