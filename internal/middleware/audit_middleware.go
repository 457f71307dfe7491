package middleware

import (
	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/utils"
)

// AuditCriticalActions records every call to the wrapped route once the handler has run.
// The resource id comes from the :id param, or from the handler via utils.CtxAuditResourceID
// for routes that carry it in the body.
func AuditCriticalActions(auditor *utils.Auditor, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		resourceID := c.GetString(utils.CtxAuditResourceID)
		if resourceID == "" {
			resourceID = c.Param("id")
		}
		auditor.LogAction(c, action, resource, resourceID)
	}
}
