package utils

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
)

// Audit actions
const (
	ActionCategoryCreate = "category.create"
	ActionCategoryUpdate = "category.update"
	ActionCategoryDelete = "category.delete"

	ActionProductCreate = "product.create"
	ActionProductUpdate = "product.update"
	ActionProductDelete = "product.delete"
	ActionImageUpload   = "product.image_upload"

	ActionUserCreate = "user.create"
	ActionUserUpdate = "user.update"
	ActionUserDelete = "user.delete"

	ActionOrderCreate = "order.create"
	ActionOrderStatus = "order.status"
	ActionOrderDelete = "order.delete"
)

// Audit resources
const (
	ResourceCategory = "category"
	ResourceProduct  = "product"
	ResourceUser     = "user"
	ResourceOrder    = "order"
)

// Context keys shared with the handlers.
const (
	CtxActor           = "actor"
	CtxAuditResourceID = "audit_resource_id"
)

// Auditor writes audit entries in the background.
type Auditor struct {
	store repository.AuditLogs
}

func NewAuditor(store repository.AuditLogs) *Auditor {
	return &Auditor{store: store}
}

// LogAction records the outcome of the current request. The entry is built
// before the goroutine starts since gin reuses the context.
func (a *Auditor) LogAction(c *gin.Context, action, resource, resourceID string) {
	if a == nil || a.store == nil {
		return
	}
	actor := c.GetString(CtxActor)
	if actor == "" {
		actor = "anonymous"
	}
	status := c.Writer.Status()
	entry := models.AuditLog{
		Actor:      actor,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		Success:    status >= 200 && status < 300,
		Status:     status,
		Timestamp:  time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.store.RecordAudit(ctx, entry); err != nil {
			log.Printf("❌ audit log %s %s: %v", action, resourceID, err)
		}
	}()
}
