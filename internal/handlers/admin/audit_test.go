package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repository"
)

func TestGetAuditLogs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := repository.NewMemory()
	base := time.Now().Add(-time.Hour)
	for i, action := range []string{"product.create", "product.delete", "user.create"} {
		resource := "product"
		if action == "user.create" {
			resource = "user"
		}
		require.NoError(t, store.RecordAudit(context.Background(), models.AuditLog{
			Action:    action,
			Resource:  resource,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	r := gin.New()
	r.GET("/Audit/GetAuditLogs", GetAuditLogs(store))

	var body struct {
		Logs    []models.AuditLog `json:"logs"`
		Total   int               `json:"total"`
		Filters struct {
			Limit int `json:"limit"`
		} `json:"filters"`
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/Audit/GetAuditLogs?resource=product&limit=abc", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, defaultAuditLimit, body.Filters.Limit)
	assert.Equal(t, "product.delete", body.Logs[0].Action)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/Audit/GetAuditLogs?limit=100000", nil))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, maxAuditLimit, body.Filters.Limit)
	assert.Equal(t, 3, body.Total)
}
