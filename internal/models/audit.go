package models

import "time"

// AuditLog records one write made through the API.
type AuditLog struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId,omitempty"`
	IPAddress  string    `json:"ipAddress"`
	UserAgent  string    `json:"userAgent"`
	Success    bool      `json:"success"`
	Status     int       `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// AuditFilter narrows an audit listing. Zero values match everything.
type AuditFilter struct {
	Resource string
	Action   string
	Limit    int
}
