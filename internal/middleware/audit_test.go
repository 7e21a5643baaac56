package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAuditLogPassThrough(t *testing.T) {
	r := gin.New()
	r.Use(AuditLog())
	r.PUT("/api/projects/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest("PUT", "/api/projects/permits", nil)
	req.Header.Set("X-Operator-Id", "op-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusOK)
	}
}

func TestAuditArea(t *testing.T) {
	tests := []struct {
		fullPath string
		expected string
	}{
		{"/api/projects/:id", "projects"},
		{"/api/config/global", "config"},
		{"/api/backups/:key/restore", "backups"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		if got := auditArea(tt.fullPath); got != tt.expected {
			t.Errorf("auditArea(%q) = %q, expected %q", tt.fullPath, got, tt.expected)
		}
	}
}
