package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MarcoPolo483/eva-da-2-sub000/pkg/logger"
)

// AuditLog records every write operation (POST/PUT/DELETE) against the
// admin API together with the operator that issued it. Reads are not
// audited.
func AuditLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != "POST" && method != "PUT" && method != "DELETE" {
			c.Next()
			return
		}

		c.Next()

		operator := c.GetHeader("X-Operator-Id")
		if operator == "" {
			operator = "anonymous"
		}

		logger.Info().
			Str("operator", operator).
			Str("method", method).
			Str("path", c.Request.URL.Path).
			Str("area", auditArea(c.FullPath())).
			Int("status", c.Writer.Status()).
			Str("ip", c.ClientIP()).
			Bool("audit", true).
			Msg("admin write operation")
	}
}

// auditArea extracts the first API segment from a route pattern,
// e.g. "/api/projects/:id" yields "projects".
func auditArea(fullPath string) string {
	path := strings.TrimPrefix(fullPath, "/api/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "unknown"
	}
	return path
}
