package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MarcoPolo483/eva-da-2-sub000/internal/models"
)

// sessionFrom builds the operator session from request headers. The
// identity layer in front of the console resolves and injects these;
// this service takes them as given.
func sessionFrom(c *gin.Context) models.Session {
	operator := c.GetHeader("X-Operator-Id")
	if operator == "" {
		operator = "anonymous"
	}
	var roles []string
	if raw := c.GetHeader("X-Operator-Roles"); raw != "" {
		for _, role := range strings.Split(raw, ",") {
			if role = strings.TrimSpace(role); role != "" {
				roles = append(roles, role)
			}
		}
	}
	return models.Session{OperatorID: operator, Roles: roles}
}
