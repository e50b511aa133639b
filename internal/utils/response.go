package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Success writes fields at the top level of the body next to
// "success": true.
func Success(c *gin.Context, fields gin.H) {
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Error aborts the request with {"success": false, "error": msg}.
func Error(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{
		"success": false,
		"error":   msg,
	})
}
