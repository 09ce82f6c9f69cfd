// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError sends a uniform JSON error body. Every failed user action
// goes through here so nothing fails silently.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// AttachWarning adds a non-fatal warning (e.g. a failed persistence flush) to
// an otherwise successful response payload.
func AttachWarning(payload gin.H, warning string) gin.H {
	if warning != "" {
		payload["warning"] = warning
	}
	return payload
}
