// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError sends a plain error message with the given status.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// RespondWithFieldErrors sends a 400 with a field -> message map. Used when
// form validation fails; nothing is written to the store in that case.
func RespondWithFieldErrors(c *gin.Context, errors map[string]string) {
	c.JSON(400, gin.H{"errors": errors})
}
