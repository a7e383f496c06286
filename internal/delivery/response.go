package delivery

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// The endpoint reports failures as a bare {"error": "..."} object.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

// NameResponse is the reply to every successful document creation: the
// server-generated identifier under "name".
func NameResponse(c *gin.Context, statusCode int, id string) {
	c.JSON(statusCode, gin.H{"name": id})
}

// trimDocumentSuffix strips the mandatory ".json" path suffix. The second
// return is false when the suffix was missing.
func trimDocumentSuffix(param string) (string, bool) {
	trimmed := strings.TrimSuffix(param, ".json")
	return trimmed, trimmed != param && trimmed != ""
}
