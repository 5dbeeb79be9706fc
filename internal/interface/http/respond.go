package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error bodies follow the wire contract: expected failures carry a
// human-readable message, unexpected ones surface the raw error.

func abortMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
