package utils

import (
	"github.com/gin-gonic/gin"
)

// SignInPath is where clients send users who must authenticate first
const SignInPath = "/auth"

// JSONResponse sends a structured JSON response
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError sends a structured error response
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}

// JSONSignIn sends an error response that tells the client to sign in.
// The target also goes out in the Location header.
func JSONSignIn(c *gin.Context, status int, err error, message string) {
	c.Header("Location", SignInPath)
	c.JSON(status, gin.H{
		"status":   status,
		"message":  message,
		"error":    err.Error(),
		"redirect": SignInPath,
	})
}
