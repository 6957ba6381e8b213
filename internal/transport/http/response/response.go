package response

import "github.com/gin-gonic/gin"

// Every payload carries an "ok" flag; failures carry a single "error"
// message. Upstream failure details are logged, never returned.

func OK(c *gin.Context, payload interface{}) {
	c.JSON(200, payload)
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{
		"ok":    false,
		"error": message,
	})
}
