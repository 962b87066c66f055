package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jobplatform/interview_backend/models"
)

// ValidateQueryParams validates the list query parameters. The status filter
// is restricted to pending and accepted; limit and page are validated even
// though pagination itself is not implemented.
func ValidateQueryParams() gin.HandlerFunc {
	return func(c *gin.Context) {
		if status := c.Query("status"); status != "" &&
			status != models.StatusPending && status != models.StatusAccepted {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid Query Parameter",
				"message": "Status must be one of: pending, accepted",
			})
			return
		}

		if limit := c.Query("limit"); limit != "" {
			n, err := strconv.Atoi(limit)
			if err != nil || n < 1 || n > 100 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error":   "Invalid Query Parameter",
					"message": "Limit must be a number between 1 and 100",
				})
				return
			}
		}

		if page := c.Query("page"); page != "" {
			n, err := strconv.Atoi(page)
			if err != nil || n < 1 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
					"success": false,
					"error":   "Invalid Query Parameter",
					"message": "Page must be a positive number",
				})
				return
			}
		}

		c.Next()
	}
}
