package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amara-chambers/amara-law-api/config"
	"github.com/amara-chambers/amara-law-api/middleware"
	"github.com/amara-chambers/amara-law-api/models"
)

// resolveCaller maps the validated Auth0 subject to a local user row and
// returns the caller context every engine operation works with. On failure it
// writes the error response and returns false.
func resolveCaller(c *gin.Context) (*middleware.CallerContext, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &middleware.CallerContext{SubjectID: user.ID, Role: user.Role}, true
}

// parsePagination reads page/limit query parameters with the defaults used
// across all list endpoints.
func parsePagination(c *gin.Context) (page, limit int) {
	page, limit = 1, 10
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "10")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// totalPages computes ceil(total/limit).
func totalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
