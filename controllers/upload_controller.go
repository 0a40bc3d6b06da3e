package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amara-chambers/amara-law-api/config"
	"github.com/amara-chambers/amara-law-api/models"
	"github.com/amara-chambers/amara-law-api/services"
	"github.com/amara-chambers/amara-law-api/utils"
)

// UploadBlogImage handles POST /api/v1/blogs/my-blogs/:id/image - the
// authoring lawyer attaches a PNG to an own pending post. The old image, if
// any, is removed from storage.
func UploadBlogImage(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var blog models.Blog
	if err := db.Where("id = ? AND lawyer_id = ? AND status = ?",
		c.Param("id"), caller.SubjectID, models.BlogPending).
		First(&blog).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BLOG_NOT_FOUND",
				"message": "Blog not found or cannot be updated",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Image file is required",
			},
		})
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		uploadErr, isUploadErr := err.(*utils.FileUploadError)
		code := "VALIDATION_ERROR"
		if isUploadErr {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "S3_ERROR",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	s3Key, err := s3Service.UploadFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "S3_ERROR",
				"message": "Failed to upload image",
			},
		})
		return
	}

	oldKey := blog.Image
	if err := db.Model(&blog).Update("image", s3Key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save image reference",
			},
		})
		return
	}

	// Replaced image is garbage now; removal failure is not fatal
	if oldKey != nil && *oldKey != "" {
		_ = s3Service.DeleteFile(*oldKey)
	}

	var updated models.Blog
	if err := db.First(&updated, blog.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated blog",
			},
		})
		return
	}
	attachImageURL(&updated)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Image uploaded successfully",
		"data":    updated,
	})
}
