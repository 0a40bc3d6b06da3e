package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amara-chambers/amara-law-api/config"
	"github.com/amara-chambers/amara-law-api/models"
	"github.com/amara-chambers/amara-law-api/services"
)

// CreateBlogRequest represents the request body for creating a blog post.
// Any status or lawyer_id in the body is ignored: posts always start pending
// and authorship is bound to the authenticated caller.
type CreateBlogRequest struct {
	Title        string  `json:"title" binding:"required"`
	Content      string  `json:"content" binding:"required"`
	Topic        string  `json:"topic" binding:"required"`
	PracticeArea string  `json:"practiceArea" binding:"required"`
	Image        *string `json:"image"`
}

// UpdateBlogRequest represents the partial patch a lawyer may apply to an own
// pending post
type UpdateBlogRequest struct {
	Title        *string `json:"title"`
	Content      *string `json:"content"`
	Topic        *string `json:"topic"`
	PracticeArea *string `json:"practiceArea"`
	Image        *string `json:"image"`
}

// RejectBlogRequest carries the optional rejection reason
type RejectBlogRequest struct {
	RejectionReason *string `json:"rejectionReason"`
}

// attachImageURL fills the computed presigned URL for a blog's stored image
func attachImageURL(blog *models.Blog) {
	if blog.Image == nil || *blog.Image == "" {
		return
	}
	s3Service := services.GetS3Service()
	if s3Service == nil {
		return
	}
	if url, err := s3Service.GetPresignedURL(*blog.Image); err == nil && url != "" {
		blog.ImageURL = &url
	}
}

func attachImageURLs(blogs []models.Blog) {
	for i := range blogs {
		attachImageURL(&blogs[i])
	}
}

// CreateBlog handles POST /api/v1/blogs - lawyers submit a post for review
func CreateBlog(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	if caller.Role != models.RoleLawyer {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only lawyers can create blog posts",
			},
		})
		return
	}

	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Title, content, topic, and practice area are required",
				"details": err.Error(),
			},
		})
		return
	}

	blog := models.Blog{
		Title:        req.Title,
		Content:      req.Content,
		Topic:        req.Topic,
		PracticeArea: req.PracticeArea,
		Image:        req.Image,
		LawyerID:     caller.SubjectID,
		Status:       models.BlogPending,
	}

	db := config.GetDB()
	if err := db.Create(&blog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create blog",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Blog created successfully and sent for admin approval",
		"data":    blog,
	})
}

// ListMyBlogs handles GET /api/v1/blogs/my-blogs - a lawyer's own posts
func ListMyBlogs(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Blog{}).Where("lawyer_id = ?", caller.SubjectID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count blogs",
			},
		})
		return
	}

	page, limit := parsePagination(c)
	var blogs []models.Blog
	if err := query.Preload("ApprovedBy").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&blogs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch blogs",
			},
		})
		return
	}
	attachImageURLs(blogs)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"blogs": blogs,
			"total": total,
			"page":  page,
			"pages": totalPages(total, limit),
		},
	})
}

// UpdateMyBlog handles PUT /api/v1/blogs/my-blogs/:id - only the authoring
// lawyer may update a post, and only while it is still pending. Ownership and
// status failures are deliberately indistinguishable.
func UpdateMyBlog(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
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

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Topic != nil {
		updates["topic"] = *req.Topic
	}
	if req.PracticeArea != nil {
		updates["practice_area"] = *req.PracticeArea
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}

	if len(updates) > 0 {
		if err := db.Model(&blog).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update blog",
				},
			})
			return
		}
	}

	var updated models.Blog
	if err := db.Preload("Lawyer").Preload("ApprovedBy").First(&updated, blog.ID).Error; err != nil {
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
		"message": "Blog updated successfully",
		"data":    updated,
	})
}

// DeleteMyBlog handles DELETE /api/v1/blogs/my-blogs/:id - same ownership and
// pending-status guard as update
func DeleteMyBlog(c *gin.Context) {
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
				"message": "Blog not found or cannot be deleted",
			},
		})
		return
	}

	if err := db.Unscoped().Delete(&blog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete blog",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Blog deleted successfully",
	})
}

// ListAllBlogs handles GET /api/v1/blogs/admin/all - admin view over every post
func ListAllBlogs(c *gin.Context) {
	if _, ok := resolveCaller(c); !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Blog{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if lawyerID := c.Query("lawyer_id"); lawyerID != "" {
		query = query.Where("lawyer_id = ?", lawyerID)
	}
	if practiceArea := c.Query("practiceArea"); practiceArea != "" {
		query = query.Where("LOWER(practice_area) LIKE LOWER(?)", "%"+practiceArea+"%")
	}
	if topic := c.Query("topic"); topic != "" {
		query = query.Where("LOWER(topic) LIKE LOWER(?)", "%"+topic+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count blogs",
			},
		})
		return
	}

	page, limit := parsePagination(c)
	var blogs []models.Blog
	if err := query.Preload("Lawyer").Preload("ApprovedBy").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&blogs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch blogs",
			},
		})
		return
	}
	attachImageURLs(blogs)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"blogs": blogs,
			"total": total,
			"page":  page,
			"pages": totalPages(total, limit),
		},
	})
}

// reviewBlog applies an admin review decision with a compare-and-set on the
// status the admin saw
func reviewBlog(c *gin.Context, target string, updates map[string]interface{}) (*models.Blog, bool) {
	db := config.GetDB()

	var blog models.Blog
	if err := db.First(&blog, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BLOG_NOT_FOUND",
				"message": "Blog not found",
			},
		})
		return nil, false
	}

	if !models.CanTransitionBlog(blog.Status, target) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Blog cannot move from " + blog.Status + " to " + target,
			},
		})
		return nil, false
	}

	updates["status"] = target
	result := db.Model(&models.Blog{}).
		Where("id = ? AND status = ?", blog.ID, blog.Status).
		Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update blog",
			},
		})
		return nil, false
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STATUS_CONFLICT",
				"message": "Blog status changed concurrently, please retry",
			},
		})
		return nil, false
	}

	var updated models.Blog
	if err := db.Preload("Lawyer").Preload("ApprovedBy").First(&updated, blog.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated blog",
			},
		})
		return nil, false
	}
	attachImageURL(&updated)

	return &updated, true
}

// ApproveBlog handles PATCH /api/v1/blogs/admin/:id/approve. Approval always
// re-stamps the reviewer and clears any earlier rejection reason.
func ApproveBlog(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	updates := map[string]interface{}{
		"approved_by_id":   caller.SubjectID,
		"approved_at":      time.Now(),
		"rejection_reason": nil,
	}

	updated, ok := reviewBlog(c, models.BlogApproved, updates)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Blog approved successfully",
		"data":    updated,
	})
}

// RejectBlog handles PATCH /api/v1/blogs/admin/:id/reject
func RejectBlog(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	// Rejection reason is optional, an empty body is fine
	var req RejectBlogRequest
	_ = c.ShouldBindJSON(&req)

	updates := map[string]interface{}{
		"approved_by_id":   caller.SubjectID,
		"approved_at":      time.Now(),
		"rejection_reason": req.RejectionReason,
	}

	updated, ok := reviewBlog(c, models.BlogRejected, updates)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Blog rejected successfully",
		"data":    updated,
	})
}

// publicBlogView strips internal review metadata from a blog for public
// consumption
func publicBlogView(blog *models.Blog) gin.H {
	view := gin.H{
		"id":           blog.ID,
		"title":        blog.Title,
		"content":      blog.Content,
		"topic":        blog.Topic,
		"practiceArea": blog.PracticeArea,
		"image":        blog.Image,
		"lawyer_id":    blog.LawyerID,
		"status":       blog.Status,
		"approved":     blog.Approved,
		"approvedAt":   blog.ApprovedAt,
		"created_at":   blog.CreatedAt,
		"updated_at":   blog.UpdatedAt,
	}
	if blog.ImageURL != nil {
		view["image_url"] = blog.ImageURL
	}
	if blog.Lawyer != nil {
		lawyer := gin.H{"id": blog.Lawyer.ID, "name": blog.Lawyer.Name}
		if blog.Lawyer.PracticeArea != nil {
			lawyer["practice_area"] = blog.Lawyer.PracticeArea
		}
		view["lawyer"] = lawyer
	}
	return view
}

// ListApprovedBlogs handles GET /api/v1/blogs/public - approved posts only,
// most recently approved first, review metadata stripped
func ListApprovedBlogs(c *gin.Context) {
	db := config.GetDB()
	query := db.Model(&models.Blog{}).Where("status = ?", models.BlogApproved)
	if lawyerID := c.Query("lawyer_id"); lawyerID != "" {
		query = query.Where("lawyer_id = ?", lawyerID)
	}
	if practiceArea := c.Query("practiceArea"); practiceArea != "" {
		query = query.Where("LOWER(practice_area) LIKE LOWER(?)", "%"+practiceArea+"%")
	}
	if topic := c.Query("topic"); topic != "" {
		query = query.Where("LOWER(topic) LIKE LOWER(?)", "%"+topic+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count blogs",
			},
		})
		return
	}

	page, limit := parsePagination(c)
	var blogs []models.Blog
	if err := query.Preload("Lawyer").
		Order("approved_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&blogs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch blogs",
			},
		})
		return
	}
	attachImageURLs(blogs)

	views := make([]gin.H, 0, len(blogs))
	for i := range blogs {
		views = append(views, publicBlogView(&blogs[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"blogs": views,
			"total": total,
			"page":  page,
			"pages": totalPages(total, limit),
		},
	})
}

// GetApprovedBlog handles GET /api/v1/blogs/public/:id. A non-approved post
// returns the same 404 as a nonexistent one so unapproved content never leaks.
func GetApprovedBlog(c *gin.Context) {
	db := config.GetDB()
	var blog models.Blog
	if err := db.Preload("Lawyer").First(&blog, c.Param("id")).Error; err != nil || blog.Status != models.BlogApproved {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BLOG_NOT_FOUND",
				"message": "Blog not found",
			},
		})
		return
	}
	attachImageURL(&blog)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    publicBlogView(&blog),
	})
}

// GetBlog handles GET /api/v1/blogs/:id - admins and the authoring lawyer see
// the full record; any other lawyer is denied
func GetBlog(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var blog models.Blog
	if err := db.Preload("Lawyer").Preload("ApprovedBy").First(&blog, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BLOG_NOT_FOUND",
				"message": "Blog not found",
			},
		})
		return
	}

	if caller.Role == models.RoleLawyer && blog.LawyerID != caller.SubjectID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Access denied",
			},
		})
		return
	}
	attachImageURL(&blog)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    blog,
	})
}
