package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amara-chambers/amara-law-api/config"
	"github.com/amara-chambers/amara-law-api/models"
)

// PracticeAreaCount is one row of the approved-blog practice area breakdown
type PracticeAreaCount struct {
	PracticeArea string `json:"practiceArea"`
	Count        int64  `json:"count"`
}

// LawyerBlogCount is one row of the most-published lawyers ranking
type LawyerBlogCount struct {
	LawyerID   uint   `json:"lawyer_id"`
	LawyerName string `json:"lawyerName"`
	Count      int64  `json:"count"`
}

// PriorityCount is one row of the case priority breakdown
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

// GetAppointmentStatistics handles GET /api/v1/statistics/appointments.
// Approved and completed appointments count into the same "approved" bucket.
func GetAppointmentStatistics(c *gin.Context) {
	if _, ok := resolveCaller(c); !ok {
		return
	}

	db := config.GetDB()
	var pending, approved, rejected int64

	err := db.Model(&models.Appointment{}).
		Where("status = ?", models.AppointmentPending).Count(&pending).Error
	if err == nil {
		err = db.Model(&models.Appointment{}).
			Where("status IN ?", []string{models.AppointmentApproved, models.AppointmentCompleted}).
			Count(&approved).Error
	}
	if err == nil {
		err = db.Model(&models.Appointment{}).
			Where("status = ?", models.AppointmentRejected).Count(&rejected).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointment statistics",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"pendingAppointments":  pending,
			"approvedAppointments": approved,
			"rejectedAppointments": rejected,
		},
	})
}

// GetBlogStatistics handles GET /api/v1/statistics/blogs
func GetBlogStatistics(c *gin.Context) {
	if _, ok := resolveCaller(c); !ok {
		return
	}

	db := config.GetDB()
	var total, approved, pending, rejected int64

	err := db.Model(&models.Blog{}).Count(&total).Error
	if err == nil {
		err = db.Model(&models.Blog{}).Where("status = ?", models.BlogApproved).Count(&approved).Error
	}
	if err == nil {
		err = db.Model(&models.Blog{}).Where("status = ?", models.BlogPending).Count(&pending).Error
	}
	if err == nil {
		err = db.Model(&models.Blog{}).Where("status = ?", models.BlogRejected).Count(&rejected).Error
	}

	var practiceAreas []PracticeAreaCount
	if err == nil {
		err = db.Model(&models.Blog{}).
			Select("practice_area AS practice_area, COUNT(*) AS count").
			Where("status = ?", models.BlogApproved).
			Group("practice_area").
			Scan(&practiceAreas).Error
	}

	// Top 10 lawyers by approved posts, highest first. Ties keep the
	// store's grouping order.
	var topBloggers []LawyerBlogCount
	if err == nil {
		err = db.Model(&models.Blog{}).
			Select("blogs.lawyer_id AS lawyer_id, users.name AS lawyer_name, COUNT(*) AS count").
			Joins("JOIN users ON users.id = blogs.lawyer_id").
			Where("blogs.status = ?", models.BlogApproved).
			Group("blogs.lawyer_id, users.name").
			Order("count DESC").
			Limit(10).
			Scan(&topBloggers).Error
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch blog statistics",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total":                 total,
			"approved":              approved,
			"pending":               pending,
			"rejected":              rejected,
			"practiceAreaBreakdown": practiceAreas,
			"topBloggers":           topBloggers,
		},
	})
}

// GetCaseStatistics handles GET /api/v1/statistics/cases
func GetCaseStatistics(c *gin.Context) {
	if _, ok := resolveCaller(c); !ok {
		return
	}

	db := config.GetDB()
	var total, active, closed, pending, onHold int64

	err := db.Model(&models.Case{}).Count(&total).Error
	if err == nil {
		err = db.Model(&models.Case{}).Where("status = ?", models.CaseActive).Count(&active).Error
	}
	if err == nil {
		err = db.Model(&models.Case{}).Where("status = ?", models.CaseClosed).Count(&closed).Error
	}
	if err == nil {
		err = db.Model(&models.Case{}).Where("status = ?", models.CasePending).Count(&pending).Error
	}
	if err == nil {
		err = db.Model(&models.Case{}).Where("status = ?", models.CaseOnHold).Count(&onHold).Error
	}

	var priorities []PriorityCount
	if err == nil {
		err = db.Model(&models.Case{}).
			Select("priority AS priority, COUNT(*) AS count").
			Group("priority").
			Scan(&priorities).Error
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch case statistics",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total":             total,
			"active":            active,
			"closed":            closed,
			"pending":           pending,
			"onHold":            onHold,
			"priorityBreakdown": priorities,
		},
	})
}
