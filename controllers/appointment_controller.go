package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amara-chambers/amara-law-api/config"
	"github.com/amara-chambers/amara-law-api/models"
)

// CreateAppointmentRequest represents the request body for creating an appointment
type CreateAppointmentRequest struct {
	ClientName  string `json:"clientName" binding:"required"`
	ClientEmail string `json:"clientEmail" binding:"required"`
	ClientPhone string `json:"clientPhone" binding:"required"`
	ClientID    *uint  `json:"client_id"` // optional, for authenticated requesters
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
}

// AppointmentNotesRequest carries the optional admin notes on review actions
type AppointmentNotesRequest struct {
	AdminNotes *string `json:"adminNotes"`
}

// AssignLawyerRequest represents the request body for assigning a lawyer
type AssignLawyerRequest struct {
	LawyerID   uint    `json:"lawyer_id" binding:"required"`
	AdminNotes *string `json:"adminNotes"`
}

// UpdateAppointmentStatusRequest represents the request body for a status change
type UpdateAppointmentStatusRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"adminNotes"`
}

// UpdateAppointmentRequest represents the request body for a general update.
// Status is deliberately absent; status only changes through the transition
// endpoints.
type UpdateAppointmentRequest struct {
	ClientName  *string `json:"clientName"`
	ClientEmail *string `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone"`
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
}

// appointmentPreloads loads the related client/lawyer/admin summaries
func appointmentPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Client").Preload("Lawyer").Preload("AssignedBy")
}

// CreateAppointment handles POST /api/v1/appointments - public, no authentication required.
// Every submission starts as pending regardless of anything in the body.
func CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Missing required fields: clientName, clientEmail, clientPhone, subject, description, date, time",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// A client reference, when supplied, must resolve before we insert
	if req.ClientID != nil {
		var count int64
		if err := db.Model(&models.User{}).Where("id = ?", *req.ClientID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to verify client reference",
				},
			})
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "client_id does not reference an existing user",
				},
			})
			return
		}
	}

	appointment := models.Appointment{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		ClientID:    req.ClientID,
		Subject:     req.Subject,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Status:      models.AppointmentPending,
	}

	if err := db.Create(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create appointment",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Appointment request created successfully",
		"data":    appointment,
	})
}

// ListAppointments handles GET /api/v1/appointments - filtered, paginated, newest first
func ListAppointments(c *gin.Context) {
	if _, ok := resolveCaller(c); !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Appointment{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if lawyerID := c.Query("lawyer_id"); lawyerID != "" {
		query = query.Where("lawyer_id = ?", lawyerID)
	}
	if clientID := c.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count appointments",
			},
		})
		return
	}

	page, limit := parsePagination(c)
	var appointments []models.Appointment
	if err := appointmentPreloads(query).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"appointments": appointments,
			"total":        total,
			"page":         page,
			"pages":        totalPages(total, limit),
		},
	})
}

// ListPendingAppointments handles GET /api/v1/appointments/pending - admin review queue
func ListPendingAppointments(c *gin.Context) {
	if _, ok := resolveCaller(c); !ok {
		return
	}

	db := config.GetDB()
	var appointments []models.Appointment
	if err := appointmentPreloads(db).
		Where("status = ?", models.AppointmentPending).
		Order("created_at DESC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch pending appointments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Pending appointments retrieved successfully",
		"count":   len(appointments),
		"data":    appointments,
	})
}

// ListLawyerAppointments handles GET /api/v1/appointments/lawyer/:lawyerId.
// This view answers "what's next", so it sorts by appointment date ascending.
func ListLawyerAppointments(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	lawyerID, err := strconv.ParseUint(c.Param("lawyerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid lawyer ID",
			},
		})
		return
	}

	// Lawyers only see their own schedule; admins see any
	if caller.Role != models.RoleAdmin && (caller.Role != models.RoleLawyer || caller.SubjectID != uint(lawyerID)) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view these appointments",
			},
		})
		return
	}

	db := config.GetDB()
	query := db.Where("lawyer_id = ?", lawyerID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Preload("Client").
		Order("date ASC, time ASC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointments,
	})
}

// ListClientAppointments handles GET /api/v1/appointments/client/:clientId
func ListClientAppointments(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	clientID, err := strconv.ParseUint(c.Param("clientId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid client ID",
			},
		})
		return
	}

	// Clients only see their own appointments; admins see any
	if caller.Role != models.RoleAdmin && (caller.Role != models.RoleClient || caller.SubjectID != uint(clientID)) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "You do not have permission to view these appointments",
			},
		})
		return
	}

	db := config.GetDB()
	query := db.Where("client_id = ?", clientID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Preload("Lawyer").
		Order("date ASC, time ASC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointments,
	})
}

// GetAppointment handles GET /api/v1/appointments/:id
func GetAppointment(c *gin.Context) {
	if _, ok := resolveCaller(c); !ok {
		return
	}

	db := config.GetDB()
	var appointment models.Appointment
	if err := appointmentPreloads(db).First(&appointment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPOINTMENT_NOT_FOUND",
				"message": "Appointment not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointment,
	})
}

// transitionAppointment performs a compare-and-set status change. The update
// only applies while the row still holds the status we read, so of two
// concurrent conflicting transitions exactly one wins.
func transitionAppointment(c *gin.Context, id string, target string, updates map[string]interface{}) (*models.Appointment, bool) {
	db := config.GetDB()

	var appointment models.Appointment
	if err := db.First(&appointment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPOINTMENT_NOT_FOUND",
				"message": "Appointment not found",
			},
		})
		return nil, false
	}

	if !models.CanTransitionAppointment(appointment.Status, target) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Appointment cannot move from " + appointment.Status + " to " + target,
			},
		})
		return nil, false
	}

	updates["status"] = target
	result := db.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointment.ID, appointment.Status).
		Updates(updates)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update appointment",
			},
		})
		return nil, false
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STATUS_CONFLICT",
				"message": "Appointment status changed concurrently, please retry",
			},
		})
		return nil, false
	}

	var updated models.Appointment
	if err := appointmentPreloads(db).First(&updated, appointment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated appointment",
			},
		})
		return nil, false
	}

	return &updated, true
}

// AssignLawyerAndApprove handles PUT /api/v1/appointments/:id/assign-lawyer.
// This is the only path that sets lawyer_id; appointments are never self-assigned.
func AssignLawyerAndApprove(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	var req AssignLawyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Lawyer ID is required",
				"details": err.Error(),
			},
		})
		return
	}

	updates := map[string]interface{}{
		"lawyer_id":      req.LawyerID,
		"assigned_by_id": caller.SubjectID,
		"admin_notes":    req.AdminNotes,
	}

	updated, ok := transitionAppointment(c, c.Param("id"), models.AppointmentApproved, updates)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Lawyer assigned and appointment approved successfully",
		"data":    updated,
	})
}

// RejectAppointment handles PUT /api/v1/appointments/:id/reject.
// Rejection does not clear a previous lawyer assignment.
func RejectAppointment(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	// Notes are optional, an empty body is fine
	var req AppointmentNotesRequest
	_ = c.ShouldBindJSON(&req)

	updates := map[string]interface{}{
		"assigned_by_id": caller.SubjectID,
		"admin_notes":    req.AdminNotes,
	}

	updated, ok := transitionAppointment(c, c.Param("id"), models.AppointmentRejected, updates)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointment rejected successfully",
		"data":    updated,
	})
}

// UpdateAppointmentStatus handles PUT /api/v1/appointments/:id/status - the
// generic transition entry point. It consults the same transition table as the
// assign/reject actions and always stamps the acting admin.
func UpdateAppointmentStatus(c *gin.Context) {
	caller, ok := resolveCaller(c)
	if !ok {
		return
	}

	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status is required",
				"details": err.Error(),
			},
		})
		return
	}

	if !models.ValidAppointmentStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid status. Must be one of: pending, approved, rejected, completed",
			},
		})
		return
	}

	updates := map[string]interface{}{
		"assigned_by_id": caller.SubjectID,
		"admin_notes":    req.AdminNotes,
	}

	updated, ok := transitionAppointment(c, c.Param("id"), req.Status, updates)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointment status updated successfully",
		"data":    updated,
	})
}

// UpdateAppointment handles PUT /api/v1/appointments/:id - general field
// update; only supplied fields are applied and status is untouched.
func UpdateAppointment(c *gin.Context) {
	if _, ok := resolveCaller(c); !ok {
		return
	}

	var req UpdateAppointmentRequest
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
	var appointment models.Appointment
	if err := db.First(&appointment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPOINTMENT_NOT_FOUND",
				"message": "Appointment not found",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.ClientName != nil {
		updates["client_name"] = *req.ClientName
	}
	if req.ClientEmail != nil {
		updates["client_email"] = *req.ClientEmail
	}
	if req.ClientPhone != nil {
		updates["client_phone"] = *req.ClientPhone
	}
	if req.Subject != nil {
		updates["subject"] = *req.Subject
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Time != nil {
		updates["time"] = *req.Time
	}

	if len(updates) > 0 {
		if err := db.Model(&appointment).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update appointment",
				},
			})
			return
		}
	}

	var updated models.Appointment
	if err := appointmentPreloads(db).First(&updated, appointment.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated appointment",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointment updated successfully",
		"data":    updated,
	})
}

// DeleteAppointment handles DELETE /api/v1/appointments/:id - hard delete, no
// audit trail retained.
func DeleteAppointment(c *gin.Context) {
	if _, ok := resolveCaller(c); !ok {
		return
	}

	db := config.GetDB()
	var appointment models.Appointment
	if err := db.First(&appointment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "APPOINTMENT_NOT_FOUND",
				"message": "Appointment not found",
			},
		})
		return
	}

	if err := db.Unscoped().Delete(&appointment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete appointment",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Appointment deleted successfully",
	})
}
