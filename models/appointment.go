package models

import (
	"time"

	"gorm.io/gorm"
)

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentApproved  = "approved"
	AppointmentRejected  = "rejected"
	AppointmentCompleted = "completed"
)

// Appointment represents a consultation request submitted to the firm.
// Requester contact details are always captured so unauthenticated visitors
// can book; client_id is only set when the requester has an account.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Requester info (captured even for unauthenticated submissions)
	ClientName  string `gorm:"not null" json:"clientName"`
	ClientEmail string `gorm:"not null" json:"clientEmail"`
	ClientPhone string `gorm:"not null" json:"clientPhone"`

	// Optional account reference for authenticated requesters
	ClientID *uint `gorm:"column:client_id;index" json:"client_id"`
	Client   *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	// Lawyer assignment, set only through the admin assign action
	LawyerID *uint `gorm:"column:lawyer_id;index" json:"lawyer_id"`
	Lawyer   *User `gorm:"foreignKey:LawyerID" json:"lawyer,omitempty"`

	// Appointment details. Date is YYYY-MM-DD and Time is HH:MM so that
	// lexicographic order matches chronological order.
	Subject     string `gorm:"not null" json:"subject"`
	Description string `gorm:"not null" json:"description"`
	Date        string `gorm:"not null;index" json:"date"`
	Time        string `gorm:"not null" json:"time"`

	Status string `gorm:"not null;default:'pending';index" json:"status"` // pending, approved, rejected, completed

	// Admin audit
	AssignedByID *uint   `gorm:"column:assigned_by_id" json:"assigned_by_id"`
	AssignedBy   *User   `gorm:"foreignKey:AssignedByID" json:"assignedBy,omitempty"`
	AdminNotes   *string `json:"adminNotes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// appointmentTransitions is the single transition table consulted by every
// status-changing entry point. Completed is terminal. Re-approving an
// approved appointment is legal so an admin can re-assign the lawyer.
var appointmentTransitions = map[string][]string{
	AppointmentPending:   {AppointmentApproved, AppointmentRejected},
	AppointmentApproved:  {AppointmentApproved, AppointmentRejected, AppointmentCompleted},
	AppointmentRejected:  {AppointmentApproved, AppointmentRejected},
	AppointmentCompleted: {},
}

// ValidAppointmentStatus reports whether status is a recognized appointment status.
func ValidAppointmentStatus(status string) bool {
	_, ok := appointmentTransitions[status]
	return ok
}

// CanTransitionAppointment reports whether an appointment may move from one
// status to another.
func CanTransitionAppointment(from, to string) bool {
	for _, s := range appointmentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
