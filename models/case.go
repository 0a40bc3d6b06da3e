package models

import (
	"time"

	"gorm.io/gorm"
)

// Case statuses and priorities.
const (
	CaseActive  = "active"
	CaseClosed  = "closed"
	CasePending = "pending"
	CaseOnHold  = "on-hold"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Case represents a legal matter handled by the firm. Case management itself
// is handled elsewhere; this model backs migration and the statistics
// aggregator.
type Case struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	CaseName    string  `gorm:"not null" json:"caseName"`
	FileNumber  string  `gorm:"uniqueIndex;not null" json:"fileNumber"`
	Description *string `json:"description,omitempty"`
	CaseType    *string `json:"caseType,omitempty"`

	ClientID uint  `gorm:"column:client_id;not null;index" json:"client_id"`
	Client   *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	LawyerID uint  `gorm:"column:lawyer_id;not null;index" json:"lawyer_id"`
	Lawyer   *User `gorm:"foreignKey:LawyerID" json:"lawyer,omitempty"`

	Status   string `gorm:"not null;default:'active';index" json:"status"`   // active, closed, pending, on-hold
	Priority string `gorm:"not null;default:'medium';index" json:"priority"` // low, medium, high, urgent

	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	CreatedByID uint  `gorm:"column:created_by_id;not null" json:"created_by_id"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Case model
func (Case) TableName() string {
	return "cases"
}
