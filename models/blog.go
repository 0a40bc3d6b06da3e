package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog statuses.
const (
	BlogPending  = "pending"
	BlogApproved = "approved"
	BlogRejected = "rejected"
)

// Blog represents an article written by a lawyer. Every new post starts as
// pending and only becomes publicly visible after an admin approves it.
type Blog struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Title        string  `gorm:"not null" json:"title"`
	Content      string  `gorm:"not null" json:"content"`
	Topic        string  `gorm:"not null" json:"topic"`
	PracticeArea string  `gorm:"not null;index" json:"practiceArea"`
	Image        *string `json:"image"`                         // S3 key, nullable
	ImageURL     *string `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for image

	// Authorship, bound on creation and immutable afterwards
	LawyerID uint  `gorm:"column:lawyer_id;not null;index" json:"lawyer_id"`
	Lawyer   *User `gorm:"foreignKey:LawyerID" json:"lawyer,omitempty"`

	Status string `gorm:"not null;default:'pending';index" json:"status"` // pending, approved, rejected

	// Derived view of Status; never persisted
	Approved bool `gorm:"-" json:"approved"`

	// Review audit
	ApprovedByID    *uint      `gorm:"column:approved_by_id" json:"approved_by_id,omitempty"`
	ApprovedBy      *User      `gorm:"foreignKey:ApprovedByID" json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	RejectionReason *string    `json:"rejectionReason"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Blog model
func (Blog) TableName() string {
	return "blogs"
}

// AfterFind derives the Approved view from the persisted status.
func (b *Blog) AfterFind(tx *gorm.DB) error {
	b.Approved = b.Status == BlogApproved
	return nil
}

// blogTransitions is the blog transition table. Admin review is an explicit
// override: approve and reject are legal from any status, so an admin can
// reverse an earlier decision. Author mutation is gated separately on
// status = pending.
var blogTransitions = map[string][]string{
	BlogPending:  {BlogApproved, BlogRejected},
	BlogApproved: {BlogApproved, BlogRejected},
	BlogRejected: {BlogApproved, BlogRejected},
}

// ValidBlogStatus reports whether status is a recognized blog status.
func ValidBlogStatus(status string) bool {
	_, ok := blogTransitions[status]
	return ok
}

// CanTransitionBlog reports whether a blog may move from one status to another.
func CanTransitionBlog(from, to string) bool {
	for _, s := range blogTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
