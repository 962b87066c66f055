package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/jobplatform/interview_backend/utils"
)

// Interview request status values. Transitions are one-directional:
// pending -> accepted or pending -> rejected.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

type InterviewRequest struct {
	ID              string    `gorm:"primaryKey;size:24" json:"id"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Email           string    `gorm:"size:255;not null;index:idx_email_job_title" json:"email"`
	JobTitle        string    `gorm:"size:200;not null;index:idx_email_job_title" json:"jobTitle"`
	Status          string    `gorm:"size:20;default:'pending';index" json:"status"` // pending, accepted, rejected
	RejectionReason string    `gorm:"type:text" json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the identifier and default status before the first insert
func (r *InterviewRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = utils.NewObjectID()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return nil
}
