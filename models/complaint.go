package models

import (
	"time"
)

// ComplaintStatus tracks a complaint through admin handling
type ComplaintStatus string

const (
	ComplaintStatusPending   ComplaintStatus = "pending"
	ComplaintStatusResolved  ComplaintStatus = "resolved"
	ComplaintStatusDismissed ComplaintStatus = "dismissed"
)

// IsValidComplaintStatus reports whether s is one of the known statuses.
func IsValidComplaintStatus(s ComplaintStatus) bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusResolved, ComplaintStatusDismissed:
		return true
	}
	return false
}

// Complaint is a support ticket filed by any authenticated user. Admins
// resolve or dismiss it, optionally attaching a response for the filer.
type Complaint struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        uint            `json:"user_id" gorm:"not null;index"`
	Subject       string          `json:"subject" gorm:"size:255;not null"`
	Description   string          `json:"description" gorm:"size:5000;not null"`
	Status        ComplaintStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	AdminResponse string          `json:"admin_response" gorm:"size:5000"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Complaint model
func (Complaint) TableName() string {
	return "complaints"
}
