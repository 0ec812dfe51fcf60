package models

import (
	"time"
)

// VerificationStatus tracks admin review of a worker's documents.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// WorkerProfile represents a worker's professional profile. The aggregate
// rating fields are recomputed by the review service whenever a review is
// submitted for the worker.
type WorkerProfile struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	UserID             uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	Skill              string             `json:"skill" gorm:"size:100;not null"` // e.g. "Plumber", "Electrician"
	City               string             `json:"city" gorm:"size:100;not null"`
	Bio                string             `json:"bio" gorm:"type:text"`
	Experience         string             `json:"experience" gorm:"type:text"`
	HourlyRate         float64            `json:"hourly_rate" gorm:"type:decimal(10,2);default:0"`
	ProfilePhoto       *string            `json:"profile_photo" gorm:"size:500"`
	IDCardPhoto        *string            `json:"id_card_photo" gorm:"size:500"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:varchar(20);default:'pending';check:verification_status IN ('pending','approved','rejected')"`
	IsAvailable        bool               `json:"is_available" gorm:"default:true"`

	// Aggregate rating, full recomputation on every review
	AverageRating float64 `json:"average_rating" gorm:"type:decimal(3,2);default:0"`
	ReviewsCount  int     `json:"reviews_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the WorkerProfile model
func (WorkerProfile) TableName() string {
	return "worker_profiles"
}

// WorkerProfileRequest represents the request structure for creating or
// updating a worker profile
type WorkerProfileRequest struct {
	Skill      string  `json:"skill" binding:"required"`
	City       string  `json:"city" binding:"required"`
	Bio        string  `json:"bio"`
	Experience string  `json:"experience"`
	HourlyRate float64 `json:"hourly_rate"`
}
