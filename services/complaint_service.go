package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"local-services-server/models"
)

// ComplaintService handles user-filed complaints and their admin resolution.
type ComplaintService struct {
	db *gorm.DB
}

// NewComplaintService creates a new complaint service
func NewComplaintService(db *gorm.DB) *ComplaintService {
	return &ComplaintService{db: db}
}

// Create files a complaint for the given user. Subject and description are
// both required; new complaints always start as pending.
func (s *ComplaintService) Create(userID uint, subject, description string) (*models.Complaint, error) {
	subject = strings.TrimSpace(subject)
	description = strings.TrimSpace(description)
	if subject == "" || description == "" {
		return nil, fmt.Errorf("%w: subject and description are required", ErrValidation)
	}

	complaint := models.Complaint{
		UserID:      userID,
		Subject:     subject,
		Description: description,
		Status:      models.ComplaintStatusPending,
	}
	if err := s.db.Create(&complaint).Error; err != nil {
		return nil, err
	}

	return &complaint, nil
}

// ListForUser returns the user's own complaints, newest first.
func (s *ComplaintService) ListForUser(userID uint) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

// AdminList returns all complaints with the filing user preloaded, newest
// first.
func (s *ComplaintService) AdminList() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.db.
		Preload("User").
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

// AdminUpdate sets a complaint's status and, when response is non-empty,
// records the admin's response to the filer.
func (s *ComplaintService) AdminUpdate(id uint, status models.ComplaintStatus, response string) (*models.Complaint, error) {
	if !models.IsValidComplaintStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var complaint models.Complaint
	if err := s.db.First(&complaint, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if strings.TrimSpace(response) != "" {
		updates["admin_response"] = response
	}
	if err := s.db.Model(&complaint).Updates(updates).Error; err != nil {
		return nil, err
	}

	complaint.Status = status
	if strings.TrimSpace(response) != "" {
		complaint.AdminResponse = response
	}
	return &complaint, nil
}
