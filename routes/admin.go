package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/models"
	"local-services-server/services"
)

// RegisterAdminRoutes registers admin oversight routes. The caller is expected
// to have applied AdminMiddleware to the group.
func RegisterAdminRoutes(rg *gin.RouterGroup, bookings *services.BookingService, complaints *services.ComplaintService) {
	admin := rg.Group("/admin")
	{
		admin.GET("/bookings", adminListBookings(bookings))
		admin.PATCH("/bookings/:id", adminOverrideBooking(bookings))
		admin.DELETE("/bookings/:id", adminDeleteBooking(bookings))
		admin.GET("/workers/pending", adminListPendingWorkers)
		admin.PATCH("/workers/verify", adminVerifyWorker)
		admin.GET("/complaints", adminListComplaints(complaints))
		admin.PATCH("/complaints/:id/status", adminUpdateComplaint(complaints))
	}
}

func adminListBookings(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svc.AdminList()
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
	}
}

type adminStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// adminOverrideBooking sets any valid status directly, bypassing the
// transition graph and party checks. No notifications are emitted.
func adminOverrideBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req adminStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "message": err.Error()})
			return
		}

		booking, err := svc.AdminSetStatus(id, models.BookingStatus(req.Status))
		if err != nil {
			handleServiceError(c, err)
			return
		}

		log.Printf("⚠️ Admin override: booking %d set to %s", booking.ID, booking.Status)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": booking})
	}
}

func adminDeleteBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if err := svc.AdminDelete(id); err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking deleted"})
	}
}

func adminListComplaints(svc *services.ComplaintService) gin.HandlerFunc {
	return func(c *gin.Context) {
		complaints, err := svc.AdminList()
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": complaints})
	}
}

type updateComplaintRequest struct {
	Status        string `json:"status" binding:"required,oneof=pending resolved dismissed"`
	AdminResponse string `json:"admin_response"`
}

func adminUpdateComplaint(svc *services.ComplaintService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req updateComplaintRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "message": err.Error()})
			return
		}

		complaint, err := svc.AdminUpdate(id, models.ComplaintStatus(req.Status), req.AdminResponse)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": complaint})
	}
}

func adminListPendingWorkers(c *gin.Context) {
	var workers []models.WorkerProfile
	if err := database.DB.
		Where("verification_status = ?", models.VerificationPending).
		Preload("User").
		Order("created_at ASC").
		Find(&workers).Error; err != nil {
		log.Printf("Error fetching pending workers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch pending workers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": workers})
}

// verifyWorkerRequest identifies the profile by exactly one id. ProfileID is
// the worker_profiles primary key; UserID is the owning user's id. Supplying
// both or neither is rejected rather than guessed at.
type verifyWorkerRequest struct {
	ProfileID *uint  `json:"profile_id"`
	UserID    *uint  `json:"user_id"`
	Status    string `json:"status" binding:"required,oneof=approved rejected"`
}

func adminVerifyWorker(c *gin.Context) {
	var req verifyWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "message": err.Error()})
		return
	}

	if (req.ProfileID == nil) == (req.UserID == nil) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Ambiguous identifier",
			"message": "Provide exactly one of profile_id or user_id",
		})
		return
	}

	query := database.DB
	if req.ProfileID != nil {
		query = query.Where("id = ?", *req.ProfileID)
	} else {
		query = query.Where("user_id = ?", *req.UserID)
	}

	var worker models.WorkerProfile
	if err := query.First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "message": "Worker profile not found"})
			return
		}
		log.Printf("Error fetching worker profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error", "message": "Failed to fetch worker profile"})
		return
	}

	status := models.VerificationStatus(req.Status)
	if err := database.DB.Model(&worker).Update("verification_status", status).Error; err != nil {
		log.Printf("Error updating verification status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error", "message": "Failed to update verification status"})
		return
	}
	worker.VerificationStatus = status

	log.Printf("✅ Worker profile %d (user %d) verification set to %s", worker.ID, worker.UserID, status)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": worker})
}
