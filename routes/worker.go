package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"local-services-server/database"
	"local-services-server/models"
)

// RegisterWorkerRoutes registers worker discovery and profile routes.
// Discovery is public; profile management requires authentication and is
// registered by the caller on an authenticated group.
func RegisterWorkerRoutes(public, authed *gin.RouterGroup) {
	public.GET("/workers", listWorkers)
	public.GET("/workers/:id", getWorkerProfile)

	authed.GET("/workers/profile/me", getMyWorkerProfile)
	authed.POST("/workers/profile", createWorkerProfile)
	authed.PUT("/workers/profile", updateWorkerProfile)
}

// listWorkers returns verified, available workers for the public directory
func listWorkers(c *gin.Context) {
	skill := c.Query("skill")
	city := c.Query("city")
	limit := 20

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	query := database.DB.
		Where("verification_status = ?", models.VerificationApproved).
		Where("is_available = ?", true)

	if skill != "" {
		query = query.Where("skill ILIKE ?", "%"+skill+"%")
	}
	if city != "" {
		query = query.Where("city ILIKE ?", "%"+city+"%")
	}

	var workers []models.WorkerProfile
	if err := query.Preload("User").Order("average_rating DESC").Limit(limit).Find(&workers).Error; err != nil {
		log.Printf("Error fetching workers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch workers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"workers": workers,
	})
}

func getWorkerProfile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var worker models.WorkerProfile
	if err := database.DB.Preload("User").First(&worker, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Worker not found",
			})
			return
		}
		log.Printf("Error fetching worker profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch worker profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"worker":  worker,
	})
}

func getMyWorkerProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var worker models.WorkerProfile
	if err := database.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Worker profile not found",
			})
			return
		}
		log.Printf("Error fetching worker profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch worker profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"worker":  worker,
	})
}

func createWorkerProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	if c.GetString("user_role") != string(models.RoleWorker) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Only workers can create a worker profile",
		})
		return
	}

	var req models.WorkerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	var existing models.WorkerProfile
	if err := database.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "Worker profile already exists",
		})
		return
	}

	worker := models.WorkerProfile{
		UserID:             userID,
		Skill:              req.Skill,
		City:               req.City,
		Bio:                req.Bio,
		Experience:         req.Experience,
		HourlyRate:         req.HourlyRate,
		VerificationStatus: models.VerificationPending,
		IsAvailable:        true,
	}

	if err := database.DB.Create(&worker).Error; err != nil {
		log.Printf("Error creating worker profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create worker profile",
		})
		return
	}

	log.Printf("✅ Worker profile created for user %d (%s, %s)", userID, worker.Skill, worker.City)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"worker":  worker,
	})
}

func updateWorkerProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.WorkerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	var worker models.WorkerProfile
	if err := database.DB.Where("user_id = ?", userID).First(&worker).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Worker profile not found",
		})
		return
	}

	updates := map[string]interface{}{
		"skill":       req.Skill,
		"city":        req.City,
		"bio":         req.Bio,
		"experience":  req.Experience,
		"hourly_rate": req.HourlyRate,
	}

	if err := database.DB.Model(&worker).Updates(updates).Error; err != nil {
		log.Printf("Error updating worker profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update worker profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"worker":  worker,
	})
}
