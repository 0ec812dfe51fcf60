package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-services-server/services"
)

// RegisterComplaintRoutes registers complaint endpoints on an authenticated
// group. Any user can file a complaint and list their own.
func RegisterComplaintRoutes(rg *gin.RouterGroup, svc *services.ComplaintService) {
	complaints := rg.Group("/complaints")
	{
		complaints.POST("", createComplaint(svc))
		complaints.GET("/my", listMyComplaints(svc))
	}
}

type createComplaintRequest struct {
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func createComplaint(svc *services.ComplaintService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createComplaintRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "message": err.Error()})
			return
		}

		complaint, err := svc.Create(c.GetUint("user_id"), req.Subject, req.Description)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": complaint})
	}
}

func listMyComplaints(svc *services.ComplaintService) gin.HandlerFunc {
	return func(c *gin.Context) {
		complaints, err := svc.ListForUser(c.GetUint("user_id"))
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": complaints})
	}
}
