package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"local-services-server/services"
)

// RegisterReviewRoutes registers review submission and listing endpoints.
// Listing endpoints are public; submission requires authentication and is
// registered by the caller on an authenticated group.
func RegisterReviewRoutes(public, authed *gin.RouterGroup, svc *services.ReviewService) {
	public.GET("/reviews/worker/:workerId", listWorkerReviews(svc))
	public.GET("/reviews/recent", listRecentReviews(svc))
	authed.POST("/reviews", createReview(svc))
}

type reviewCreateRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

func createReview(svc *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reviewCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review data", "message": err.Error()})
			return
		}

		review, err := svc.Create(req.BookingID, c.GetUint("user_id"), req.Rating, req.Comment)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Review submitted successfully",
			"data":    review,
		})
	}
}

func listWorkerReviews(svc *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		workerID, ok := parseIDParam(c, "workerId")
		if !ok {
			return
		}

		reviews, err := svc.ListByWorker(workerID)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews})
	}
}

func listRecentReviews(svc *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
				return
			}
			limit = parsed
		}

		reviews, err := svc.ListRecent(limit)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": reviews})
	}
}
