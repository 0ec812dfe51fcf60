package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-services-server/services"
)

// RegisterMessageRoutes registers the per-booking message thread routes on an
// authenticated group
func RegisterMessageRoutes(rg *gin.RouterGroup, svc *services.MessageService) {
	rg.GET("/bookings/:id/messages", getBookingMessages(svc))
	rg.POST("/bookings/:id/messages", sendBookingMessage(svc))
}

type messageCreateRequest struct {
	Text string `json:"text" binding:"required"`
}

// getBookingMessages returns the full thread, oldest first
func getBookingMessages(svc *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		messages, err := svc.List(bookingID, c.GetUint("user_id"))
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}

// sendBookingMessage posts a message to the booking's thread
func sendBookingMessage(svc *services.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req messageCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message data", "message": err.Error()})
			return
		}

		message, err := svc.Send(bookingID, c.GetUint("user_id"), req.Text)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, message)
	}
}
