package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-services-server/models"
	"local-services-server/services"
)

// RegisterPaymentRoutes registers the simulated payment endpoint on an
// authenticated group
func RegisterPaymentRoutes(rg *gin.RouterGroup, svc *services.PaymentService) {
	rg.POST("/payment/process", processPayment(svc))
}

type paymentProcessRequest struct {
	BookingID     uint    `json:"booking_id" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=cash jazzcash easypaisa"`
	Amount        float64 `json:"amount"`
}

// processPayment settles payment for a booking
func processPayment(svc *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentProcessRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment data", "message": err.Error()})
			return
		}

		result, err := svc.Process(c.Request.Context(), req.BookingID, models.PaymentMethod(req.PaymentMethod), req.Amount, c.GetUint("user_id"))
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Payment processed successfully",
			"data":    result,
		})
	}
}
