package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"local-services-server/middleware"
	"local-services-server/models"
	"local-services-server/services"
)

// RegisterBookingRoutes registers booking lifecycle routes on an
// authenticated group. Creation is restricted to customers; everything else
// is open to any party of the booking.
func RegisterBookingRoutes(rg *gin.RouterGroup, svc *services.BookingService) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", middleware.CustomerMiddleware(), createBooking(svc))
		bookings.GET("/my", getMyBookings(svc))
		bookings.GET("/:id", getBooking(svc))
		bookings.PATCH("/:id/status", updateBookingStatus(svc))
	}
}

type bookingCreateRequest struct {
	WorkerID      *uint     `json:"worker_id"`
	Service       string    `json:"service" binding:"required"`
	ServiceDate   time.Time `json:"service_date" binding:"required"`
	Address       string    `json:"address" binding:"required"`
	Phone         string    `json:"phone" binding:"required"`
	Notes         string    `json:"notes"`
	Price         *float64  `json:"price"`
	PaymentMethod string    `json:"payment_method" binding:"omitempty,oneof=cash jazzcash easypaisa"`
}

type statusUpdateRequest struct {
	Status           string   `json:"status" binding:"required"`
	EstimatedArrival string   `json:"estimated_arrival"`
	Price            *float64 `json:"price"`
}

// createBooking creates a new booking for the authenticated customer
func createBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bookingCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking data", "message": err.Error()})
			return
		}

		customerID := c.GetUint("user_id")

		booking, err := svc.Create(customerID, services.BookingCreateInput{
			WorkerID:      req.WorkerID,
			Service:       req.Service,
			ServiceDate:   req.ServiceDate,
			Address:       req.Address,
			Phone:         req.Phone,
			Notes:         req.Notes,
			Price:         req.Price,
			PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		})
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusCreated, booking)
	}
}

// getMyBookings lists the caller's bookings, newest first
func getMyBookings(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := models.UserRole(c.GetString("user_role"))

		bookings, err := svc.ListForUser(userID, role)
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}

// getBooking returns a single booking the caller is a party to
func getBooking(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		booking, err := svc.Get(bookingID, c.GetUint("user_id"))
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, booking)
	}
}

// updateBookingStatus performs a party-driven status transition
func updateBookingStatus(svc *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req statusUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status data", "message": err.Error()})
			return
		}

		booking, err := svc.UpdateStatus(bookingID, c.GetUint("user_id"), services.StatusUpdateInput{
			Status:           models.BookingStatus(req.Status),
			EstimatedArrival: req.EstimatedArrival,
			Price:            req.Price,
		})
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, booking)
	}
}

// parseIDParam parses a numeric path parameter, responding 400 on garbage
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "message": "The " + name + " parameter must be a number"})
		return 0, false
	}
	return uint(id), true
}
