package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"local-services-server/services"
)

// handleServiceError maps service-layer sentinel errors to HTTP responses.
// Anything unrecognized is logged and surfaced as a generic failure.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "message": err.Error()})
	case errors.Is(err, services.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized", "message": err.Error()})
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
	case errors.Is(err, services.ErrAlreadyPaid), errors.Is(err, services.ErrBookingNotCompleted):
		// The external contract pins these precondition failures to 400
		c.JSON(http.StatusBadRequest, gin.H{"error": "Precondition failed", "message": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrStatusConflict), errors.Is(err, services.ErrReviewExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict", "message": err.Error()})
	default:
		log.Printf("❌ Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error", "message": "Something went wrong"})
	}
}
