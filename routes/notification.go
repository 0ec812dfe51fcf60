package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"local-services-server/services"
)

// RegisterNotificationRoutes registers notification endpoints on an
// authenticated group. All operations are scoped to the requesting user.
func RegisterNotificationRoutes(rg *gin.RouterGroup, svc *services.NotificationService) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", listNotifications(svc))
		notifications.GET("/unread-count", unreadNotificationCount(svc))
		notifications.PATCH("/:id/read", markNotificationRead(svc))
		notifications.PATCH("/mark-all-read", markAllNotificationsRead(svc))
	}
}

func listNotifications(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.ListForUser(c.GetUint("user_id"))
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
	}
}

func unreadNotificationCount(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := svc.UnreadCount(c.GetUint("user_id"))
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"count": count}})
	}
}

func markNotificationRead(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		notification, err := svc.MarkRead(id, c.GetUint("user_id"))
		if err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": notification})
	}
}

func markAllNotificationsRead(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkAllRead(c.GetUint("user_id")); err != nil {
			handleServiceError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "All notifications marked as read"})
	}
}
