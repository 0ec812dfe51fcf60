package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"local-services-server/websocket"
)

// RegisterRealtimeRoutes registers the WebSocket attach endpoint. The caller
// applies WebSocketAuthMiddleware so the token may arrive as a query param.
func RegisterRealtimeRoutes(rg *gin.RouterGroup, hub *websocket.Hub) {
	rg.GET("/ws", func(c *gin.Context) {
		userID := c.GetUint("user_id")
		role := c.GetString("user_role")

		log.Printf("🔌 WebSocket attach: user %d (%s)", userID, role)
		websocket.ServeWebSocket(hub, c.Writer, c.Request, userID, role)
	})
}
