package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/swiftparcel/swiftparcel-backend/internal/services"
)

// WebSocketHandler subscribes a client to the parcel status feed
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		services.ServeWS(hub, c.Writer, c.Request)
	}
}
