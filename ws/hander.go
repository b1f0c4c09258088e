package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/amravati-mc/e-library-backend/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dev only, restrict in production
	},
}

// HandleActiveUsers upgrades the connection, pushes the current
// active-session count immediately and joins the broadcast set. A client
// connecting between two ticks sees the next tick's value.
// GET /ws
func HandleActiveUsers(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		log.Println("WebSocket client connected")

		client := hub.Register(conn)

		data, err := json.Marshal(ActiveUsersMessage{
			Type:  "active_users",
			Count: services.CountActiveSessions(hub.DB),
		})
		if err == nil {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}
