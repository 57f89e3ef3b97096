package websocket

import (
	"log"
	"net/http"
	"strings"

	"devstep/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressionWebSocketHandler upgrades an authenticated connection and keeps
// it registered with the hub until the peer disconnects
func ProgressionWebSocketHandler(c *gin.Context) {
	var tokenString string
	if authz := c.GetHeader("Authorization"); authz != "" {
		parts := strings.Split(authz, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	// Browsers cannot set headers on websocket upgrades, allow a query param
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
		return
	}

	claims, err := utils.ParseJWTToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &ProgressionClient{Conn: conn, UserID: claims.UserID}
	RegisterProgressionClient(client)

	// Drain reads; the hub only pushes
	go func() {
		defer UnregisterProgressionClient(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
