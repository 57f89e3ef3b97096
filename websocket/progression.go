package websocket

import (
	"log"
	"sync"

	"devstep/models"

	"github.com/gorilla/websocket"
)

// ProgressionClient represents a client connected for progression updates
type ProgressionClient struct {
	Conn    *websocket.Conn
	UserID  string
	writeMu sync.Mutex
}

// SafeWriteJSON serializes writes to the client's connection
func (pc *ProgressionClient) SafeWriteJSON(v interface{}) error {
	pc.writeMu.Lock()
	defer pc.writeMu.Unlock()
	return pc.Conn.WriteJSON(v)
}

var (
	progressionClients = make(map[*ProgressionClient]bool)
	progressionMutex   sync.RWMutex
)

// RegisterProgressionClient registers a client for progression updates
func RegisterProgressionClient(client *ProgressionClient) {
	progressionMutex.Lock()
	defer progressionMutex.Unlock()
	progressionClients[client] = true
	log.Printf("Progression client registered. Total clients: %d", len(progressionClients))
}

// UnregisterProgressionClient removes a client and closes its connection
func UnregisterProgressionClient(client *ProgressionClient) {
	progressionMutex.Lock()
	defer progressionMutex.Unlock()
	delete(progressionClients, client)
	client.Conn.Close()
	log.Printf("Progression client unregistered. Total clients: %d", len(progressionClients))
}

// BroadcastProgressionEvent pushes a level-up or badge event to all clients
func BroadcastProgressionEvent(event models.ProgressionEvent) {
	progressionMutex.RLock()
	defer progressionMutex.RUnlock()

	for client := range progressionClients {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting progression event to client: %v", err)
			go UnregisterProgressionClient(client)
		}
	}
}

// ProgressionClientCount returns the number of connected clients
func ProgressionClientCount() int {
	progressionMutex.RLock()
	defer progressionMutex.RUnlock()
	return len(progressionClients)
}
