// internal/api/websocket.go
package api

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gajjar-Mohit/backend/internal/utils"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// CORS is open for the REST API, so the socket accepts every origin too.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketClient is one connection following one generation task.
type WebSocketClient struct {
	conn      *websocket.Conn
	taskID    string
	writeMu   sync.Mutex
	closed    int32 // 0=open, 1=closed
	createdAt time.Time
}

func newWebSocketClient(conn *websocket.Conn, taskID string) *WebSocketClient {
	return &WebSocketClient{conn: conn, taskID: taskID, createdAt: time.Now()}
}

// Close closes the connection once.
func (client *WebSocketClient) Close() {
	if atomic.CompareAndSwapInt32(&client.closed, 0, 1) {
		client.conn.Close()
	}
}

func (client *WebSocketClient) IsClosed() bool {
	return atomic.LoadInt32(&client.closed) == 1
}

// SendJSON writes one frame. Writes are serialized.
func (client *WebSocketClient) SendJSON(message interface{}) error {
	if client.IsClosed() {
		return websocket.ErrCloseSent
	}
	client.writeMu.Lock()
	defer client.writeMu.Unlock()

	_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return client.conn.WriteJSON(message)
}

// SendError writes an error frame.
func (client *WebSocketClient) SendError(errorMsg string) error {
	return client.SendJSON(map[string]interface{}{
		"type":      "error",
		"error":     errorMsg,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// closeNormal sends a close frame before closing the connection.
func (client *WebSocketClient) closeNormal() {
	if client.IsClosed() {
		return
	}
	client.writeMu.Lock()
	_ = client.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	client.writeMu.Unlock()
	client.Close()
}

// WebSocketManager tracks open connections so they can be reported and
// closed on shutdown.
type WebSocketManager struct {
	connections map[string]*WebSocketClient // taskID -> client
	mutex       sync.RWMutex
	logger      *utils.Logger
}

func NewWebSocketManager(logger *utils.Logger) *WebSocketManager {
	return &WebSocketManager{
		connections: make(map[string]*WebSocketClient),
		logger:      logger,
	}
}

func (manager *WebSocketManager) register(client *WebSocketClient) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	manager.connections[client.taskID] = client
	manager.logger.Debug("websocket client connected", utils.Fields{"task_id": client.taskID})
}

func (manager *WebSocketManager) unregister(client *WebSocketClient) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	if current, ok := manager.connections[client.taskID]; ok && current == client {
		delete(manager.connections, client.taskID)
	}
	client.Close()
	manager.logger.Debug("websocket client disconnected", utils.Fields{"task_id": client.taskID})
}

// Shutdown closes every open connection.
func (manager *WebSocketManager) Shutdown() {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	for _, client := range manager.connections {
		client.closeNormal()
	}
	manager.connections = make(map[string]*WebSocketClient)
}

// GetStatus reports the open connections.
func (manager *WebSocketManager) GetStatus() map[string]interface{} {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()

	tasks := make([]map[string]interface{}, 0, len(manager.connections))
	for _, client := range manager.connections {
		if client.IsClosed() {
			continue
		}
		tasks = append(tasks, map[string]interface{}{
			"task_id":      client.taskID,
			"connected_at": client.createdAt.Format(time.RFC3339),
		})
	}
	return map[string]interface{}{
		"total_connections": len(tasks),
		"tasks":             tasks,
	}
}
