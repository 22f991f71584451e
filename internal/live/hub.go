package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

// Hub maneja las conexiones WebSocket del dashboard de administración.
// Cada ingreso/egreso registrado se difunde a los dashboards conectados para
// que la tabla del día se actualice sin recargar.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex
}

var defaultHub *Hub

func init() {
	defaultHub = &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		clients:    make(map[*websocket.Conn]bool),
	}
	go defaultHub.run()
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("🔌 Dashboard conectado. Total clientes: %d", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			total := len(h.clients)
			h.mu.Unlock()
			log.Printf("🔌 Dashboard desconectado. Total clientes: %d", total)

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					log.Printf("Error enviando evento al dashboard: %v", err)
					client.Close()
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// HandleConn attaches a dashboard connection to the hub and blocks until the
// client hangs up.
func HandleConn(conn *websocket.Conn) {
	defaultHub.register <- conn
	defer func() {
		defaultHub.unregister <- conn
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// AttendanceEvent is the payload pushed to dashboards on every recorded
// check-in/check-out.
type AttendanceEvent struct {
	Type       string    `json:"type"` // siempre "attendance"
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Shift      string    `json:"shift"`
	Event      string    `json:"event"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Broadcast publishes an attendance event to every connected dashboard.
// Sin clientes conectados no hace nada; con el canal lleno descarta el
// evento antes de bloquear al recorder.
func Broadcast(ev AttendanceEvent) {
	defaultHub.mu.RLock()
	empty := len(defaultHub.clients) == 0
	defaultHub.mu.RUnlock()
	if empty {
		return
	}

	ev.Type = "attendance"
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("Error al serializar evento de asistencia: %v", err)
		return
	}

	select {
	case defaultHub.broadcast <- data:
	default:
	}
}
