package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"shadowgram/internal/realtime"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 120 * time.Second
	pingPeriod = 30 * time.Second
)

// WSHandler expone el canal en tiempo real por WebSocket. El servidor sólo
// emite eventos; lo único que acepta del cliente es conexión y desconexión.
type WSHandler struct {
	logger   *zap.Logger
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler crea una instancia de WSHandler.
func NewWSHandler(logger *zap.Logger, hub *realtime.Hub) *WSHandler {
	return &WSHandler{
		logger: logger,
		hub:    hub,
		upgrader: websocket.Upgrader{
			// Mismo criterio que el CORS abierto de los endpoints REST.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Serve maneja GET /ws.
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub := h.hub.Subscribe()
	h.logger.Info("subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

	go h.writePump(conn, sub)
	h.readLoop(conn, sub)
}

// readLoop descarta lo que envíe el cliente y detecta la desconexión.
func (h *WSHandler) readLoop(conn *websocket.Conn, sub *realtime.Subscriber) {
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
		h.logger.Info("subscriber disconnected", zap.String("remote", conn.RemoteAddr().String()))
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}
	}
}

// writePump serializa los eventos del hub hacia la conexión y mantiene el
// keepalive con pings periódicos.
func (h *WSHandler) writePump(conn *websocket.Conn, sub *realtime.Subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
