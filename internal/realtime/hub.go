// Package realtime implementa el fan-out de eventos hacia los clientes
// conectados. Es broadcast sin filtrado en el servidor: cada suscriptor
// decide localmente qué conversación le interesa. No hay replay ni
// garantías de entrega para suscriptores desconectados.
package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// Event es el sobre serializado hacia los clientes:
// {"event":"newMessage","data":{...}}.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Subscriber recibe los eventos difundidos mientras permanece suscrito.
type Subscriber struct {
	events chan Event
}

// Events expone el canal de lectura del suscriptor. El canal se cierra al
// cancelar la suscripción.
func (s *Subscriber) Events() <-chan Event {
	return s.events
}

// Hub mantiene el conjunto de suscriptores y difunde cada evento a todos.
// Seguro para uso concurrente.
type Hub struct {
	logger *zap.Logger
	buffer int

	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
}

const defaultBuffer = 16

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:      logger,
		buffer:      defaultBuffer,
		subscribers: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registra un suscriptor nuevo en el conjunto de difusión.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{events: make(chan Event, h.buffer)}
	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe retira al suscriptor y cierra su canal. Idempotente.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub]; !ok {
		return
	}
	delete(h.subscribers, sub)
	close(sub.events)
}

// Publish difunde el evento a todos los suscriptores actuales. El envío es
// best-effort: un suscriptor con el buffer lleno pierde el evento en vez de
// bloquear al publicador.
func (h *Hub) Publish(event string, data any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers {
		select {
		case sub.events <- Event{Event: event, Data: data}:
		default:
			h.logger.Debug("subscriber buffer full, event dropped", zap.String("event", event))
		}
	}
}

// Len devuelve la cantidad de suscriptores conectados.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
