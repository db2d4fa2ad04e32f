package domain

import "time"

// Message es un registro inmutable de contenido enviado entre dos cuentas.
// Los tags JSON siguen el formato de wire original (_id, createdAt).
type Message struct {
	ID        string    `json:"_id"`
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// BelongsToPair indica si el mensaje pertenece al par no ordenado {a, b}.
func (m Message) BelongsToPair(a, b string) bool {
	return (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a)
}
