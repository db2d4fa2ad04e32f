package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shadowgram/internal/domain"
	"shadowgram/internal/repository"
)

// EventNewMessage es el nombre del evento emitido al crear un mensaje.
const EventNewMessage = "newMessage"

// Broadcaster publica eventos a los suscriptores en tiempo real conectados.
type Broadcaster interface {
	Publish(event string, data any)
}

// MessageService encapsula el listado y la creación de mensajes.
type MessageService struct {
	logger      *zap.Logger
	messages    repository.MessageRepository
	broadcaster Broadcaster
}

// NewMessageService crea el servicio; broadcaster puede ser nil.
func NewMessageService(logger *zap.Logger, messages repository.MessageRepository, broadcaster Broadcaster) *MessageService {
	return &MessageService{
		logger:      logger,
		messages:    messages,
		broadcaster: broadcaster,
	}
}

// List devuelve los mensajes del par no ordenado {sender, receiver} cuando
// ambos filtros están presentes; con cualquiera ausente devuelve la
// colección completa, siempre en orden de inserción.
func (s *MessageService) List(ctx context.Context, sender, receiver string) ([]domain.Message, error) {
	if s.messages == nil {
		return nil, errors.New("message service not configured")
	}
	if sender != "" && receiver != "" {
		return s.messages.ListByPair(ctx, sender, receiver)
	}
	return s.messages.ListAll(ctx)
}

// Append crea y persiste un mensaje y lo difunde a los suscriptores.
// No valida que sender/receiver existan ni que content sea no vacío: el
// registro se acepta tal cual llega.
func (s *MessageService) Append(ctx context.Context, sender, receiver, content string) (domain.Message, error) {
	if s.messages == nil {
		return domain.Message{}, errors.New("message service not configured")
	}

	message := domain.Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Receiver:  receiver,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Append(ctx, message); err != nil {
		return domain.Message{}, err
	}

	if s.broadcaster != nil {
		s.broadcaster.Publish(EventNewMessage, message)
	}
	s.logger.Info("message appended",
		zap.String("id", message.ID),
		zap.String("sender", message.Sender),
		zap.String("receiver", message.Receiver),
	)
	return message, nil
}
