package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shadowgram/internal/service"
)

// MessageHandler mantiene dependencias para endpoints de mensajes.
type MessageHandler struct {
	logger      *zap.Logger
	messageServ *service.MessageService
}

// NewMessageHandler crea una instancia de MessageHandler.
func NewMessageHandler(logger *zap.Logger, messageServ *service.MessageService) *MessageHandler {
	return &MessageHandler{
		logger:      logger,
		messageServ: messageServ,
	}
}

// ListMessages maneja GET /messages. Con sender y receiver presentes
// filtra por el par no ordenado; con cualquiera ausente devuelve todo.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	sender := c.Query("sender")
	receiver := c.Query("receiver")

	messages, err := h.messageServ.List(c.Request.Context(), sender, receiver)
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// CreateMessage maneja POST /messages. Ningún campo es obligatorio: el
// registro se persiste tal cual llega, contenido vacío incluido.
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	var req struct {
		Sender   string `json:"sender"`
		Receiver string `json:"receiver"`
		Content  string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	message, err := h.messageServ.Append(c.Request.Context(), req.Sender, req.Receiver, req.Content)
	if err != nil {
		h.logger.Error("create message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create message"})
		return
	}

	c.JSON(http.StatusCreated, message)
}
