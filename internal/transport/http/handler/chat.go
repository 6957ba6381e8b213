package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopassist/internal/ai"
	"shopassist/internal/app"
	"shopassist/internal/model"
	"shopassist/internal/rag"
	"shopassist/internal/transport/http/middleware"
	"shopassist/internal/transport/http/response"
)

type ChatHandler struct {
	chatService *app.ChatService
}

func NewChatHandler(chatService *app.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type ChatRequest struct {
	StoreID  string           `json:"store_id"`
	Message  string           `json:"message"`
	History  []ai.ChatMessage `json:"history"`
	Language string           `json:"language"`
}

type ChatResponse struct {
	OK           bool              `json:"ok"`
	StoreID      string            `json:"store_id"`
	Answer       string            `json:"answer"`
	ProductCards []rag.ProductCard `json:"product_cards"`
	Debug        app.ChatDebug     `json:"debug"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	store, req, ok := h.bindChatRequest(c)
	if !ok {
		return
	}

	result, err := h.chatService.Answer(c.Request.Context(), app.ChatInput{
		Store:    store,
		Message:  req.Message,
		History:  req.History,
		Language: req.Language,
	})
	if err != nil {
		h.writeChatError(c, store.PublicID, err)
		return
	}

	response.OK(c, ChatResponse{
		OK:           true,
		StoreID:      store.PublicID,
		Answer:       result.Answer,
		ProductCards: result.Cards,
		Debug:        result.Debug,
	})
}

// ChatStream streams answer chunks over SSE, then emits a final done event
// carrying the complete response including product cards.
func (h *ChatHandler) ChatStream(c *gin.Context) {
	store, req, ok := h.bindChatRequest(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "stream not supported")
		return
	}

	result, err := h.chatService.StreamAnswer(c.Request.Context(), app.ChatInput{
		Store:    store,
		Message:  req.Message,
		History:  req.History,
		Language: req.Language,
	}, func(chunk string) error {
		if _, writeErr := c.Writer.Write([]byte("data: " + sanitizeSSE(chunk) + "\n\n")); writeErr != nil {
			return writeErr
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		log.Printf("stream chat for store %s failed: %v", store.PublicID, err)
		if _, writeErr := c.Writer.Write([]byte("event: error\ndata: chat failed\n\n")); writeErr == nil {
			flusher.Flush()
		}
		return
	}

	payload, err := json.Marshal(ChatResponse{
		OK:           true,
		StoreID:      store.PublicID,
		Answer:       result.Answer,
		ProductCards: result.Cards,
		Debug:        result.Debug,
	})
	if err != nil {
		return
	}
	if _, writeErr := c.Writer.Write([]byte("event: done\ndata: " + sanitizeSSE(string(payload)) + "\n\n")); writeErr == nil {
		flusher.Flush()
	}
}

func (h *ChatHandler) bindChatRequest(c *gin.Context) (*model.Store, *ChatRequest, bool) {
	store, ok := middleware.StoreFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing store context")
		return nil, nil, false
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return nil, nil, false
	}
	if strings.TrimSpace(req.StoreID) == "" {
		response.Error(c, http.StatusBadRequest, "store_id is required")
		return nil, nil, false
	}
	if req.StoreID != store.PublicID {
		response.Error(c, http.StatusBadRequest, "store_id does not match api key")
		return nil, nil, false
	}
	if strings.TrimSpace(req.Message) == "" {
		response.Error(c, http.StatusBadRequest, "message is required")
		return nil, nil, false
	}
	return store, &req, true
}

func (h *ChatHandler) writeChatError(c *gin.Context, storeID string, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrMessageEmpty):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNoCatalog):
		response.Error(c, http.StatusBadRequest, "no catalog indexed for this store, index first")
	default:
		log.Printf("chat for store %s failed: %v", storeID, err)
		response.Error(c, http.StatusInternalServerError, "chat failed")
	}
}

func sanitizeSSE(input string) string {
	replaced := strings.ReplaceAll(input, "\r\n", "\\n")
	replaced = strings.ReplaceAll(replaced, "\n", "\\n")
	return replaced
}
