package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopassist/internal/app"
	"shopassist/internal/rag"
	"shopassist/internal/transport/http/response"
)

type StoreHandler struct {
	storeService *app.StoreService
}

func NewStoreHandler(storeService *app.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

type RegisterStoreRequest struct {
	Name        string          `json:"name" binding:"required,max=128"`
	Language    string          `json:"language"`
	Personality rag.Personality `json:"personality"`
}

type RegisterStoreResponse struct {
	OK       bool   `json:"ok"`
	StoreID  string `json:"store_id"`
	APIKey   string `json:"api_key"`
	Language string `json:"language"`
}

func (h *StoreHandler) Register(c *gin.Context) {
	var req RegisterStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.storeService.Register(app.RegisterStoreInput{
		Name:        req.Name,
		Language:    req.Language,
		Personality: req.Personality,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "store name is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "register store failed")
		return
	}

	response.OK(c, RegisterStoreResponse{
		OK:       true,
		StoreID:  result.Store.PublicID,
		APIKey:   result.APIKey,
		Language: result.Store.Language,
	})
}
