package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopassist/internal/app"
	"shopassist/internal/rag"
	"shopassist/internal/transport/http/middleware"
	"shopassist/internal/transport/http/response"
)

type IndexHandler struct {
	indexService *app.IndexService
}

func NewIndexHandler(indexService *app.IndexService) *IndexHandler {
	return &IndexHandler{indexService: indexService}
}

type IndexRequest struct {
	StoreID     string             `json:"store_id"`
	Products    []rag.ProductInput `json:"products"`
	Pages       []rag.PageInput    `json:"pages"`
	ContactInfo app.ContactInfo    `json:"contact_info"`
}

type IndexResponse struct {
	OK       bool            `json:"ok"`
	Message  string          `json:"message"`
	Received app.IndexResult `json:"received"`
}

func (h *IndexHandler) Index(c *gin.Context) {
	store, ok := middleware.StoreFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing store context")
		return
	}

	var req IndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.StoreID) == "" {
		response.Error(c, http.StatusBadRequest, "store_id is required")
		return
	}
	if req.StoreID != store.PublicID {
		response.Error(c, http.StatusBadRequest, "store_id does not match api key")
		return
	}

	result, err := h.indexService.Index(c.Request.Context(), app.IndexInput{
		Store:    store,
		Products: req.Products,
		Pages:    req.Pages,
		Contact:  req.ContactInfo,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, "nothing to index: provide products, pages or contact_info")
			return
		}
		log.Printf("index store %s failed: %v", store.PublicID, err)
		response.Error(c, http.StatusInternalServerError, "indexing failed")
		return
	}

	response.OK(c, IndexResponse{
		OK:       true,
		Message:  "catalog indexed",
		Received: *result,
	})
}
