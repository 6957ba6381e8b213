package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"shopassist/internal/app"
	"shopassist/internal/model"
	"shopassist/internal/transport/http/response"
)

const ContextStoreKey = "store"

// StoreAuth resolves the X-Store-Key header to a store and aborts with 401
// when the key is missing or wrong.
func StoreAuth(stores *app.StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader("X-Store-Key"))
		if key == "" {
			response.Error(c, 401, "missing X-Store-Key header")
			c.Abort()
			return
		}

		store, err := stores.AuthenticateByKey(key)
		if err != nil {
			if errors.Is(err, app.ErrInvalidAPIKey) {
				response.Error(c, 401, "invalid api key")
			} else {
				response.Error(c, 500, "authentication failed")
			}
			c.Abort()
			return
		}

		c.Set(ContextStoreKey, store)
		c.Next()
	}
}

func StoreFromContext(c *gin.Context) (*model.Store, bool) {
	storeAny, exists := c.Get(ContextStoreKey)
	if !exists {
		return nil, false
	}
	store, ok := storeAny.(*model.Store)
	return store, ok
}
