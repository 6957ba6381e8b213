package http

import (
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"

	"shopassist/internal/ai"
	appsvc "shopassist/internal/app"
	"shopassist/internal/bootstrap"
	"shopassist/internal/cache"
	"shopassist/internal/platform/rabbitmq"
	"shopassist/internal/rag"
	"shopassist/internal/repository"
	"shopassist/internal/transport/http/handler"
	"shopassist/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	storeRepo := repository.NewStoreRepository(app.MySQL)
	itemRepo := repository.NewCatalogItemRepository(app.MySQL)
	factRepo := repository.NewFactRepository(app.MySQL)

	catalogCache := cache.NewCatalogCache(
		app.Redis,
		time.Duration(app.Config.Redis.CatalogTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.CatalogDirtyTTLSeconds)*time.Second,
	)

	gateway := ai.NewGateway(
		ai.EmbeddingConfig{
			BaseURL: app.Config.LLM.BaseURL,
			APIKey:  app.Config.LLM.APIKey,
			Model:   app.Config.LLM.EmbeddingModel,
		},
		ai.ChatConfig{
			BaseURL:     app.Config.LLM.BaseURL,
			APIKey:      app.Config.LLM.APIKey,
			Model:       app.Config.LLM.Model,
			Temperature: app.Config.LLM.Temperature,
			MaxTokens:   app.Config.LLM.MaxTokens,
		},
	)

	publisher := rabbitmq.NewChatLogPublisher(app.MQConn, app.Config.RabbitMQ.ChatLogQueueName)
	greeter := rag.NewGreeter(rand.New(rand.NewSource(time.Now().UnixNano())))

	storeService := appsvc.NewStoreService(storeRepo)
	indexService := appsvc.NewIndexService(itemRepo, factRepo, catalogCache, gateway)
	chatService := appsvc.NewChatService(
		itemRepo,
		factRepo,
		catalogCache,
		gateway,
		gateway,
		publisher,
		greeter,
		app.Config.LLM.MaxHistory,
	)

	storeHandler := handler.NewStoreHandler(storeService)
	indexHandler := handler.NewIndexHandler(indexService)
	chatHandler := handler.NewChatHandler(chatService)

	v1 := router.Group("/api/v1")
	v1.POST("/stores", storeHandler.Register)

	authed := v1.Group("")
	authed.Use(middleware.StoreAuth(storeService))
	authed.POST("/index", indexHandler.Index)
	authed.POST("/chat", chatHandler.Chat)
	authed.POST("/chat/stream", chatHandler.ChatStream)

	return router
}
