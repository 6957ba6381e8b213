package app

import (
	"context"
	"errors"

	"shopassist/internal/ai"
	"shopassist/internal/model"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrMessageEmpty  = errors.New("message is empty")
	ErrStoreNotFound = errors.New("store not found")
	ErrNoCatalog     = errors.New("no catalog indexed for store")
	ErrInvalidAPIKey = errors.New("invalid api key")
)

// Service dependencies are consumed through small interfaces so tests can
// substitute fakes for the database, cache, broker and upstream gateways.

type StoreDirectory interface {
	Create(store *model.Store) error
	GetByPublicID(publicID string) (*model.Store, error)
	GetByAPIKeyID(keyID string) (*model.Store, error)
}

type CatalogStore interface {
	ReplaceForStore(storeID uint, items []model.CatalogItem) error
	ListByStoreID(storeID uint) ([]model.CatalogItem, error)
}

type FactStore interface {
	UpsertBatch(facts []model.StoreFact) error
	ListByStoreID(storeID uint) ([]model.StoreFact, error)
	DeleteDerivedByType(storeID uint, factType string) error
}

type CatalogCache interface {
	GetItems(ctx context.Context, storeID uint) ([]model.CatalogItem, bool, error)
	SetItems(ctx context.Context, storeID uint, items []model.CatalogItem) error
	DeleteItems(ctx context.Context, storeID uint) error
	MarkDirty(ctx context.Context, storeID uint) error
	IsDirty(ctx context.Context, storeID uint) (bool, error)
}

type EmbeddingGateway interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type CompletionGateway interface {
	Complete(ctx context.Context, messages []ai.ChatMessage) (string, error)
	StreamComplete(ctx context.Context, messages []ai.ChatMessage, onChunk func(string) error) (string, error)
}

type ChatLogPublisher interface {
	Publish(ctx context.Context, entry model.ChatLog) error
}
