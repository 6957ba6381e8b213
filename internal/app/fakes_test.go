package app

import (
	"context"

	"shopassist/internal/ai"
	"shopassist/internal/model"
)

// Hand-written fakes for the service interfaces. They record calls so tests
// can assert on interaction order and payloads.

type fakeStoreDirectory struct {
	created  []*model.Store
	byKeyID  map[string]*model.Store
	byPubID  map[string]*model.Store
	createFn func(*model.Store) error
}

func newFakeStoreDirectory() *fakeStoreDirectory {
	return &fakeStoreDirectory{
		byKeyID: map[string]*model.Store{},
		byPubID: map[string]*model.Store{},
	}
}

func (f *fakeStoreDirectory) Create(store *model.Store) error {
	if f.createFn != nil {
		return f.createFn(store)
	}
	store.ID = uint(len(f.created) + 1)
	f.created = append(f.created, store)
	f.byKeyID[store.APIKeyID] = store
	f.byPubID[store.PublicID] = store
	return nil
}

func (f *fakeStoreDirectory) GetByPublicID(publicID string) (*model.Store, error) {
	return f.byPubID[publicID], nil
}

func (f *fakeStoreDirectory) GetByAPIKeyID(keyID string) (*model.Store, error) {
	return f.byKeyID[keyID], nil
}

type fakeCatalogStore struct {
	items      []model.CatalogItem
	listCalls  int
	listErr    error
	replaced   [][]model.CatalogItem
	replaceErr error
}

func (f *fakeCatalogStore) ReplaceForStore(storeID uint, items []model.CatalogItem) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = append(f.replaced, items)
	f.items = items
	return nil
}

func (f *fakeCatalogStore) ListByStoreID(storeID uint) ([]model.CatalogItem, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

type fakeFactStore struct {
	facts        []model.StoreFact
	upserts      [][]model.StoreFact
	deletedTypes []string
}

func (f *fakeFactStore) UpsertBatch(facts []model.StoreFact) error {
	f.upserts = append(f.upserts, facts)
	return nil
}

func (f *fakeFactStore) ListByStoreID(storeID uint) ([]model.StoreFact, error) {
	return f.facts, nil
}

func (f *fakeFactStore) DeleteDerivedByType(storeID uint, factType string) error {
	f.deletedTypes = append(f.deletedTypes, factType)
	return nil
}

type fakeCatalogCache struct {
	items map[uint][]model.CatalogItem
	dirty map[uint]bool

	setCalls    int
	deleteCalls int
	markCalls   int
}

func newFakeCatalogCache() *fakeCatalogCache {
	return &fakeCatalogCache{
		items: map[uint][]model.CatalogItem{},
		dirty: map[uint]bool{},
	}
}

func (f *fakeCatalogCache) GetItems(ctx context.Context, storeID uint) ([]model.CatalogItem, bool, error) {
	items, ok := f.items[storeID]
	return items, ok, nil
}

func (f *fakeCatalogCache) SetItems(ctx context.Context, storeID uint, items []model.CatalogItem) error {
	f.setCalls++
	f.items[storeID] = items
	return nil
}

func (f *fakeCatalogCache) DeleteItems(ctx context.Context, storeID uint) error {
	f.deleteCalls++
	delete(f.items, storeID)
	return nil
}

func (f *fakeCatalogCache) MarkDirty(ctx context.Context, storeID uint) error {
	f.markCalls++
	f.dirty[storeID] = true
	return nil
}

func (f *fakeCatalogCache) IsDirty(ctx context.Context, storeID uint) (bool, error) {
	return f.dirty[storeID], nil
}

// fakeEmbedder maps texts to vectors through vecFor so tests control
// similarity outcomes deterministically.
type fakeEmbedder struct {
	vecFor func(text string) []float32

	embedCalls int
	batches    [][]string
	err        error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.embedCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vec(text), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batches = append(f.batches, texts)
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vectors = append(vectors, f.vec(text))
	}
	return vectors, nil
}

func (f *fakeEmbedder) vec(text string) []float32 {
	if f.vecFor != nil {
		return f.vecFor(text)
	}
	return []float32{1, 0}
}

type fakeCompleter struct {
	reply  string
	chunks []string
	err    error

	messages []ai.ChatMessage
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []ai.ChatMessage) (string, error) {
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeCompleter) StreamComplete(ctx context.Context, messages []ai.ChatMessage, onChunk func(string) error) (string, error) {
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	var full string
	for _, chunk := range f.chunks {
		if err := onChunk(chunk); err != nil {
			return "", err
		}
		full += chunk
	}
	return full, nil
}

type fakePublisher struct {
	entries []model.ChatLog
	err     error
}

func (f *fakePublisher) Publish(ctx context.Context, entry model.ChatLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}
