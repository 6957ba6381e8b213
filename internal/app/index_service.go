package app

import (
	"context"
	"strings"
	"sync"

	"shopassist/internal/ai"
	"shopassist/internal/model"
	"shopassist/internal/rag"
)

type IndexService struct {
	itemRepo CatalogStore
	factRepo FactStore
	cache    CatalogCache
	embedder EmbeddingGateway

	locks storeLocks
}

func NewIndexService(itemRepo CatalogStore, factRepo FactStore, cache CatalogCache, embedder EmbeddingGateway) *IndexService {
	return &IndexService{
		itemRepo: itemRepo,
		factRepo: factRepo,
		cache:    cache,
		embedder: embedder,
	}
}

type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type IndexInput struct {
	Store    *model.Store
	Products []rag.ProductInput
	Pages    []rag.PageInput
	Contact  ContactInfo
}

type IndexResult struct {
	Products      int `json:"products"`
	Pages         int `json:"pages"`
	EmbeddedItems int `json:"embedded_items"`
}

// Index rebuilds a store's retrievable catalog: normalizes products and
// pages into embeddable units, embeds them in sequential batches, replaces
// the store's items atomically and refreshes contact facts. Runs for the
// same store are serialized; different stores index independently.
func (s *IndexService) Index(ctx context.Context, input IndexInput) (*IndexResult, error) {
	if input.Store == nil {
		return nil, ErrInvalidInput
	}
	if len(input.Products) == 0 && len(input.Pages) == 0 && contactEmpty(input.Contact) {
		return nil, ErrInvalidInput
	}

	mu := s.locks.forStore(input.Store.ID)
	mu.Lock()
	defer mu.Unlock()

	units := rag.BuildUnits(input.Products, input.Pages)
	for i := range units {
		units[i].StoreID = input.Store.ID
	}

	if err := s.embedUnits(ctx, units); err != nil {
		return nil, err
	}

	if len(input.Products) > 0 || len(input.Pages) > 0 {
		if s.cache != nil {
			_ = s.cache.MarkDirty(ctx, input.Store.ID)
		}
		if err := s.itemRepo.ReplaceForStore(input.Store.ID, units); err != nil {
			return nil, err
		}
		if s.cache != nil {
			_ = s.cache.DeleteItems(ctx, input.Store.ID)
		}
	}

	if err := s.storeFacts(input); err != nil {
		return nil, err
	}

	return &IndexResult{
		Products:      len(input.Products),
		Pages:         len(input.Pages),
		EmbeddedItems: len(units),
	}, nil
}

// embedUnits fills in embeddings batch by batch. Batches are issued
// sequentially to respect the gateway's rate limits; order within and across
// batches maps vectors back to units by position.
func (s *IndexService) embedUnits(ctx context.Context, units []model.CatalogItem) error {
	for start := 0; start < len(units); start += ai.MaxEmbeddingBatch {
		end := start + ai.MaxEmbeddingBatch
		if end > len(units) {
			end = len(units)
		}
		texts := make([]string, 0, end-start)
		for _, u := range units[start:end] {
			texts = append(texts, u.Text)
		}
		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return err
		}
		for i, vec := range vectors {
			units[start+i].SetEmbedding(vec)
		}
	}
	return nil
}

// storeFacts extracts contact facts from page text and merges them with
// operator-supplied ones. A manual fact of a type evicts derived facts of
// that type and blocks new derived facts of that type from being stored.
func (s *IndexService) storeFacts(input IndexInput) error {
	manual := manualFacts(input.Contact)

	manualTypes := map[string]bool{}
	for _, f := range manual {
		manualTypes[f.FactType] = true
	}
	existing, err := s.factRepo.ListByStoreID(input.Store.ID)
	if err != nil {
		return err
	}
	for _, f := range existing {
		if f.Source == model.FactSourceManual {
			manualTypes[f.FactType] = true
		}
	}

	for _, f := range manual {
		if err := s.factRepo.DeleteDerivedByType(input.Store.ID, f.FactType); err != nil {
			return err
		}
	}

	facts := make([]model.StoreFact, 0, len(manual))
	for _, f := range manual {
		f.StoreID = input.Store.ID
		facts = append(facts, f)
	}

	seen := map[string]bool{}
	for _, page := range input.Pages {
		for _, derived := range rag.ExtractFacts(page.Content) {
			if manualTypes[derived.Type] {
				continue
			}
			key := derived.Type + "|" + derived.Value
			if seen[key] {
				continue
			}
			seen[key] = true
			facts = append(facts, model.StoreFact{
				StoreID:  input.Store.ID,
				FactType: derived.Type,
				Value:    derived.Value,
			})
		}
	}

	return s.factRepo.UpsertBatch(facts)
}

func manualFacts(contact ContactInfo) []model.StoreFact {
	var facts []model.StoreFact
	for _, entry := range []struct {
		factType string
		value    string
	}{
		{model.FactTypeEmail, contact.Email},
		{model.FactTypePhone, contact.Phone},
		{model.FactTypeAddress, contact.Address},
	} {
		if v := strings.TrimSpace(entry.value); v != "" {
			facts = append(facts, model.StoreFact{
				FactType: entry.factType,
				Value:    v,
				Source:   model.FactSourceManual,
			})
		}
	}
	return facts
}

func contactEmpty(c ContactInfo) bool {
	return strings.TrimSpace(c.Email) == "" &&
		strings.TrimSpace(c.Phone) == "" &&
		strings.TrimSpace(c.Address) == ""
}

// storeLocks serializes indexing per store without coordinating across
// stores.
type storeLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func (l *storeLocks) forStore(storeID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[uint]*sync.Mutex)
	}
	if _, ok := l.locks[storeID]; !ok {
		l.locks[storeID] = &sync.Mutex{}
	}
	return l.locks[storeID]
}
