package app

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shopassist/internal/model"
	"shopassist/internal/rag"
)

const apiKeyPrefix = "sk"

type StoreService struct {
	storeRepo StoreDirectory
}

func NewStoreService(storeRepo StoreDirectory) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

type RegisterStoreInput struct {
	Name        string
	Language    string
	Personality rag.Personality
}

type RegisterStoreResult struct {
	Store  *model.Store `json:"store"`
	APIKey string       `json:"api_key"`
}

// Register creates a store and mints its API key. The plaintext key is
// returned exactly once; only a bcrypt hash of the secret is persisted.
func (s *StoreService) Register(input RegisterStoreInput) (*RegisterStoreResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	personality := rag.ResolvePersonality(input.Personality)
	keyID := uuid.NewString()
	secret := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash api key failed: %w", err)
	}

	store := &model.Store{
		PublicID:            uuid.NewString(),
		Name:                name,
		Language:            string(rag.ParseLanguage(input.Language)),
		Tone:                personality.Tone,
		GreetingStyle:       personality.GreetingStyle,
		ExpertiseLevel:      personality.ExpertiseLevel,
		BrandVoice:          personality.BrandVoice,
		SpecialInstructions: personality.SpecialInstructions,
		APIKeyID:            keyID,
		APIKeyHash:          string(hash),
	}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}

	return &RegisterStoreResult{
		Store:  store,
		APIKey: apiKeyPrefix + "_" + keyID + "_" + secret,
	}, nil
}

// AuthenticateByKey resolves the store behind a presented API key. The key
// embeds its own ID so only one bcrypt comparison is needed.
func (s *StoreService) AuthenticateByKey(key string) (*model.Store, error) {
	parts := strings.Split(strings.TrimSpace(key), "_")
	if len(parts) != 3 || parts[0] != apiKeyPrefix || parts[1] == "" || parts[2] == "" {
		return nil, ErrInvalidAPIKey
	}

	store, err := s.storeRepo.GetByAPIKeyID(parts[1])
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrInvalidAPIKey
	}
	if err := bcrypt.CompareHashAndPassword([]byte(store.APIKeyHash), []byte(parts[2])); err != nil {
		return nil, ErrInvalidAPIKey
	}
	return store, nil
}

// GetByPublicID looks up a store by its public identifier.
func (s *StoreService) GetByPublicID(publicID string) (*model.Store, error) {
	if strings.TrimSpace(publicID) == "" {
		return nil, ErrInvalidInput
	}
	store, err := s.storeRepo.GetByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}

// PersonalityOf reconstructs a store's resolved personality configuration.
func PersonalityOf(store *model.Store) rag.Personality {
	return rag.ResolvePersonality(rag.Personality{
		Tone:                store.Tone,
		GreetingStyle:       store.GreetingStyle,
		ExpertiseLevel:      store.ExpertiseLevel,
		BrandVoice:          store.BrandVoice,
		SpecialInstructions: store.SpecialInstructions,
	})
}
