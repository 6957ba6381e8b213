package app

import (
	"context"
	"log"
	"strings"

	"shopassist/internal/ai"
	"shopassist/internal/model"
	"shopassist/internal/rag"
)

type ChatService struct {
	itemRepo   CatalogStore
	factRepo   FactStore
	cache      CatalogCache
	embedder   EmbeddingGateway
	completer  CompletionGateway
	publisher  ChatLogPublisher
	greeter    *rag.Greeter
	maxHistory int
}

func NewChatService(
	itemRepo CatalogStore,
	factRepo FactStore,
	cache CatalogCache,
	embedder EmbeddingGateway,
	completer CompletionGateway,
	publisher ChatLogPublisher,
	greeter *rag.Greeter,
	maxHistory int,
) *ChatService {
	if maxHistory <= 0 {
		maxHistory = 12
	}
	return &ChatService{
		itemRepo:   itemRepo,
		factRepo:   factRepo,
		cache:      cache,
		embedder:   embedder,
		completer:  completer,
		publisher:  publisher,
		greeter:    greeter,
		maxHistory: maxHistory,
	}
}

type ChatInput struct {
	Store    *model.Store
	Message  string
	History  []ai.ChatMessage
	Language string // optional override of the store's configured language
}

type ChatDebug struct {
	Query          rag.QueryContext `json:"query"`
	ProductMatches int              `json:"product_matches"`
	PageMatches    int              `json:"page_matches"`
	BestScore      float64          `json:"best_score"`
}

type ChatResult struct {
	Answer string            `json:"answer"`
	Cards  []rag.ProductCard `json:"product_cards"`
	Debug  ChatDebug         `json:"debug"`
}

// Answer runs one chat turn: classify, retrieve, rank, assemble context,
// complete, select cards. Greetings short-circuit before any catalog read or
// embedding call.
func (s *ChatService) Answer(ctx context.Context, input ChatInput) (*ChatResult, error) {
	return s.answer(ctx, input, nil)
}

// StreamAnswer is Answer with the completion streamed through onChunk; the
// full answer and the selected cards are returned once the stream ends.
func (s *ChatService) StreamAnswer(ctx context.Context, input ChatInput, onChunk func(string) error) (*ChatResult, error) {
	return s.answer(ctx, input, onChunk)
}

func (s *ChatService) answer(ctx context.Context, input ChatInput, onChunk func(string) error) (*ChatResult, error) {
	if input.Store == nil {
		return nil, ErrInvalidInput
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, ErrMessageEmpty
	}

	lang := rag.ParseLanguage(input.Store.Language)
	if input.Language != "" {
		lang = rag.ParseLanguage(input.Language)
	}

	qc := rag.Classify(message, historyTexts(input.History), lang)

	if qc.IsGreeting {
		greeting := s.greeter.Greeting(lang)
		if onChunk != nil {
			if err := onChunk(greeting); err != nil {
				return nil, err
			}
		}
		result := &ChatResult{Answer: greeting, Cards: []rag.ProductCard{}, Debug: ChatDebug{Query: qc}}
		s.publishLog(ctx, input.Store.ID, message, result)
		return result, nil
	}

	items, err := s.loadCatalog(ctx, input.Store.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoCatalog
	}

	queryVec, err := s.embedder.Embed(ctx, message)
	if err != nil {
		return nil, err
	}

	ranked := rag.Rank(queryVec, items, qc)

	facts, err := s.factRepo.ListByStoreID(input.Store.ID)
	if err != nil {
		return nil, err
	}

	contextBlock := rag.BuildContext(ranked.Products, ranked.Pages, facts, ranked.BestScore, qc.IsProductQuery)
	messages := s.buildPromptMessages(input.Store, lang, input.History, message, contextBlock)

	var answer string
	if onChunk != nil {
		answer, err = s.completer.StreamComplete(ctx, messages, onChunk)
	} else {
		answer, err = s.completer.Complete(ctx, messages)
	}
	if err != nil {
		return nil, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = emptyAnswerFallback(lang)
	}

	cards := rag.SelectCards(ranked.Products, answer, qc.IsVisual)
	if cards == nil {
		cards = []rag.ProductCard{}
	}

	result := &ChatResult{
		Answer: answer,
		Cards:  cards,
		Debug: ChatDebug{
			Query:          qc,
			ProductMatches: len(ranked.Products),
			PageMatches:    len(ranked.Pages),
			BestScore:      ranked.BestScore,
		},
	}
	s.publishLog(ctx, input.Store.ID, message, result)
	return result, nil
}

// loadCatalog prefers the Redis snapshot, falling back to the database and
// repopulating the cache when no index run is in flight.
func (s *ChatService) loadCatalog(ctx context.Context, storeID uint) ([]model.CatalogItem, error) {
	if s.cache != nil {
		if dirty, err := s.cache.IsDirty(ctx, storeID); err == nil && !dirty {
			if cached, hit, cacheErr := s.cache.GetItems(ctx, storeID); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	items, err := s.itemRepo.ListByStoreID(storeID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && len(items) > 0 {
		if dirty, err := s.cache.IsDirty(ctx, storeID); err == nil && !dirty {
			_ = s.cache.SetItems(ctx, storeID, items)
		}
	}
	return items, nil
}

func (s *ChatService) buildPromptMessages(
	store *model.Store,
	lang rag.Language,
	history []ai.ChatMessage,
	message string,
	contextBlock string,
) []ai.ChatMessage {
	recent := history
	if len(recent) > s.maxHistory {
		recent = recent[len(recent)-s.maxHistory:]
	}

	messages := make([]ai.ChatMessage, 0, len(recent)+2)
	messages = append(messages, ai.ChatMessage{
		Role:    "system",
		Content: rag.SystemPrompt(store.Name, PersonalityOf(store), lang),
	})
	for _, turn := range recent {
		role := turn.Role
		if role != "assistant" {
			role = "user"
		}
		messages = append(messages, ai.ChatMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, ai.ChatMessage{
		Role:    "user",
		Content: "Store context:\n" + contextBlock + "\nCustomer question: " + message,
	})
	return messages
}

func (s *ChatService) publishLog(ctx context.Context, storeID uint, question string, result *ChatResult) {
	if s.publisher == nil {
		return
	}
	entry := model.ChatLog{
		StoreID:   storeID,
		Question:  question,
		Answer:    result.Answer,
		BestScore: result.Debug.BestScore,
		CardCount: len(result.Cards),
	}
	if err := s.publisher.Publish(ctx, entry); err != nil {
		log.Printf("publish chat log failed: %v", err)
	}
}

func historyTexts(history []ai.ChatMessage) []string {
	texts := make([]string, 0, len(history))
	for _, turn := range history {
		texts = append(texts, turn.Content)
	}
	return texts
}

func emptyAnswerFallback(lang rag.Language) string {
	if lang == rag.LanguageSwedish {
		return "Jag kunde tyvärr inte ta fram ett svar just nu. Försök gärna igen."
	}
	return "I could not produce an answer right now. Please try again."
}
