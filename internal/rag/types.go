package rag

import (
	"strings"

	"shopassist/internal/model"
)

type Language string

const (
	LanguageSwedish Language = "sv"
	LanguageEnglish Language = "en"
)

// ParseLanguage normalizes a language code; anything unrecognized falls back
// to Swedish, the default store language.
func ParseLanguage(code string) Language {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "en", "en-us", "en-gb", "english":
		return LanguageEnglish
	default:
		return LanguageSwedish
	}
}

// QueryContext describes the intent of one chat turn. Flags are independent
// keyword matches and not mutually exclusive. Built fresh per request.
type QueryContext struct {
	IsVisual       bool `json:"is_visual"`
	IsAvailability bool `json:"is_availability"`
	IsProductQuery bool `json:"is_product_query"`
	IsGeneralInfo  bool `json:"is_general_info"`
	IsContact      bool `json:"is_contact"`
	IsGreeting     bool `json:"is_greeting"`
	IsFollowUp     bool `json:"is_follow_up"`

	Language Language `json:"language"`
}

// ScoredUnit pairs a catalog item with its cosine similarity against the
// query embedding. Score is -1 when vectors are absent or mismatched.
type ScoredUnit struct {
	Unit  model.CatalogItem
	Score float64
}

// RankResult holds the capped, ordered retrieval output for one query.
type RankResult struct {
	Products  []ScoredUnit
	Pages     []ScoredUnit
	BestScore float64 // best product score before thresholding, 0 if no products scored
}

// Fact is one extracted contact datum; persistence and provenance live on
// model.StoreFact.
type Fact struct {
	Type  string
	Value string
}

// ProductInput is one raw catalog product as received from the index API.
type ProductInput struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Categories       []string `json:"categories"`
	Price            string   `json:"price"`
	URL              string   `json:"url"`
	ImageURL         string   `json:"image_url"`
	StockStatus      string   `json:"stock_status"`
}

// PageInput is one raw content page as received from the index API.
type PageInput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// ProductCard is the visual product suggestion returned alongside an answer.
type ProductCard struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url"`
	Price    string `json:"price,omitempty"`
}
