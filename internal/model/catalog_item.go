package model

import (
	"encoding/json"
	"time"
)

const (
	KindProduct = "product"
	KindPage    = "page"
)

// CatalogItem stores one embeddable unit of a store's catalog: either a
// whole product or one chunk of a content page. Embedding is stored as a
// JSON array of float32 for portability.
type CatalogItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StoreID     uint      `gorm:"not null;uniqueIndex:idx_store_unit_kind" json:"store_id"`
	Kind        string    `gorm:"size:16;not null;uniqueIndex:idx_store_unit_kind" json:"kind"`
	UnitID      string    `gorm:"size:191;not null;uniqueIndex:idx_store_unit_kind" json:"unit_id"`
	SourceID    string    `gorm:"size:191;not null;index" json:"source_id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	Embedding   string    `gorm:"type:text" json:"-"` // JSON array of float32
	Title       string    `gorm:"size:512" json:"title"`
	URL         string    `gorm:"size:1024" json:"url"`
	ImageURL    string    `gorm:"size:1024" json:"image_url"`
	Price       string    `gorm:"size:64" json:"price"`
	StockStatus string    `gorm:"size:32;not null;default:instock" json:"stock_status"`
	InStock     bool      `gorm:"not null;default:true" json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// EmbeddingVector returns the parsed embedding slice; empty on parse error.
func (i *CatalogItem) EmbeddingVector() []float32 {
	if i.Embedding == "" {
		return nil
	}
	var v []float32
	_ = json.Unmarshal([]byte(i.Embedding), &v)
	return v
}

// SetEmbedding stores the embedding as JSON.
func (i *CatalogItem) SetEmbedding(vec []float32) {
	if len(vec) == 0 {
		i.Embedding = "[]"
		return
	}
	b, _ := json.Marshal(vec)
	i.Embedding = string(b)
}
