package model

import "time"

// ChatLog is an analytics record of one answered chat turn. Rows are written
// asynchronously by the chat log worker and never read on the request path.
type ChatLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   uint      `gorm:"not null;index" json:"store_id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	BestScore float64   `json:"best_score"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
}
