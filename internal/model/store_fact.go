package model

import "time"

const (
	FactTypeEmail   = "email"
	FactTypePhone   = "phone"
	FactTypeAddress = "address"
)

// FactSourceManual marks operator-supplied facts. Text-derived facts carry
// an empty source. A manual fact of a type suppresses derived facts of that
// type for the same store.
const FactSourceManual = "manual"

type StoreFact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   uint      `gorm:"not null;uniqueIndex:idx_store_fact_value" json:"store_id"`
	FactType  string    `gorm:"size:16;not null;uniqueIndex:idx_store_fact_value" json:"fact_type"`
	Value     string    `gorm:"size:512;not null;uniqueIndex:idx_store_fact_value" json:"value"`
	Source    string    `gorm:"size:16" json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
