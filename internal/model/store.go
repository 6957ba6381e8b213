package model

import "time"

type Store struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	PublicID            string    `gorm:"size:64;not null;uniqueIndex" json:"public_id"`
	Name                string    `gorm:"size:128;not null" json:"name"`
	Language            string    `gorm:"size:8;not null;default:sv" json:"language"`
	Tone                string    `gorm:"size:32;not null" json:"tone"`
	GreetingStyle       string    `gorm:"size:32;not null" json:"greeting_style"`
	ExpertiseLevel      string    `gorm:"size:32;not null" json:"expertise_level"`
	BrandVoice          string    `gorm:"size:512" json:"brand_voice"`
	SpecialInstructions string    `gorm:"size:1024" json:"special_instructions"`
	APIKeyID            string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	APIKeyHash          string    `gorm:"size:255;not null" json:"-"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
