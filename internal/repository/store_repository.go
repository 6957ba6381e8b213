package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shopassist/internal/model"
)

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(store *model.Store) error {
	if err := r.db.Create(store).Error; err != nil {
		return fmt.Errorf("create store failed: %w", err)
	}
	return nil
}

// GetByPublicID returns nil, nil when no store matches.
func (r *StoreRepository) GetByPublicID(publicID string) (*model.Store, error) {
	var store model.Store
	err := r.db.Where("public_id = ?", publicID).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get store by public id failed: %w", err)
	}
	return &store, nil
}

// GetByAPIKeyID returns nil, nil when no store matches.
func (r *StoreRepository) GetByAPIKeyID(keyID string) (*model.Store, error) {
	var store model.Store
	err := r.db.Where("api_key_id = ?", keyID).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get store by api key id failed: %w", err)
	}
	return &store, nil
}
