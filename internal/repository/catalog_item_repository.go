package repository

import (
	"fmt"

	"gorm.io/gorm"

	"shopassist/internal/model"
)

type CatalogItemRepository struct {
	db *gorm.DB
}

func NewCatalogItemRepository(db *gorm.DB) *CatalogItemRepository {
	return &CatalogItemRepository{db: db}
}

// ReplaceForStore swaps a store's entire catalog in one transaction, so a
// failed re-index leaves the previous catalog intact rather than a
// half-replaced one.
func (r *CatalogItemRepository) ReplaceForStore(storeID uint, items []model.CatalogItem) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", storeID).Delete(&model.CatalogItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(&items, 200).Error
	})
	if err != nil {
		return fmt.Errorf("replace catalog items failed: %w", err)
	}
	return nil
}

func (r *CatalogItemRepository) ListByStoreID(storeID uint) ([]model.CatalogItem, error) {
	var items []model.CatalogItem
	if err := r.db.Where("store_id = ?", storeID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list catalog items failed: %w", err)
	}
	return items, nil
}

func (r *CatalogItemRepository) CountByStoreID(storeID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.CatalogItem{}).Where("store_id = ?", storeID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count catalog items failed: %w", err)
	}
	return count, nil
}
