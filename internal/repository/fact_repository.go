package repository

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopassist/internal/model"
)

type FactRepository struct {
	db *gorm.DB
}

func NewFactRepository(db *gorm.DB) *FactRepository {
	return &FactRepository{db: db}
}

// UpsertBatch inserts facts, silently skipping rows that collide with the
// (store, fact_type, value) uniqueness constraint. Conflicts are idempotent
// no-ops, not errors.
func (r *FactRepository) UpsertBatch(facts []model.StoreFact) error {
	if len(facts) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&facts).Error
	if err != nil {
		return fmt.Errorf("upsert store facts failed: %w", err)
	}
	return nil
}

func (r *FactRepository) ListByStoreID(storeID uint) ([]model.StoreFact, error) {
	var facts []model.StoreFact
	if err := r.db.Where("store_id = ?", storeID).Order("id ASC").Find(&facts).Error; err != nil {
		return nil, fmt.Errorf("list store facts failed: %w", err)
	}
	return facts, nil
}

// DeleteDerivedByType removes text-derived facts of one type, used when a
// manual fact of that type takes priority.
func (r *FactRepository) DeleteDerivedByType(storeID uint, factType string) error {
	err := r.db.Where("store_id = ? AND fact_type = ? AND source <> ?", storeID, factType, model.FactSourceManual).
		Delete(&model.StoreFact{}).Error
	if err != nil {
		return fmt.Errorf("delete derived facts failed: %w", err)
	}
	return nil
}
