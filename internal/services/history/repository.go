package history

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/killallgit/book-search/internal/models"
)

// DefaultLimit is used when Recent is called without a positive limit.
const DefaultLimit = 20

// MaxLimit caps a single Recent call.
const MaxLimit = 200

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Record stores one fetch
func (r *repository) Record(ctx context.Context, record *models.SearchRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns the latest records, newest first
func (r *repository) Recent(ctx context.Context, limit int) ([]models.SearchRecord, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var records []models.SearchRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing recent searches: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records
func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SearchRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting searches: %w", err)
	}
	return count, nil
}

// Prune permanently deletes records created before olderThan
func (r *repository) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("created_at < ?", olderThan).
		Delete(&models.SearchRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("pruning searches: %w", result.Error)
	}
	return result.RowsAffected, nil
}
