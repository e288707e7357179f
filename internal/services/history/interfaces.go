package history

import (
	"context"
	"time"

	"github.com/killallgit/book-search/internal/models"
)

// Repository stores completed fetches
type Repository interface {
	Record(ctx context.Context, record *models.SearchRecord) error
	Recent(ctx context.Context, limit int) ([]models.SearchRecord, error)
	Count(ctx context.Context) (int64, error)
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}
