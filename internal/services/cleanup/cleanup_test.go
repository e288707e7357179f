package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/book-search/internal/database"
	"github.com/killallgit/book-search/internal/models"
	"github.com/killallgit/book-search/internal/services/history"
)

type MockPruner struct {
	mock.Mock
}

func (m *MockPruner) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

func TestService_RunOnce(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		removed int64
		err     error
		want    int64
	}{
		{name: "removes old records", removed: 3, want: 3},
		{name: "nothing to remove", removed: 0, want: 0},
		{name: "prune error is swallowed", removed: 0, err: errors.New("locked"), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pruner := new(MockPruner)
			pruner.On("Prune", mock.Anything, now.Add(-24*time.Hour)).Return(tt.removed, tt.err)

			s := NewService(pruner, 24*time.Hour, time.Hour)
			s.now = func() time.Time { return now }

			assert.Equal(t, tt.want, s.RunOnce(context.Background()))
			pruner.AssertExpectations(t)
		})
	}
}

func TestService_StartDisabled(t *testing.T) {
	pruner := new(MockPruner)
	s := NewService(pruner, 0, time.Hour)

	s.Start(context.Background())
	s.Stop()

	pruner.AssertNotCalled(t, "Prune", mock.Anything, mock.Anything)
}

func TestService_StartPrunesHistory(t *testing.T) {
	db, err := database.Open(database.MemoryPath, false)
	require.NoError(t, err)
	defer db.Close()

	repo := history.NewRepository(db.DB)
	ctx := context.Background()

	old := &models.SearchRecord{SearchText: "old", PageSize: 10, Page: 1}
	require.NoError(t, repo.Record(ctx, old))
	require.NoError(t, db.Model(old).UpdateColumn("created_at", time.Now().UTC().Add(-48*time.Hour)).Error)
	require.NoError(t, repo.Record(ctx, &models.SearchRecord{SearchText: "new", PageSize: 10, Page: 1}))

	s := NewService(repo, 24*time.Hour, 10*time.Millisecond)
	s.Start(ctx)
	defer s.Stop()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].SearchText)
}
