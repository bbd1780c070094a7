package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/promiseroad/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockFileDeletionRepository is a mock implementation of FileDeletionRepository
type mockFileDeletionRepository struct {
	pending []models.FileDeletion
	getErr  error
}

func (m *mockFileDeletionRepository) GetPending(ctx context.Context, limit int) ([]models.FileDeletion, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if len(m.pending) < limit {
		limit = len(m.pending)
	}
	return append([]models.FileDeletion(nil), m.pending[:limit]...), nil
}

func (m *mockFileDeletionRepository) DeleteByIDs(ctx context.Context, ids []int) (int64, error) {
	kept := m.pending[:0]
	var removed int64
	for _, deletion := range m.pending {
		found := false
		for _, id := range ids {
			if deletion.ID == id {
				found = true
				break
			}
		}
		if found {
			removed++
			continue
		}
		kept = append(kept, deletion)
	}
	m.pending = kept
	return removed, nil
}

// mockFileRemover is a mock implementation of FileRemover
type mockFileRemover struct {
	removed []string
	failing map[string]bool
}

func (m *mockFileRemover) Delete(relPath string) error {
	if m.failing[relPath] {
		return errors.New("permission denied")
	}
	m.removed = append(m.removed, relPath)
	return nil
}

func pendingDeletions(count int) []models.FileDeletion {
	out := make([]models.FileDeletion, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, models.FileDeletion{ID: i, Path: fmt.Sprintf("videos/video-%d.mp4", i)})
	}
	return out
}

func TestFileReaper_Reap(t *testing.T) {
	tests := []struct {
		name            string
		pending         []models.FileDeletion
		failing         map[string]bool
		expectedCount   int
		expectedPending int
	}{
		{name: "nothing pending", pending: nil, expectedCount: 0},
		{name: "single batch", pending: pendingDeletions(3), expectedCount: 3},
		{name: "several batches", pending: pendingDeletions(reapBatchSize*2 + 5), expectedCount: reapBatchSize*2 + 5},
		{
			name:            "failed file keeps its row",
			pending:         pendingDeletions(3),
			failing:         map[string]bool{"videos/video-2.mp4": true},
			expectedCount:   2,
			expectedPending: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockFileDeletionRepository{pending: tt.pending}
			remover := &mockFileRemover{failing: tt.failing}
			reaper := NewFileReaper(repo, remover, zap.NewNop())

			count, err := reaper.Reap(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.expectedCount, count)
			assert.Len(t, repo.pending, tt.expectedPending)
			assert.Len(t, remover.removed, tt.expectedCount)
		})
	}
}

func TestFileReaper_Reap_RepositoryError(t *testing.T) {
	repo := &mockFileDeletionRepository{getErr: errors.New("connection refused")}
	reaper := NewFileReaper(repo, &mockFileRemover{}, zap.NewNop())

	_, err := reaper.Reap(context.Background())

	assert.ErrorContains(t, err, "failed to get pending file deletions")
}

func TestNewReapScheduler(t *testing.T) {
	scheduler, err := NewReapScheduler("@every 10m", &mockReaper{}, zap.NewNop())
	require.NoError(t, err)
	scheduler.Start()
	scheduler.Stop(context.Background())

	_, err = NewReapScheduler("every ten minutes", &mockReaper{}, zap.NewNop())
	assert.Error(t, err)
}

func TestReapScheduler_Run(t *testing.T) {
	reaper := &mockReaper{err: errors.New("boom")}
	scheduler, err := NewReapScheduler("@hourly", reaper, zap.NewNop())
	require.NoError(t, err)

	scheduler.run()

	assert.Equal(t, 1, reaper.calls)
}
