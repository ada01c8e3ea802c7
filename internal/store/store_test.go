package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sprintpulse/internal/sprint"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleItems() []sprint.WorkItem {
	created := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	cycle := 4
	return []sprint.WorkItem{
		{
			ID:            101,
			Title:         "API contract update",
			Type:          "User Story",
			State:         "Closed",
			Assignee:      "Grace Hopper",
			StoryPoints:   3,
			Created:       &created,
			Category:      sprint.CategoryBackend,
			CycleTimeDays: &cycle,
			IsCompleted:   true,
		},
		{
			ID:       102,
			Title:    "Flaky login spec",
			Type:     "Bug",
			State:    "Active",
			Assignee: "Unassigned",
			Category: sprint.CategoryBug,
		},
	}
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveSnapshot("2025_S15", "pod1", sampleItems()))

	snap, err := s.LoadSnapshot("2025_S15", "pod1")
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, "2025_S15", snap.Sprint)
	assert.Equal(t, "pod1", snap.Pod)
	assert.False(t, snap.FetchedAt.IsZero())
	require.Len(t, snap.Items, 2)

	got := snap.Items[0]
	assert.Equal(t, 101, got.ID)
	assert.Equal(t, sprint.CategoryBackend, got.Category)
	require.NotNil(t, got.CycleTimeDays)
	assert.Equal(t, 4, *got.CycleTimeDays)
	require.NotNil(t, got.Created)
	assert.Equal(t, "2025-07-10", got.Created.Format("2006-01-02"))
	assert.True(t, got.IsCompleted)
}

func TestLoadSnapshotMissing(t *testing.T) {
	s := newTestStore(t)

	snap, err := s.LoadSnapshot("2025_S99", "")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSaveSnapshotOverwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveSnapshot("2025_S15", "", sampleItems()))
	require.NoError(t, s.SaveSnapshot("2025_S15", "", sampleItems()[:1]))

	snap, err := s.LoadSnapshot("2025_S15", "")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Items, 1)
}

func TestSnapshotsKeyedByPod(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveSnapshot("2025_S15", "pod1", sampleItems()))
	require.NoError(t, s.SaveSnapshot("2025_S15", "pod2", sampleItems()[:1]))

	pod1, err := s.LoadSnapshot("2025_S15", "pod1")
	require.NoError(t, err)
	require.NotNil(t, pod1)
	assert.Len(t, pod1.Items, 2)

	pod2, err := s.LoadSnapshot("2025_S15", "pod2")
	require.NoError(t, err)
	require.NotNil(t, pod2)
	assert.Len(t, pod2.Items, 1)
}

func TestInvalidateSnapshot(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveSnapshot("2025_S15", "pod1", sampleItems()))
	require.NoError(t, s.InvalidateSnapshot("2025_S15", "pod1"))

	snap, err := s.LoadSnapshot("2025_S15", "pod1")
	require.NoError(t, err)
	assert.Nil(t, snap)

	// Invalidating an absent key is not an error.
	require.NoError(t, s.InvalidateSnapshot("2025_S15", "pod1"))
}

func TestListSnapshots(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SaveSnapshot("2025_S14", "", sampleItems()))
	require.NoError(t, s.SaveSnapshot("2025_S15", "pod1", sampleItems()))

	snaps, err := s.ListSnapshots()
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	for _, snap := range snaps {
		assert.Empty(t, snap.Items, "listing omits item payloads")
		assert.False(t, snap.FetchedAt.IsZero())
	}
}
