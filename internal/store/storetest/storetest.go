// Package storetest holds the behavioral tests every store.TaskStore
// implementation must pass. Back-end packages call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/tasktracker/internal/domain"
	"github.com/phrazzld/tasktracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Harness describes the store under test.
type Harness struct {
	// New returns an empty store. Cleanup is registered on t.
	New func(t *testing.T) store.TaskStore
	// MissingID is well-formed for the store but never assigned.
	MissingID string
	// MalformedID cannot be parsed by the store.
	MalformedID string
}

// Run executes the conformance suite against h.
func Run(t *testing.T, h Harness) {
	t.Helper()

	t.Run("create assigns id", func(t *testing.T) { testCreateAssignsID(t, h) })
	t.Run("create rejects invalid task", func(t *testing.T) { testCreateRejectsInvalid(t, h) })
	t.Run("create starts active", func(t *testing.T) { testCreateStartsActive(t, h) })
	t.Run("list empty", func(t *testing.T) { testListEmpty(t, h) })
	t.Run("list insertion order", func(t *testing.T) { testListInsertionOrder(t, h) })
	t.Run("complete lifecycle", func(t *testing.T) { testCompleteLifecycle(t, h) })
	t.Run("complete missing id", func(t *testing.T) { testCompleteMissing(t, h) })
	t.Run("complete malformed id", func(t *testing.T) { testCompleteMalformed(t, h) })
	t.Run("concurrent complete", func(t *testing.T) { testConcurrentComplete(t, h) })
	t.Run("ping", func(t *testing.T) { testPing(t, h) })
}

func mustCreate(t *testing.T, s store.TaskStore, title, deadline string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, deadline)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), task))
	return task
}

func testCreateAssignsID(t *testing.T, h Harness) {
	s := h.New(t)
	ctx := context.Background()

	first := mustCreate(t, s, "Pay rent", "2025-01-01")
	second := mustCreate(t, s, "Buy milk", "tomorrow")

	assert.NotEmpty(t, first.ID)
	assert.NotEmpty(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID, "ids must be unique")

	all, err := s.List(ctx, store.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, *first, *all[0])
	assert.Equal(t, domain.Task{ID: first.ID, Title: "Pay rent", Deadline: "2025-01-01"}, *all[0])
}

func testCreateRejectsInvalid(t *testing.T, h Harness) {
	s := h.New(t)
	ctx := context.Background()

	err := s.Create(ctx, &domain.Task{Title: "", Deadline: "2025-01-01"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	all, err := s.List(ctx, store.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, all, "invalid task must not be written")
}

func testCreateStartsActive(t *testing.T, h Harness) {
	s := h.New(t)
	ctx := context.Background()

	task := &domain.Task{Title: "Pay rent", Deadline: "2025-01-01", Completed: true}
	require.NoError(t, s.Create(ctx, task))
	assert.False(t, task.Completed)

	active, err := s.List(ctx, store.TaskFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, task.ID, active[0].ID)
	assert.False(t, active[0].Completed)
}

func testListEmpty(t *testing.T, h Harness) {
	s := h.New(t)
	ctx := context.Background()

	all, err := s.List(ctx, store.TaskFilter{})
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	active, err := s.List(ctx, store.TaskFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.NotNil(t, active)
	assert.Empty(t, active)
}

func testListInsertionOrder(t *testing.T, h Harness) {
	s := h.New(t)
	ctx := context.Background()

	titles := []string{"first", "second", "third", "fourth"}
	for _, title := range titles {
		mustCreate(t, s, title, "soon")
	}

	all, err := s.List(ctx, store.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, len(titles))
	for i, task := range all {
		assert.Equal(t, titles[i], task.Title)
	}

	again, err := s.List(ctx, store.TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, all, again, "listing is a pure read")
}

func testCompleteLifecycle(t *testing.T, h Harness) {
	s := h.New(t)
	ctx := context.Background()

	keep := mustCreate(t, s, "Keep going", "later")
	done := mustCreate(t, s, "Pay rent", "2025-01-01")

	require.NoError(t, s.MarkCompleted(ctx, done.ID))

	active, err := s.List(ctx, store.TaskFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, keep.ID, active[0].ID)
	for _, task := range active {
		assert.False(t, task.Completed)
	}

	all, err := s.List(ctx, store.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, done.ID, all[1].ID)
	assert.True(t, all[1].Completed)

	err = s.MarkCompleted(ctx, done.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound, "completing twice reports not found")
}

func testCompleteMissing(t *testing.T, h Harness) {
	s := h.New(t)
	mustCreate(t, s, "Pay rent", "2025-01-01")

	err := s.MarkCompleted(context.Background(), h.MissingID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func testCompleteMalformed(t *testing.T, h Harness) {
	s := h.New(t)

	err := s.MarkCompleted(context.Background(), h.MalformedID)
	require.Error(t, err)
	assert.True(t,
		errors.Is(err, domain.ErrInvalidID) || errors.Is(err, store.ErrTaskNotFound),
		"malformed id must read as invalid or not found, got %v", err)
}

func testConcurrentComplete(t *testing.T, h Harness) {
	s := h.New(t)
	task := mustCreate(t, s, "Race", "now")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.MarkCompleted(context.Background(), task.ID)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, store.ErrTaskNotFound)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one completion wins")
}

func testPing(t *testing.T, h Harness) {
	s := h.New(t)
	assert.NoError(t, s.Ping(context.Background()))
}
