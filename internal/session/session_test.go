package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/spark-api/internal/generation"
	"github.com/phrazzld/spark-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRunner drives the UI it is given the way a successful workflow would.
type MockRunner struct {
	RunFn func(ctx context.Context, ui generation.UI, mode generation.Mode, rawInput string) generation.Result

	mu    sync.Mutex
	count int
}

func (m *MockRunner) Run(ctx context.Context, ui generation.UI, mode generation.Mode, rawInput string) generation.Result {
	m.mu.Lock()
	m.count++
	m.mu.Unlock()
	if m.RunFn != nil {
		return m.RunFn(ctx, ui, mode, rawInput)
	}
	ui.SetLoading(true)
	defer ui.SetLoading(false)
	ui.SetOutputHTML("<strong>" + rawInput + "</strong>")
	return generation.TextResult("<strong>" + rawInput + "</strong>")
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T, runner generation.Runner, ttl time.Duration) (*Store, *fakeClock) {
	t.Helper()
	_, l := logger.NewTestLogger()
	clock := &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewStore(runner, ttl, l)
	store.now = clock.Now
	return store, clock
}

func TestSession_GenerateUpdatesState(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, &MockRunner{}, time.Hour)
	sess := store.GetOrCreate(uuid.Nil)

	result, err := sess.Generate(context.Background(), generation.ModeSlogans, "Acme")
	require.NoError(t, err)
	assert.Equal(t, generation.ResultText, result.Kind)

	state := sess.Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, "<strong>Acme</strong>", state.OutputHTML)
	assert.Nil(t, state.Toast)
}

func TestSession_ToastIsRecorded(t *testing.T) {
	t.Parallel()

	store, clock := newTestStore(t, &MockRunner{}, time.Hour)
	sess := store.GetOrCreate(uuid.Nil)

	sess.ShowToast(generation.MessageInputRequired, generation.SeverityError)

	state := sess.Snapshot()
	require.NotNil(t, state.Toast)
	assert.Equal(t, generation.MessageInputRequired, state.Toast.Message)
	assert.Equal(t, generation.SeverityError, state.Toast.Severity)
	assert.Equal(t, clock.Now(), state.Toast.ShownAt)

	// Snapshots are copies.
	state.Toast.Message = "changed"
	assert.Equal(t, generation.MessageInputRequired, sess.Snapshot().Toast.Message)
}

func TestSession_LoadingVisibleDuringRun(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	running := make(chan struct{})
	runner := &MockRunner{RunFn: func(ctx context.Context, ui generation.UI, _ generation.Mode, _ string) generation.Result {
		ui.SetLoading(true)
		defer ui.SetLoading(false)
		close(running)
		<-release
		return generation.TextResult("done")
	}}
	store, _ := newTestStore(t, runner, time.Hour)
	sess := store.GetOrCreate(uuid.Nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = sess.Generate(context.Background(), generation.ModeSlogans, "Acme")
	}()

	<-running
	assert.True(t, sess.Snapshot().Loading)
	close(release)
	<-done
	assert.False(t, sess.Snapshot().Loading)
}

func TestStore_GetOrCreate(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t, &MockRunner{}, time.Hour)

	first := store.GetOrCreate(uuid.Nil)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Same(t, first, store.GetOrCreate(first.ID))

	unknown := uuid.New()
	other := store.GetOrCreate(unknown)
	assert.NotEqual(t, unknown, other.ID, "unknown ids are not adopted")
	assert.Equal(t, 2, store.Len())

	got, err := store.Get(first.ID)
	require.NoError(t, err)
	assert.Same(t, first, got)

	_, err = store.Get(unknown)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_EvictsIdleSessions(t *testing.T) {
	t.Parallel()

	store, clock := newTestStore(t, &MockRunner{}, 30*time.Minute)

	idle := store.GetOrCreate(uuid.Nil)
	clock.Advance(20 * time.Minute)
	active := store.GetOrCreate(uuid.Nil)

	clock.Advance(15 * time.Minute)
	_, err := store.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.Get(active.ID)
	require.NoError(t, err)
	assert.Same(t, active, got)
	assert.Equal(t, 1, store.Len())
}

func TestStore_AccessKeepsSessionAlive(t *testing.T) {
	t.Parallel()

	store, clock := newTestStore(t, &MockRunner{}, 30*time.Minute)
	sess := store.GetOrCreate(uuid.Nil)

	for i := 0; i < 4; i++ {
		clock.Advance(20 * time.Minute)
		assert.Same(t, sess, store.GetOrCreate(sess.ID))
	}
}

func TestStore_InFlightSessionIsNotEvicted(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	running := make(chan struct{})
	runner := &MockRunner{RunFn: func(ctx context.Context, ui generation.UI, _ generation.Mode, _ string) generation.Result {
		close(running)
		<-release
		return generation.TextResult("done")
	}}
	store, clock := newTestStore(t, runner, time.Minute)
	sess := store.GetOrCreate(uuid.Nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = sess.Generate(context.Background(), generation.ModeSlogans, "Acme")
	}()
	<-running

	clock.Advance(time.Hour)
	_, err := store.Get(sess.ID)
	assert.NoError(t, err)

	close(release)
	<-done
}
