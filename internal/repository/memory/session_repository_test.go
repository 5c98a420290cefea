package memory

import (
	"sync"
	"testing"

	"os-help-bot/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoadOrCreateReturnsSameSession(t *testing.T) {
	repo := NewSessionRepository()

	first := repo.LoadOrCreate("u1")
	second := repo.LoadOrCreate("u1")

	assert.Same(t, first, second)
	assert.Equal(t, store.StateAwaitingOS, first.Snapshot().State)
	assert.Equal(t, 1, repo.Count())
}

func TestLoadOrCreateConcurrentFirstContact(t *testing.T) {
	repo := NewSessionRepository()

	const workers = 32
	got := make([]*store.Session, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = repo.LoadOrCreate("same-user")
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
	assert.Equal(t, 1, repo.Count())
}

func TestLoadOrCreateAfterDelete(t *testing.T) {
	repo := NewSessionRepository()
	first := repo.LoadOrCreate("u1")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NotNil(t, repo.LoadOrCreate("u1"))
		}()
		go func() {
			defer wg.Done()
			repo.Delete("u1")
		}()
	}
	wg.Wait()

	repo.Delete("u1")
	fresh := repo.LoadOrCreate("u1")
	assert.NotSame(t, first, fresh)
	assert.Equal(t, store.StateAwaitingOS, fresh.Snapshot().State)
	assert.Equal(t, 1, repo.Count())
}

func TestResetClearsOnboarding(t *testing.T) {
	repo := NewSessionRepository()
	s := repo.LoadOrCreate("u1")
	s.Lock()
	s.OSLabel, s.OSLabelSet = "windows 10", true
	s.HelpType = store.HelpTypeTechnical
	s.AnswerStyle = store.AnswerStyleBrief
	require.True(t, s.IsReady())
	s.Unlock()

	reset := repo.Reset("u1")

	assert.Same(t, s, reset)
	snap := reset.Snapshot()
	assert.Equal(t, store.StateAwaitingOS, snap.State)
	assert.Empty(t, snap.OSLabel)
}

func TestGetAndDelete(t *testing.T) {
	repo := NewSessionRepository()

	_, ok := repo.Get("nobody")
	assert.False(t, ok)

	repo.LoadOrCreate("u1")
	_, ok = repo.Get("u1")
	assert.True(t, ok)

	repo.Delete("u1")
	_, ok = repo.Get("u1")
	assert.False(t, ok)
	assert.Equal(t, 0, repo.Count())
}
