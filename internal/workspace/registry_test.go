package workspace

import (
	"testing"
	"time"

	"python101_web/internal/modal"
	"python101_web/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(idle time.Duration) *Registry {
	storage := session.NewMemoryStorage()
	return NewRegistry(&fakeBackend{}, session.NewStore(storage, time.Hour), modal.NewService(storage, time.Hour), Options{IdleTimeout: idle})
}

func TestRegistryGetReturnsSameWorkspace(t *testing.T) {
	r := newRegistry(time.Minute)
	defer r.Close()

	a := r.Get("s1")
	assert.Same(t, a, r.Get("s1"))
	assert.NotSame(t, a, r.Get("s2"))
	assert.Equal(t, 2, r.Len())
	assert.Nil(t, r.Peek("s3"))
}

func TestRegistrySweepReleasesIdle(t *testing.T) {
	r := newRegistry(time.Minute)
	defer r.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }
	idle := r.Get("idle")

	now = now.Add(50 * time.Second)
	active := r.Get("active")

	now = now.Add(20 * time.Second)
	assert.Equal(t, 1, r.Sweep())
	assert.True(t, idle.Closed())
	assert.False(t, active.Closed())
	assert.Nil(t, r.Peek("idle"))
	assert.Same(t, active, r.Peek("active"))
}

func TestSweeperRunsOnSchedule(t *testing.T) {
	r := newRegistry(time.Millisecond)
	defer r.Close()
	r.Get("s1")

	s, err := NewSweeper(r, 20*time.Millisecond)
	require.NoError(t, err)
	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}
