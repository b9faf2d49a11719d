package session

import (
	"context"
	"testing"
	"time"

	"python101_web/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStorage(rdb), mr
}

func storages(t *testing.T) map[string]Storage {
	rs, _ := newRedisStorage(t)
	return map[string]Storage{
		"memory": NewMemoryStorage(),
		"redis":  rs,
	}
}

func TestStoreReplaceAndRestore(t *testing.T) {
	for name, storage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(storage, time.Hour)
			sid := NewID()

			assert.Nil(t, store.Current(ctx, sid))

			user := &model.User{
				Username: "alice",
				Progress: []model.ProgressEntry{{QuestionSlug: "q1", Score: 1}},
			}
			require.NoError(t, store.Replace(ctx, sid, user))

			got := store.Current(ctx, sid)
			require.NotNil(t, got)
			assert.Equal(t, "alice", got.Username)
			assert.Len(t, got.Progress, 1)

			require.NoError(t, store.Logout(ctx, sid))
			assert.Nil(t, store.Current(ctx, sid))
		})
	}
}

func TestStoreReplaceIsWholesale(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage(), time.Hour)
	sid := NewID()

	require.NoError(t, store.Replace(ctx, sid, &model.User{
		Username: "alice",
		Progress: []model.ProgressEntry{{QuestionSlug: "q1", Score: 1}, {QuestionSlug: "q2", Score: 1}},
	}))
	// 后端返回的新快照只有一条记录，会话必须与之完全一致
	require.NoError(t, store.Replace(ctx, sid, &model.User{
		Username: "alice",
		Progress: []model.ProgressEntry{{QuestionSlug: "q3", Score: 1}},
	}))

	got := store.Current(ctx, sid)
	require.NotNil(t, got)
	require.Len(t, got.Progress, 1)
	assert.Equal(t, "q3", got.Progress[0].QuestionSlug)
}

func TestStoreTreatsCorruptSnapshotAsLoggedOut(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store := NewStore(storage, time.Hour)
	sid := NewID()

	require.NoError(t, storage.Set(ctx, userKey(sid), "{not json", 0))
	assert.Nil(t, store.Current(ctx, sid))

	require.NoError(t, storage.Set(ctx, userKey(sid), `{"is_admin":true}`, 0))
	assert.Nil(t, store.Current(ctx, sid))
}

func TestStoreRedisUnavailableIsLoggedOut(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	store := NewStore(NewRedisStorage(rdb), time.Hour)
	mr.Close()
	assert.Nil(t, store.Current(context.Background(), NewID()))
}

func TestStoreRedisTTL(t *testing.T) {
	rs, mr := newRedisStorage(t)
	store := NewStore(rs, time.Minute)
	sid := NewID()
	require.NoError(t, store.Replace(context.Background(), sid, &model.User{Username: "bob"}))

	mr.FastForward(2 * time.Minute)
	assert.Nil(t, store.Current(context.Background(), sid))
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage(), time.Hour)

	type event struct {
		sid  string
		user *model.User
	}
	var events []event
	store.Subscribe(func(sid string, user *model.User) {
		events = append(events, event{sid, user})
	})

	require.NoError(t, store.Replace(ctx, "s1", &model.User{Username: "alice"}))
	require.NoError(t, store.Logout(ctx, "s1"))

	require.Len(t, events, 2)
	assert.Equal(t, "alice", events[0].user.Username)
	assert.Nil(t, events[1].user)
}

func TestMemoryStorageExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", "v", time.Second))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	now = now.Add(2 * time.Second)
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}
