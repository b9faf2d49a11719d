package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"python101_web/internal/model"
	"python101_web/pkg/logger"
	"python101_web/pkg/monitoring"

	"go.uber.org/zap"
)

// StorageKey 与原浏览器端 localStorage 的 key 保持一致
const StorageKey = "python101-user"

// Listener 在用户快照被替换后调用，user 为 nil 表示已退出
type Listener func(sid string, user *model.User)

// Store 当前登录用户的唯一持有者。快照总是整体替换，从不做字段级合并。
type Store struct {
	storage Storage
	ttl     time.Duration

	mu        sync.RWMutex
	listeners []Listener
}

func NewStore(storage Storage, ttl time.Duration) *Store {
	return &Store{storage: storage, ttl: ttl}
}

func userKey(sid string) string {
	return StorageKey + ":" + sid
}

// Current 读取并反序列化会话快照；不存在或无法解析时视为未登录，不向上报错
func (s *Store) Current(ctx context.Context, sid string) *model.User {
	if sid == "" {
		return nil
	}
	raw, err := s.storage.Get(ctx, userKey(sid))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Log.Warn("session storage read failed", zap.String("sid", sid), zap.Error(err))
		}
		return nil
	}
	var user model.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Log.Debug("discarding unparsable session snapshot", zap.String("sid", sid), zap.Error(err))
		return nil
	}
	if user.Username == "" {
		return nil
	}
	return &user
}

// Replace 用后端返回的完整用户快照覆盖会话；user 为 nil 时清除存储
func (s *Store) Replace(ctx context.Context, sid string, user *model.User) error {
	if user == nil {
		if err := s.storage.Delete(ctx, userKey(sid)); err != nil {
			return err
		}
		monitoring.SessionReplacements.WithLabelValues("logout").Inc()
	} else {
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := s.storage.Set(ctx, userKey(sid), string(data), s.ttl); err != nil {
			return err
		}
		monitoring.SessionReplacements.WithLabelValues("replace").Inc()
	}

	s.mu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()
	for _, l := range listeners {
		l(sid, user)
	}
	return nil
}

func (s *Store) Logout(ctx context.Context, sid string) error {
	return s.Replace(ctx, sid, nil)
}

func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}
