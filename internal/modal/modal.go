package modal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"python101_web/internal/session"
	"python101_web/pkg/logger"

	"go.uber.org/zap"
)

const (
	storageKey   = "python101-modal"
	DefaultTitle = "提示"
)

// Action 弹窗中的主按钮，点击后先关闭弹窗再跳转
type Action struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Options struct {
	Title   string
	Content string
	// Dismissible 为 nil 时默认可关闭
	Dismissible *bool
	Action      *Action
}

// swagger:model Dialog
type Dialog struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Dismissible bool    `json:"dismissible"`
	Action      *Action `json:"action,omitempty"`
}

// Service 每个浏览器会话只有一个弹窗槽位：后打开的覆盖先打开的，不排队
type Service struct {
	storage session.Storage
	ttl     time.Duration
}

func NewService(storage session.Storage, ttl time.Duration) *Service {
	return &Service{storage: storage, ttl: ttl}
}

func key(sid string) string {
	return storageKey + ":" + sid
}

func (s *Service) Open(ctx context.Context, sid string, opts Options) error {
	d := Dialog{
		Title:       opts.Title,
		Content:     opts.Content,
		Dismissible: true,
		Action:      opts.Action,
	}
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	if opts.Dismissible != nil {
		d.Dismissible = *opts.Dismissible
	}

	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, key(sid), string(data), s.ttl)
}

// Current 当前打开的弹窗，没有时返回 nil
func (s *Service) Current(ctx context.Context, sid string) *Dialog {
	if sid == "" {
		return nil
	}
	raw, err := s.storage.Get(ctx, key(sid))
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			logger.Log.Warn("modal storage read failed", zap.String("sid", sid), zap.Error(err))
		}
		return nil
	}
	var d Dialog
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil
	}
	return &d
}

// Close 关闭当前弹窗；不可关闭的弹窗保持不变，返回 false
func (s *Service) Close(ctx context.Context, sid string) (bool, error) {
	d := s.Current(ctx, sid)
	if d == nil {
		return true, nil
	}
	if !d.Dismissible {
		return false, nil
	}
	if err := s.storage.Delete(ctx, key(sid)); err != nil {
		return false, err
	}
	return true, nil
}

// Dismiss 无条件清除弹窗，用于点击主按钮后的跳转
func (s *Service) Dismiss(ctx context.Context, sid string) error {
	err := s.storage.Delete(ctx, key(sid))
	if errors.Is(err, session.ErrNotFound) {
		return nil
	}
	return err
}

func Bool(v bool) *bool {
	return &v
}
