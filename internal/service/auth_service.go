package service

import (
	"context"
	"errors"
	"strings"

	"python101_web/internal/model"
	"python101_web/internal/util"
	"python101_web/pkg/logger"

	"go.uber.org/zap"
)

var ErrCredentialsRequired = errors.New("请输入用户名和密码")

type AuthAPI interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password, deviceName, browser string) (*model.User, error)
	RemoveDevice(ctx context.Context, username, deviceName, browser string) (*model.User, error)
}

type SessionReplacer interface {
	Replace(ctx context.Context, sid string, user *model.User) error
}

// AuthService 登录、注册、退出与设备管理；每次成功都用后端返回的用户整体替换会话
type AuthService struct {
	API      AuthAPI
	Sessions SessionReplacer
}

func NewAuthService(api AuthAPI, sessions SessionReplacer) *AuthService {
	return &AuthService{API: api, Sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, sid, username, password string, device util.DeviceInfo) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	user, err := s.API.Login(ctx, username, password, device.Name, device.Browser)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Replace(ctx, sid, user); err != nil {
		return nil, err
	}
	logger.Log.Info("user logged in", zap.String("username", user.Username), zap.String("device", device.Name))
	return user, nil
}

// Register 注册成功即视为已登录
func (s *AuthService) Register(ctx context.Context, sid, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	user, err := s.API.Register(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Replace(ctx, sid, user); err != nil {
		return nil, err
	}
	logger.Log.Info("user registered", zap.String("username", user.Username))
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Sessions.Replace(ctx, sid, nil)
}

func (s *AuthService) RemoveDevice(ctx context.Context, sid string, user *model.User, deviceName, browser string) (*model.User, error) {
	updated, err := s.API.RemoveDevice(ctx, user.Username, deviceName, browser)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Replace(ctx, sid, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
