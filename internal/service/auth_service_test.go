package service

import (
	"context"
	"testing"
	"time"

	"python101_web/internal/client"
	"python101_web/internal/model"
	"python101_web/internal/session"
	"python101_web/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthAPI struct {
	loginDevice string
	loginErr    error
}

func (f *fakeAuthAPI) Register(ctx context.Context, username, password string) (*model.User, error) {
	return &model.User{Username: username}, nil
}

func (f *fakeAuthAPI) Login(ctx context.Context, username, password, deviceName, browser string) (*model.User, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.loginDevice = deviceName + "|" + browser
	return &model.User{Username: username, Devices: []model.Device{{Name: deviceName, Browser: browser}}}, nil
}

func (f *fakeAuthAPI) RemoveDevice(ctx context.Context, username, deviceName, browser string) (*model.User, error) {
	return &model.User{Username: username}, nil
}

func TestLoginReplacesSession(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), time.Hour)
	api := &fakeAuthAPI{}
	s := NewAuthService(api, store)

	user, err := s.Login(context.Background(), "sid", " alice ", "pw", util.DeviceInfo{Name: "macOS", Browser: "Safari"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "macOS|Safari", api.loginDevice)
	assert.Len(t, store.Current(context.Background(), "sid").Devices, 1)

	updated, err := s.RemoveDevice(context.Background(), "sid", user, "macOS", "Safari")
	require.NoError(t, err)
	assert.Empty(t, updated.Devices)
	assert.Empty(t, store.Current(context.Background(), "sid").Devices)

	require.NoError(t, s.Logout(context.Background(), "sid"))
	assert.Nil(t, store.Current(context.Background(), "sid"))
}

func TestLoginFailureKeepsLoggedOut(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), time.Hour)
	s := NewAuthService(&fakeAuthAPI{loginErr: &client.APIError{Status: 403, Detail: "设备数量已达上限"}}, store)

	_, err := s.Login(context.Background(), "sid", "alice", "pw", util.DeviceInfo{})
	assert.Equal(t, "设备数量已达上限", client.Detail(err))
	assert.Nil(t, store.Current(context.Background(), "sid"))

	_, err = s.Register(context.Background(), "sid", "", "pw")
	assert.ErrorIs(t, err, ErrCredentialsRequired)
}
