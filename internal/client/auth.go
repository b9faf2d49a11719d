package client

import (
	"context"
	"net/http"

	"python101_web/internal/model"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	DeviceName string `json:"device_name"`
	Browser    string `json:"browser"`
}

type deviceRemovalRequest struct {
	Username   string `json:"username"`
	DeviceName string `json:"device_name"`
	Browser    string `json:"browser"`
}

func (c *Client) Register(ctx context.Context, username, password string) (*model.User, error) {
	var resp model.AuthResponse
	err := c.do(ctx, "register", http.MethodPost, "/auth/register", nil,
		registerRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login 同时登记当前设备，设备数超过上限时由后端拒绝
func (c *Client) Login(ctx context.Context, username, password, deviceName, browser string) (*model.User, error) {
	var resp model.AuthResponse
	err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, loginRequest{
		Username:   username,
		Password:   password,
		DeviceName: deviceName,
		Browser:    browser,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) RemoveDevice(ctx context.Context, username, deviceName, browser string) (*model.User, error) {
	var resp model.AuthResponse
	err := c.do(ctx, "removeDevice", http.MethodDelete, "/auth/device", nil, deviceRemovalRequest{
		Username:   username,
		DeviceName: deviceName,
		Browser:    browser,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}
