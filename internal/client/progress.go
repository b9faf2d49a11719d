package client

import (
	"context"
	"net/http"

	"python101_web/internal/model"
)

// RecordProgress 返回后端最新的完整用户快照
func (c *Client) RecordProgress(ctx context.Context, username, questionSlug string, score float64) (*model.User, error) {
	var resp model.AuthResponse
	err := c.do(ctx, "recordProgress", http.MethodPost, "/progress/record", nil, model.ProgressRequest{
		Username:     username,
		QuestionSlug: questionSlug,
		Score:        score,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}
