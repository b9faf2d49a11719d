package client

import (
	"context"
	"net/http"
	"net/url"

	"python101_web/internal/model"
)

func (c *Client) AdminListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, "adminListUsers", http.MethodGet, "/admin/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) AdminGetUser(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, "adminGetUser", http.MethodGet, "/admin/users/"+url.PathEscape(username), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) AdminListQuestions(ctx context.Context) ([]model.Question, error) {
	var questions []model.Question
	if err := c.do(ctx, "adminListQuestions", http.MethodGet, "/admin/questions", nil, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// AdminUpsertChapter 按 slug 新建或覆盖
func (c *Client) AdminUpsertChapter(ctx context.Context, payload model.ChapterUpsert) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := c.do(ctx, "adminUpsertChapter", http.MethodPost, "/admin/chapters", nil, payload, &chapter); err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (c *Client) AdminUpsertQuestion(ctx context.Context, payload model.QuestionUpsert) (*model.Question, error) {
	var question model.Question
	if err := c.do(ctx, "adminUpsertQuestion", http.MethodPost, "/admin/questions", nil, payload, &question); err != nil {
		return nil, err
	}
	return &question, nil
}
