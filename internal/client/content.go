package client

import (
	"context"
	"net/http"
	"net/url"

	"python101_web/internal/model"
)

func (c *Client) ListChapters(ctx context.Context) ([]model.Chapter, error) {
	var chapters []model.Chapter
	if err := c.do(ctx, "listChapters", http.MethodGet, "/content/chapters", nil, nil, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

func (c *Client) GetChapter(ctx context.Context, slug string) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := c.do(ctx, "getChapter", http.MethodGet, "/content/chapters/"+url.PathEscape(slug), nil, nil, &chapter); err != nil {
		return nil, err
	}
	return &chapter, nil
}

// ListQuestions 空的筛选字段不会出现在查询串中
func (c *Client) ListQuestions(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	query := url.Values{}
	if filter.Chapter != "" {
		query.Set("chapter", filter.Chapter)
	}
	if filter.Difficulty != "" {
		query.Set("difficulty", filter.Difficulty)
	}

	var questions []model.Question
	if err := c.do(ctx, "listQuestions", http.MethodGet, "/content/questions", query, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *Client) GetQuestion(ctx context.Context, slug string) (*model.Question, error) {
	var question model.Question
	if err := c.do(ctx, "getQuestion", http.MethodGet, "/content/questions/"+url.PathEscape(slug), nil, nil, &question); err != nil {
		return nil, err
	}
	return &question, nil
}
