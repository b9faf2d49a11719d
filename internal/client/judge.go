package client

import (
	"context"
	"net/http"

	"python101_web/internal/model"
)

func (c *Client) JudgeAnswer(ctx context.Context, systemPrompt, prompt string) (*model.JudgeResult, error) {
	var result model.JudgeResult
	err := c.do(ctx, "judgeAnswer", http.MethodPost, "/judge/evaluate", nil, model.JudgeRequest{
		SystemPrompt: systemPrompt,
		Prompt:       prompt,
	}, &result)
	if err != nil {
		return nil, err
	}
	if result.FeedbackSteps == nil {
		result.FeedbackSteps = []string{}
	}
	return &result, nil
}

func (c *Client) ExecuteCode(ctx context.Context, payload model.ExecutionPayload) (*model.ExecutionResult, error) {
	var result model.ExecutionResult
	if err := c.do(ctx, "executeCode", http.MethodPost, "/execute/run", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
