package model

// swagger:model JudgeResult
type JudgeResult struct {
	Passed        bool     `json:"passed"`
	FeedbackSteps []string `json:"feedback_steps"`
}

type JudgeRequest struct {
	SystemPrompt string `json:"system_prompt"`
	Prompt       string `json:"prompt"`
}

// JudgePayload 序列化后作为 JudgeRequest.Prompt 发送
type JudgePayload struct {
	Question  string `json:"question"`
	Reference string `json:"reference"`
	UserCode  string `json:"user_code"`
}

// swagger:model ExecutionPayload
type ExecutionPayload struct {
	Code        string   `json:"code"`
	Stdin       *string  `json:"stdin,omitempty"`
	TimeLimit   *float64 `json:"time_limit,omitempty"`
	MemoryLimit *int64   `json:"memory_limit,omitempty"`
}

// swagger:model ExecutionResult
type ExecutionResult struct {
	Success bool    `json:"success"`
	Stdout  string  `json:"stdout"`
	Stderr  string  `json:"stderr"`
	Error   *string `json:"error,omitempty"`
}

type ProgressRequest struct {
	Username     string  `json:"username"`
	QuestionSlug string  `json:"question_slug"`
	Score        float64 `json:"score"`
}
