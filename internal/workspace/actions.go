package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"python101_web/internal/client"
	"python101_web/internal/modal"
	"python101_web/internal/model"
	"python101_web/pkg/logger"

	"go.uber.org/zap"
)

var (
	ErrNoOption      = errors.New("请先选择一个选项再提交。")
	ErrEmptyCode     = errors.New("请先在编辑器中编写代码。")
	ErrLoginRequired = errors.New("请先登录账号以记录做题进度。")
	ErrNotObjective  = errors.New("该题目不是客观题")
	ErrNotCoding     = errors.New("该题目不是编程题")
)

// CheckOutcome 客观题提交结果
type CheckOutcome struct {
	Correct  bool `json:"correct"`
	Recorded bool `json:"recorded"`
}

// NormalizeSelection 单选题统一为大写，判断题原样比较
func NormalizeSelection(t model.QuestionType, value string) string {
	value = strings.TrimSpace(value)
	if t == model.SingleChoice {
		return strings.ToUpper(value)
	}
	return value
}

func (w *Workspace) promptLogin(ctx context.Context) {
	w.openModal(ctx, modal.Options{
		Title:   "需要登录",
		Content: ErrLoginRequired.Error(),
		Action:  &modal.Action{Label: "前往登录", Href: "/login"},
	})
}

func (w *Workspace) openModal(ctx context.Context, opts modal.Options) {
	if err := w.deps.modals.Open(ctx, w.sid, opts); err != nil {
		logger.Log.Warn("open modal failed", zap.String("sid", w.sid), zap.String("title", opts.Title), zap.Error(err))
	}
}

// recordProgress 记录完成情况，并用服务端返回的用户整体替换会话中的用户
func (w *Workspace) recordProgress(ctx context.Context, user *model.User, slug string) error {
	updated, err := w.deps.backend.RecordProgress(ctx, user.Username, slug, 1)
	if err != nil {
		return err
	}
	return w.deps.sessions.Replace(ctx, w.sid, updated)
}

// CheckObjective 提交单选题或判断题
func (w *Workspace) CheckObjective(ctx context.Context, q *model.Question) (CheckOutcome, error) {
	if !q.IsObjective() {
		return CheckOutcome{}, ErrNotObjective
	}

	selected := w.selection(q.Slug)
	if strings.TrimSpace(selected) == "" {
		w.openModal(ctx, modal.Options{Content: ErrNoOption.Error()})
		return CheckOutcome{}, ErrNoOption
	}

	if NormalizeSelection(q.Type, selected) != NormalizeSelection(q.Type, q.AnswerText()) {
		w.openModal(ctx, modal.Options{Title: "再想想", Content: "答案不完全正确，再试一次吧。"})
		return CheckOutcome{}, nil
	}

	w.triggerCelebration(q.Slug)

	user := w.deps.sessions.Current(ctx, w.sid)
	if user == nil {
		w.promptLogin(ctx)
		return CheckOutcome{Correct: true}, nil
	}

	if err := w.recordProgress(ctx, user, q.Slug); err != nil {
		logger.Log.Warn("record progress failed",
			zap.String("username", user.Username),
			zap.String("question", q.Slug),
			zap.Error(err),
		)
		w.openModal(ctx, modal.Options{Title: "操作失败", Content: client.Detail(err)})
		return CheckOutcome{Correct: true}, nil
	}
	return CheckOutcome{Correct: true, Recorded: true}, nil
}

// Run 在沙箱中运行当前草稿，不影响做题进度
func (w *Workspace) Run(ctx context.Context, q *model.Question) (RunState, error) {
	if !q.IsCoding() {
		return RunState{}, ErrNotCoding
	}

	code, stdin := w.draft(q.Slug)
	w.updateRun(q.Slug, func(st *RunState) {
		st.Loading = true
		st.Error = ""
	})

	payload := model.ExecutionPayload{
		Code:        code,
		MemoryLimit: q.MemoryLimit,
	}
	if stdin != "" {
		payload.Stdin = &stdin
	}
	if limit := w.deps.executeTimeLimit(); limit > 0 {
		payload.TimeLimit = &limit
	}

	result, err := w.deps.backend.ExecuteCode(ctx, payload)
	w.updateRun(q.Slug, func(st *RunState) {
		st.Loading = false
		if err != nil {
			st.Result = nil
			st.Error = client.Detail(err)
			return
		}
		st.Result = result
		st.Error = ""
	})
	return w.State(q.Slug).Run, nil
}

// Judge 提交编程题给判题服务，通过后记录进度
func (w *Workspace) Judge(ctx context.Context, q *model.Question) (JudgeState, error) {
	if !q.IsCoding() {
		return JudgeState{}, ErrNotCoding
	}

	user := w.deps.sessions.Current(ctx, w.sid)
	if user == nil {
		w.promptLogin(ctx)
		return JudgeState{}, ErrLoginRequired
	}

	code, _ := w.draft(q.Slug)
	if strings.TrimSpace(code) == "" {
		w.openModal(ctx, modal.Options{Content: ErrEmptyCode.Error()})
		return JudgeState{}, ErrEmptyCode
	}

	w.updateJudge(q.Slug, func(st *JudgeState) {
		*st = JudgeState{Loading: true, Feedback: []string{}}
	})

	prompt, err := json.Marshal(model.JudgePayload{
		Question:  q.Prompt,
		Reference: q.AnswerText(),
		UserCode:  code,
	})
	if err != nil {
		return JudgeState{}, err
	}

	result, err := w.deps.backend.JudgeAnswer(ctx, w.deps.SystemPrompt(), string(prompt))
	if err != nil {
		w.updateJudge(q.Slug, func(st *JudgeState) {
			st.Loading = false
			st.Error = client.Detail(err)
		})
		return w.State(q.Slug).Judge, nil
	}

	passed := result.Passed
	w.updateJudge(q.Slug, func(st *JudgeState) {
		st.Feedback = result.FeedbackSteps
		st.Passed = &passed
	})

	if passed {
		if err := w.recordProgress(ctx, user, q.Slug); err != nil {
			logger.Log.Warn("record progress failed",
				zap.String("username", user.Username),
				zap.String("question", q.Slug),
				zap.Error(err),
			)
			w.updateJudge(q.Slug, func(st *JudgeState) {
				st.Loading = false
				st.Error = client.Detail(err)
			})
			return w.State(q.Slug).Judge, nil
		}
		w.triggerCelebration(q.Slug)
	}

	w.updateJudge(q.Slug, func(st *JudgeState) {
		st.Loading = false
	})
	return w.State(q.Slug).Judge, nil
}
