package workspace

import (
	"context"
	"sync"
	"time"

	"python101_web/internal/modal"
	"python101_web/internal/model"
)

// Backend 题目交互用到的后端接口，由 client.Client 实现
type Backend interface {
	ExecuteCode(ctx context.Context, payload model.ExecutionPayload) (*model.ExecutionResult, error)
	JudgeAnswer(ctx context.Context, systemPrompt, prompt string) (*model.JudgeResult, error)
	RecordProgress(ctx context.Context, username, questionSlug string, score float64) (*model.User, error)
}

type Sessions interface {
	Current(ctx context.Context, sid string) *model.User
	Replace(ctx context.Context, sid string, user *model.User) error
}

type Modals interface {
	Open(ctx context.Context, sid string, opts modal.Options) error
}

// swagger:model RunState
type RunState struct {
	Loading bool                   `json:"loading"`
	Result  *model.ExecutionResult `json:"result"`
	Error   string                 `json:"error,omitempty"`
}

// swagger:model JudgeState
type JudgeState struct {
	Loading  bool     `json:"loading"`
	Feedback []string `json:"feedback"`
	Passed   *bool    `json:"passed"`
	Error    string   `json:"error,omitempty"`
}

// swagger:model QuestionState
type QuestionState struct {
	Slug        string     `json:"slug"`
	Code        string     `json:"code"`
	Stdin       string     `json:"stdin"`
	Selected    string     `json:"selected"`
	Run         RunState   `json:"run"`
	Judge       JudgeState `json:"judge"`
	Celebrating bool       `json:"celebrating"`
}

type celebration struct {
	timer *time.Timer
	gen   uint64
}

// Workspace 一个浏览器会话在题库页上的临时状态，全部按题目 slug 分开存放，
// 互不共享。离开题库页时通过 Teardown 整体销毁。
type Workspace struct {
	sid  string
	deps *Registry

	mu          sync.Mutex
	codes       map[string]string
	stdins      map[string]string
	selected    map[string]string
	runs        map[string]RunState
	judges      map[string]JudgeState
	celebrating map[string]bool
	timers      map[string]*celebration
	gen         uint64
	lastActive  time.Time
	closed      bool
}

func newWorkspace(sid string, deps *Registry) *Workspace {
	return &Workspace{
		sid:         sid,
		deps:        deps,
		codes:       make(map[string]string),
		stdins:      make(map[string]string),
		selected:    make(map[string]string),
		runs:        make(map[string]RunState),
		judges:      make(map[string]JudgeState),
		celebrating: make(map[string]bool),
		timers:      make(map[string]*celebration),
		lastActive:  deps.now(),
	}
}

func (w *Workspace) SessionID() string {
	return w.sid
}

func (w *Workspace) touch() {
	w.lastActive = w.deps.now()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastActive
}

// SetDraft 保存编辑器中的代码与模拟输入
func (w *Workspace) SetDraft(slug, code, stdin string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.touch()
	w.codes[slug] = code
	w.stdins[slug] = stdin
}

func (w *Workspace) Select(slug, option string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.touch()
	w.selected[slug] = option
}

// State 返回某道题的状态快照，用于渲染
func (w *Workspace) State(slug string) QuestionState {
	w.mu.Lock()
	defer w.mu.Unlock()

	judge := w.judges[slug]
	feedback := make([]string, len(judge.Feedback))
	copy(feedback, judge.Feedback)
	judge.Feedback = feedback

	return QuestionState{
		Slug:        slug,
		Code:        w.codes[slug],
		Stdin:       w.stdins[slug],
		Selected:    w.selected[slug],
		Run:         w.runs[slug],
		Judge:       judge,
		Celebrating: w.celebrating[slug],
	}
}

func (w *Workspace) Celebrating(slug string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.celebrating[slug]
}

// triggerCelebration 重复触发会重置计时而不是叠加
func (w *Workspace) triggerCelebration(slug string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	if prev, ok := w.timers[slug]; ok {
		prev.timer.Stop()
	}
	w.gen++
	gen := w.gen
	w.celebrating[slug] = true
	w.timers[slug] = &celebration{
		gen: gen,
		timer: time.AfterFunc(w.deps.celebrationWindow(), func() {
			w.clearCelebration(slug, gen)
		}),
	}
}

func (w *Workspace) clearCelebration(slug string, gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	// 已被新的触发替换的计时器不再生效
	if c, ok := w.timers[slug]; !ok || c.gen != gen {
		return
	}
	w.celebrating[slug] = false
	delete(w.timers, slug)
}

func (w *Workspace) updateRun(slug string, fn func(*RunState)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	st := w.runs[slug]
	fn(&st)
	w.runs[slug] = st
}

func (w *Workspace) updateJudge(slug string, fn func(*JudgeState)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	st := w.judges[slug]
	fn(&st)
	w.judges[slug] = st
}

func (w *Workspace) draft(slug string) (code, stdin string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()
	return w.codes[slug], w.stdins[slug]
}

func (w *Workspace) selection(slug string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()
	return w.selected[slug]
}

// Teardown 停止所有计时器并清空状态；之后到达的请求结果直接丢弃
func (w *Workspace) Teardown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	for slug, c := range w.timers {
		c.timer.Stop()
		delete(w.timers, slug)
	}
	w.codes = map[string]string{}
	w.stdins = map[string]string{}
	w.selected = map[string]string{}
	w.runs = map[string]RunState{}
	w.judges = map[string]JudgeState{}
	w.celebrating = map[string]bool{}
}

func (w *Workspace) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// pendingTimers 仅供测试观察
func (w *Workspace) pendingTimers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.timers)
}
