package workspace

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"python101_web/pkg/logger"
	"python101_web/pkg/monitoring"

	"go.uber.org/zap"
)

// DefaultSystemPrompt 判题时固定附带的系统指令
const DefaultSystemPrompt = "你是一名耐心的 Python 新手导师，需要根据题目要求判断学习者提交的代码是否完全满足题意。请逐步指出：\n" +
	"1. 代码是否满足功能需求；\n" +
	"2. 若不满足，请列出问题，并给出修改建议；\n" +
	"3. 若满足，说明通过原因。\n" +
	"请使用中文分步说明。"

type Options struct {
	CelebrationWindow time.Duration
	IdleTimeout       time.Duration
	ExecuteTimeLimit  float64
	SystemPrompt      string
}

// Registry 按会话 ID 持有题库工作区
type Registry struct {
	backend  Backend
	sessions Sessions
	modals   Modals

	celebration atomic.Int64
	timeLimit   atomic.Value
	prompt      atomic.Value
	idle        time.Duration
	now         func() time.Time

	mu         sync.Mutex
	workspaces map[string]*Workspace
}

func NewRegistry(backend Backend, sessions Sessions, modals Modals, opts Options) *Registry {
	r := &Registry{
		backend:    backend,
		sessions:   sessions,
		modals:     modals,
		idle:       opts.IdleTimeout,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
	if r.idle <= 0 {
		r.idle = 30 * time.Minute
	}
	r.SetCelebrationWindow(opts.CelebrationWindow)
	r.SetExecuteTimeLimit(opts.ExecuteTimeLimit)
	r.SetSystemPrompt(opts.SystemPrompt)
	return r
}

func (r *Registry) SetCelebrationWindow(d time.Duration) {
	if d <= 0 {
		d = 3 * time.Second
	}
	r.celebration.Store(int64(d))
}

func (r *Registry) celebrationWindow() time.Duration {
	return time.Duration(r.celebration.Load())
}

func (r *Registry) SetExecuteTimeLimit(seconds float64) {
	r.timeLimit.Store(seconds)
}

func (r *Registry) executeTimeLimit() float64 {
	v, _ := r.timeLimit.Load().(float64)
	return v
}

// SetSystemPrompt 为空时使用默认判题指令
func (r *Registry) SetSystemPrompt(prompt string) {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultSystemPrompt
	}
	r.prompt.Store(prompt)
}

func (r *Registry) SystemPrompt() string {
	return r.prompt.Load().(string)
}

// Get 返回会话的工作区，不存在时创建
func (r *Registry) Get(sid string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ws, ok := r.workspaces[sid]; ok && !ws.Closed() {
		return ws
	}
	ws := newWorkspace(sid, r)
	r.workspaces[sid] = ws
	monitoring.ActiveWorkspaces.Set(float64(len(r.workspaces)))
	return ws
}

// Peek 只查询不创建
func (r *Registry) Peek(sid string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.workspaces[sid]
}

// Release 销毁会话的工作区，离开题库页或退出登录时调用
func (r *Registry) Release(sid string) {
	r.mu.Lock()
	ws, ok := r.workspaces[sid]
	if ok {
		delete(r.workspaces, sid)
		monitoring.ActiveWorkspaces.Set(float64(len(r.workspaces)))
	}
	r.mu.Unlock()

	if ok {
		ws.Teardown()
	}
}

// Sweep 回收长时间无操作的工作区，返回回收数量
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idle)

	r.mu.Lock()
	var stale []*Workspace
	for sid, ws := range r.workspaces {
		if ws.idleSince().Before(cutoff) {
			stale = append(stale, ws)
			delete(r.workspaces, sid)
		}
	}
	monitoring.ActiveWorkspaces.Set(float64(len(r.workspaces)))
	r.mu.Unlock()

	for _, ws := range stale {
		ws.Teardown()
	}
	if len(stale) > 0 {
		logger.Log.Info("idle workspaces released", zap.Int("count", len(stale)))
	}
	return len(stale)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Close 销毁全部工作区
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.workspaces
	r.workspaces = make(map[string]*Workspace)
	monitoring.ActiveWorkspaces.Set(0)
	r.mu.Unlock()

	for _, ws := range all {
		ws.Teardown()
	}
}
