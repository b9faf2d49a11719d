package view

import (
	"python101_web/internal/model"
	"python101_web/internal/service"
	"python101_web/internal/workspace"
)

type TutorialView struct {
	*service.TutorialPage
	Error string
}

type QuestionListView struct {
	*service.QuestionListPage
}

type QuestionDetailView struct {
	*service.QuestionDetailPage
	State     workspace.QuestionState
	Options   []model.Option
	Completed bool
	// Action 表单提交地址的查询串，保留筛选条件
	Query string
}

type ProgressView struct {
	User   *model.User
	Titles map[string]string
}

// Title 优先显示题目简称，否则显示 slug
func (v ProgressView) Title(slug string) string {
	if t, ok := v.Titles[slug]; ok && t != "" {
		return t
	}
	return slug
}

const (
	LoginModeLogin    = "login"
	LoginModeRegister = "register"
)

type LoginView struct {
	Mode     string
	Username string
	Message  string
}

func (v LoginView) Register() bool {
	return v.Mode == LoginModeRegister
}

type AdminView struct {
	*service.AdminOverview
	Message         string
	ImportErrors    []string
	DefaultMemoryMB int
	DefaultChapter  string
}
