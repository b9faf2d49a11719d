package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"python101_web/internal/modal"
	"python101_web/internal/model"
	"python101_web/internal/service"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

// Page 所有页面共享的外壳数据
type Page struct {
	Title     string
	Nav       string
	User      *model.User
	Modal     *modal.Dialog
	UserAgent string
	// Return 关闭弹窗后回到的地址
	Return  string
	Content interface{}
}

// Renderer 每个页面模板与 layout 单独组合，避免各页面的 content 定义互相覆盖
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		name := strings.TrimSuffix(path.Base(p), ".tmpl")
		t, err := template.New("layout.tmpl").Funcs(Funcs()).ParseFS(templateFS, "templates/layout.tmpl", p)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data interface{}) render.Render {
	t, ok := r.templates[name]
	if !ok {
		t = r.templates["message"]
		data = missingTemplate(name, data)
	}
	return render.HTML{Template: t, Name: "layout.tmpl", Data: data}
}

func missingTemplate(name string, data interface{}) interface{} {
	page, ok := data.(*Page)
	if !ok {
		page = &Page{}
	}
	page.Content = Message{Title: "页面不存在", Text: "未知页面：" + name, BackHref: "/", BackLabel: "返回首页"}
	return page
}

func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Message 通用提示页，例如未找到内容或无权限
type Message struct {
	Title     string
	Text      string
	BackHref  string
	BackLabel string
}

var difficultyBadges = map[string]string{
	model.DifficultyBasic:     "difficulty-badge difficulty-badge--easy",
	model.DifficultyAdvanced:  "difficulty-badge difficulty-badge--medium",
	model.DifficultyChallenge: "difficulty-badge difficulty-badge--hard",
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown": Markdown,
		"excerpt":  model.Excerpt,
		"badge": func(difficulty string) string {
			if c, ok := difficultyBadges[difficulty]; ok {
				return c
			}
			return "difficulty-badge"
		},
		"percent": func(score float64) string {
			return fmt.Sprintf("%.0f%%", score*100)
		},
		"add": func(a, b int) int { return a + b },
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
		"tutorialPath":  service.TutorialPath,
		"questionsPath": service.QuestionsPath,
		"filterQuery":   service.FilterQuery,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"isTrue": func(b *bool) bool {
			return b != nil && *b
		},
		"difficulties":  func() []string { return model.Difficulties },
		"questionTypes": func() []model.QuestionType { return model.QuestionTypes },
		"maxDevices":    func() int { return model.MaxDevicesPerUser },
	}
}
