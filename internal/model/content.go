package model

import (
	"regexp"
	"sort"
	"strings"
)

type QuestionType string

const (
	SingleChoice QuestionType = "单选题"
	TrueFalse    QuestionType = "判断题"
	Coding       QuestionType = "编程题"
)

// QuestionTypes 后台表单中的题型顺序
var QuestionTypes = []QuestionType{TrueFalse, SingleChoice, Coding}

func (t QuestionType) Valid() bool {
	for _, v := range QuestionTypes {
		if t == v {
			return true
		}
	}
	return false
}

const (
	DifficultyBasic     = "基础"
	DifficultyAdvanced  = "进阶"
	DifficultyChallenge = "挑战"
)

// Difficulties 按由易到难排列
var Difficulties = []string{DifficultyBasic, DifficultyAdvanced, DifficultyChallenge}

func ValidDifficulty(d string) bool {
	for _, v := range Difficulties {
		if d == v {
			return true
		}
	}
	return false
}

const (
	AnswerTrue  = "正确"
	AnswerFalse = "错误"
)

// swagger:model Chapter
type Chapter struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Order       int     `json:"order"`
	Description *string `json:"description,omitempty"`
	Body        string  `json:"body"`
}

// SortChapters 按 order 升序，稳定排序保留后端给出的相对顺序
func SortChapters(chapters []Chapter) []Chapter {
	sorted := make([]Chapter, len(chapters))
	copy(sorted, chapters)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return sorted
}

// swagger:model Question
type Question struct {
	Slug             string       `json:"slug"`
	Chapter          string       `json:"chapter"`
	Difficulty       string       `json:"difficulty"`
	Type             QuestionType `json:"type"`
	Title            *string      `json:"title,omitempty"`
	MemoryLimit      *int64       `json:"memory_limit,omitempty"`
	ShowInTutorial   bool         `json:"show_in_tutorial"`
	ShowInBank       bool         `json:"show_in_bank"`
	Prompt           string       `json:"prompt"`
	Answer           *string      `json:"answer,omitempty"`
	Explanation      *string      `json:"explanation,omitempty"`
	CommonMistakes   *string      `json:"common_mistakes,omitempty"`
	AdvancedInsights *string      `json:"advanced_insights,omitempty"`
}

func (q *Question) IsObjective() bool {
	return q.Type == SingleChoice || q.Type == TrueFalse
}

func (q *Question) IsCoding() bool {
	return q.Type == Coding
}

func (q *Question) AnswerText() string {
	if q.Answer == nil {
		return ""
	}
	return *q.Answer
}

// DisplayTitle 优先使用简称，否则取题干摘要
func (q *Question) DisplayTitle() string {
	if q.Title != nil && strings.TrimSpace(*q.Title) != "" {
		return *q.Title
	}
	return Excerpt(q.Prompt)
}

// MemoryLimitMB 以 MB 展示，未设置时为 0
func (q *Question) MemoryLimitMB() int64 {
	if q.MemoryLimit == nil {
		return 0
	}
	return (*q.MemoryLimit + 512*1024) / (1024 * 1024)
}

const excerptLength = 90

var (
	markdownPunct = regexp.MustCompile("[#*>`-]")
	whitespace    = regexp.MustCompile(`\s+`)
)

// Excerpt 去掉 Markdown 标记后截取前 90 个字符
func Excerpt(prompt string) string {
	clean := markdownPunct.ReplaceAllString(prompt, " ")
	clean = strings.TrimSpace(whitespace.ReplaceAllString(clean, " "))
	runes := []rune(clean)
	if len(runes) <= excerptLength {
		return clean
	}
	return string(runes[:excerptLength]) + "…"
}

type Option struct {
	Key   string
	Label string
}

var optionLine = regexp.MustCompile(`^\s*(?:[-*]\s*)?\(?([A-H])\s*[\.、．\):：]\s*(.+)$`)

// Options 单选题从题干中解析 "A. xxx" 形式的选项，判断题固定为 正确/错误
func (q *Question) Options() []Option {
	switch q.Type {
	case TrueFalse:
		return []Option{{Key: AnswerTrue, Label: AnswerTrue}, {Key: AnswerFalse, Label: AnswerFalse}}
	case SingleChoice:
		return ExtractOptions(q.Prompt)
	default:
		return nil
	}
}

func ExtractOptions(prompt string) []Option {
	var options []Option
	seen := make(map[string]bool)
	for _, line := range strings.Split(prompt, "\n") {
		m := optionLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key := m[1]
		if seen[key] {
			continue
		}
		seen[key] = true
		options = append(options, Option{Key: key, Label: strings.TrimSpace(m[2])})
	}
	return options
}

// QuestionFilter 题库列表的筛选条件，空字符串表示不限
type QuestionFilter struct {
	Chapter    string
	Difficulty string
}

// swagger:model ChapterUpsert
type ChapterUpsert struct {
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Order       int     `json:"order"`
	Description *string `json:"description,omitempty"`
	Body        string  `json:"body"`
}

// swagger:model QuestionUpsert
type QuestionUpsert struct {
	Slug             string       `json:"slug"`
	Chapter          string       `json:"chapter"`
	Difficulty       string       `json:"difficulty"`
	Type             QuestionType `json:"type"`
	Title            *string      `json:"title,omitempty"`
	MemoryLimit      *int64       `json:"memory_limit,omitempty"`
	ShowInTutorial   bool         `json:"show_in_tutorial"`
	ShowInBank       bool         `json:"show_in_bank"`
	Prompt           string       `json:"prompt"`
	Answer           *string      `json:"answer,omitempty"`
	Explanation      *string      `json:"explanation,omitempty"`
	CommonMistakes   *string      `json:"common_mistakes,omitempty"`
	AdvancedInsights *string      `json:"advanced_insights,omitempty"`
}

// OptionalString 空白字符串视为未填写
func OptionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// MemoryLimitFromMB 后台以 MB 录入，后端按字节存储；非正数表示不限
func MemoryLimitFromMB(mb int64) *int64 {
	if mb <= 0 {
		return nil
	}
	bytes := mb * 1024 * 1024
	return &bytes
}
