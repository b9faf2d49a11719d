package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"python101_web/internal/client"
	"python101_web/internal/model"
	"python101_web/internal/report"
	"python101_web/pkg/logger"

	"go.uber.org/zap"
)

type AdminAPI interface {
	AdminListUsers(ctx context.Context) ([]model.User, error)
	AdminGetUser(ctx context.Context, username string) (*model.User, error)
	AdminListQuestions(ctx context.Context) ([]model.Question, error)
	AdminUpsertChapter(ctx context.Context, payload model.ChapterUpsert) (*model.Chapter, error)
	AdminUpsertQuestion(ctx context.Context, payload model.QuestionUpsert) (*model.Question, error)
	ListChapters(ctx context.Context) ([]model.Chapter, error)
}

type AdminService struct {
	API AdminAPI
}

func NewAdminService(api AdminAPI) *AdminService {
	return &AdminService{API: api}
}

type AdminOverview struct {
	Users     []model.User
	Questions []model.Question
	Chapters  []model.Chapter
	Selected  *model.User
}

// Overview 后台总览；detailUser 非空时额外加载该用户详情
func (s *AdminService) Overview(ctx context.Context, detailUser string) (*AdminOverview, error) {
	users, err := s.API.AdminListUsers(ctx)
	if err != nil {
		return nil, err
	}
	questions, err := s.API.AdminListQuestions(ctx)
	if err != nil {
		return nil, err
	}
	chapters, err := s.API.ListChapters(ctx)
	if err != nil {
		return nil, err
	}
	overview := &AdminOverview{
		Users:     users,
		Questions: questions,
		Chapters:  model.SortChapters(chapters),
	}
	if detailUser != "" {
		if overview.Selected, err = s.API.AdminGetUser(ctx, detailUser); err != nil {
			return nil, err
		}
	}
	return overview, nil
}

// ChapterForm 后台章节表单
type ChapterForm struct {
	Slug        string `form:"slug" json:"slug" binding:"required"`
	Title       string `form:"title" json:"title" binding:"required"`
	Order       int    `form:"order" json:"order" binding:"required,min=1"`
	Description string `form:"description" json:"description"`
	Body        string `form:"body" json:"body" binding:"required"`
}

func (f ChapterForm) Payload() model.ChapterUpsert {
	return model.ChapterUpsert{
		Slug:        strings.TrimSpace(f.Slug),
		Title:       f.Title,
		Order:       f.Order,
		Description: model.OptionalString(f.Description),
		Body:        f.Body,
	}
}

// QuestionForm 后台题目表单，内存限制以 MB 录入
type QuestionForm struct {
	Slug             string `form:"slug" json:"slug" binding:"required"`
	Chapter          string `form:"chapter" json:"chapter" binding:"required"`
	Difficulty       string `form:"difficulty" json:"difficulty"`
	Type             string `form:"type" json:"type"`
	Title            string `form:"title" json:"title"`
	MemoryMB         int64  `form:"memory_mb" json:"memory_mb"`
	ShowInTutorial   bool   `form:"show_in_tutorial" json:"show_in_tutorial"`
	ShowInBank       bool   `form:"show_in_bank" json:"show_in_bank"`
	Prompt           string `form:"prompt" json:"prompt" binding:"required"`
	Answer           string `form:"answer" json:"answer"`
	Explanation      string `form:"explanation" json:"explanation"`
	CommonMistakes   string `form:"common_mistakes" json:"common_mistakes"`
	AdvancedInsights string `form:"advanced_insights" json:"advanced_insights"`
}

// DefaultMemoryMB 新题目表单的默认内存限制
const DefaultMemoryMB = 8

func (f QuestionForm) Payload() (model.QuestionUpsert, error) {
	p := model.QuestionUpsert{
		Slug:             strings.TrimSpace(f.Slug),
		Chapter:          f.Chapter,
		Difficulty:       f.Difficulty,
		Type:             model.QuestionType(f.Type),
		Title:            model.OptionalString(f.Title),
		MemoryLimit:      model.MemoryLimitFromMB(f.MemoryMB),
		ShowInTutorial:   f.ShowInTutorial,
		ShowInBank:       f.ShowInBank,
		Prompt:           f.Prompt,
		Answer:           model.OptionalString(f.Answer),
		Explanation:      model.OptionalString(f.Explanation),
		CommonMistakes:   model.OptionalString(f.CommonMistakes),
		AdvancedInsights: model.OptionalString(f.AdvancedInsights),
	}
	if p.Difficulty == "" {
		p.Difficulty = model.DifficultyBasic
	}
	if p.Type == "" {
		p.Type = model.SingleChoice
	}
	if !model.ValidDifficulty(p.Difficulty) {
		return p, fmt.Errorf("未知难度 %q", p.Difficulty)
	}
	if !p.Type.Valid() {
		return p, fmt.Errorf("未知题型 %q", p.Type)
	}
	return p, nil
}

func (s *AdminService) SaveChapter(ctx context.Context, form ChapterForm) (*model.Chapter, error) {
	return s.API.AdminUpsertChapter(ctx, form.Payload())
}

func (s *AdminService) SaveQuestion(ctx context.Context, form QuestionForm) (*model.Question, error) {
	payload, err := form.Payload()
	if err != nil {
		return nil, err
	}
	return s.API.AdminUpsertQuestion(ctx, payload)
}

type ImportResult struct {
	Saved  int
	Errors []string
}

// ImportQuestions 逐行保存 xlsx 中的题目，单行失败只记录不中断
func (s *AdminService) ImportQuestions(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, rowErrs, err := report.ParseQuestions(r)
	if err != nil {
		return nil, err
	}
	result := &ImportResult{}
	for _, e := range rowErrs {
		result.Errors = append(result.Errors, e.Error())
	}
	for _, row := range rows {
		if _, err := s.API.AdminUpsertQuestion(ctx, row.Question); err != nil {
			result.Errors = append(result.Errors, report.RowError{Row: row.Row, Message: client.Detail(err)}.Error())
			continue
		}
		result.Saved++
	}
	logger.Log.Info("questions imported", zap.Int("saved", result.Saved), zap.Int("failed", len(result.Errors)))
	return result, nil
}

func (s *AdminService) Report(ctx context.Context, w io.Writer) error {
	users, err := s.API.AdminListUsers(ctx)
	if err != nil {
		return err
	}
	questions, err := s.API.AdminListQuestions(ctx)
	if err != nil {
		return err
	}
	return report.WriteReport(w, users, questions)
}
