package service

import (
	"context"
	"net/url"

	"python101_web/internal/client"
	"python101_web/internal/model"
	"python101_web/internal/util"
)

type ContentAPI interface {
	ListChapters(ctx context.Context) ([]model.Chapter, error)
	ListQuestions(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error)
	GetQuestion(ctx context.Context, slug string) (*model.Question, error)
}

type ContentService struct {
	API ContentAPI
}

func NewContentService(api ContentAPI) *ContentService {
	return &ContentService{API: api}
}

// Chapters 返回按 order 升序排列的章节
func (s *ContentService) Chapters(ctx context.Context) ([]model.Chapter, error) {
	chapters, err := s.API.ListChapters(ctx)
	if err != nil {
		return nil, err
	}
	return model.SortChapters(chapters), nil
}

// TutorialPage 教程页当前章节及翻页信息
type TutorialPage struct {
	Chapters []model.Chapter
	Active   *model.Chapter
	Index    int
	HasPrev  bool
	HasNext  bool
}

// Tutorial 解析教程页要展示的章节。请求的 slug 为空或不存在时返回第一章的跳转地址
func (s *ContentService) Tutorial(ctx context.Context, slug string) (*TutorialPage, string, error) {
	chapters, err := s.Chapters(ctx)
	if err != nil {
		return nil, "", err
	}
	page := &TutorialPage{Chapters: chapters, Index: -1}
	if len(chapters) == 0 {
		return page, "", nil
	}

	idx := chapterIndex(chapters, slug)
	if idx < 0 {
		return nil, TutorialPath(chapters[0].Slug), nil
	}
	page.Active = &chapters[idx]
	page.Index = idx
	page.HasPrev = idx > 0
	page.HasNext = idx < len(chapters)-1
	return page, "", nil
}

// NextPath 下一章；最后一章进入按本章筛选的题库
func (s *ContentService) NextPath(ctx context.Context, slug string) (string, error) {
	chapters, err := s.Chapters(ctx)
	if err != nil {
		return "", err
	}
	return NextChapterPath(chapters, slug), nil
}

// PrevPath 上一章；第一章停留在原地
func (s *ContentService) PrevPath(ctx context.Context, slug string) (string, error) {
	chapters, err := s.Chapters(ctx)
	if err != nil {
		return "", err
	}
	return PrevChapterPath(chapters, slug), nil
}

func chapterIndex(chapters []model.Chapter, slug string) int {
	if slug == "" {
		return -1
	}
	for i := range chapters {
		if chapters[i].Slug == slug {
			return i
		}
	}
	return -1
}

func TutorialPath(slug string) string {
	return "/tutorial/" + url.PathEscape(slug)
}

func NextChapterPath(chapters []model.Chapter, slug string) string {
	if len(chapters) == 0 {
		return "/tutorial"
	}
	idx := chapterIndex(chapters, slug)
	switch {
	case idx < 0:
		return TutorialPath(chapters[0].Slug)
	case idx < len(chapters)-1:
		return TutorialPath(chapters[idx+1].Slug)
	default:
		return QuestionsPath("", model.QuestionFilter{Chapter: slug})
	}
}

func PrevChapterPath(chapters []model.Chapter, slug string) string {
	if len(chapters) == 0 {
		return "/tutorial"
	}
	idx := chapterIndex(chapters, slug)
	if idx <= 0 {
		return TutorialPath(chapters[0].Slug)
	}
	return TutorialPath(chapters[idx-1].Slug)
}

// ParseFilter 查询串是筛选条件的唯一来源
func ParseFilter(values url.Values) model.QuestionFilter {
	return model.QuestionFilter{
		Chapter:    values.Get("chapter"),
		Difficulty: values.Get("difficulty"),
	}
}

// FilterQuery 只编码已设置的条件
func FilterQuery(filter model.QuestionFilter) string {
	values := url.Values{}
	if filter.Chapter != "" {
		values.Set("chapter", filter.Chapter)
	}
	if filter.Difficulty != "" {
		values.Set("difficulty", filter.Difficulty)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// QuestionsPath 题库列表或题目详情地址，保留筛选条件
func QuestionsPath(slug string, filter model.QuestionFilter) string {
	path := "/questions"
	if slug != "" {
		path += "/" + url.PathEscape(slug)
	}
	return path + FilterQuery(filter)
}

type QuestionListPage struct {
	Chapters  []model.Chapter
	Questions []model.Question
	Filter    model.QuestionFilter
	Error     string
}

// ChapterLabel 当前筛选章节的标题
func (p *QuestionListPage) ChapterLabel() string {
	if p.Filter.Chapter == "" {
		return "全部章节"
	}
	for _, c := range p.Chapters {
		if c.Slug == p.Filter.Chapter {
			return c.Title
		}
	}
	return p.Filter.Chapter
}

func (p *QuestionListPage) DifficultyLabel() string {
	if p.Filter.Difficulty == "" {
		return "全部难度"
	}
	return p.Filter.Difficulty
}

// QuestionList 每次都重新拉取列表，整体替换而不做增量合并。加载失败不影响页面其余部分
func (s *ContentService) QuestionList(ctx context.Context, filter model.QuestionFilter) *QuestionListPage {
	page := &QuestionListPage{Filter: filter}
	chapters, err := s.Chapters(ctx)
	if err != nil {
		page.Error = client.Detail(err)
	}
	page.Chapters = chapters

	questions, err := s.API.ListQuestions(ctx, filter)
	if err != nil {
		page.Error = client.Detail(err)
		return page
	}
	page.Questions = questions
	return page
}

type QuestionDetailPage struct {
	Question    *model.Question
	Chapter     *model.Chapter
	NextChapter *model.Chapter
	Filter      model.QuestionFilter
}

func (s *ContentService) Question(ctx context.Context, slug string) (*model.Question, error) {
	q, err := s.API.GetQuestion(ctx, slug)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// QuestionDetail 题目详情及面包屑：所属章节与下一个知识点
func (s *ContentService) QuestionDetail(ctx context.Context, slug string, filter model.QuestionFilter) (*QuestionDetailPage, error) {
	q, err := s.Question(ctx, slug)
	if err != nil {
		return nil, err
	}
	page := &QuestionDetailPage{Question: q, Filter: filter}

	// 章节加载失败时只是不显示面包屑
	chapters, err := s.Chapters(ctx)
	if err != nil {
		return page, nil
	}
	if idx := chapterIndex(chapters, q.Chapter); idx >= 0 {
		page.Chapter = &chapters[idx]
		if idx < len(chapters)-1 {
			page.NextChapter = &chapters[idx+1]
		}
	}
	return page, nil
}

// QuestionTitles 学习记录页用于把 slug 显示为题目标题；加载失败时返回空表
func (s *ContentService) QuestionTitles(ctx context.Context) map[string]string {
	titles := make(map[string]string)
	questions, err := s.API.ListQuestions(ctx, model.QuestionFilter{})
	if err != nil {
		return titles
	}
	for i := range questions {
		titles[questions[i].Slug] = questions[i].DisplayTitle()
	}
	return titles
}
