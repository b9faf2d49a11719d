package service

import (
	"context"
	"net/url"
	"testing"

	"python101_web/internal/client"
	"python101_web/internal/model"
	"python101_web/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContentAPI struct {
	chapters  []model.Chapter
	questions []model.Question
	filters   []model.QuestionFilter
	err       error
}

func (f *fakeContentAPI) ListChapters(ctx context.Context) ([]model.Chapter, error) {
	return f.chapters, f.err
}

func (f *fakeContentAPI) ListQuestions(ctx context.Context, filter model.QuestionFilter) ([]model.Question, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Question
	for _, q := range f.questions {
		if filter.Chapter != "" && q.Chapter != filter.Chapter {
			continue
		}
		if filter.Difficulty != "" && q.Difficulty != filter.Difficulty {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (f *fakeContentAPI) GetQuestion(ctx context.Context, slug string) (*model.Question, error) {
	for i := range f.questions {
		if f.questions[i].Slug == slug {
			return &f.questions[i], nil
		}
	}
	return nil, &client.APIError{Status: 404, Detail: "Question not found"}
}

func twoChapters() *fakeContentAPI {
	return &fakeContentAPI{
		chapters: []model.Chapter{
			{Slug: "ch2", Title: "变量", Order: 2},
			{Slug: "ch1", Title: "入门", Order: 1},
		},
		questions: []model.Question{
			{Slug: "q1", Chapter: "ch1", Difficulty: "基础"},
			{Slug: "q2", Chapter: "ch1", Difficulty: "进阶"},
			{Slug: "q3", Chapter: "ch2", Difficulty: "基础"},
		},
	}
}

func TestTutorialRedirectsUnknownSlugToFirstChapter(t *testing.T) {
	s := NewContentService(twoChapters())

	page, redirect, err := s.Tutorial(context.Background(), "bad-slug")
	require.NoError(t, err)
	assert.Nil(t, page)
	assert.Equal(t, "/tutorial/ch1", redirect)

	_, redirect, err = s.Tutorial(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/tutorial/ch1", redirect)
}

func TestTutorialActiveChapter(t *testing.T) {
	s := NewContentService(twoChapters())

	page, redirect, err := s.Tutorial(context.Background(), "ch1")
	require.NoError(t, err)
	assert.Empty(t, redirect)
	assert.Equal(t, "ch1", page.Active.Slug)
	assert.False(t, page.HasPrev)
	assert.True(t, page.HasNext)

	page, _, err = s.Tutorial(context.Background(), "ch2")
	require.NoError(t, err)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestTutorialWithoutChapters(t *testing.T) {
	s := NewContentService(&fakeContentAPI{})
	page, redirect, err := s.Tutorial(context.Background(), "ch1")
	require.NoError(t, err)
	assert.Empty(t, redirect)
	assert.Nil(t, page.Active)
	assert.Empty(t, page.Chapters)
}

func TestChapterNavigation(t *testing.T) {
	chapters := model.SortChapters(twoChapters().chapters)

	assert.Equal(t, "/tutorial/ch2", NextChapterPath(chapters, "ch1"))
	assert.Equal(t, "/questions?chapter=ch2", NextChapterPath(chapters, "ch2"))
	assert.Equal(t, "/tutorial/ch1", PrevChapterPath(chapters, "ch2"))
	assert.Equal(t, "/tutorial/ch1", PrevChapterPath(chapters, "ch1"))
	assert.Equal(t, "/tutorial/ch1", NextChapterPath(chapters, "missing"))
}

func TestFilterRoundTrip(t *testing.T) {
	filter := model.QuestionFilter{Chapter: "ch1", Difficulty: "基础"}
	query := FilterQuery(filter)

	values, err := url.ParseQuery(query[1:])
	require.NoError(t, err)
	assert.Equal(t, filter, ParseFilter(values))

	assert.Empty(t, FilterQuery(model.QuestionFilter{}))
	assert.Equal(t, "/questions/q1?difficulty=%E8%BF%9B%E9%98%B6", QuestionsPath("q1", model.QuestionFilter{Difficulty: "进阶"}))
}

func TestQuestionListUsesFilter(t *testing.T) {
	api := twoChapters()
	s := NewContentService(api)

	page := s.QuestionList(context.Background(), model.QuestionFilter{Chapter: "ch1", Difficulty: "基础"})
	require.Len(t, page.Questions, 1)
	assert.Equal(t, "q1", page.Questions[0].Slug)
	assert.Equal(t, "入门", page.ChapterLabel())
	assert.Equal(t, "基础", page.DifficultyLabel())
	assert.Equal(t, "ch1", page.Chapters[0].Slug)

	// 重新筛选会整体替换列表
	page = s.QuestionList(context.Background(), model.QuestionFilter{})
	assert.Len(t, page.Questions, 3)
	assert.Equal(t, "全部章节", page.ChapterLabel())
	assert.Equal(t, "全部难度", page.DifficultyLabel())
	assert.Len(t, api.filters, 2)
}

func TestQuestionListError(t *testing.T) {
	s := NewContentService(&fakeContentAPI{err: &client.APIError{Status: 500, Detail: "服务异常"}})
	page := s.QuestionList(context.Background(), model.QuestionFilter{})
	assert.Equal(t, "服务异常", page.Error)
	assert.Empty(t, page.Questions)
}

func TestQuestionDetailBreadcrumbs(t *testing.T) {
	s := NewContentService(twoChapters())

	page, err := s.QuestionDetail(context.Background(), "q1", model.QuestionFilter{})
	require.NoError(t, err)
	assert.Equal(t, "ch1", page.Chapter.Slug)
	require.NotNil(t, page.NextChapter)
	assert.Equal(t, "ch2", page.NextChapter.Slug)

	page, err = s.QuestionDetail(context.Background(), "q3", model.QuestionFilter{})
	require.NoError(t, err)
	assert.Nil(t, page.NextChapter)

	_, err = s.QuestionDetail(context.Background(), "nope", model.QuestionFilter{})
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}
