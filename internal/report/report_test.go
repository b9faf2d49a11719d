package report

import (
	"bytes"
	"testing"
	"time"

	"python101_web/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow("Sheet1", axis, &row))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestParseQuestions(t *testing.T) {
	header := make([]interface{}, len(questionColumns))
	for i, c := range questionColumns {
		header[i] = c
	}
	buf := buildSheet(t, [][]interface{}{
		header,
		{"q1", "ch1", "基础", "判断题", "", "", "", "否", "Python 是解释型语言", "正确"},
		{"q2", "ch1", "挑战", "编程题", "求和", "16", "是", "是", "计算 1+2", "print(3)", "直接输出"},
		{"q3", "ch1", "困难", "单选题", "", "", "", "", "题干"},
		{"", "ch1", "基础", "单选题", "", "", "", "", "题干"},
		{"q5", "ch1", "", "填空题", "", "", "", "", "题干"},
	})

	parsed, rowErrs, err := ParseQuestions(buf)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	first := parsed[0]
	assert.Equal(t, 2, first.Row)
	assert.Equal(t, "q1", first.Question.Slug)
	assert.Equal(t, model.TrueFalse, first.Question.Type)
	assert.True(t, first.Question.ShowInTutorial)
	assert.False(t, first.Question.ShowInBank)
	assert.Nil(t, first.Question.Title)
	assert.Nil(t, first.Question.MemoryLimit)
	require.NotNil(t, first.Question.Answer)
	assert.Equal(t, "正确", *first.Question.Answer)

	second := parsed[1].Question
	assert.Equal(t, 3, parsed[1].Row)
	require.NotNil(t, second.MemoryLimit)
	assert.Equal(t, int64(16*1024*1024), *second.MemoryLimit)
	require.NotNil(t, second.Title)
	assert.Equal(t, "求和", *second.Title)
	require.NotNil(t, second.Explanation)
	assert.Nil(t, second.CommonMistakes)

	require.Len(t, rowErrs, 3)
	assert.Equal(t, 4, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Message, "未知难度")
	assert.Equal(t, 5, rowErrs[1].Row)
	assert.Contains(t, rowErrs[1].Error(), "第 5 行")
	assert.Contains(t, rowErrs[2].Message, "未知题型")
}

func TestParseQuestionsRejectsGarbage(t *testing.T) {
	_, _, err := ParseQuestions(bytes.NewBufferString("not an xlsx"))
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	title := "变量交换"
	users := []model.User{
		{
			Username: "alice",
			Devices:  []model.Device{{Name: "macOS", Browser: "Safari", LastLogin: model.Timestamp{Time: time.Now()}}},
			Progress: []model.ProgressEntry{{QuestionSlug: "q1", Score: 1, CompletedAt: model.Timestamp{Time: time.Now()}}},
		},
		{Username: "root", IsAdmin: true},
	}
	questions := []model.Question{{Slug: "q1", Title: &title, Chapter: "ch1", Difficulty: "基础", Type: model.Coding}}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, users, questions))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetUsers, sheetDevices, sheetProgress, sheetQuestions}, f.GetSheetList())

	userRows, err := f.GetRows(sheetUsers)
	require.NoError(t, err)
	require.Len(t, userRows, 3)
	assert.Equal(t, []string{"alice", "学习者", "1", "1"}, userRows[1])
	assert.Equal(t, "管理员", userRows[2][1])

	progressRows, err := f.GetRows(sheetProgress)
	require.NoError(t, err)
	require.Len(t, progressRows, 2)
	assert.Equal(t, "变量交换", progressRows[1][2])
	assert.Equal(t, "100%", progressRows[1][3])
}

func TestWriteQuestionTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteQuestionTemplate(&buf))

	parsed, rowErrs, err := ParseQuestions(&buf)
	require.NoError(t, err)
	assert.Empty(t, parsed)
	assert.Empty(t, rowErrs)
}
