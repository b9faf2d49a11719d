package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"python101_web/internal/model"

	"github.com/xuri/excelize/v2"
)

// 题目导入表的列顺序，第一行为表头
var questionColumns = []string{
	"slug", "chapter", "difficulty", "type", "title", "memory_limit_mb",
	"show_in_tutorial", "show_in_bank", "prompt", "answer",
	"explanation", "common_mistakes", "advanced_insights",
}

const (
	colSlug = iota
	colChapter
	colDifficulty
	colType
	colTitle
	colMemoryMB
	colShowInTutorial
	colShowInBank
	colPrompt
	colAnswer
	colExplanation
	colCommonMistakes
	colAdvancedInsights
)

type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("第 %d 行：%s", e.Row, e.Message)
}

// ParsedRow 一行成功解析的题目
type ParsedRow struct {
	Row      int
	Question model.QuestionUpsert
}

// ParseQuestions 读取第一个工作表，跳过表头和空行；单行错误不影响其余行
func ParseQuestions(r io.Reader) ([]ParsedRow, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %w", err)
	}

	var parsed []ParsedRow
	var rowErrs []RowError
	for i, row := range rows {
		if i == 0 || blank(row) {
			continue
		}
		q, err := parseRow(row)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: i + 1, Message: err.Error()})
			continue
		}
		parsed = append(parsed, ParsedRow{Row: i + 1, Question: q})
	}
	return parsed, rowErrs, nil
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseRow(row []string) (model.QuestionUpsert, error) {
	q := model.QuestionUpsert{
		Slug:       cell(row, colSlug),
		Chapter:    cell(row, colChapter),
		Difficulty: cell(row, colDifficulty),
		Type:       model.QuestionType(cell(row, colType)),
		Prompt:     cell(row, colPrompt),
	}
	if q.Slug == "" {
		return q, fmt.Errorf("缺少 slug")
	}
	if q.Chapter == "" {
		return q, fmt.Errorf("缺少所属章节")
	}
	if q.Prompt == "" {
		return q, fmt.Errorf("缺少题干")
	}
	if q.Difficulty == "" {
		q.Difficulty = model.DifficultyBasic
	}
	if !model.ValidDifficulty(q.Difficulty) {
		return q, fmt.Errorf("未知难度 %q", q.Difficulty)
	}
	if !q.Type.Valid() {
		return q, fmt.Errorf("未知题型 %q", q.Type)
	}

	if raw := cell(row, colMemoryMB); raw != "" {
		mb, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || mb < 0 {
			return q, fmt.Errorf("内存限制必须为正整数（MB）")
		}
		q.MemoryLimit = model.MemoryLimitFromMB(mb)
	}

	var err error
	if q.ShowInTutorial, err = parseFlag(cell(row, colShowInTutorial)); err != nil {
		return q, err
	}
	if q.ShowInBank, err = parseFlag(cell(row, colShowInBank)); err != nil {
		return q, err
	}

	q.Title = model.OptionalString(cell(row, colTitle))
	q.Answer = model.OptionalString(cell(row, colAnswer))
	q.Explanation = model.OptionalString(cell(row, colExplanation))
	q.CommonMistakes = model.OptionalString(cell(row, colCommonMistakes))
	q.AdvancedInsights = model.OptionalString(cell(row, colAdvancedInsights))
	return q, nil
}

// parseFlag 留空视为显示
func parseFlag(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "", "是", "y", "yes", "true", "1":
		return true, nil
	case "否", "n", "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("无法识别的开关值 %q", v)
	}
}
