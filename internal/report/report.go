package report

import (
	"fmt"
	"io"

	"python101_web/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	sheetUsers     = "用户"
	sheetDevices   = "设备"
	sheetProgress  = "进度"
	sheetQuestions = "题目"
)

// WriteReport 导出用户、设备、进度和题库概览
func WriteReport(w io.Writer, users []model.User, questions []model.Question) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetUsers); err != nil {
		return err
	}
	for _, name := range []string{sheetDevices, sheetProgress, sheetQuestions} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	titles := make(map[string]string, len(questions))
	for _, q := range questions {
		titles[q.Slug] = q.DisplayTitle()
	}

	userRows := [][]interface{}{{"用户名", "角色", "设备数", "完成题目"}}
	deviceRows := [][]interface{}{{"用户名", "设备", "浏览器", "最近登录"}}
	progressRows := [][]interface{}{{"用户名", "题目", "标题", "得分", "完成时间"}}
	for _, u := range users {
		u := u
		userRows = append(userRows, []interface{}{u.Username, u.RoleLabel(), len(u.Devices), len(u.Progress)})
		for _, d := range u.Devices {
			deviceRows = append(deviceRows, []interface{}{u.Username, d.Name, d.Browser, d.LastLogin.Display()})
		}
		for _, p := range u.Progress {
			progressRows = append(progressRows, []interface{}{
				u.Username, p.QuestionSlug, titles[p.QuestionSlug],
				fmt.Sprintf("%.0f%%", p.Score*100), p.CompletedAt.Display(),
			})
		}
	}

	questionRows := [][]interface{}{{"slug", "标题", "章节", "难度", "题型"}}
	for _, q := range questions {
		questionRows = append(questionRows, []interface{}{q.Slug, q.DisplayTitle(), q.Chapter, q.Difficulty, string(q.Type)})
	}

	for sheet, rows := range map[string][][]interface{}{
		sheetUsers:     userRows,
		sheetDevices:   deviceRows,
		sheetProgress:  progressRows,
		sheetQuestions: questionRows,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	_, err := f.WriteTo(w)
	return err
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "E", 18)
}

// WriteQuestionTemplate 生成带表头的空白导入模板
func WriteQuestionTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(questionColumns))
	for i, c := range questionColumns {
		header[i] = c
	}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}
