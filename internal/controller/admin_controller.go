package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"python101_web/internal/client"
	"python101_web/internal/middleware"
	"python101_web/internal/model"
	"python101_web/internal/report"
	"python101_web/internal/service"
	"python101_web/internal/util"
	"python101_web/internal/view"
	"python101_web/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminController struct {
	Pages        *Pages
	AdminService *service.AdminService
}

func NewAdminController(pages *Pages, adminService *service.AdminService) *AdminController {
	return &AdminController{Pages: pages, AdminService: adminService}
}

// RequireAdmin 后台页面的权限校验：未登录去登录页，非管理员显示 403 页面
func (ac *AdminController) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := middleware.CurrentUser(ctx)
		if user == nil {
			redirect(ctx, "/login")
			ctx.Abort()
			return
		}
		if !user.IsAdmin {
			ac.Pages.Message(ctx, http.StatusForbidden, "admin", view.Message{
				Title:     "无权访问",
				Text:      util.ErrAdminRequired.Error(),
				BackHref:  "/",
				BackLabel: "返回首页",
			})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// Dashboard GET /admin?user=<username>
func (ac *AdminController) Dashboard(ctx *gin.Context) {
	ac.render(ctx, http.StatusOK, "", nil)
}

func (ac *AdminController) render(ctx *gin.Context, status int, message string, importErrors []string) {
	overview, err := ac.AdminService.Overview(ctx.Request.Context(), ctx.Query("user"))
	if err != nil {
		logger.Log.Warn("load admin overview failed", zap.Error(err))
		overview = &service.AdminOverview{}
		if message == "" {
			message = "加载后台数据失败：" + client.Detail(err)
		}
	}
	content := view.AdminView{
		AdminOverview:   overview,
		Message:         message,
		ImportErrors:    importErrors,
		DefaultMemoryMB: service.DefaultMemoryMB,
	}
	if len(overview.Chapters) > 0 {
		content.DefaultChapter = overview.Chapters[0].Slug
	}
	ac.Pages.Render(ctx, status, "admin", "admin", "后台管理", content)
}

// SaveChapter POST /admin/chapters
func (ac *AdminController) SaveChapter(ctx *gin.Context) {
	var form service.ChapterForm
	if err := ctx.ShouldBind(&form); err != nil {
		ac.render(ctx, http.StatusBadRequest, "保存章节失败："+err.Error(), nil)
		return
	}
	if _, err := ac.AdminService.SaveChapter(ctx.Request.Context(), form); err != nil {
		ac.render(ctx, http.StatusOK, "保存章节失败："+client.Detail(err), nil)
		return
	}
	ac.render(ctx, http.StatusOK, "章节已保存。", nil)
}

// SaveQuestion POST /admin/questions
func (ac *AdminController) SaveQuestion(ctx *gin.Context) {
	var form service.QuestionForm
	if err := ctx.ShouldBind(&form); err != nil {
		ac.render(ctx, http.StatusBadRequest, "保存题目失败："+err.Error(), nil)
		return
	}
	if _, err := ac.AdminService.SaveQuestion(ctx.Request.Context(), form); err != nil {
		ac.render(ctx, http.StatusOK, "保存题目失败："+client.Detail(err), nil)
		return
	}
	ac.render(ctx, http.StatusOK, "题目已保存。", nil)
}

// Import POST /admin/questions/import
func (ac *AdminController) Import(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ac.render(ctx, http.StatusBadRequest, "请选择要导入的 xlsx 文件。", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		ac.render(ctx, http.StatusBadRequest, "读取上传文件失败："+err.Error(), nil)
		return
	}
	defer file.Close()

	if _, err := util.SniffUpload(file, util.SpreadsheetTypes); err != nil {
		ac.render(ctx, http.StatusBadRequest, "导入失败："+err.Error(), nil)
		return
	}

	result, err := ac.AdminService.ImportQuestions(ctx.Request.Context(), file)
	if err != nil {
		ac.render(ctx, http.StatusBadRequest, "导入失败："+err.Error(), nil)
		return
	}
	ac.render(ctx, http.StatusOK, fmt.Sprintf("导入完成：成功 %d 道，失败 %d 道。", result.Saved, len(result.Errors)), result.Errors)
}

// Report GET /admin/report.xlsx
func (ac *AdminController) Report(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := ac.AdminService.Report(ctx.Request.Context(), &buf); err != nil {
		logger.Log.Error("write admin report failed", zap.Error(err))
		ac.render(ctx, http.StatusBadGateway, "导出报表失败："+client.Detail(err), nil)
		return
	}
	filename := fmt.Sprintf("python101-report-%s.xlsx", time.Now().Format(util.DateFormat))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// QuestionTemplate GET /admin/questions/template.xlsx
func (ac *AdminController) QuestionTemplate(ctx *gin.Context) {
	ctx.Header("Content-Type", xlsxContentType)
	ctx.Header("Content-Disposition", `attachment; filename="python101-questions.xlsx"`)
	if err := report.WriteQuestionTemplate(ctx.Writer); err != nil {
		util.LogInternalError(ctx, err)
	}
}

// AdminSummary 后台总览的 JSON 形式
// swagger:model AdminSummary
type AdminSummary struct {
	Users     []model.User     `json:"users"`
	Questions []model.Question `json:"questions"`
	Chapters  []model.Chapter  `json:"chapters"`
	Selected  *model.User      `json:"selected,omitempty"`
}

// @Summary 后台总览
// @Description 用户设备与做题进度、题库与章节列表；user 参数指定时附带该用户详情
// @Tags 后台
// @Produce json
// @Param user query string false "用户名"
// @Success 200 {object} util.Response{data=AdminSummary}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/admin/overview [get]
func (ac *AdminController) APIOverview(ctx *gin.Context) {
	overview, err := ac.AdminService.Overview(ctx.Request.Context(), ctx.Query("user"))
	if err != nil {
		util.BadGateway(ctx, client.Detail(err))
		return
	}
	util.Success(ctx, AdminSummary{
		Users:     overview.Users,
		Questions: overview.Questions,
		Chapters:  overview.Chapters,
		Selected:  overview.Selected,
	})
}
