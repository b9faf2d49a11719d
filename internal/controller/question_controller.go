package controller

import (
	"errors"
	"net/http"

	"python101_web/internal/client"
	"python101_web/internal/middleware"
	"python101_web/internal/model"
	"python101_web/internal/service"
	"python101_web/internal/util"
	"python101_web/internal/view"
	"python101_web/internal/workspace"
	"python101_web/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuestionController struct {
	Pages      *Pages
	Content    *service.ContentService
	Workspaces *workspace.Registry
}

func NewQuestionController(pages *Pages, content *service.ContentService, workspaces *workspace.Registry) *QuestionController {
	return &QuestionController{Pages: pages, Content: content, Workspaces: workspaces}
}

// SelectRequest 客观题选项
// swagger:model SelectRequest
type SelectRequest struct {
	Option string `json:"option" form:"option"`
}

// DraftRequest 编程题草稿
// swagger:model DraftRequest
type DraftRequest struct {
	Code  string `json:"code" form:"code"`
	Stdin string `json:"stdin" form:"stdin"`
}

// CheckResponse 客观题提交结果
// swagger:model CheckResponse
type CheckResponse struct {
	Correct  bool                    `json:"correct"`
	Recorded bool                    `json:"recorded"`
	State    workspace.QuestionState `json:"state"`
}

// List GET /questions
func (qc *QuestionController) List(ctx *gin.Context) {
	filter := service.ParseFilter(ctx.Request.URL.Query())
	page := qc.Content.QuestionList(ctx.Request.Context(), filter)
	qc.Pages.Render(ctx, http.StatusOK, "questions", "questions", "题库", view.QuestionListView{QuestionListPage: page})
}

// Detail GET /questions/:slug
func (qc *QuestionController) Detail(ctx *gin.Context) {
	filter := service.ParseFilter(ctx.Request.URL.Query())
	page, err := qc.Content.QuestionDetail(ctx.Request.Context(), ctx.Param("slug"), filter)
	if err != nil {
		qc.detailFailed(ctx, filter, err)
		return
	}

	q := page.Question
	ws := qc.Workspaces.Get(middleware.SessionID(ctx))
	completed := false
	if user := middleware.CurrentUser(ctx); user != nil {
		completed = user.Completed(q.Slug)
	}

	qc.Pages.Render(ctx, http.StatusOK, "question", "questions", q.DisplayTitle(), view.QuestionDetailView{
		QuestionDetailPage: page,
		State:              ws.State(q.Slug),
		Options:            q.Options(),
		Completed:          completed,
		Query:              service.FilterQuery(filter),
	})
}

func (qc *QuestionController) detailFailed(ctx *gin.Context, filter model.QuestionFilter, err error) {
	msg := view.Message{
		BackHref:  service.QuestionsPath("", filter),
		BackLabel: "返回题库",
	}
	if errors.Is(err, util.ErrQuestionNotFound) {
		msg.Title = "未找到该题目"
		msg.Text = "题目可能已被删除或地址有误。"
		qc.Pages.Message(ctx, http.StatusNotFound, "questions", msg)
		return
	}
	msg.Title = "加载题目失败"
	msg.Text = client.Detail(err)
	qc.Pages.Message(ctx, http.StatusBadGateway, "questions", msg)
}

// question 加载题目；失败时已写好页面响应
func (qc *QuestionController) question(ctx *gin.Context) (*model.Question, bool) {
	q, err := qc.Content.Question(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		qc.detailFailed(ctx, service.ParseFilter(ctx.Request.URL.Query()), err)
		return nil, false
	}
	return q, true
}

func (qc *QuestionController) back(ctx *gin.Context, slug string) {
	redirect(ctx, service.QuestionsPath(slug, service.ParseFilter(ctx.Request.URL.Query())))
}

// Check POST /questions/:slug/check：表单同时带上选中的选项
func (qc *QuestionController) Check(ctx *gin.Context) {
	q, ok := qc.question(ctx)
	if !ok {
		return
	}
	ws := qc.Workspaces.Get(middleware.SessionID(ctx))
	if option, exists := ctx.GetPostForm("option"); exists {
		ws.Select(q.Slug, option)
	}

	if _, err := ws.CheckObjective(ctx.Request.Context(), q); err != nil && !errors.Is(err, workspace.ErrNoOption) {
		qc.Pages.Notify(ctx, "操作失败", err.Error())
	}
	qc.back(ctx, q.Slug)
}

// Select POST /questions/:slug/select：只记录选项，不提交
func (qc *QuestionController) Select(ctx *gin.Context) {
	q, ok := qc.question(ctx)
	if !ok {
		return
	}
	var req SelectRequest
	_ = ctx.ShouldBind(&req)
	qc.Workspaces.Get(middleware.SessionID(ctx)).Select(q.Slug, req.Option)
	qc.back(ctx, q.Slug)
}

// SaveDraft POST /questions/:slug/draft
func (qc *QuestionController) SaveDraft(ctx *gin.Context) {
	q, ok := qc.question(ctx)
	if !ok {
		return
	}
	qc.saveDraft(ctx, q)
	qc.back(ctx, q.Slug)
}

func (qc *QuestionController) saveDraft(ctx *gin.Context, q *model.Question) *workspace.Workspace {
	ws := qc.Workspaces.Get(middleware.SessionID(ctx))
	var req DraftRequest
	if err := ctx.ShouldBind(&req); err == nil {
		ws.SetDraft(q.Slug, req.Code, req.Stdin)
	}
	return ws
}

// Run POST /questions/:slug/run
func (qc *QuestionController) Run(ctx *gin.Context) {
	q, ok := qc.question(ctx)
	if !ok {
		return
	}
	ws := qc.saveDraft(ctx, q)
	if _, err := ws.Run(ctx.Request.Context(), q); err != nil {
		qc.Pages.Notify(ctx, "操作失败", err.Error())
	}
	qc.back(ctx, q.Slug)
}

// Judge POST /questions/:slug/judge
func (qc *QuestionController) Judge(ctx *gin.Context) {
	q, ok := qc.question(ctx)
	if !ok {
		return
	}
	ws := qc.saveDraft(ctx, q)
	_, err := ws.Judge(ctx.Request.Context(), q)
	switch {
	case err == nil, errors.Is(err, workspace.ErrLoginRequired), errors.Is(err, workspace.ErrEmptyCode):
		// 后两种情况已由工作区打开提示弹窗
	default:
		logger.Log.Warn("judge failed", zap.String("question", q.Slug), zap.Error(err))
		qc.Pages.Notify(ctx, "操作失败", err.Error())
	}
	qc.back(ctx, q.Slug)
}

// JSON 接口，供页面脚本局部刷新使用

// apiQuestion 加载题目；失败时已写好 JSON 响应
func (qc *QuestionController) apiQuestion(ctx *gin.Context) (*model.Question, bool) {
	q, err := qc.Content.Question(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
			return nil, false
		}
		util.BadGateway(ctx, client.Detail(err))
		return nil, false
	}
	return q, true
}

func actionStatus(err error) int {
	switch {
	case errors.Is(err, workspace.ErrLoginRequired):
		return http.StatusUnauthorized
	case errors.Is(err, workspace.ErrNoOption),
		errors.Is(err, workspace.ErrEmptyCode),
		errors.Is(err, workspace.ErrNotObjective),
		errors.Is(err, workspace.ErrNotCoding):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// @Summary 获取题目工作区状态
// @Description 返回当前会话在该题上的草稿、选项、运行与判题结果
// @Tags 题库
// @Produce json
// @Param slug path string true "题目 slug"
// @Success 200 {object} util.Response{data=workspace.QuestionState}
// @Failure 404 {object} util.Response
// @Router /api/questions/{slug}/state [get]
func (qc *QuestionController) State(ctx *gin.Context) {
	q, ok := qc.apiQuestion(ctx)
	if !ok {
		return
	}
	util.Success(ctx, qc.Workspaces.Get(middleware.SessionID(ctx)).State(q.Slug))
}

// @Summary 选择客观题选项
// @Tags 题库
// @Accept json
// @Produce json
// @Param slug path string true "题目 slug"
// @Param request body SelectRequest true "选项"
// @Success 200 {object} util.Response{data=workspace.QuestionState}
// @Failure 400 {object} util.Response
// @Router /api/questions/{slug}/select [post]
func (qc *QuestionController) APISelect(ctx *gin.Context) {
	var req SelectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, ok := qc.apiQuestion(ctx)
	if !ok {
		return
	}
	ws := qc.Workspaces.Get(middleware.SessionID(ctx))
	ws.Select(q.Slug, req.Option)
	util.Success(ctx, ws.State(q.Slug))
}

// @Summary 保存编程题草稿
// @Tags 题库
// @Accept json
// @Produce json
// @Param slug path string true "题目 slug"
// @Param request body DraftRequest true "代码与模拟输入"
// @Success 200 {object} util.Response{data=workspace.QuestionState}
// @Failure 400 {object} util.Response
// @Router /api/questions/{slug}/draft [post]
func (qc *QuestionController) APIDraft(ctx *gin.Context) {
	var req DraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, ok := qc.apiQuestion(ctx)
	if !ok {
		return
	}
	ws := qc.Workspaces.Get(middleware.SessionID(ctx))
	ws.SetDraft(q.Slug, req.Code, req.Stdin)
	util.Success(ctx, ws.State(q.Slug))
}

// @Summary 提交客观题答案
// @Description 答对后开始庆祝动画；已登录时记录进度
// @Tags 题库
// @Produce json
// @Param slug path string true "题目 slug"
// @Success 200 {object} util.Response{data=CheckResponse}
// @Failure 400 {object} util.Response
// @Router /api/questions/{slug}/check [post]
func (qc *QuestionController) APICheck(ctx *gin.Context) {
	q, ok := qc.apiQuestion(ctx)
	if !ok {
		return
	}
	ws := qc.Workspaces.Get(middleware.SessionID(ctx))
	outcome, err := ws.CheckObjective(ctx.Request.Context(), q)
	if err != nil {
		util.Error(ctx, actionStatus(err), err.Error())
		return
	}
	util.Success(ctx, CheckResponse{Correct: outcome.Correct, Recorded: outcome.Recorded, State: ws.State(q.Slug)})
}

// @Summary 运行编程题代码
// @Tags 题库
// @Produce json
// @Param slug path string true "题目 slug"
// @Success 200 {object} util.Response{data=workspace.RunState}
// @Failure 400 {object} util.Response
// @Router /api/questions/{slug}/run [post]
func (qc *QuestionController) APIRun(ctx *gin.Context) {
	q, ok := qc.apiQuestion(ctx)
	if !ok {
		return
	}
	state, err := qc.Workspaces.Get(middleware.SessionID(ctx)).Run(ctx.Request.Context(), q)
	if err != nil {
		util.Error(ctx, actionStatus(err), err.Error())
		return
	}
	util.Success(ctx, state)
}

// @Summary 提交编程题判题
// @Description 需要登录；通过后记录进度并开始庆祝动画
// @Tags 题库
// @Produce json
// @Param slug path string true "题目 slug"
// @Success 200 {object} util.Response{data=workspace.JudgeState}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/questions/{slug}/judge [post]
func (qc *QuestionController) APIJudge(ctx *gin.Context) {
	q, ok := qc.apiQuestion(ctx)
	if !ok {
		return
	}
	state, err := qc.Workspaces.Get(middleware.SessionID(ctx)).Judge(ctx.Request.Context(), q)
	if err != nil {
		status := actionStatus(err)
		if status == http.StatusInternalServerError {
			util.LogInternalError(ctx, err)
		}
		util.Error(ctx, status, err.Error())
		return
	}
	util.Success(ctx, state)
}
