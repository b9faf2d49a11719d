package controller

import (
	"net/http"

	"python101_web/internal/middleware"
	"python101_web/internal/service"
	"python101_web/internal/view"

	"github.com/gin-gonic/gin"
)

type PageController struct {
	Pages   *Pages
	Content *service.ContentService
}

func NewPageController(pages *Pages, content *service.ContentService) *PageController {
	return &PageController{Pages: pages, Content: content}
}

func (pc *PageController) Welcome(ctx *gin.Context) {
	pc.Pages.Render(ctx, http.StatusOK, "welcome", "home", "", nil)
}

// Progress 学习记录直接取自会话中的用户快照
func (pc *PageController) Progress(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	content := view.ProgressView{User: user}
	if user != nil && len(user.Progress) > 0 {
		content.Titles = pc.Content.QuestionTitles(ctx.Request.Context())
	}
	pc.Pages.Render(ctx, http.StatusOK, "progress", "progress", "学习记录", content)
}

// NotFound 未知路由回到首页
func (pc *PageController) NotFound(ctx *gin.Context) {
	redirect(ctx, "/")
}
