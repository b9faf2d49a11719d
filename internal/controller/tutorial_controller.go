package controller

import (
	"net/http"

	"python101_web/internal/client"
	"python101_web/internal/service"
	"python101_web/internal/view"

	"github.com/gin-gonic/gin"
)

type TutorialController struct {
	Pages   *Pages
	Content *service.ContentService
}

func NewTutorialController(pages *Pages, content *service.ContentService) *TutorialController {
	return &TutorialController{Pages: pages, Content: content}
}

// Show GET /tutorial 与 /tutorial/:slug
func (tc *TutorialController) Show(ctx *gin.Context) {
	page, target, err := tc.Content.Tutorial(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		tc.Pages.Render(ctx, http.StatusBadGateway, "tutorial", "tutorial", "教程", view.TutorialView{Error: client.Detail(err)})
		return
	}
	if target != "" {
		redirect(ctx, target)
		return
	}

	title := "教程"
	if page.Active != nil {
		title = page.Active.Title
	}
	tc.Pages.Render(ctx, http.StatusOK, "tutorial", "tutorial", title, view.TutorialView{TutorialPage: page})
}

func (tc *TutorialController) Next(ctx *gin.Context) {
	target, err := tc.Content.NextPath(ctx.Request.Context(), ctx.Param("slug"))
	tc.follow(ctx, target, err)
}

func (tc *TutorialController) Prev(ctx *gin.Context) {
	target, err := tc.Content.PrevPath(ctx.Request.Context(), ctx.Param("slug"))
	tc.follow(ctx, target, err)
}

func (tc *TutorialController) follow(ctx *gin.Context, target string, err error) {
	if err != nil {
		tc.Pages.Render(ctx, http.StatusBadGateway, "tutorial", "tutorial", "教程", view.TutorialView{Error: client.Detail(err)})
		return
	}
	redirect(ctx, target)
}
