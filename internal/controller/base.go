package controller

import (
	"net/http"
	"strings"

	"python101_web/internal/middleware"
	"python101_web/internal/modal"
	"python101_web/internal/view"
	"python101_web/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pages 页面渲染的公共部分：登录用户、当前弹窗与用户菜单
type Pages struct {
	Modals *modal.Service
}

func NewPages(modals *modal.Service) *Pages {
	return &Pages{Modals: modals}
}

func (p *Pages) Render(c *gin.Context, status int, name, nav, title string, content interface{}) {
	c.HTML(status, name, &view.Page{
		Title:     title,
		Nav:       nav,
		User:      middleware.CurrentUser(c),
		Modal:     p.Modals.Current(c.Request.Context(), middleware.SessionID(c)),
		UserAgent: c.Request.UserAgent(),
		Return:    c.Request.URL.RequestURI(),
		Content:   content,
	})
}

func (p *Pages) Message(c *gin.Context, status int, nav string, msg view.Message) {
	p.Render(c, status, "message", nav, msg.Title, msg)
}

// Notify 打开一个提示弹窗，失败只记录日志
func (p *Pages) Notify(c *gin.Context, title, content string) {
	if err := p.Modals.Open(c.Request.Context(), middleware.SessionID(c), modal.Options{Title: title, Content: content}); err != nil {
		logger.Log.Warn("open modal failed", zap.String("title", title), zap.Error(err))
	}
}

// SafeReturn 只接受站内路径，防止开放重定向
func SafeReturn(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
