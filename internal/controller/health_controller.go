package controller

import (
	"context"
	"net/http"

	"python101_web/internal/util"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	Sessions Pinger
}

func NewHealthController(sessions Pinger) *HealthController {
	return &HealthController{Sessions: sessions}
}

// @Summary 健康检查
// @Description 检查服务及会话存储状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if err := c.Sessions.Ping(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Session storage unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"session_storage": "up",
		},
	})
}
