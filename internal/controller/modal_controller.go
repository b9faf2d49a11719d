package controller

import (
	"python101_web/internal/middleware"
	"python101_web/internal/modal"
	"python101_web/internal/util"
	"python101_web/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ModalController struct {
	Modals *modal.Service
}

func NewModalController(modals *modal.Service) *ModalController {
	return &ModalController{Modals: modals}
}

// Close POST /modal/close：Esc、遮罩和关闭按钮都走这里；
// 主按钮（action=1）无论能否关闭都先清掉弹窗再跳转
func (mc *ModalController) Close(ctx *gin.Context) {
	sid := middleware.SessionID(ctx)
	back := SafeReturn(ctx.PostForm("return"), "/")

	var err error
	if ctx.PostForm("action") == "1" {
		err = mc.Modals.Dismiss(ctx.Request.Context(), sid)
	} else {
		_, err = mc.Modals.Close(ctx.Request.Context(), sid)
	}
	if err != nil {
		logger.Log.Warn("close modal failed", zap.Error(err))
	}
	redirect(ctx, back)
}

// @Summary 获取当前弹窗
// @Tags 弹窗
// @Produce json
// @Success 200 {object} util.Response{data=modal.Dialog}
// @Router /api/modal [get]
func (mc *ModalController) Current(ctx *gin.Context) {
	util.Success(ctx, mc.Modals.Current(ctx.Request.Context(), middleware.SessionID(ctx)))
}

// @Summary 关闭当前弹窗
// @Description 不可关闭的弹窗保持打开，closed 为 false
// @Tags 弹窗
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Failure 500 {object} util.Response
// @Router /api/modal/close [post]
func (mc *ModalController) APIClose(ctx *gin.Context) {
	closed, err := mc.Modals.Close(ctx.Request.Context(), middleware.SessionID(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"closed": closed})
}
