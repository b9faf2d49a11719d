package controller

import (
	"errors"
	"net/http"

	"python101_web/internal/client"
	"python101_web/internal/middleware"
	"python101_web/internal/service"
	"python101_web/internal/util"
	"python101_web/internal/view"
	"python101_web/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	Pages       *Pages
	AuthService *service.AuthService
}

func NewAuthController(pages *Pages, authService *service.AuthService) *AuthController {
	return &AuthController{Pages: pages, AuthService: authService}
}

type LoginForm struct {
	Mode     string `form:"mode"`
	Username string `form:"username"`
	Password string `form:"password"`
}

func loginMode(mode string) string {
	if mode == view.LoginModeRegister {
		return view.LoginModeRegister
	}
	return view.LoginModeLogin
}

func loginTitle(mode string) string {
	if mode == view.LoginModeRegister {
		return "注册"
	}
	return "登录"
}

// LoginPage GET /login?mode=login|register
func (ac *AuthController) LoginPage(ctx *gin.Context) {
	mode := loginMode(ctx.Query("mode"))
	ac.Pages.Render(ctx, http.StatusOK, "login", "login", loginTitle(mode), view.LoginView{Mode: mode})
}

// Login POST /login：登录成功进入教程；注册成功留在本页并提示已自动登录
func (ac *AuthController) Login(ctx *gin.Context) {
	var form LoginForm
	_ = ctx.ShouldBind(&form)
	mode := loginMode(form.Mode)
	sid := middleware.SessionID(ctx)

	if mode == view.LoginModeRegister {
		user, err := ac.AuthService.Register(ctx.Request.Context(), sid, form.Username, form.Password)
		if err != nil {
			ac.failed(ctx, mode, form.Username, err)
			return
		}
		middleware.SetCurrentUser(ctx, user)
		ac.Pages.Render(ctx, http.StatusOK, "login", "login", loginTitle(mode), view.LoginView{
			Mode:     mode,
			Username: user.Username,
			Message:  "注册成功，已自动登录！",
		})
		return
	}

	user, err := ac.AuthService.Login(ctx.Request.Context(), sid, form.Username, form.Password, util.Device(ctx))
	if err != nil {
		ac.failed(ctx, mode, form.Username, err)
		return
	}
	middleware.SetCurrentUser(ctx, user)
	redirect(ctx, "/tutorial")
}

func (ac *AuthController) failed(ctx *gin.Context, mode, username string, err error) {
	status := http.StatusOK
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		status = apiErr.Status
	}
	if !errors.Is(err, service.ErrCredentialsRequired) && status == http.StatusOK {
		logger.Log.Warn("auth request failed", zap.String("mode", mode), zap.String("username", username), zap.Error(err))
	}
	ac.Pages.Render(ctx, status, "login", "login", loginTitle(mode), view.LoginView{
		Mode:     mode,
		Username: username,
		Message:  "操作失败：" + client.Detail(err),
	})
}

// Logout POST /logout
func (ac *AuthController) Logout(ctx *gin.Context) {
	if err := ac.AuthService.Logout(ctx.Request.Context(), middleware.SessionID(ctx)); err != nil {
		logger.Log.Error("logout failed", zap.Error(err))
	}
	redirect(ctx, "/")
}

// RemoveDevice POST /devices/remove
func (ac *AuthController) RemoveDevice(ctx *gin.Context) {
	back := SafeReturn(ctx.PostForm("return"), "/")
	user := middleware.CurrentUser(ctx)
	if user == nil {
		redirect(ctx, "/login")
		return
	}

	_, err := ac.AuthService.RemoveDevice(ctx.Request.Context(), middleware.SessionID(ctx), user, ctx.PostForm("device_name"), ctx.PostForm("browser"))
	if err != nil {
		ac.Pages.Notify(ctx, "操作失败", client.Detail(err))
	} else {
		ac.Pages.Notify(ctx, "设备已移除", "已成功删除所选设备。")
	}
	redirect(ctx, back)
}
