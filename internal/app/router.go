package app

import (
	"net/http"

	"python101_web/docs"
	"python101_web/internal/config"
	"python101_web/internal/middleware"
	"python101_web/internal/session"
	"python101_web/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, codec *session.CookieCodec, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	site := router.Group("/")
	site.Use(
		middleware.SessionMiddleware(codec, a.Sessions, middleware.SessionOptions{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
		}),
		middleware.LeaveQuestionBank(a.Workspaces),
	)
	{
		// 1. 页面
		a.registerPageRoutes(site, c)

		// 2. 题库交互 JSON 接口
		a.registerAPIRoutes(site.Group("/api"), c)

		// 3. 后台
		a.registerAdminRoutes(site, c)
	}

	// 浏览器自动请求的图标不经过会话，避免误判为离开题库
	router.GET("/favicon.ico", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })

	// 未知路由回到首页
	router.NoRoute(c.pages.NotFound)
}

func (a *App) registerPageRoutes(site *gin.RouterGroup, c *controllers) {
	site.GET("/", c.pages.Welcome)
	site.GET("/progress", c.pages.Progress)

	site.GET("/tutorial", c.tutorial.Show)
	site.GET("/tutorial/:slug", c.tutorial.Show)
	site.GET("/tutorial/:slug/next", c.tutorial.Next)
	site.GET("/tutorial/:slug/prev", c.tutorial.Prev)

	questions := site.Group("/questions")
	{
		questions.GET("", c.question.List)
		questions.GET("/:slug", c.question.Detail)
		questions.POST("/:slug/select", c.question.Select)
		questions.POST("/:slug/draft", c.question.SaveDraft)
		questions.POST("/:slug/check", c.question.Check)
		questions.POST("/:slug/run", c.question.Run)
		questions.POST("/:slug/judge", c.question.Judge)
	}

	site.GET("/login", c.auth.LoginPage)
	site.POST("/login", c.auth.Login)
	site.POST("/logout", c.auth.Logout)
	site.POST("/devices/remove", c.auth.RemoveDevice)
	site.POST("/modal/close", c.modal.Close)
}

func (a *App) registerAPIRoutes(api *gin.RouterGroup, c *controllers) {
	questions := api.Group("/questions/:slug")
	{
		questions.GET("/state", c.question.State)
		questions.POST("/select", c.question.APISelect)
		questions.POST("/draft", c.question.APIDraft)
		questions.POST("/check", c.question.APICheck)
		questions.POST("/run", c.question.APIRun)
		questions.POST("/judge", c.question.APIJudge)
	}

	api.GET("/modal", c.modal.Current)
	api.POST("/modal/close", c.modal.APIClose)

	adminOnly := api.Group("/admin")
	adminOnly.Use(middleware.AdminMiddleware())
	{
		adminOnly.GET("/overview", c.admin.APIOverview)
	}
}

func (a *App) registerAdminRoutes(site *gin.RouterGroup, c *controllers) {
	admin := site.Group("/admin")
	admin.Use(c.admin.RequireAdmin())
	{
		admin.GET("", c.admin.Dashboard)
		admin.POST("/chapters", c.admin.SaveChapter)
		admin.POST("/questions", c.admin.SaveQuestion)
		admin.POST("/questions/import", c.admin.Import)
		admin.GET("/questions/template.xlsx", c.admin.QuestionTemplate)
		admin.GET("/report.xlsx", c.admin.Report)
	}
}
