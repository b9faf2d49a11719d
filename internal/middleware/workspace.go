package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type WorkspaceReleaser interface {
	Release(sid string)
}

// LeaveQuestionBank 浏览器打开题库以外的页面时销毁该会话的题库工作区；
// /api 下的请求来自题库页脚本，不算离开
func LeaveQuestionBank(registry WorkspaceReleaser) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method == http.MethodGet && !inQuestionBank(path) && !strings.HasPrefix(path, "/api/") {
			if sid := SessionID(c); sid != "" {
				registry.Release(sid)
			}
		}
		c.Next()
	}
}

func inQuestionBank(path string) bool {
	return path == "/questions" || strings.HasPrefix(path, "/questions/")
}
