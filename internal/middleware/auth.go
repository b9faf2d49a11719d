package middleware

import (
	"net/http"

	"python101_web/internal/model"
	"python101_web/internal/session"
	"python101_web/internal/util"
	"python101_web/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionOptions struct {
	CookieName string
	Secure     bool
}

// SessionMiddleware 解析签名 Cookie 得到会话 ID，没有或无效时签发新的；
// 并把当前用户快照放进上下文
func SessionMiddleware(codec *session.CookieCodec, store *session.Store, opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := ""
		if raw, err := c.Cookie(opts.CookieName); err == nil && raw != "" {
			if decoded, err := codec.Decode(raw); err == nil {
				sid = decoded
			}
		}

		if sid == "" {
			sid = session.NewID()
			value, err := codec.Encode(sid)
			if err != nil {
				logger.Log.Error("failed to sign session cookie", zap.Error(err))
				util.InternalServerError(c)
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.CookieName, value, codec.MaxAge(), "/", "", opts.Secure, true)
		}

		c.Set(util.ContextSessionID, sid)
		if user := store.Current(c.Request.Context(), sid); user != nil {
			c.Set(util.ContextUser, user)
		}
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(util.ContextSessionID)
}

// CurrentUser 请求开始时的用户快照，未登录为 nil
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(util.ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// SetCurrentUser 会话在请求中被替换后同步上下文
func SetCurrentUser(c *gin.Context, user *model.User) {
	if user == nil {
		delete(c.Keys, util.ContextUser)
		return
	}
	c.Set(util.ContextUser, user)
}

// AdminMiddleware JSON 接口的管理员校验
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !user.IsAdmin {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
