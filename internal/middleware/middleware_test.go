package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"python101_web/internal/model"
	"python101_web/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "python101_sid"

func newEngine(store *session.Store, codec *session.CookieCodec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(codec, store, SessionOptions{CookieName: cookieName}))
	return r
}

func TestSessionMiddlewareIssuesCookie(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), time.Hour)
	codec := session.NewCookieCodec("secret", time.Hour)
	r := newEngine(store, codec)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	sid, err := codec.Decode(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, sid, w.Body.String())
}

func TestSessionMiddlewareRestoresUser(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), time.Hour)
	codec := session.NewCookieCodec("secret", time.Hour)
	sid := session.NewID()
	require.NoError(t, store.Replace(context.Background(), sid, &model.User{Username: "alice"}))
	value, err := codec.Encode(sid)
	require.NoError(t, err)

	r := newEngine(store, codec)
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Username)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "alice", w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionMiddlewareReplacesForgedCookie(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), time.Hour)
	codec := session.NewCookieCodec("secret", time.Hour)
	forged, err := session.NewCookieCodec("other", time.Hour).Encode(session.NewID())
	require.NoError(t, err)

	r := newEngine(store, codec)
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: forged})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Len(t, w.Result().Cookies(), 1)
	assert.NotEqual(t, forged, w.Result().Cookies()[0].Value)
}

func TestAdminMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name string
		user *model.User
		code int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"learner", &model.User{Username: "bob"}, http.StatusForbidden},
		{"admin", &model.User{Username: "root", IsAdmin: true}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(func(c *gin.Context) {
				SetCurrentUser(c, tc.user)
				c.Next()
			}, AdminMiddleware())
			r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

type releaseRecorder struct {
	released []string
}

func (r *releaseRecorder) Release(sid string) {
	r.released = append(r.released, sid)
}

func TestLeaveQuestionBank(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := &releaseRecorder{}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("sid", "s1")
		c.Next()
	}, LeaveQuestionBank(rec))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/questions", ok)
	r.GET("/questions/:slug", ok)
	r.GET("/progress", ok)
	r.GET("/api/modal", ok)
	r.POST("/logout", ok)

	for _, target := range []string{"/questions", "/questions/q1", "/api/modal"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}
	assert.Empty(t, rec.released)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Empty(t, rec.released)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/progress", nil))
	assert.Equal(t, []string{"s1"}, rec.released)
}
