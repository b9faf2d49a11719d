package modal

import (
	"context"
	"testing"
	"time"

	"python101_web/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(session.NewMemoryStorage(), time.Hour)

	require.NoError(t, svc.Open(ctx, "s1", Options{Content: "请先选择一个选项再提交。"}))
	d := svc.Current(ctx, "s1")
	require.NotNil(t, d)
	assert.Equal(t, "提示", d.Title)
	assert.True(t, d.Dismissible)
	assert.Nil(t, svc.Current(ctx, "s2"))
}

func TestLastOpenWins(t *testing.T) {
	ctx := context.Background()
	svc := NewService(session.NewMemoryStorage(), time.Hour)

	require.NoError(t, svc.Open(ctx, "s1", Options{Title: "A", Content: "first"}))
	require.NoError(t, svc.Open(ctx, "s1", Options{Title: "B", Content: "second", Action: &Action{Label: "前往登录", Href: "/login"}}))

	d := svc.Current(ctx, "s1")
	require.NotNil(t, d)
	assert.Equal(t, "B", d.Title)
	assert.Equal(t, "/login", d.Action.Href)

	closed, err := svc.Close(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, closed)
	assert.Nil(t, svc.Current(ctx, "s1"), "no stacked dialog may reappear")
}

func TestCloseRespectsDismissible(t *testing.T) {
	ctx := context.Background()
	svc := NewService(session.NewMemoryStorage(), time.Hour)

	require.NoError(t, svc.Open(ctx, "s1", Options{Content: "处理中", Dismissible: Bool(false)}))
	closed, err := svc.Close(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, closed)
	assert.NotNil(t, svc.Current(ctx, "s1"))

	// 新的弹窗仍可替换不可关闭的弹窗
	require.NoError(t, svc.Open(ctx, "s1", Options{Content: "完成"}))
	closed, err = svc.Close(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, closed)
}

func TestCloseWithoutDialogIsNoop(t *testing.T) {
	svc := NewService(session.NewMemoryStorage(), time.Hour)
	closed, err := svc.Close(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, closed)
}
