package view

import (
	"bytes"
	"html/template"

	"python101_web/pkg/logger"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

// 不开启 WithUnsafe，题干与章节中的原始 HTML 会被丢弃
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Markdown 渲染章节正文、题干、解析与判题反馈
func Markdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		logger.Log.Warn("markdown render failed", zap.Error(err))
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}
