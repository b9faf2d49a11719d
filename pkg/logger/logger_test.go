package logger

import (
	"testing"

	"python101_web/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"debug mode", config.Config{Server: config.ServerConfig{Mode: "debug"}}, "debug"},
		{"release mode", config.Config{Server: config.ServerConfig{Mode: "release"}}, "info"},
		{"explicit level wins", config.Config{Server: config.ServerConfig{Mode: "debug"}, Log: config.LogConfig{Level: "warn"}}, "warn"},
		{"bad level falls back", config.Config{Server: config.ServerConfig{Mode: "release"}, Log: config.LogConfig{Level: "loud"}}, "info"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Level(&tc.cfg).String())
		})
	}
}

func TestInitLoggerWritesToFile(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Path: t.TempDir() + "/app.log"}}
	InitLogger(cfg)
	defer func() { Log = zap.NewNop() }()

	Log.Info("hello", zap.String("slug", "q1"))
	assert.True(t, Log.Core().Enabled(zap.InfoLevel))
}
