// @title Python-101 Web API
// @version 1.0
// @description Python-101 学习平台前端服务的题库交互接口。

// @host localhost:5173
// @BasePath /

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"python101_web/internal/app"
	"python101_web/internal/config"
	"python101_web/pkg/configwatcher"
	"python101_web/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configDir string

func main() {
	root := &cobra.Command{
		Use:          "python101-web",
		Short:        "Python-101 学习平台前端服务",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configDir, "config", "c", "configs", "配置文件所在目录")

	root.AddCommand(serveCmd(), checkConfigCmd())

	// 不带子命令时直接启动服务
	root.RunE = serveCmd().RunE

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "启动 Web 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configDir)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			application, err := app.NewApp(cfg)
			if err != nil {
				return err
			}
			defer logger.Log.Sync()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				if err := configwatcher.WatchConfig(ctx, filepath.Join(configDir, "config.yaml"), application.ApplyConfig); err != nil {
					logger.Log.Error("Config watcher stopped", zap.Error(err))
				}
			}()

			application.Run()
			return nil
		},
	}
}

func checkConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "校验配置文件后退出",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configDir)
			if err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			log.Printf("config ok: api=%s session_storage=%s mode=%s", cfg.API.BaseURL, cfg.Session.Storage, cfg.Server.Mode)
			return nil
		},
	}
}
