// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/docvault/pkg/app"
	"github.com/yeisme/docvault/pkg/configs"
)

var (
	// 全局 CLI 选项.
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "docvault",
		Short: "A document lifecycle and versioning service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp(configPath).Run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(serveCmd)

	registerConfigsCommands()
	registerDBCommands()
	registerKVCommands()
	registerMQCommands()
}

// initConfigIfNeeded 为非 serve 子命令按需加载配置.
func initConfigIfNeeded() {
	if configs.GetViper() == nil {
		_ = configs.InitConfig(configPath)
	}
}

// Execute runs the root command.
func Execute() error {
	cobra.OnInitialize(initConfigIfNeeded)

	return rootCmd.Execute()
}
