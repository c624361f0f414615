package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/totegamma/todolist/internal/config"
	"github.com/totegamma/todolist/internal/infra/providers"
)

var (
	configFile string
	conf       config.Config
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "todolist",
		Short: "To-do list service",
		Long: `todolist serves a small to-do list over HTTP. Items can be searched,
edited, deleted and tagged with any number of categories.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			conf, err = config.Load(configFile)
			if err != nil {
				return err
			}
			slog.SetDefault(providers.NewLogger(conf.Server.LogLevel))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "config.yaml", "config file")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newCategoryCommand())
	rootCmd.AddCommand(newItemCommand())

	return rootCmd
}
