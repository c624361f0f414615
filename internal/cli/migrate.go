package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/totegamma/todolist/internal/infra/providers"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := providers.NewDatabase(conf.Server)
			if err != nil {
				return errors.Wrap(err, "connect database")
			}
			if err := providers.MigrateDatabase(db); err != nil {
				return errors.Wrap(err, "migrate database")
			}
			cmd.Println("migration complete")
			return nil
		},
	}
}
