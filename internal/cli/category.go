package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/totegamma/todolist/internal/infra/providers"
	"github.com/totegamma/todolist/internal/infra/repository"
	"github.com/totegamma/todolist/internal/usecase"
)

// Categories have no HTTP create route; they are managed from here.
func newCategoryCommand() *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}

	categoryCmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := newCategoryUsecase()
			if err != nil {
				return err
			}
			category, err := categories.Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			cmd.Printf("%d\t%s\n", category.ID, category.Name)
			return nil
		},
	})

	categoryCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := newCategoryUsecase()
			if err != nil {
				return err
			}
			list, err := categories.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, category := range list {
				cmd.Printf("%d\t%s\n", category.ID, category.Name)
			}
			return nil
		},
	})

	return categoryCmd
}

func newCategoryUsecase() (*usecase.CategoryUsecase, error) {
	db, err := providers.NewDatabase(conf.Server)
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}
	repo := repository.NewCategoryRepository(db, providers.NewCategoryCache(conf.Server))
	return usecase.NewCategoryUsecase(repo), nil
}
