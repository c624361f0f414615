package cli

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/totegamma/todolist/client"
)

// Item commands talk to a running server instead of the database.
func newItemCommand() *cobra.Command {
	var serverURL string

	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Work with items on a running server",
	}
	itemCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8000", "server base URL")

	itemCmd.AddCommand(&cobra.Command{
		Use:   "list [search]",
		Short: "List items, optionally filtered by a substring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			search := ""
			if len(args) == 1 {
				search = args[0]
			}
			items, err := client.New(serverURL).ListItems(cmd.Context(), search)
			if err != nil {
				return err
			}
			for _, item := range items {
				mark := " "
				if item.Done {
					mark = "x"
				}
				cmd.Printf("[%s] %d\t%s\n", mark, item.ID, item.Description)
			}
			return nil
		},
	})

	var categoryID int64
	addCmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Create an item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.New(serverURL).CreateItem(cmd.Context(), strings.Join(args, " "), false, categoryID)
		},
	}
	addCmd.Flags().Int64Var(&categoryID, "category", 0, "category id to attach")
	itemCmd.AddCommand(addCmd)

	itemCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid id")
			}
			return client.New(serverURL).DeleteItem(cmd.Context(), id)
		},
	})

	return itemCmd
}
