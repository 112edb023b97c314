package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"undulcito/cmd/dulcitoctl/output"
)

var confirmDelete bool

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cat"},
	Short:   "Manage product categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, closeFn, err := openAdmin(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		categories, err := admin.ListCategories(cmd.Context())
		if err != nil {
			return err
		}

		output.Section(fmt.Sprintf("Categories (%d)", len(categories)))
		for _, c := range categories {
			fmt.Fprintf(output.Out, "  %-24s %s\n", c.Name, c.ID)
		}
		return nil
	},
}

var categoriesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, closeFn, err := openAdmin(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		category, err := admin.SaveCategory(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		output.Success("Created %s (%s)", category.Name, category.ID)
		return nil
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category; products keep its name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmDelete {
			output.Warning("Deleting a category needs --yes")
		}

		admin, closeFn, err := openAdmin(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		orphaned, err := admin.DeleteCategory(cmd.Context(), args[0], confirmDelete)
		if err != nil {
			return err
		}

		output.Success("Deleted %s", args[0])
		if orphaned > 0 {
			output.Warning("%d products still use this category", orphaned)
		}
		return nil
	},
}

func init() {
	categoriesDeleteCmd.Flags().BoolVarP(&confirmDelete, "yes", "y", false, "Confirm the deletion")

	categoriesCmd.AddCommand(categoriesListCmd, categoriesAddCmd, categoriesDeleteCmd)
	rootCmd.AddCommand(categoriesCmd)
}
