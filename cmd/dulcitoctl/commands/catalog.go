package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"undulcito/cmd/dulcitoctl/output"
	"undulcito/internal/domain/catalog"
	"undulcito/internal/domain/entity"
)

var (
	catalogCategory string
	catalogSearch   string
	catalogVisible  bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List products, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, closeFn, err := openAdmin(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		products, err := admin.ListProducts(cmd.Context())
		if err != nil {
			return err
		}
		if catalogVisible {
			products = catalog.Visible(products)
		}
		products = catalog.Filter(products, catalogCategory, catalogSearch)

		output.Section(fmt.Sprintf("Catalog (%d)", len(products)))
		printProducts(output.Out, products)
		return nil
	},
}

func printProducts(w io.Writer, products []*entity.Product) {
	for _, p := range products {
		star := " "
		if p.IsBestSeller {
			star = "★"
		}
		fmt.Fprintf(w, "%s %-28s %-14s $%7.2f  stock %s  %s\n",
			star, p.Name, p.Category, p.Price, output.StockLabel(p.Stock), p.ID)
	}
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogCategory, "category", "c", "", "Only this category")
	catalogCmd.Flags().StringVarP(&catalogSearch, "search", "s", "", "Case-insensitive name search")
	catalogCmd.Flags().BoolVar(&catalogVisible, "visible", false, "Hide sold-out products, as the storefront does")
	rootCmd.AddCommand(catalogCmd)
}
