package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"undulcito/cmd/dulcitoctl/output"
	apperrors "undulcito/pkg/errors"
)

var saleCmd = &cobra.Command{
	Use:     "sale <product-id> <quantity>",
	Short:   "Record an in-person sale and take it off the stock",
	Example: `  dulcitoctl sale 8fK2mQ 3`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be a whole number: %q", args[1])
		}

		admin, closeFn, err := openAdmin(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()

		left, err := admin.QuickSale(cmd.Context(), args[0], quantity)
		if err != nil {
			if apperrors.Is(err, "INSUFFICIENT_STOCK") {
				output.Warning("%v", err)
			}
			return err
		}

		output.Success("Sold %d, %s left", quantity, output.StockLabel(left))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saleCmd)
}
