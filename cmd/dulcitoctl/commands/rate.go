package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"undulcito/cmd/dulcitoctl/output"
	"undulcito/internal/infrastructure/exchangerate"
)

var errUnavailable = errors.New("exchange rate unavailable")

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Fetch the current BCV euro rate",
	RunE: func(cmd *cobra.Command, args []string) error {
		fetcher := exchangerate.NewFetcher(cfg.RatePrimaryURL, cfg.RateFallbackURL, cfg.RateTimeout)

		result := fetcher.Fetch(cmd.Context())
		if !result.OK {
			output.Error("Servicios no disponibles")
			return errUnavailable
		}

		q := result.Quote
		output.Success("%.4f Bs/EUR", q.Rate)
		output.Muted("%s · %s", q.Source, q.LastUpdated.Local().Format("02/01/2006 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rateCmd)
}
