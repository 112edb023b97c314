package commands

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/spf13/cobra"

	"undulcito/internal/adapter/repository"
	"undulcito/internal/infrastructure/firebase"
	"undulcito/internal/infrastructure/storage"
	"undulcito/internal/usecase"
	"undulcito/pkg/config"
	"undulcito/pkg/logger"
)

var (
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dulcitoctl",
	Short: "Back-office tool for the Un Dulcito storefront",
	Long: `dulcitoctl talks to the storefront's Firestore project with the same
service account as the API server.

It covers what the shop owner does at the counter:
  - record an in-person sale
  - list and manage categories
  - review the catalog, sold-out products included
  - check today's BCV exchange rate`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Setup(level, cfg.Environment)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// openAdmin connects to Firestore and the configured image host and returns
// the admin use case plus a closer for both.
func openAdmin(ctx context.Context) (*usecase.AdminUseCase, func(), error) {
	opt, err := firebase.ClientOption(cfg)
	if err != nil {
		return nil, nil, err
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	imageHost, closeHost, err := storage.NewImageHost(ctx, cfg, opt)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to initialize image host: %w", err)
	}

	admin := usecase.NewAdminUseCase(
		repository.NewFirestoreProductRepository(client),
		repository.NewFirestoreCategoryRepository(client),
		imageHost,
	)
	return admin, func() {
		closeHost()
		client.Close()
	}, nil
}
