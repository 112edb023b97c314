package storage

import (
	"context"

	"google.golang.org/api/option"

	"undulcito/internal/domain/service"
	"undulcito/pkg/config"
	"undulcito/pkg/logger"
)

// NewImageHost picks the product image host from IMAGE_HOST: "gcs" for the
// configured bucket, imgbb otherwise. The returned func releases the host.
func NewImageHost(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (service.ImageHost, func(), error) {
	switch cfg.ImageHost {
	case "gcs":
		client, err := NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Product images go to gs://%s", cfg.StorageBucket)
		return client, func() { client.Close() }, nil
	default:
		if cfg.ImgbbApiKey == "" {
			logger.Warn("IMGBB_API_KEY is not set; product image uploads will fail")
		}
		return NewImgbbClient(cfg.ImgbbApiKey), func() {}, nil
	}
}
