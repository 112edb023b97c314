package firebase

import (
	"fmt"
	"os"

	"google.golang.org/api/option"

	"undulcito/pkg/config"
	"undulcito/pkg/logger"
)

const defaultServiceAccountPath = "./firebase-service-account.json"

// ClientOption picks the service account: inline JSON (production) wins over
// a file path (local development).
func ClientOption(cfg *config.Config) (option.ClientOption, error) {
	if cfg.ServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)), nil
	}

	path := cfg.ServiceAccountPath
	if path == "" {
		path = defaultServiceAccountPath
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("service account file does not exist: %s", path)
	}

	logger.Info("Using Firebase service account from file: %s", path)
	return option.WithCredentialsFile(path), nil
}
