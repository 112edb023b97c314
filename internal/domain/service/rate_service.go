package service

import (
	"context"

	"undulcito/internal/domain/entity"
)

// RateSource looks up the bolívar/euro exchange rate.
type RateSource interface {
	Fetch(ctx context.Context) entity.RateResult
	// Latest returns the last successful fetch, if any.
	Latest() entity.RateResult
}
