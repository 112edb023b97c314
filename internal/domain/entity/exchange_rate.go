package entity

import "time"

// ExchangeRate is one successful lookup of the bolívar/euro rate.
type ExchangeRate struct {
	Source      string    `json:"source"`
	Rate        float64   `json:"rate"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// RateResult is either OK with a quote or unavailable.
type RateResult struct {
	OK    bool
	Quote ExchangeRate
}

func RateAvailable(quote ExchangeRate) RateResult {
	return RateResult{OK: true, Quote: quote}
}

func RateUnavailable() RateResult {
	return RateResult{}
}
