// Package exchangerate reads the official BCV euro rate, falling back to a
// public API when the BCV site cannot be scraped.
package exchangerate

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"undulcito/internal/domain/entity"
	"undulcito/pkg/logger"
)

const (
	SourcePrimary  = "BCV Oficial"
	SourceFallback = "API Respaldo"

	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	euroSelector     = "#euro strong"
)

type Fetcher struct {
	primaryURL  string
	fallbackURL string

	// The BCV site serves an expired certificate more often than not.
	scrapeClient *http.Client
	apiClient    *http.Client
	now          func() time.Time

	mu     sync.RWMutex
	latest entity.RateResult
}

func NewFetcher(primaryURL, fallbackURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
		scrapeClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		apiClient: &http.Client{Timeout: timeout},
		now:       time.Now,
	}
}

// Fetch tries the BCV page, then the fallback API. It never retries.
func (f *Fetcher) Fetch(ctx context.Context) entity.RateResult {
	rate, err := f.scrape(ctx)
	if err == nil {
		return f.remember(SourcePrimary, rate)
	}
	logger.Warn("BCV scrape failed, trying fallback API: %v", err)

	rate, err = f.fallback(ctx)
	if err == nil {
		return f.remember(SourceFallback, rate)
	}
	logger.Error("Exchange rate unavailable: %v", err)

	return entity.RateUnavailable()
}

func (f *Fetcher) Latest() entity.RateResult {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.latest
}

func (f *Fetcher) remember(source string, rate float64) entity.RateResult {
	result := entity.RateAvailable(entity.ExchangeRate{
		Source:      source,
		Rate:        rate,
		LastUpdated: f.now().UTC(),
	})

	f.mu.Lock()
	f.latest = result
	f.mu.Unlock()

	logger.Info("Exchange rate %.4f Bs/EUR from %s", rate, source)
	return result
}

func (f *Fetcher) scrape(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.primaryURL, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.scrapeClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("BCV responded %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse BCV page: %w", err)
	}

	return parseRate(doc.Find(euroSelector).First().Text())
}

type fallbackResponse struct {
	Monitors struct {
		Euro struct {
			Price float64 `json:"price"`
		} `json:"euro"`
	} `json:"monitors"`
}

func (f *Fetcher) fallback(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.fallbackURL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := f.apiClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fallback API responded %d", resp.StatusCode)
	}

	var body fallbackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode fallback response: %w", err)
	}
	if body.Monitors.Euro.Price <= 0 {
		return 0, fmt.Errorf("fallback response has no euro price")
	}

	return body.Monitors.Euro.Price, nil
}

// parseRate reads a BCV-formatted number such as "60,00" or " 52,1234 ".
func parseRate(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("euro rate not found in page")
	}

	rate, err := strconv.ParseFloat(strings.Replace(text, ",", ".", 1), 64)
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("unreadable euro rate %q", text)
	}
	return rate, nil
}
