package exchangerate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bcvPage = `<html><body>
<div id="dolar"><strong> 36,5000 </strong></div>
<div id="euro"><div><strong> 39,8712 </strong></div></div>
</body></html>`

func newTestFetcher(primary, fallback string) *Fetcher {
	f := NewFetcher(primary, fallback, 2*time.Second)
	f.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func fallbackServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"monitors":{"euro":{"price":40.12},"usd":{"price":36.5}}}`))
	}))
}

func TestFetchPrimary(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.UserAgent(), "Mozilla/5.0")
		w.Write([]byte(bcvPage))
	}))
	defer primary.Close()

	var fallbackCalls int32
	fb := fallbackServer(t, &fallbackCalls)
	defer fb.Close()

	f := newTestFetcher(primary.URL, fb.URL)
	result := f.Fetch(context.Background())

	require.True(t, result.OK)
	assert.Equal(t, SourcePrimary, result.Quote.Source)
	assert.InDelta(t, 39.8712, result.Quote.Rate, 1e-9)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fallbackCalls))
	assert.Equal(t, result, f.Latest())
}

func TestFetchFallsBackWhenScrapeFails(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>mantenimiento</body></html>`))
	}))
	defer primary.Close()

	var fallbackCalls int32
	fb := fallbackServer(t, &fallbackCalls)
	defer fb.Close()

	result := newTestFetcher(primary.URL, fb.URL).Fetch(context.Background())

	require.True(t, result.OK)
	assert.Equal(t, SourceFallback, result.Quote.Source)
	assert.InDelta(t, 40.12, result.Quote.Rate, 1e-9)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fallbackCalls))
}

func TestFetchUnavailable(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	f := newTestFetcher(down.URL, down.URL)
	result := f.Fetch(context.Background())

	assert.False(t, result.OK)
	assert.False(t, f.Latest().OK)
}

func TestFetchKeepsLastSuccess(t *testing.T) {
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(bcvPage))
	}))
	defer srv.Close()

	f := newTestFetcher(srv.URL, srv.URL)
	first := f.Fetch(context.Background())
	require.True(t, first.OK)

	failing.Store(true)
	assert.False(t, f.Fetch(context.Background()).OK)
	assert.Equal(t, first, f.Latest())
}

func TestParseRate(t *testing.T) {
	rate, err := parseRate(" 60,00 ")
	require.NoError(t, err)
	assert.Equal(t, 60.0, rate)

	_, err = parseRate("")
	assert.Error(t, err)

	_, err = parseRate("n/d")
	assert.Error(t, err)
}
