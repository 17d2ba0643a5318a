package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ha404/dual-momentum/internal/model"
)

// StooqFetcher implements Fetcher using the Stooq CSV download endpoint.
// Stooq serves split/dividend-adjusted prices, so Close doubles as the
// adjusted close and no separate adjclose column exists.
type StooqFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewStooqFetcher creates a new fetcher with optional proxy support.
func NewStooqFetcher(proxyURL string) *StooqFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &StooqFetcher{
		BaseURL: "https://stooq.com",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *StooqFetcher) Name() string { return "stooq" }

// stooqSymbol maps a plain US ticker to Stooq's ".us" suffix convention.
func stooqSymbol(ticker string) string {
	s := strings.ToLower(ticker)
	if !strings.Contains(s, ".") {
		s += ".us"
	}
	return s
}

// FetchMonthlyHistory fetches monthly bars between start and end.
func (f *StooqFetcher) FetchMonthlyHistory(ctx context.Context, ticker string, start, end time.Time) ([]model.PriceBar, error) {
	u := fmt.Sprintf("%s/q/d/l/?s=%s&d1=%s&d2=%s&i=m",
		f.BaseURL, url.QueryEscape(stooqSymbol(ticker)),
		start.Format("20060102"), end.Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stooq fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("stooq: status %d, body: %s", resp.StatusCode, string(body))
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("stooq parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("stooq: no data returned for %s", ticker)
	}

	// Header: Date,Open,High,Low,Close,Volume
	bars := make([]model.PriceBar, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 5 {
			continue
		}
		t, err := time.Parse("2006-01-02", rec[0])
		if err != nil {
			continue
		}
		c, err := strconv.ParseFloat(rec[4], 64)
		if err != nil || c == 0 {
			continue
		}
		bars = append(bars, model.PriceBar{Time: t, Close: c})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}
