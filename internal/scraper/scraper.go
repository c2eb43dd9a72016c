package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/logger"
)

const (
	WinnersURL = "https://www.lionsclub-badduerkheim.de/adventskalender/gewinne-2025"
	RelayURL   = "https://corsproxy.io/?"
	UserAgent  = "advent-wins/1.0 (github.com/pfrederiksen/advent-wins)"
	Timeout    = 30 * time.Second
)

var (
	// ErrUnexpectedStatus is returned for non-2xx responses
	ErrUnexpectedStatus = errors.New("unexpected status code")
	// ErrEmptyBody is returned when the page came back without content
	ErrEmptyBody = errors.New("empty response")
	// ErrNoWins is returned when the page parsed but held no winning numbers
	ErrNoWins = errors.New("no numbers found, HTML structure might have changed")
)

// Scraper retrieves the winner listing page
type Scraper struct {
	client *http.Client
	url    string
	relay  string
}

// New creates a Scraper for the default listing page behind the default relay
func New() *Scraper {
	return NewWithURLs(WinnersURL, RelayURL)
}

// NewWithURLs creates a Scraper for sourceURL. The target is percent-encoded
// and appended to relayURL; an empty relayURL fetches the page directly.
func NewWithURLs(sourceURL, relayURL string) *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url:   sourceURL,
		relay: relayURL,
	}
}

// SourceURL returns the listing page address
func (s *Scraper) SourceURL() string {
	return s.url
}

// RequestURL returns the address actually requested
func (s *Scraper) RequestURL() string {
	if s.relay == "" {
		return s.url
	}
	return s.relay + EscapeComponent(s.url)
}

// componentKeep restores the characters QueryEscape encodes beyond what a
// URI component needs, and spaces as %20 instead of '+'
var componentKeep = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// EscapeComponent percent-encodes s for use as one URI component. Letters,
// digits and -_.!~*'() are kept; everything else, including '/', '?' and
// '&', is encoded.
func EscapeComponent(s string) string {
	return componentKeep.Replace(url.QueryEscape(s))
}

// FetchWins performs one retrieval of the listing page and parses it.
// A non-2xx status, an empty body and a page without numbers are errors.
func (s *Scraper) FetchWins(ctx context.Context) ([]advent.DayData, error) {
	start := time.Now()
	defer func() {
		logger.RecordTiming("scraper.fetch", time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.RequestURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading page: %w", err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, ErrEmptyBody
	}

	days := ParseWinsHTML(string(body))
	if len(days) == 0 {
		return nil, ErrNoWins
	}

	logger.Debug("Parsed winner listing", logger.Fields{
		"url":  s.url,
		"days": len(days),
	})
	return days, nil
}
