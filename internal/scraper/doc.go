// Package scraper fetches and parses the daily winner listing of the Lions Club
// Bad Dürkheim advent calendar.
//
// The listing page groups winners by day (".gewinntag" containers). Each day holds
// sponsor blocks (".bg-primary.row") followed by a table of ticket numbers and
// prizes. ParseWins turns that markup into normalized advent.DayData values; it is
// total and never fails, a fragment it cannot read simply contributes nothing.
// Scraper performs the single HTTP retrieval, optionally through a CORS relay.
package scraper
