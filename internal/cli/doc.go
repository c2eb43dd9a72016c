// Package cli implements the command-line interface for advent-wins.
//
// The cli package provides the Cobra-based CLI: checking the winner page,
// listing wins (text/JSON, sortable by day, member or sponsor), managing the
// registered tickets, sharing them as links, generating demo data and serving
// the JSON API. It wires config, storage, scraper, pipeline and tracker
// together. "check" exits with code 2 when new wins were found.
package cli
