// Package storage persists the tracker state between runs.
//
// State is kept as JSON files in a data directory (default ~/.local/share/advent-wins):
// state.json holds the registered groups, the last acquired day data, the time
// and data source of the last check and the set of already notified wins;
// archive.json holds the most recent real dataset for offline fallback.
package storage
