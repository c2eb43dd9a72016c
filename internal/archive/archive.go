// Package archive loads and stores the cached winner dataset used when the live
// listing can't be retrieved or the calendar has ended.
//
// A dataset has the JSON shape {"lastUpdated": ISO-8601, "dayData": [...]}. A copy
// is embedded in the binary as the fallback of last resort; a file-based archive
// written after each successful live check takes precedence over it.
package archive

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pfrederiksen/advent-wins/internal/advent"
)

//go:embed gewinne-2025.json
var bundled []byte

// Dataset is a snapshot of parsed winner data
type Dataset struct {
	LastUpdated time.Time        `json:"lastUpdated"`
	DayData     []advent.DayData `json:"dayData"`
}

// Loader provides a cached dataset. Load returns nil, nil when none exists.
type Loader interface {
	Load() (*Dataset, error)
}

// Decode parses a dataset from JSON
func Decode(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&ds); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if ds.DayData == nil {
		ds.DayData = []advent.DayData{}
	}
	return &ds, nil
}

type bundledLoader struct{}

// Bundled returns the loader for the dataset compiled into the binary
func Bundled() Loader {
	return bundledLoader{}
}

func (bundledLoader) Load() (*Dataset, error) {
	if len(bytes.TrimSpace(bundled)) == 0 {
		return nil, nil
	}
	return Decode(bundled)
}

// File is a dataset stored on disk
type File struct {
	Path string
}

// Load reads the file; a missing file is not an error
func (f File) Load() (*Dataset, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	return Decode(data)
}

// Save writes ds atomically by renaming a temporary file over the target
func (f File) Save(ds *Dataset) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding archive: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".archive-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("writing archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("replacing archive: %w", err)
	}
	return nil
}

type chain []Loader

// First returns a loader yielding the first dataset any of loaders provides.
// Failing loaders are skipped; when none yields a dataset the first error is returned.
func First(loaders ...Loader) Loader {
	return chain(loaders)
}

func (c chain) Load() (*Dataset, error) {
	var firstErr error
	for _, l := range c {
		ds, err := l.Load()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ds != nil {
			return ds, nil
		}
	}
	return nil, firstErr
}
