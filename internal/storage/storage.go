package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/archive"
	"github.com/pfrederiksen/advent-wins/internal/match"
)

const (
	stateFile   = "state.json"
	archiveFile = "archive.json"
)

// State is everything the tracker remembers between runs
type State struct {
	Groups     []advent.Group    `json:"groups"`
	DayData    []advent.DayData  `json:"dayData"`
	LastCheck  *time.Time        `json:"lastCheck,omitempty"`
	DataSource advent.DataSource `json:"dataSource"`
	LastError  string            `json:"lastError,omitempty"`
	CachedAsOf *time.Time        `json:"cachedAsOf,omitempty"`
	Notified   match.NotifiedSet `json:"notified,omitempty"`
	UpdatedAt  string            `json:"updatedAt,omitempty"`
}

// NewState returns the state of a fresh installation
func NewState() *State {
	return &State{
		Groups:     advent.DefaultGroups(),
		DayData:    []advent.DayData{},
		DataSource: advent.SourceNone,
		Notified:   match.NotifiedSet{},
	}
}

// Storage handles persistence of the tracker state
type Storage struct {
	dataDir string
}

// New creates a Storage rooted at dataDir, creating the directory if needed
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// DataDir returns the resolved data directory
func (s *Storage) DataDir() string {
	return s.dataDir
}

// Archive returns the file-based archive kept next to the state
func (s *Storage) Archive() archive.File {
	return archive.File{Path: filepath.Join(s.dataDir, archiveFile)}
}

// LoadState reads the stored state. Without a state file the initial state is returned.
func (s *Storage) LoadState() (*State, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, stateFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewState(), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}

	if len(state.Groups) == 0 {
		state.Groups = advent.DefaultGroups()
	}
	if state.DayData == nil {
		state.DayData = []advent.DayData{}
	}
	if !state.DataSource.Valid() {
		state.DataSource = advent.SourceNone
	}
	if state.Notified == nil {
		state.Notified = match.NotifiedSet{}
	}

	return &state, nil
}

// SaveState writes state to disk, replacing the previous file
func (s *Storage) SaveState(state *State) error {
	path := filepath.Join(s.dataDir, stateFile)

	state.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing state: %w", err)
	}

	return nil
}
