package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pfrederiksen/advent-wins/internal/advent"
	"github.com/pfrederiksen/advent-wins/internal/archive"
	"github.com/pfrederiksen/advent-wins/internal/match"
)

func TestLoadState_Fresh(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	state, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}
	if len(state.Groups) != 1 || state.Groups[0].Name != advent.DefaultGroupName {
		t.Errorf("fresh groups = %+v, want one default group", state.Groups)
	}
	if state.DataSource != advent.SourceNone {
		t.Errorf("fresh data source = %s, want none", state.DataSource)
	}
	if state.LastCheck != nil {
		t.Errorf("fresh last check = %v, want nil", state.LastCheck)
	}
	if state.DayData == nil || state.Notified == nil {
		t.Error("fresh state has nil collections")
	}
}

func TestLoadState_FreshGroupIDStable(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	first, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}
	second, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}
	if first.Groups[0].ID != second.Groups[0].ID {
		t.Errorf("default group ID changed between loads: %q vs %q", first.Groups[0].ID, second.Groups[0].ID)
	}

	// A saved state without groups falls back to the same default group
	first.Groups = nil
	if err := store.SaveState(first); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}
	repaired, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}
	if repaired.Groups[0].ID != second.Groups[0].ID {
		t.Errorf("repaired group ID = %q, want %q", repaired.Groups[0].ID, second.Groups[0].ID)
	}
}

func TestSaveLoadState(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	checked := time.Date(2025, time.December, 6, 8, 30, 0, 0, time.UTC)
	want := &State{
		Groups: []advent.Group{{ID: "g1", Name: "Familie", Members: []advent.Member{
			{ID: "m1", Name: "Papa", Number: "0042", Avatar: "🎅"},
		}}},
		DayData: []advent.DayData{{Day: 6, WinGroups: []advent.WinGroup{
			{Numbers: []string{"0042"}, Prize: "Wellness Voucher", Sponsor: "Bakery"},
		}}},
		LastCheck:  &checked,
		DataSource: advent.SourceReal,
		Notified:   match.NotifiedSet{"6|m1|0042|Bakery|Wellness Voucher": true},
	}

	if err := store.SaveState(want); err != nil {
		t.Fatalf("SaveState() error: %v", err)
	}
	if want.UpdatedAt == "" {
		t.Error("SaveState() did not set UpdatedAt")
	}

	got, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}
	if !reflect.DeepEqual(got.Groups, want.Groups) {
		t.Errorf("Groups = %+v, want %+v", got.Groups, want.Groups)
	}
	if !reflect.DeepEqual(got.DayData, want.DayData) {
		t.Errorf("DayData = %+v, want %+v", got.DayData, want.DayData)
	}
	if got.LastCheck == nil || !got.LastCheck.Equal(checked) {
		t.Errorf("LastCheck = %v, want %v", got.LastCheck, checked)
	}
	if got.DataSource != advent.SourceReal {
		t.Errorf("DataSource = %s, want real", got.DataSource)
	}
	if !reflect.DeepEqual(got.Notified, want.Notified) {
		t.Errorf("Notified = %v, want %v", got.Notified, want.Notified)
	}
}

func TestLoadState_Repairs(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	raw := `{"groups": [], "dataSource": "bogus"}`
	if err := os.WriteFile(filepath.Join(dir, stateFile), []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	state, err := store.LoadState()
	if err != nil {
		t.Fatalf("LoadState() error: %v", err)
	}
	if len(state.Groups) != 1 {
		t.Errorf("empty groups not replaced by default: %+v", state.Groups)
	}
	if state.DataSource != advent.SourceNone {
		t.Errorf("invalid data source kept: %s", state.DataSource)
	}
}

func TestLoadState_Corrupt(t *testing.T) {
	dir := t.TempDir()
	store, _ := New(dir)
	if err := os.WriteFile(filepath.Join(dir, stateFile), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.LoadState(); err == nil {
		t.Error("LoadState() expected error for corrupt file")
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := New("~/advent-data")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if want := filepath.Join(home, "advent-data"); store.DataDir() != want {
		t.Errorf("DataDir() = %q, want %q", store.DataDir(), want)
	}
	if _, err := os.Stat(store.DataDir()); err != nil {
		t.Errorf("data directory not created: %v", err)
	}
}

func TestArchive(t *testing.T) {
	store, _ := New(t.TempDir())
	a := store.Archive()

	ds := &archive.Dataset{LastUpdated: time.Now().UTC().Truncate(time.Second), DayData: []advent.DayData{{Day: 1}}}
	if err := a.Save(ds); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := store.Archive().Load()
	if err != nil || got == nil || len(got.DayData) != 1 {
		t.Errorf("Archive().Load() = %+v, %v", got, err)
	}
}
