package advent

// Member is a single raffle ticket registration
type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
	Avatar string `json:"avatar"`
}

// Group is a named collection of registrations, e.g. a family
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// WinGroup is one prize offered by one sponsor on one day
type WinGroup struct {
	Numbers []string `json:"numbers"`
	Prize   string   `json:"prize"`
	Sponsor string   `json:"sponsor"`
}

// DayData holds every prize drawn for one calendar day
type DayData struct {
	Day       int        `json:"day"`
	WinGroups []WinGroup `json:"winGroups"`
}

// WinEntry is one registered ticket matching one drawn number
type WinEntry struct {
	Day     int    `json:"day"`
	Member  Member `json:"member"`
	Prize   string `json:"prize"`
	Sponsor string `json:"sponsor"`
}

// DataSource tags where a DayData collection came from
type DataSource string

const (
	SourceNone      DataSource = "none"
	SourceReal      DataSource = "real"
	SourceCached    DataSource = "cached"
	SourceSimulated DataSource = "simulated"
	SourceError     DataSource = "error"
)

// Valid reports whether s is one of the known data source tags
func (s DataSource) Valid() bool {
	switch s {
	case SourceNone, SourceReal, SourceCached, SourceSimulated, SourceError:
		return true
	}
	return false
}

// AllMembers flattens the members of all groups in stored order.
// Group boundaries never affect matching.
func AllMembers(groups []Group) []Member {
	members := make([]Member, 0)
	for _, g := range groups {
		members = append(members, g.Members...)
	}
	return members
}

// CloneDays returns a deep copy of days so callers can hand out results
// without sharing the underlying number slices.
func CloneDays(days []DayData) []DayData {
	if days == nil {
		return nil
	}
	out := make([]DayData, len(days))
	for i, d := range days {
		groups := make([]WinGroup, len(d.WinGroups))
		for j, wg := range d.WinGroups {
			groups[j] = WinGroup{
				Numbers: append([]string(nil), wg.Numbers...),
				Prize:   wg.Prize,
				Sponsor: wg.Sponsor,
			}
		}
		out[i] = DayData{Day: d.Day, WinGroups: groups}
	}
	return out
}
