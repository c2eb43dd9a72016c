package advent

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// DefaultGroupName is used for the initial group and for imports without a name
const DefaultGroupName = "Meine Familie"

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrDuplicateNumber = errors.New("number already registered")
	ErrMissingName     = errors.New("name is required")
	ErrMissingNumber   = errors.New("number is required")
)

// Avatars are the glyphs a member can pick from
var Avatars = []string{
	"🎅", "🤶", "🦌", "⛄", "🎄", "🎁", "👼", "🕯️", "⭐", "❄️",
	"🔔", "🍪", "🧦", "🛷", "🎿", "☃️", "🌟", "🍬", "🧣", "🎶",
}

// DefaultAvatar is assigned when none is given
const DefaultAvatar = "🎅"

// NewID returns a fresh opaque identifier for a group or member
func NewID() string {
	return uuid.NewString()
}

// RandomAvatar picks one of Avatars
func RandomAvatar() string {
	return Avatars[rand.IntN(len(Avatars))]
}

// DefaultGroupID identifies the initial group and the group created by an import.
// It is fixed so an unsaved initial state resolves to the same group on every load.
const DefaultGroupID = "g1"

// DefaultGroups is the collection a new installation starts with
func DefaultGroups() []Group {
	return []Group{{ID: DefaultGroupID, Name: DefaultGroupName, Members: []Member{}}}
}

// NewMember validates the input and creates a member with a fresh ID.
// The number keeps its characters verbatim apart from surrounding whitespace.
// An empty name falls back to "Los <number>".
func NewMember(name, number, avatar string) (Member, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Member{}, ErrMissingNumber
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Los " + number
	}
	if avatar == "" {
		avatar = DefaultAvatar
	}
	return Member{ID: NewID(), Name: name, Number: number, Avatar: avatar}, nil
}

// FindGroup returns the index of the group with the given ID, or -1
func FindGroup(groups []Group, groupID string) int {
	return slices.IndexFunc(groups, func(g Group) bool { return g.ID == groupID })
}

// HasNumber reports whether any member in any group registered number,
// ignoring the member with skipID.
func HasNumber(groups []Group, number, skipID string) bool {
	for _, m := range AllMembers(groups) {
		if m.ID != skipID && m.Number == number {
			return true
		}
	}
	return false
}

// AddMember appends m to the group with groupID. The input slice is not modified.
func AddMember(groups []Group, groupID string, m Member) ([]Group, error) {
	idx := FindGroup(groups, groupID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	if m.Number == "" {
		return nil, ErrMissingNumber
	}
	if HasNumber(groups, m.Number, "") {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, m.Number)
	}

	out := cloneGroups(groups)
	out[idx].Members = append(out[idx].Members, m)
	return out, nil
}

// EditMember replaces name, number and avatar of an existing member, keeping its ID
func EditMember(groups []Group, groupID, memberID, name, number, avatar string) ([]Group, error) {
	name = strings.TrimSpace(name)
	number = strings.TrimSpace(number)
	if name == "" {
		return nil, ErrMissingName
	}
	if number == "" {
		return nil, ErrMissingNumber
	}

	gi, mi, err := locate(groups, groupID, memberID)
	if err != nil {
		return nil, err
	}
	if HasNumber(groups, number, memberID) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, number)
	}

	out := cloneGroups(groups)
	m := &out[gi].Members[mi]
	m.Name = name
	m.Number = number
	if avatar != "" {
		m.Avatar = avatar
	}
	return out, nil
}

// RemoveMember drops a member from its group
func RemoveMember(groups []Group, groupID, memberID string) ([]Group, error) {
	gi, mi, err := locate(groups, groupID, memberID)
	if err != nil {
		return nil, err
	}
	out := cloneGroups(groups)
	out[gi].Members = slices.Delete(out[gi].Members, mi, mi+1)
	return out, nil
}

// RenameGroup sets a new, trimmed, non-empty group name
func RenameGroup(groups []Group, groupID, name string) ([]Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingName
	}
	idx := FindGroup(groups, groupID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	out := cloneGroups(groups)
	out[idx].Name = name
	return out, nil
}

func locate(groups []Group, groupID, memberID string) (int, int, error) {
	gi := FindGroup(groups, groupID)
	if gi < 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrGroupNotFound, groupID)
	}
	mi := slices.IndexFunc(groups[gi].Members, func(m Member) bool { return m.ID == memberID })
	if mi < 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
	}
	return gi, mi, nil
}

func cloneGroups(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{ID: g.ID, Name: g.Name, Members: slices.Clone(g.Members)}
		if out[i].Members == nil {
			out[i].Members = []Member{}
		}
	}
	return out
}
