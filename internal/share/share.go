// Package share encodes a group of ticket registrations into a URL fragment so a
// ticket set can be moved between devices.
//
// The compact form is the percent-encoded string
//
//	<group name>;<name>~<number>~<avatar>|<name>~<number>~<avatar>|...
//
// Decode also accepts the older base64-encoded JSON form.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pfrederiksen/advent-wins/internal/advent"
)

// FragmentPrefix precedes the encoded data in a share URL
const FragmentPrefix = "#data="

const (
	defaultMemberName = "Unbekannt"
	defaultNumber     = "0000"
)

// ErrNoData is returned for fragments that carry no share data
var ErrNoData = errors.New("no share data")

// Encode returns the percent-encoded compact form of group
func Encode(group advent.Group) string {
	parts := make([]string, 0, len(group.Members))
	for _, m := range group.Members {
		parts = append(parts, m.Name+"~"+m.Number+"~"+m.Avatar)
	}
	return url.PathEscape(group.Name + ";" + strings.Join(parts, "|"))
}

// URL builds the share link for group below base
func URL(base string, group advent.Group) string {
	return strings.TrimSuffix(base, "#") + FragmentPrefix + Encode(group)
}

// Decode parses a share fragment, with or without the "#data=" prefix.
// Members receive fresh IDs.
func Decode(fragment string) ([]advent.Group, error) {
	data := strings.TrimPrefix(strings.TrimSpace(fragment), FragmentPrefix)
	if data == "" {
		return nil, ErrNoData
	}

	decoded, err := url.PathUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("decoding share data: %w", err)
	}
	if strings.Contains(decoded, "~") {
		return []advent.Group{decodeCompact(decoded)}, nil
	}
	return decodeLegacy(data)
}

func decodeCompact(decoded string) advent.Group {
	groupName := advent.DefaultGroupName
	membersData := decoded
	if name, rest, found := strings.Cut(decoded, ";"); found {
		if name != "" {
			groupName = name
		}
		membersData = rest
	}

	members := make([]advent.Member, 0)
	for _, entry := range strings.Split(membersData, "|") {
		if entry == "" {
			continue
		}
		fields := strings.Split(entry, "~")
		members = append(members, advent.Member{
			ID:     advent.NewID(),
			Name:   field(fields, 0, defaultMemberName),
			Number: field(fields, 1, defaultNumber),
			Avatar: field(fields, 2, advent.DefaultAvatar),
		})
	}
	return advent.Group{ID: advent.DefaultGroupID, Name: groupName, Members: members}
}

// decodeLegacy reads base64(percent-encoded JSON array of groups)
func decodeLegacy(data string) ([]advent.Group, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decoding legacy share data: %w", err)
	}
	js, err := url.PathUnescape(string(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding legacy share data: %w", err)
	}

	var groups []advent.Group
	if err := json.Unmarshal([]byte(js), &groups); err != nil {
		return nil, fmt.Errorf("parsing legacy share data: %w", err)
	}
	if len(groups) == 0 || groups[0].Members == nil {
		return nil, ErrNoData
	}
	for gi := range groups {
		for mi := range groups[gi].Members {
			if groups[gi].Members[mi].Avatar == "" {
				groups[gi].Members[mi].Avatar = advent.DefaultAvatar
			}
		}
	}
	return groups, nil
}

func field(fields []string, i int, fallback string) string {
	if i < len(fields) && fields[i] != "" {
		return fields[i]
	}
	return fallback
}
