package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const maxDay = 31

var dayRangePattern = regexp.MustCompile(`^(\d{1,2})?\s*(-)?\s*(\d{1,2})?$`)

// Parse builds a Filter from a query of space-separated terms:
//
//	day:6        a single day
//	day:1-6      a range; "day:20-" and "day:-6" leave one side open
//	sponsor:X    sponsor contains X
//	prize:X      prize contains X
//	member:X     member name contains X, or ticket number equals X
//	special      only decorated days
//
// Repeated terms of one kind are alternatives. Values cannot contain spaces;
// an underscore stands for one.
func Parse(query string) (*Filter, error) {
	f := NewFilter()
	for _, term := range strings.Fields(query) {
		if strings.EqualFold(term, "special") {
			f.SpecialOnly = true
			continue
		}

		key, value, ok := strings.Cut(term, ":")
		if !ok || value == "" {
			return nil, fmt.Errorf("invalid filter term: %q (want key:value)", term)
		}
		value = strings.ReplaceAll(value, "_", " ")

		switch strings.ToLower(key) {
		case "day", "days":
			from, to, err := ParseDayRange(value)
			if err != nil {
				return nil, err
			}
			f.DayFrom, f.DayTo = from, to
		case "sponsor":
			f.Sponsors = append(f.Sponsors, value)
		case "prize":
			f.Prizes = append(f.Prizes, value)
		case "member":
			f.Members = append(f.Members, value)
		default:
			return nil, fmt.Errorf("unknown filter key: %q (use day, sponsor, prize, member or special)", key)
		}
	}
	return f, nil
}

// ParseDayRange parses "6", "1-6", "20-" or "-6" into an inclusive range.
// 0 marks an open side.
func ParseDayRange(input string) (int, int, error) {
	input = strings.TrimSpace(input)
	m := dayRangePattern.FindStringSubmatch(input)
	if input == "" || m == nil || (m[1] == "" && m[3] == "") {
		return 0, 0, fmt.Errorf("invalid day range: %q. Use '6', '1-6', '20-' or '-6'", input)
	}

	from, err := parseDay(m[1])
	if err != nil {
		return 0, 0, err
	}
	to, err := parseDay(m[3])
	if err != nil {
		return 0, 0, err
	}

	// Single day
	if m[2] == "" {
		if m[3] != "" {
			return 0, 0, fmt.Errorf("invalid day range: %q", input)
		}
		return from, from, nil
	}

	if from > 0 && to > 0 && from > to {
		return 0, 0, fmt.Errorf("start day must not be after end day")
	}
	return from, to, nil
}

func parseDay(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil || d < 1 || d > maxDay {
		return 0, fmt.Errorf("invalid day: %s", s)
	}
	return d, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
