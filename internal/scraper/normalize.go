package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// sponsorMarker is the link label that trails sponsor names on the source page
const sponsorMarker = "sponsor anzeigen"

var (
	dayPattern         = regexp.MustCompile(`(\d+)\.`)
	sponsorPattern     = regexp.MustCompile(`(?i)Sponsor:\s*(.*)`)
	sponsorTextPattern = regexp.MustCompile(`(?i)Sponsor:\s*(.*?)(?:Sponsor anzeigen|$)`)
)

// CollapseWhitespace trims s and reduces every whitespace run to one space
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanNumber removes all whitespace from a ticket number
func CleanNumber(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// DayNumber extracts the day from a heading such as "Samstag, 6. Dezember".
// The first run of digits followed by a period wins.
func DayNumber(heading string) (int, bool) {
	m := dayPattern.FindStringSubmatch(heading)
	if m == nil {
		return 0, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

// SponsorFromHeading resolves the sponsor name from a sponsor heading.
// "Sponsor: <name>" yields <name>; any other text is taken verbatim.
func SponsorFromHeading(text string) string {
	text = CollapseWhitespace(text)
	if m := sponsorPattern.FindStringSubmatch(text); m != nil {
		return StripSponsorMarker(m[1])
	}
	return StripSponsorMarker(text)
}

// SponsorFromText scans the full text of a sponsor block for "Sponsor: <name>",
// stopping at the "Sponsor anzeigen" link label or the end of the text.
func SponsorFromText(text string) (string, bool) {
	m := sponsorTextPattern.FindStringSubmatch(CollapseWhitespace(text))
	if m == nil {
		return "", false
	}
	return StripSponsorMarker(m[1]), true
}

// StripSponsorMarker removes a trailing "Sponsor anzeigen" (any case)
func StripSponsorMarker(name string) string {
	name = strings.TrimSpace(name)
	n := len(name) - len(sponsorMarker)
	if n >= 0 && strings.EqualFold(name[n:], sponsorMarker) {
		name = strings.TrimSpace(name[:n])
	}
	return name
}
