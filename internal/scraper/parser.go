package scraper

import (
	"cmp"
	"io"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"

	"github.com/pfrederiksen/advent-wins/internal/advent"
)

// Markers of the source page layout
const (
	dayContainerSelector   = ".gewinntag"
	dayHeadingSelector     = "h2"
	sponsorBlockSelector   = ".bg-primary.row"
	sponsorHeadingSelector = "h4"
	sponsorBlockClass      = "bg-primary"
	rowSelector            = "tbody tr"
	numberCellClass        = "nr"
)

// DefaultSponsor names a sponsor block whose name could not be resolved
const DefaultSponsor = "Unknown Sponsor"

// ParseWins reads an HTML document and extracts the drawn numbers per day.
// It never fails: unreadable input yields an empty, non-nil slice.
// The result is sorted by day and holds at most one entry per day.
func ParseWins(r io.Reader) []advent.DayData {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return []advent.DayData{}
	}
	return parseDocument(doc)
}

// ParseWinsHTML is ParseWins for an in-memory document
func ParseWinsHTML(s string) []advent.DayData {
	return ParseWins(strings.NewReader(s))
}

func parseDocument(doc *goquery.Document) []advent.DayData {
	days := make(map[int]*dayBuilder)

	doc.Find(dayContainerSelector).Each(func(_ int, container *goquery.Selection) {
		var (
			day     int
			builder *dayBuilder
		)
		ok := guard(func() {
			day, builder = parseDay(container)
		})
		if !ok || builder == nil || len(builder.groups) == 0 {
			return
		}

		if existing, found := days[day]; found {
			existing.merge(builder)
		} else {
			days[day] = builder
		}
	})

	results := make([]advent.DayData, 0, len(days))
	for day, b := range days {
		results = append(results, advent.DayData{Day: day, WinGroups: b.groups})
	}
	slices.SortFunc(results, func(a, b advent.DayData) int {
		return cmp.Compare(a.Day, b.Day)
	})
	return results
}

// parseDay returns nil when the container has no usable day heading
func parseDay(container *goquery.Selection) (int, *dayBuilder) {
	heading := container.Find(dayHeadingSelector).First()
	if heading.Length() == 0 {
		return 0, nil
	}
	day, ok := DayNumber(heading.Text())
	if !ok {
		return 0, nil
	}

	builder := &dayBuilder{}
	container.Find(sponsorBlockSelector).Each(func(_ int, block *goquery.Selection) {
		var rows []winRow
		if !guard(func() { rows = parseSponsorBlock(block) }) {
			return
		}
		for _, row := range rows {
			builder.add(row)
		}
	})
	return day, builder
}

type winRow struct {
	sponsor string
	prize   string
	number  string
}

func parseSponsorBlock(block *goquery.Selection) []winRow {
	sponsor := resolveSponsor(block)

	table := tableAfter(block)
	if table == nil {
		return nil
	}

	var rows []winRow
	table.Find(rowSelector).Each(func(_ int, tr *goquery.Selection) {
		numberCell := tr.Find("." + numberCellClass).First()
		prizeCell := tr.Find("td").Not("." + numberCellClass).Last()
		if numberCell.Length() == 0 || prizeCell.Length() == 0 {
			return
		}

		number := CleanNumber(numberCell.Text())
		prize := CollapseWhitespace(prizeCell.Text())
		if number == "" || prize == "" {
			return
		}
		rows = append(rows, winRow{sponsor: sponsor, prize: prize, number: number})
	})
	return rows
}

// resolveSponsor prefers the block's heading and falls back to its full text
func resolveSponsor(block *goquery.Selection) string {
	var name string
	if heading := block.Find(sponsorHeadingSelector).First(); heading.Length() > 0 {
		name = SponsorFromHeading(heading.Text())
	} else if found, ok := SponsorFromText(block.Text()); ok {
		name = found
	}
	if name == "" {
		return DefaultSponsor
	}
	return name
}

// tableAfter walks the following element siblings of block up to the first
// table. Reaching the next sponsor block first means the sponsor has no table.
func tableAfter(block *goquery.Selection) *goquery.Selection {
	for next := block.Next(); next.Length() > 0; next = next.Next() {
		if next.Nodes[0].DataAtom == atom.Table {
			return next
		}
		if next.HasClass(sponsorBlockClass) {
			return nil
		}
	}
	return nil
}

// dayBuilder accumulates win groups of one day, keyed by (sponsor, prize)
type dayBuilder struct {
	groups []advent.WinGroup
}

func (b *dayBuilder) add(row winRow) {
	for i := range b.groups {
		if b.groups[i].Sponsor == row.sponsor && b.groups[i].Prize == row.prize {
			b.groups[i].Numbers = append(b.groups[i].Numbers, row.number)
			return
		}
	}
	b.groups = append(b.groups, advent.WinGroup{
		Numbers: []string{row.number},
		Prize:   row.prize,
		Sponsor: row.sponsor,
	})
}

func (b *dayBuilder) merge(other *dayBuilder) {
	for _, g := range other.groups {
		for _, n := range g.Numbers {
			b.add(winRow{sponsor: g.Sponsor, prize: g.Prize, number: n})
		}
	}
}

// guard runs fn and reports whether it returned normally
func guard(fn func()) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	fn()
	return true
}
