package scraper

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/pfrederiksen/advent-wins/internal/advent"
)

func dayBlock(heading, body string) string {
	return `<div class="gewinntag"><h2>` + heading + `</h2>` + body + `</div>`
}

func sponsorTable(sponsorHTML string, rows ...[2]string) string {
	var b strings.Builder
	b.WriteString(`<div class="bg-primary row">` + sponsorHTML + `</div><table><tbody>`)
	for _, r := range rows {
		b.WriteString(`<tr><td class="nr">` + r[0] + `</td><td>` + r[1] + `</td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func TestParseWins_DuplicateRows(t *testing.T) {
	html := dayBlock("6.", sponsorTable("<h4>Sponsor: Bakery</h4>",
		[2]string{"1234", "Wellness Voucher"},
		[2]string{"1234", "Wellness Voucher"},
	))

	got := ParseWinsHTML(html)
	want := []advent.DayData{{
		Day: 6,
		WinGroups: []advent.WinGroup{{
			Sponsor: "Bakery",
			Prize:   "Wellness Voucher",
			Numbers: []string{"1234", "1234"},
		}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWinsHTML() = %+v, want %+v", got, want)
	}
}

func TestParseWins_Totality(t *testing.T) {
	inputs := []string{
		"",
		"not html at all <<<>>> &&&",
		"\x00\x01\x02",
		`<html><body><p>Noch keine Gewinne</p></body></html>`,
		`<div class="gewinntag"></div>`,
		`<div class="gewinntag"><h2>ohne Datum</h2></div>`,
		`<div class="gewinntag"><h2>3.</h2><table><tbody><tr><td class="nr">1</td><td>x</td></tr></tbody></table></div>`,
		`<table><tr><td class="nr">`,
	}

	for _, in := range inputs {
		got := ParseWinsHTML(in)
		if got == nil {
			t.Errorf("ParseWinsHTML(%q) returned nil, want empty slice", in)
			continue
		}
		if len(got) != 0 {
			t.Errorf("ParseWinsHTML(%q) = %+v, want empty", in, got)
		}
	}
}

func TestParseWins_Fixture(t *testing.T) {
	f, err := os.Open("testdata/gewinne.html")
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer f.Close()

	got := ParseWins(f)
	want := []advent.DayData{
		{
			Day: 1,
			WinGroups: []advent.WinGroup{
				{Sponsor: "Bäckerei am Markt", Prize: "Frühstückskorb", Numbers: []string{"1234", "5678"}},
				{Sponsor: "Bäckerei am Markt", Prize: "Brotzeit-Gutschein", Numbers: []string{"0042"}},
				{Sponsor: "Buchhandlung", Prize: "Büchergutschein 25 €", Numbers: []string{"9999"}},
			},
		},
		{
			Day: 2,
			WinGroups: []advent.WinGroup{
				{Sponsor: "Weingut Müller", Prize: "Wein-Paket (6 Flaschen)", Numbers: []string{"0815", "4711"}},
			},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWins(fixture) =\n%+v\nwant\n%+v", got, want)
	}
}

func TestParseWins_SponsorResolution(t *testing.T) {
	tests := []struct {
		name        string
		sponsorHTML string
		want        string
	}{
		{
			name:        "heading with prefix",
			sponsorHTML: "<h4>Sponsor: Weingut Müller</h4>",
			want:        "Weingut Müller",
		},
		{
			name:        "heading prefix is case-insensitive",
			sponsorHTML: "<h4>SPONSOR:   Grand Hotel</h4>",
			want:        "Grand Hotel",
		},
		{
			name:        "heading without prefix taken verbatim",
			sponsorHTML: "<h4>Buchhandlung Frank</h4>",
			want:        "Buchhandlung Frank",
		},
		{
			name:        "heading with trailing marker",
			sponsorHTML: "<h4>Sponsor: Metzgerei Sponsor anzeigen</h4>",
			want:        "Metzgerei",
		},
		{
			name:        "text fallback stops at marker",
			sponsorHTML: "Sponsor: Grand HotelSponsor anzeigen",
			want:        "Grand Hotel",
		},
		{
			name:        "text fallback to end of text",
			sponsorHTML: "<span>Sponsor: Apotheke am Ring</span>",
			want:        "Apotheke am Ring",
		},
		{
			name:        "nothing resolvable",
			sponsorHTML: "<span>Danke!</span>",
			want:        DefaultSponsor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWinsHTML(dayBlock("5.", sponsorTable(tt.sponsorHTML, [2]string{"1", "Preis"})))
			if len(got) != 1 || len(got[0].WinGroups) != 1 {
				t.Fatalf("ParseWinsHTML() = %+v, want one win group", got)
			}
			if got[0].WinGroups[0].Sponsor != tt.want {
				t.Errorf("sponsor = %q, want %q", got[0].WinGroups[0].Sponsor, tt.want)
			}
		})
	}
}

func TestParseWins_SiblingWalkStopsAtNextSponsor(t *testing.T) {
	html := dayBlock("9.",
		`<div class="bg-primary row"><h4>Sponsor: Ohne Tabelle</h4></div>`+
			`<p>Text</p>`+
			sponsorTable("<h4>Sponsor: Mit Tabelle</h4>", [2]string{"2222", "Kinogutschein"}),
	)

	got := ParseWinsHTML(html)
	if len(got) != 1 {
		t.Fatalf("ParseWinsHTML() returned %d days, want 1", len(got))
	}
	groups := got[0].WinGroups
	if len(groups) != 1 || groups[0].Sponsor != "Mit Tabelle" {
		t.Errorf("win groups = %+v, want only the sponsor with a table", groups)
	}
}

func TestParseWins_RowFiltering(t *testing.T) {
	html := dayBlock("12.", `<div class="bg-primary row"><h4>Sponsor: Test</h4></div>
		<table><tbody>
			<tr><td>kein Nummernfeld</td><td>Preis</td></tr>
			<tr><td class="nr">3333</td></tr>
			<tr><td class="nr">   </td><td>Preis</td></tr>
			<tr><td class="nr">4444</td><td>   </td></tr>
			<tr><td class="nr"> 55 55 </td><td>  Großer
				Preis </td></tr>
		</tbody></table>`)

	got := ParseWinsHTML(html)
	want := []advent.DayData{{
		Day:       12,
		WinGroups: []advent.WinGroup{{Sponsor: "Test", Prize: "Großer Preis", Numbers: []string{"5555"}}},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseWinsHTML() = %+v, want %+v", got, want)
	}
}

func TestParseWins_OrderingAndGrouping(t *testing.T) {
	html := dayBlock("24.", sponsorTable("<h4>Sponsor: A</h4>", [2]string{"1", "P"}, [2]string{"2", "Q"})) +
		dayBlock("3.", sponsorTable("<h4>Sponsor: A</h4>", [2]string{"3", "P"})+
			sponsorTable("<h4>Sponsor: A</h4>", [2]string{"4", "P"})) +
		dayBlock("24.", sponsorTable("<h4>Sponsor: A</h4>", [2]string{"5", "P"}))

	got := ParseWinsHTML(html)

	if len(got) != 2 {
		t.Fatalf("ParseWinsHTML() returned %d days, want 2: %+v", len(got), got)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Day >= got[i].Day {
			t.Errorf("days not strictly ascending: %d then %d", got[i-1].Day, got[i].Day)
		}
	}
	for _, d := range got {
		seen := make(map[[2]string]bool)
		for _, g := range d.WinGroups {
			key := [2]string{g.Sponsor, g.Prize}
			if seen[key] {
				t.Errorf("day %d has duplicate win group %v", d.Day, key)
			}
			seen[key] = true
		}
	}

	if !reflect.DeepEqual(got[0].WinGroups[0].Numbers, []string{"3", "4"}) {
		t.Errorf("day 3 numbers = %v, want [3 4]", got[0].WinGroups[0].Numbers)
	}
	if !reflect.DeepEqual(got[1].WinGroups[0].Numbers, []string{"1", "5"}) {
		t.Errorf("day 24 numbers = %v, want [1 5]", got[1].WinGroups[0].Numbers)
	}
}
