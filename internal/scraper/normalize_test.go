package scraper

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Wellness   Gutschein \n 50 € ", "Wellness Gutschein 50 €"},
		{"\t", ""},
		{"Dinner für Zwei", "Dinner für Zwei"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CollapseWhitespace(tt.in); got != tt.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" 12 34 ", "1234"},
		{"0042", "0042"},
		{"A-17\n", "A-17"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CleanNumber(tt.in); got != tt.want {
			t.Errorf("CleanNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDayNumber(t *testing.T) {
	tests := []struct {
		heading string
		wantDay int
		wantOK  bool
	}{
		{"6.", 6, true},
		{"Samstag, 6. Dezember 2025", 6, true},
		{"Mittwoch, 24.12.2025", 24, true},
		{"Tag 7", 0, false},
		{"0.", 0, false},
		{"32. Dezember", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		day, ok := DayNumber(tt.heading)
		if day != tt.wantDay || ok != tt.wantOK {
			t.Errorf("DayNumber(%q) = %d, %v; want %d, %v", tt.heading, day, ok, tt.wantDay, tt.wantOK)
		}
	}
}

func TestSponsorFromText(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"Sponsor: Grand HotelSponsor anzeigen", "Grand Hotel", true},
		{"sponsor:Weingut Müller", "Weingut Müller", true},
		{"Sponsor:\n  Bäckerei\n  am Markt\n Sponsor anzeigen", "Bäckerei am Markt", true},
		{"Kein Sponsor hier", "", false},
	}
	for _, tt := range tests {
		got, ok := SponsorFromText(tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("SponsorFromText(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStripSponsorMarker(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Grand Hotel Sponsor anzeigen", "Grand Hotel"},
		{"Grand HotelSPONSOR ANZEIGEN", "Grand Hotel"},
		{"Grand Hotel", "Grand Hotel"},
		{"anzeigen", "anzeigen"},
	}
	for _, tt := range tests {
		if got := StripSponsorMarker(tt.in); got != tt.want {
			t.Errorf("StripSponsorMarker(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
