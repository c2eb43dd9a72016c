package advent

// Decoration is a label shown for notable calendar days
type Decoration struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

// SpecialDay returns the decoration for day, if it has one
func SpecialDay(day int) (Decoration, bool) {
	switch day {
	case 6:
		return Decoration{Emoji: "🎅", Label: "Nikolaus"}, true
	case 7:
		return Decoration{Emoji: "🕯️🕯️", Label: "2. Advent"}, true
	case 14:
		return Decoration{Emoji: "🕯️🕯️🕯️", Label: "3. Advent"}, true
	case 21:
		return Decoration{Emoji: "🕯️🕯️🕯️🕯️", Label: "4. Advent"}, true
	case 24:
		return Decoration{Emoji: "🎄", Label: "Heiligabend"}, true
	}
	return Decoration{}, false
}
