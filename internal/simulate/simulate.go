// Package simulate produces plausible demo win listings for offline use.
//
// Every generated prize carries the DemoPrefix so synthetic data can never be
// mistaken for a real draw.
package simulate

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pfrederiksen/advent-wins/internal/advent"
)

// DemoPrefix marks every simulated prize name
const DemoPrefix = "(Demo) "

// LastDay is the final door of the calendar
const LastDay = 24

var (
	demoPrizes   = []string{"Wellness-Gutschein", "Wein-Paket", "Einkaufsgutschein", "Dinner für Zwei"}
	demoSponsors = []string{"Bäckerei am Markt", "Weingut Müller", "Grand Hotel", "Buchhandlung"}
)

// Generator creates demo data from a random source and a clock
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// New creates a Generator seeded from the runtime's random source
func New() *Generator {
	return NewWithSource(rand.NewPCG(rand.Uint64(), rand.Uint64()), time.Now)
}

// NewWithSource creates a Generator with a fixed random source and clock
func NewWithSource(src rand.Source, now func() time.Time) *Generator {
	return &Generator{rng: rand.New(src), now: now}
}

// DayLimit returns how many days to generate: all 24, or only the days already
// elapsed while the calendar is running in December.
func DayLimit(now time.Time) int {
	if now.Month() == time.December {
		return min(now.Day(), LastDay)
	}
	return LastDay
}

// Generate returns one DayData per day up to DayLimit. Each day holds one or
// two prizes with five random four-digit numbers. When members is not empty,
// the number of a randomly chosen member is added to the first prize of the
// last day so the demo always shows a win.
func (g *Generator) Generate(members []advent.Member) []advent.DayData {
	limit := DayLimit(g.now())

	var lucky *advent.Member
	if len(members) > 0 {
		lucky = &members[g.rng.IntN(len(members))]
	}

	days := make([]advent.DayData, 0, limit)
	for day := 1; day <= limit; day++ {
		prizes := g.rng.IntN(2) + 1
		groups := make([]advent.WinGroup, 0, prizes)

		for p := 0; p < prizes; p++ {
			numbers := make([]string, 0, 6)
			for k := 0; k < 5; k++ {
				numbers = append(numbers, fmt.Sprintf("%d", 1000+g.rng.IntN(9000)))
			}
			if lucky != nil && day == limit && p == 0 {
				numbers = append(numbers, lucky.Number)
			}

			groups = append(groups, advent.WinGroup{
				Numbers: numbers,
				Prize:   fmt.Sprintf("%s%s €%d", DemoPrefix, demoPrizes[p%len(demoPrizes)], day*5+20),
				Sponsor: demoSponsors[p%len(demoSponsors)],
			})
		}

		days = append(days, advent.DayData{Day: day, WinGroups: groups})
	}
	return days
}
