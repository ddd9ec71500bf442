package shipping

import "strings"

// Zone is a shipping-cost bracket derived from the buyer's country.
type Zone string

const (
	ZoneUK     Zone = "uk"
	ZoneEurope Zone = "europe"
	ZoneROW    Zone = "row"
)

// Label is the human form used in emails and alerts.
func (z Zone) Label() string {
	switch z {
	case ZoneUK:
		return "UK"
	case ZoneEurope:
		return "Europe"
	default:
		return "Rest of World"
	}
}

// Valid reports whether z is one of the three known zones.
func (z Zone) Valid() bool {
	return z == ZoneUK || z == ZoneEurope || z == ZoneROW
}

var ukNames = setOf(
	"united kingdom", "uk", "u.k.", "gb", "great britain", "britain",
	"england", "scotland", "wales", "northern ireland",
)

var europeNames = setOf(
	"albania", "andorra", "austria", "belarus", "belgium", "bosnia and herzegovina",
	"bulgaria", "croatia", "cyprus", "czech republic", "czechia", "denmark", "estonia",
	"finland", "france", "germany", "greece", "hungary", "iceland", "ireland",
	"republic of ireland", "italy", "kosovo", "latvia", "liechtenstein", "lithuania",
	"luxembourg", "malta", "moldova", "monaco", "montenegro", "netherlands",
	"the netherlands", "holland", "north macedonia", "norway", "poland", "portugal",
	"romania", "san marino", "serbia", "slovakia", "slovenia", "spain", "sweden",
	"switzerland", "ukraine", "vatican city", "gibraltar", "guernsey", "jersey",
	"isle of man", "faroe islands",
)

// ResolveZone maps a free-text country to a zone. Every input resolves; anything
// not recognised as UK or Europe is rest of world.
func ResolveZone(country string) Zone {
	key := strings.ToLower(strings.TrimSpace(country))
	if _, ok := ukNames[key]; ok {
		return ZoneUK
	}
	if _, ok := europeNames[key]; ok {
		return ZoneEurope
	}
	return ZoneROW
}

func setOf(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}
