package shipping

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"artshop/internal/models"
)

// DefaultShippingCost applies when no table entry exists for a zone at all.
const DefaultShippingCost = 8

// RateTable holds whole-unit costs per zone and size key (e.g. "30x40").
type RateTable map[Zone]map[string]int

// Calculator prices delivery for an order line.
type Calculator struct {
	PrintRates   RateTable
	UpcycleRates map[Zone]int
	DefaultCost  int
}

// DefaultCalculator carries the shop's published delivery prices.
func DefaultCalculator() *Calculator {
	return &Calculator{
		PrintRates: RateTable{
			ZoneUK: {
				"30x40": 8, "40x50": 10, "50x70": 12, "60x80": 12, "80x100": 15, "100x120": 20,
			},
			ZoneEurope: {
				"30x40": 15, "40x50": 18, "50x70": 22, "60x80": 25, "80x100": 30, "100x120": 40,
			},
			ZoneROW: {
				"30x40": 25, "40x50": 30, "50x70": 38, "60x80": 45, "80x100": 55, "100x120": 65,
			},
		},
		UpcycleRates: map[Zone]int{
			ZoneUK:     10,
			ZoneEurope: 20,
			ZoneROW:    35,
		},
		DefaultCost: DefaultShippingCost,
	}
}

// ShippingCost returns the whole-unit delivery cost. Upcycles ignore size.
// For prints an unknown size falls back to the smallest size the zone
// defines, and a zone with no entries falls back to DefaultCost.
func (c *Calculator) ShippingCost(section models.Section, zone Zone, size string) int {
	if section == models.SectionUpcycles {
		if cost, ok := c.UpcycleRates[zone]; ok {
			return cost
		}
		return c.DefaultCost
	}

	rates := c.PrintRates[zone]
	if len(rates) == 0 {
		return c.DefaultCost
	}
	if cost, ok := rates[SizeKey(size)]; ok {
		return cost
	}
	return rates[smallestSize(rates)]
}

// QuoteRequest is everything needed to price an order line.
type QuoteRequest struct {
	Section   models.Section
	Country   string
	Size      string
	ItemPrice string
}

// Quote is a priced order line. Amounts are "£NN" strings.
type Quote struct {
	Zone         Zone   `json:"shippingZone"`
	ItemPrice    string `json:"itemPrice"`
	ShippingCost string `json:"shippingCost"`
	Total        string `json:"price"`
}

// Quote resolves the zone from the country and totals item and delivery.
func (c *Calculator) Quote(req QuoteRequest) Quote {
	zone := ResolveZone(req.Country)
	item := ParseAmount(req.ItemPrice)
	ship := decimal.NewFromInt(int64(c.ShippingCost(req.Section, zone, req.Size)))
	return Quote{
		Zone:         zone,
		ItemPrice:    FormatAmount(item),
		ShippingCost: FormatAmount(ship),
		Total:        FormatAmount(item.Add(ship)),
	}
}

var sizeRe = regexp.MustCompile(`(\d+)\s*[x×X]\s*(\d+)`)

// SizeKey normalises "60×80cm" or "60 x 80" to "60x80". Input without a
// width×height pair is returned lowercased and trimmed.
func SizeKey(size string) string {
	if m := sizeRe.FindStringSubmatch(size); m != nil {
		return m[1] + "x" + m[2]
	}
	return strings.ToLower(strings.TrimSpace(size))
}

// SizeFromDetails pulls a size key out of free-text item details such as
// "Canvas Inkjet · 60×80cm". It returns "" when none is present.
func SizeFromDetails(details string) string {
	if m := sizeRe.FindStringSubmatch(details); m != nil {
		return m[1] + "x" + m[2]
	}
	return ""
}

// smallestSize picks the key with the least area; ties and unparsable keys
// are ordered lexically so the choice is stable.
func smallestSize(rates map[string]int) string {
	best, bestArea := "", math.MaxInt
	for key := range rates {
		area := sizeArea(key)
		if best == "" || area < bestArea || (area == bestArea && key < best) {
			best, bestArea = key, area
		}
	}
	return best
}

func sizeArea(key string) int {
	m := sizeRe.FindStringSubmatch(key)
	if m == nil {
		return math.MaxInt
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	return w * h
}
