package shipping_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"artshop/internal/models"
	"artshop/internal/shipping"
)

func TestResolveZone(t *testing.T) {
	cases := map[string]shipping.Zone{
		"United Kingdom":      shipping.ZoneUK,
		"  united kingdom  ":  shipping.ZoneUK,
		"UK":                  shipping.ZoneUK,
		"Scotland":            shipping.ZoneUK,
		"NORTHERN IRELAND":    shipping.ZoneUK,
		"Germany":             shipping.ZoneEurope,
		" france":             shipping.ZoneEurope,
		"Republic of Ireland": shipping.ZoneEurope,
		"Australia":           shipping.ZoneROW,
		"United States":       shipping.ZoneROW,
		"":                    shipping.ZoneROW,
		"Atlantis":            shipping.ZoneROW,
	}
	for country, want := range cases {
		assert.Equal(t, want, shipping.ResolveZone(country), "country %q", country)
	}
}

func TestResolveZone_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, shipping.ZoneEurope, shipping.ResolveZone("Spain"))
	}
}

func TestShippingCost_UpcyclesIgnoreSize(t *testing.T) {
	calc := shipping.DefaultCalculator()
	for _, size := range []string{"", "30x40", "100x120", "nonsense"} {
		assert.Equal(t, 10, calc.ShippingCost(models.SectionUpcycles, shipping.ZoneUK, size))
		assert.Equal(t, 20, calc.ShippingCost(models.SectionUpcycles, shipping.ZoneEurope, size))
		assert.Equal(t, 35, calc.ShippingCost(models.SectionUpcycles, shipping.ZoneROW, size))
	}
}

func TestShippingCost_Prints(t *testing.T) {
	calc := shipping.DefaultCalculator()

	assert.Equal(t, 8, calc.ShippingCost(models.SectionPrints, shipping.ZoneUK, "30x40"))
	assert.Equal(t, 12, calc.ShippingCost(models.SectionPrints, shipping.ZoneUK, "60×80cm"))
	assert.Equal(t, 65, calc.ShippingCost(models.SectionPrints, shipping.ZoneROW, "100 x 120"))

	// Unknown size uses the smallest size in the zone.
	assert.Equal(t, 8, calc.ShippingCost(models.SectionPrints, shipping.ZoneUK, "A0"))
	assert.Equal(t, 15, calc.ShippingCost(models.SectionPrints, shipping.ZoneEurope, ""))
	assert.Equal(t, 25, calc.ShippingCost(models.SectionPrints, shipping.ZoneROW, "999x999"))
}

func TestShippingCost_MissingZoneFallsBackToDefault(t *testing.T) {
	calc := &shipping.Calculator{
		PrintRates: shipping.RateTable{
			shipping.ZoneUK: {"40x50": 11, "20x30": 6},
		},
		UpcycleRates: map[shipping.Zone]int{shipping.ZoneUK: 9},
		DefaultCost:  shipping.DefaultShippingCost,
	}

	assert.Equal(t, 6, calc.ShippingCost(models.SectionPrints, shipping.ZoneUK, "unknown"))
	assert.Equal(t, 8, calc.ShippingCost(models.SectionPrints, shipping.ZoneEurope, "40x50"))
	assert.Equal(t, 8, calc.ShippingCost(models.SectionPrints, shipping.ZoneROW, ""))
	assert.Equal(t, 8, calc.ShippingCost(models.SectionUpcycles, shipping.ZoneROW, ""))
}

func TestQuote(t *testing.T) {
	calc := shipping.DefaultCalculator()

	q := calc.Quote(shipping.QuoteRequest{
		Section: models.SectionPrints, Country: "United Kingdom", Size: "30x40", ItemPrice: "£125",
	})
	assert.Equal(t, shipping.Quote{Zone: shipping.ZoneUK, ItemPrice: "£125", ShippingCost: "£8", Total: "£133"}, q)

	q = calc.Quote(shipping.QuoteRequest{
		Section: models.SectionUpcycles, Country: "Germany", ItemPrice: "£75",
	})
	assert.Equal(t, shipping.Quote{Zone: shipping.ZoneEurope, ItemPrice: "£75", ShippingCost: "£20", Total: "£95"}, q)

	q = calc.Quote(shipping.QuoteRequest{
		Section: models.SectionPrints, Country: "Australia", Size: "100x120", ItemPrice: "£200",
	})
	assert.Equal(t, "£265", q.Total)

	q = calc.Quote(shipping.QuoteRequest{
		Section: models.SectionPrints, Country: "United Kingdom", Size: "30x40", ItemPrice: "£1,250",
	})
	assert.Equal(t, "£1258", q.Total)
}

func TestParseAndFormatAmount(t *testing.T) {
	assert.True(t, decimal.NewFromInt(125).Equal(shipping.ParseAmount("£125")))
	assert.True(t, decimal.NewFromInt(12).Equal(shipping.ParseAmount("£12.50")))
	assert.True(t, decimal.Zero.Equal(shipping.ParseAmount("POA")))
	assert.True(t, decimal.NewFromInt(1250).Equal(shipping.ParseAmount("£1,250")))
	assert.True(t, decimal.NewFromInt(1250000).Equal(shipping.ParseAmount("£1,250,000")))
	assert.Equal(t, "£133", shipping.FormatAmount(decimal.NewFromInt(133)))
}

func TestSizeFromDetails(t *testing.T) {
	assert.Equal(t, "60x80", shipping.SizeFromDetails("Canvas Inkjet · 60×80cm"))
	assert.Equal(t, "", shipping.SizeFromDetails("Upcycled vinyl"))
}
