package display

import (
	"math"
	"testing"
	"time"

	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/types"
)

func almostEqual(f1 float64, f2 float64) bool {
	return math.Abs(f1-f2) < 1e-9
}

func rowAt(iso string, price float64) types.PriceRow {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		panic(err)
	}
	return types.PriceRow{Start: quarters.KeyOf(t), SEKPerKWh: price}
}

func TestNormalizeScenario(t *testing.T) {
	rows := []types.PriceRow{
		rowAt("2025-06-01T00:00:00Z", 0.50),
		rowAt("2025-06-01T00:15:00Z", 1.20),
	}

	plain := Normalize(rows, Options{})
	if len(plain) != 2 {
		t.Fatalf("got %d rows, wanted 2", len(plain))
	}
	if !almostEqual(plain[0].Price, 0.50) || !almostEqual(plain[1].Price, 1.20) {
		t.Errorf("got prices %f, %f, wanted 0.50, 1.20", plain[0].Price, plain[1].Price)
	}

	withVat := Normalize(rows, Options{IncludeVAT: true})
	if !almostEqual(withVat[0].Price, 0.625) || !almostEqual(withVat[1].Price, 1.50) {
		t.Errorf("got prices %f, %f, wanted 0.625, 1.50", withVat[0].Price, withVat[1].Price)
	}
}

func TestNormalizeTransformFactors(t *testing.T) {
	rows := []types.PriceRow{
		rowAt("2025-06-01T10:00:00Z", 0.37),
		rowAt("2025-06-01T10:15:00Z", 1.02),
		rowAt("2025-06-01T10:30:00Z", 0.00),
	}

	base := Normalize(rows, Options{})
	ore := Normalize(rows, Options{InOre: true})
	vat := Normalize(rows, Options{IncludeVAT: true})
	both := Normalize(rows, Options{InOre: true, IncludeVAT: true})

	for i := range base {
		if !almostEqual(ore[i].Price, base[i].Price*100) {
			t.Errorf("öre scaling: got %f, wanted %f", ore[i].Price, base[i].Price*100)
		}
		if !almostEqual(vat[i].Price, base[i].Price*1.25) {
			t.Errorf("VAT: got %f, wanted %f", vat[i].Price, base[i].Price*1.25)
		}
		if !almostEqual(both[i].Price, base[i].Price*125) {
			t.Errorf("öre+VAT: got %f, wanted %f", both[i].Price, base[i].Price*125)
		}
	}
}

func TestNormalizeSortsByLocalStart(t *testing.T) {
	rows := []types.PriceRow{
		rowAt("2025-06-01T12:30:00Z", 0.3),
		rowAt("2025-06-01T11:45:00Z", 0.2),
		rowAt("2025-06-01T12:15:00Z", 0.1),
	}

	out := Normalize(rows, Options{})
	for i := 1; i < len(out); i++ {
		if !out[i-1].LocalStart.Before(out[i].LocalStart) {
			t.Errorf("rows not sorted at position %d", i)
		}
	}
}

func TestNormalizeLocalizesToStockholm(t *testing.T) {
	// Midnight UTC on a summer day is 02:00 Swedish time.
	out := Normalize([]types.PriceRow{rowAt("2025-06-01T00:00:00Z", 0.5)}, Options{})
	if got := quarters.HHMM(out[0].LocalStart); got != "02:00" {
		t.Errorf("got local time %s, wanted 02:00", got)
	}
}

func TestStatsOf(t *testing.T) {
	out := Normalize([]types.PriceRow{
		rowAt("2025-06-01T00:00:00Z", 0.50),
		rowAt("2025-06-01T00:15:00Z", 1.20),
		rowAt("2025-06-01T00:30:00Z", -0.10),
	}, Options{})

	stats := StatsOf(out)
	if stats.Count != 3 {
		t.Errorf("got count %d, wanted 3", stats.Count)
	}
	if !almostEqual(stats.MaxPrice, 1.20) {
		t.Errorf("got max %f, wanted 1.20", stats.MaxPrice)
	}
	if !almostEqual(stats.MinPrice, -0.10) {
		t.Errorf("got min %f, wanted -0.10", stats.MinPrice)
	}
}

func TestFormatPrice(t *testing.T) {
	ore := Options{InOre: true}
	if got := ore.FormatPrice(62.4); got != "62 öre/kWh" {
		t.Errorf("got %q", got)
	}
	sek := Options{}
	if got := sek.FormatPrice(0.625); got != "0.62 SEK/kWh" && got != "0.63 SEK/kWh" {
		t.Errorf("got %q", got)
	}
}
