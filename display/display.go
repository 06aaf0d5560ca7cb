package display

import (
	"fmt"
	"slices"
	"time"

	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/types"
)

// VatRate is the Swedish VAT on electricity (moms).
const VatRate = 0.25

type Options struct {
	InOre      bool // scale SEK/kWh to öre/kWh
	IncludeVAT bool
}

func (o Options) UnitLabel() string {
	if o.InOre {
		return "öre/kWh"
	}
	return "SEK/kWh"
}

// FormatPrice renders a display price the way the dashboard shows it:
// whole öre, or SEK with two decimals.
func (o Options) FormatPrice(price float64) string {
	if o.InOre {
		return fmt.Sprintf("%.0f %s", price, o.UnitLabel())
	}
	return fmt.Sprintf("%.2f %s", price, o.UnitLabel())
}

// Row is one quarter ready for presentation: localized start time and the
// unit/VAT adjusted price. Start keeps the raw rank key so classification
// lookups stay independent of display settings.
type Row struct {
	Start      quarters.Key
	LocalStart time.Time
	Price      float64
}

// Normalize applies the display transforms and orders rows by local start
// time. The upstream feed is normally chronological already, but that is not
// relied upon.
func Normalize(rows []types.PriceRow, opts Options) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, Row{
			Start:      row.Start,
			LocalStart: quarters.InStockholm(row.Start.Time()),
			Price:      Apply(row.SEKPerKWh, opts),
		})
	}

	slices.SortFunc(out, func(a, b Row) int {
		return a.LocalStart.Compare(b.LocalStart)
	})

	return out
}

// Apply converts a raw SEK/kWh price to its display value.
func Apply(sekPerKWh float64, opts Options) float64 {
	price := sekPerKWh
	if opts.IncludeVAT {
		price *= 1 + VatRate
	}
	if opts.InOre {
		price *= 100
	}
	return price
}

// Stats is the aggregate trio for the side panel.
type Stats struct {
	Count    int
	MaxPrice float64
	MinPrice float64
}

func StatsOf(rows []Row) Stats {
	s := Stats{Count: len(rows)}
	for i, row := range rows {
		if i == 0 || row.Price > s.MaxPrice {
			s.MaxPrice = row.Price
		}
		if i == 0 || row.Price < s.MinPrice {
			s.MinPrice = row.Price
		}
	}
	return s
}
