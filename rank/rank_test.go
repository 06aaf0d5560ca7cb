package rank

import (
	"fmt"
	"testing"
	"time"

	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/types"
)

func makeRows(prices []float64) []types.PriceRow {
	start := time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC)
	rows := make([]types.PriceRow, len(prices))
	for i, p := range prices {
		rows[i] = types.PriceRow{
			Start:     quarters.KeyOf(start.Add(time.Duration(i) * 15 * time.Minute)),
			SEKPerKWh: p,
		}
	}
	return rows
}

func TestRankFullDay(t *testing.T) {
	prices := make([]float64, 96)
	for i := range prices {
		prices[i] = float64(i) * 0.01
	}
	rows := makeRows(prices)

	sets := Rank(rows)

	if len(sets.Top) != TopSize {
		t.Errorf("got %d top quarters, wanted %d", len(sets.Top), TopSize)
	}
	if len(sets.Next) != NextSize {
		t.Errorf("got %d next quarters, wanted %d", len(sets.Next), NextSize)
	}

	for key := range sets.Top {
		if _, ok := sets.Next[key]; ok {
			t.Errorf("key %s is in both top and next", key)
		}
	}

	minTop, minNext := 1e9, 1e9
	maxOther := -1e9
	for _, row := range rows {
		switch sets.ClassOf(row.Start) {
		case ClassTop:
			if row.SEKPerKWh < minTop {
				minTop = row.SEKPerKWh
			}
		case ClassNext:
			if row.SEKPerKWh < minNext {
				minNext = row.SEKPerKWh
			}
		default:
			if row.SEKPerKWh > maxOther {
				maxOther = row.SEKPerKWh
			}
		}
	}
	if minTop < minNext {
		t.Errorf("cheapest top price %f is below cheapest next price %f", minTop, minNext)
	}
	if minNext < maxOther {
		t.Errorf("cheapest next price %f is below most expensive other price %f", minNext, maxOther)
	}
}

func TestRankShortDays(t *testing.T) {
	for _, count := range []int{0, 1, 10, 16, 20, 24} {
		t.Run(fmt.Sprintf("%d rows", count), func(t *testing.T) {
			prices := make([]float64, count)
			for i := range prices {
				prices[i] = float64(count - i)
			}
			sets := Rank(makeRows(prices))

			wanted := count
			if wanted > TopSize+NextSize {
				wanted = TopSize + NextSize
			}
			if got := len(sets.Top) + len(sets.Next); got != wanted {
				t.Errorf("got %d ranked quarters, wanted %d", got, wanted)
			}
			for key := range sets.Top {
				if _, ok := sets.Next[key]; ok {
					t.Errorf("key %s is in both top and next", key)
				}
			}
		})
	}
}

func TestRankTieBreakFirstSeenWins(t *testing.T) {
	// 25 equal prices: only the last row should fall outside the rank sets.
	prices := make([]float64, 25)
	for i := range prices {
		prices[i] = 1.0
	}
	rows := makeRows(prices)

	sets := Rank(rows)

	for i, row := range rows[:16] {
		if sets.ClassOf(row.Start) != ClassTop {
			t.Errorf("row %d should be top on tie-break", i)
		}
	}
	for i, row := range rows[16:24] {
		if sets.ClassOf(row.Start) != ClassNext {
			t.Errorf("row %d should be next on tie-break", i+16)
		}
	}
	if sets.ClassOf(rows[24].Start) != ClassOther {
		t.Error("row 24 should be other on tie-break")
	}
}

func TestRankIgnoresInputOrder(t *testing.T) {
	prices := []float64{0.10, 2.50, 0.30, 1.70, 0.90}
	rows := makeRows(prices)
	reversed := make([]types.PriceRow, len(rows))
	for i, row := range rows {
		reversed[len(rows)-1-i] = row
	}

	a := Rank(rows)
	b := Rank(reversed)

	for _, row := range rows {
		if a.ClassOf(row.Start) != b.ClassOf(row.Start) {
			t.Errorf("class for %s differs with input order", row.Start)
		}
	}
}

func TestClassLabels(t *testing.T) {
	if ClassTop.String() != "top" || ClassNext.String() != "next" || ClassOther.String() != "other" {
		t.Error("unexpected class names")
	}
	if ClassTop.Label() == "" || ClassNext.Label() == "" || ClassOther.Label() == "" {
		t.Error("class labels must not be empty")
	}
}
