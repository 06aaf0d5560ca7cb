package types

import (
	"context"
	"fmt"

	"github.com/angas/elkvart-go/quarters"
)

// Area is one of the four Swedish electricity price areas.
type Area string

const (
	AreaSE1 Area = "SE1"
	AreaSE2 Area = "SE2"
	AreaSE3 Area = "SE3"
	AreaSE4 Area = "SE4"
)

var AllAreas = []Area{AreaSE1, AreaSE2, AreaSE3, AreaSE4}

func ParseArea(str string) (Area, error) {
	for _, a := range AllAreas {
		if string(a) == str {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown price area: %q", str)
}

// PriceRow is one quarter-hour spot price as published upstream. Prices are
// SEK per kWh excluding VAT, not unit-scaled.
type PriceRow struct {
	Start     quarters.Key
	SEKPerKWh float64
	EURPerKWh float64
}

type PriceProvider interface {
	FetchDay(ctx context.Context, date quarters.Date, area Area) ([]PriceRow, error)
}
