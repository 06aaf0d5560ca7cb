package rank

import (
	"slices"

	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/types"
)

const (
	TopSize  = 16
	NextSize = 8
)

type Class int

const (
	ClassOther Class = iota
	ClassNext
	ClassTop
)

func (c Class) String() string {
	switch c {
	case ClassTop:
		return "top"
	case ClassNext:
		return "next"
	default:
		return "other"
	}
}

// Label is the human readable classification shown in the detail panel.
func (c Class) Label() string {
	switch c {
	case ClassTop:
		return "Most expensive 16"
	case ClassNext:
		return "Rank 17–24"
	default:
		return "Other"
	}
}

// Sets holds the two disjoint rank sets for one day of quarters. A key in
// neither set is implicitly "other".
type Sets struct {
	Top  map[quarters.Key]struct{}
	Next map[quarters.Key]struct{}
}

// Rank classifies rows by raw price: the 16 most expensive quarters go into
// Top, the following 8 into Next. The sort is stable, so equal prices keep
// input order (first seen ranks highest). Fewer than 24 rows just yields
// smaller sets.
func Rank(rows []types.PriceRow) Sets {
	sorted := make([]types.PriceRow, len(rows))
	copy(sorted, rows)
	slices.SortStableFunc(sorted, func(a, b types.PriceRow) int {
		switch {
		case a.SEKPerKWh > b.SEKPerKWh:
			return -1
		case a.SEKPerKWh < b.SEKPerKWh:
			return 1
		default:
			return 0
		}
	})

	sets := Sets{
		Top:  make(map[quarters.Key]struct{}, TopSize),
		Next: make(map[quarters.Key]struct{}, NextSize),
	}
	for i, row := range sorted {
		if i < TopSize {
			sets.Top[row.Start] = struct{}{}
		} else if i < TopSize+NextSize {
			sets.Next[row.Start] = struct{}{}
		} else {
			break
		}
	}

	return sets
}

func (s Sets) ClassOf(key quarters.Key) Class {
	if _, ok := s.Top[key]; ok {
		return ClassTop
	}
	if _, ok := s.Next[key]; ok {
		return ClassNext
	}
	return ClassOther
}
