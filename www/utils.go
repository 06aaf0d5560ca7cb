package www

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/angas/elkvart-go/dayahead"
	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/types"
)

// queryFromURL reads the dashboard controls from the query string:
// area (SE1–SE4, default SE4), day (today/tomorrow), unit (sek/ore) and vat.
func queryFromURL(u *url.URL) (dayahead.Query, error) {
	q := dayahead.Query{
		Date: quarters.Today(),
		Area: types.AreaSE4,
	}

	if v := u.Query().Get("area"); v != "" {
		area, err := types.ParseArea(v)
		if err != nil {
			return dayahead.Query{}, err
		}
		q.Area = area
	}

	switch day := u.Query().Get("day"); day {
	case "", "today":
	case "tomorrow":
		q.Date = quarters.Tomorrow()
	default:
		return dayahead.Query{}, fmt.Errorf("unknown day: %q", day)
	}

	switch unit := u.Query().Get("unit"); unit {
	case "", "sek":
	case "ore":
		q.Options.InOre = true
	default:
		return dayahead.Query{}, fmt.Errorf("unknown unit: %q", unit)
	}

	if v := u.Query().Get("vat"); v != "" {
		vat, err := strconv.ParseBool(v)
		if err != nil {
			return dayahead.Query{}, fmt.Errorf("bad vat flag: %q", v)
		}
		q.Options.IncludeVAT = vat
	}

	return q, nil
}

func intOrDefault(u *url.URL, key string, defaultValue int) int {
	if v := u.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}
