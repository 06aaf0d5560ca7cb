package quarters

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var stockholmLoc *time.Location

func init() {
	var err error
	stockholmLoc, err = time.LoadLocation("Europe/Stockholm")
	if err != nil {
		panic(fmt.Sprintf("failed to load Stockholm location: %v", err))
	}
}

// Key identifies a quarter-hour interval by its start instant. The upstream
// API keys everything on time_start, so we do too: the key is the UTC RFC3339
// form of the start instant, stable across display settings.
type Key string

func KeyOf(t time.Time) Key {
	return Key(t.UTC().Format(time.RFC3339))
}

func (k Key) Time() time.Time {
	t, err := time.Parse(time.RFC3339, string(k))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Date is a calendar date, used for fetch URLs and cache keys.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func DateOf(t time.Time) Date {
	y, m, day := t.In(stockholmLoc).Date()
	return Date{Year: y, Month: m, Day: day}
}

// Today returns the current calendar date in Stockholm. Day-ahead prices are
// published per Swedish calendar day, so "today" follows local midnight, not UTC.
func Today() Date {
	return DateOf(time.Now())
}

func Tomorrow() Date {
	return DateOf(time.Now().AddDate(0, 0, 1))
}

// InStockholm converts an instant to local Swedish time for display and sorting.
func InStockholm(t time.Time) time.Time {
	return t.In(stockholmLoc)
}

// HHMM formats an instant as local Swedish wall-clock time, e.g. "13:45".
func HHMM(t time.Time) string {
	return t.In(stockholmLoc).Format("15:04")
}
