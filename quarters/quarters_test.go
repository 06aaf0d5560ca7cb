package quarters

import (
	"testing"
	"time"
)

func TestKeyOfNormalizesToUTC(t *testing.T) {
	cet := time.FixedZone("CET", 2*3600)
	local := time.Date(2025, 10, 2, 0, 0, 0, 0, cet)
	utc := time.Date(2025, 10, 1, 22, 0, 0, 0, time.UTC)

	if KeyOf(local) != KeyOf(utc) {
		t.Errorf("keys differ: %s vs %s", KeyOf(local), KeyOf(utc))
	}
	if KeyOf(utc) != Key("2025-10-01T22:00:00Z") {
		t.Errorf("got key %s", KeyOf(utc))
	}
}

func TestKeyRoundTrip(t *testing.T) {
	orig := time.Date(2025, 6, 1, 13, 45, 0, 0, time.UTC)
	if got := KeyOf(orig).Time(); !got.Equal(orig) {
		t.Errorf("got %s, wanted %s", got, orig)
	}
}

func TestKeyTimeOnGarbage(t *testing.T) {
	if !Key("not a timestamp").Time().IsZero() {
		t.Error("garbage key should yield zero time")
	}
}

func TestDateString(t *testing.T) {
	d := Date{Year: 2025, Month: time.June, Day: 1}
	if d.String() != "2025-06-01" {
		t.Errorf("got %s", d.String())
	}
}

func TestDateOfUsesStockholmCalendar(t *testing.T) {
	// 23:30 UTC on June 1 is already June 2 in Sweden.
	late := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	if got := DateOf(late); got.String() != "2025-06-02" {
		t.Errorf("got %s, wanted 2025-06-02", got)
	}
}

func TestHHMM(t *testing.T) {
	// Summer: UTC+2.
	if got := HHMM(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)); got != "02:00" {
		t.Errorf("got %s, wanted 02:00", got)
	}
	// Winter: UTC+1.
	if got := HHMM(time.Date(2025, 1, 15, 13, 45, 0, 0, time.UTC)); got != "14:45" {
		t.Errorf("got %s, wanted 14:45", got)
	}
}
