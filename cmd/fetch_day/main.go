// Fetches one day's quarter prices and prints the classified table.
// Useful for checking the upstream feed without starting the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/angas/elkvart-go/display"
	"github.com/angas/elkvart-go/elprisetjustnu"
	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/rank"
	"github.com/angas/elkvart-go/types"
)

func main() {
	w := os.Stdout
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339Nano,
		}),
	))

	areaFlag := flag.String("area", "SE4", "price area (SE1-SE4)")
	dayFlag := flag.String("day", "today", "today or tomorrow")
	vatFlag := flag.Bool("vat", false, "include VAT")
	oreFlag := flag.Bool("ore", false, "show öre/kWh")
	flag.Parse()

	area, err := types.ParseArea(*areaFlag)
	if err != nil {
		panic(err)
	}

	date := quarters.Today()
	if *dayFlag == "tomorrow" {
		date = quarters.Tomorrow()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher := elprisetjustnu.New(25 * time.Second)
	raw, err := fetcher.FetchDay(ctx, date, area)
	if err != nil {
		slog.Error("fetch failed", slog.Any("error", err))
		os.Exit(1)
	}

	opts := display.Options{InOre: *oreFlag, IncludeVAT: *vatFlag}
	sets := rank.Rank(raw)
	rows := display.Normalize(raw, opts)

	fmt.Printf("%s %s (%d quarters)\n", area, date, len(rows))
	for _, row := range rows {
		fmt.Printf("%s  %12s  %s\n",
			quarters.HHMM(row.LocalStart),
			opts.FormatPrice(row.Price),
			sets.ClassOf(row.Start).Label())
	}
}
