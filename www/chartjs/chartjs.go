package chartjs

import (
	"math"

	"github.com/angas/elkvart-go/display"
	"github.com/angas/elkvart-go/quarters"
	"github.com/angas/elkvart-go/rank"
)

const (
	ColorTopPurple  = "#8E44AD"
	ColorNextRed    = "#E74C3C"
	ColorOtherGreen = "#2ECC71"

	// One x label every 8th quarter, roughly two hour spacing.
	TickStep = 8
)

// ColorOf maps a rank class to its bar color.
func ColorOf(c rank.Class) string {
	switch c {
	case rank.ClassTop:
		return ColorTopPurple
	case rank.ClassNext:
		return ColorNextRed
	default:
		return ColorOtherGreen
	}
}

// NewPriceChart builds the day's bar chart: one bar per quarter, colored by
// rank class, labeled with local start time. Labels carry every bar's HH:MM
// (they drive tooltips); the tick step thins them on the axis client-side.
func NewPriceChart(rows []display.Row, sets rank.Sets, unitLabel string, title string) Chart {
	labels := make([]string, len(rows))
	data := make([]*float64, len(rows))
	colors := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = quarters.HHMM(row.LocalStart)
		data[i] = FixedFloat64(row.Price, 2)
		colors[i] = ColorOf(sets.ClassOf(row.Start))
	}

	chart := Chart{
		Type: "bar",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{
				{
					Data:            data,
					BackgroundColor: colors,
					BorderWidth:     0,
				},
			},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: false},
				Title:  ChartTitle{Display: false},
			},
			Scales: map[string]ChartScale{
				"x": {
					Display: true,
					Title:   ChartScaleTitle{Display: true, Text: "Quarter start"},
					Ticks:   &ChartTicks{AutoSkip: false, Every: TickStep},
				},
				"y": {
					Display: true,
					Title:   ChartScaleTitle{Display: true, Text: unitLabel},
				},
			},
		},
	}

	if title != "" {
		chart.Options.Plugins.Title = ChartTitle{Display: true, Text: title}
	}

	return chart
}

func FixedFloat64(num float64, precision int) *float64 {
	p := math.Pow(10, float64(precision))
	rounded := math.Round(num * p)
	result := rounded / p
	return &result
}
