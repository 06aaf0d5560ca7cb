package chartjs

type Chart struct {
	Type    string       `json:"type"`
	Data    ChartData    `json:"data"`
	Options ChartOptions `json:"options"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

type ChartDataset struct {
	Data            []*float64 `json:"data,omitempty"`
	BackgroundColor []string   `json:"backgroundColor,omitempty"`
	BorderWidth     int        `json:"borderWidth"`
}

type ChartOptions struct {
	Responsive bool                  `json:"responsive"`
	Plugins    ChartPlugins          `json:"plugins"`
	Scales     map[string]ChartScale `json:"scales"`
}

type ChartPlugins struct {
	Legend ChartLegend `json:"legend"`
	Title  ChartTitle  `json:"title"`
}

type ChartLegend struct {
	Display bool `json:"display"`
}

type ChartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

type ChartScale struct {
	Display bool            `json:"display"`
	Min     *float64        `json:"min,omitempty"`
	Max     *float64        `json:"max,omitempty"`
	Title   ChartScaleTitle `json:"title,omitempty"`
	Ticks   *ChartTicks     `json:"ticks,omitempty"`
}

type ChartScaleTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// ChartTicks controls axis tick thinning. Every is our own extension,
// honored by the dashboard's chart bootstrap script.
type ChartTicks struct {
	AutoSkip bool `json:"autoSkip"`
	Every    int  `json:"every,omitempty"`
}
