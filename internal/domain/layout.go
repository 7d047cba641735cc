package domain

import "math"

// Component identifiers shared by the page, the callback registry and the HTTP routes.
const (
	SiteDropdownID  = "site-dropdown"
	PayloadSliderID = "payload-slider"
	PieChartID      = "success-pie-chart"
	ScatterChartID  = "success-payload-scatter-chart"
)

// Option is one selector entry.
type Option struct {
	Label string
	Value string
}

// Dropdown is a single-choice selector.
type Dropdown struct {
	ID          string
	Options     []Option
	Value       string
	Placeholder string
	Searchable  bool
}

// Mark labels a position on a range control.
type Mark struct {
	Value float64
	Label string
}

// RangeSlider is a dual-handle numeric control.
type RangeSlider struct {
	ID    string
	Min   float64
	Max   float64
	Step  float64
	Value PayloadRange
	Marks []Mark
}

// Snap returns the handle position a browser range input shows for v:
// clamped to [Min, Max] and rounded to the nearest Step counted from Min.
func (s RangeSlider) Snap(v float64) float64 {
	v = max(s.Min, min(v, s.Max))
	if s.Step <= 0 {
		return v
	}
	snapped := s.Min + math.Floor((v-s.Min)/s.Step+0.5)*s.Step
	top := s.Min + math.Floor((s.Max-s.Min)/s.Step)*s.Step
	return min(snapped, top)
}

// Graph is a chart placeholder filled by a callback.
type Graph struct {
	ID string
}

// Layout describes the whole page.
type Layout struct {
	Title         string
	SiteDropdown  Dropdown
	PayloadLabel  string
	PayloadSlider RangeSlider
	PieGraph      Graph
	ScatterGraph  Graph
}
