package usecase

import (
	"strconv"

	"LaunchDashboard/internal/domain"
)

const (
	sliderMin  = 0
	sliderMax  = 10000
	sliderStep = 1000
)

var sliderMarks = []float64{0, 2500, 5000, 7500, 10000}

// BuildLayout describes the page: selector options come from the dataset's
// distinct sites, the slider bounds are fixed and its handles start at the
// dataset's payload extremes.
func BuildLayout(ds *domain.Dataset) domain.Layout {
	sites := ds.Sites()
	options := make([]domain.Option, 0, len(sites)+1)
	options = append(options, domain.Option{Label: "All Sites", Value: domain.AllSites})
	for _, site := range sites {
		options = append(options, domain.Option{Label: site, Value: site})
	}

	marks := make([]domain.Mark, 0, len(sliderMarks))
	for _, v := range sliderMarks {
		marks = append(marks, domain.Mark{Value: v, Label: strconv.FormatFloat(v, 'f', -1, 64)})
	}

	return domain.Layout{
		Title: "SpaceX Launch Records Dashboard",
		SiteDropdown: domain.Dropdown{
			ID:          domain.SiteDropdownID,
			Options:     options,
			Value:       domain.AllSites,
			Placeholder: "Select a Launch Site here",
			Searchable:  true,
		},
		PayloadLabel: "Payload range (Kg):",
		PayloadSlider: domain.RangeSlider{
			ID:    domain.PayloadSliderID,
			Min:   sliderMin,
			Max:   sliderMax,
			Step:  sliderStep,
			Value: domain.PayloadRange{Low: ds.MinPayload(), High: ds.MaxPayload()},
			Marks: marks,
		},
		PieGraph:     domain.Graph{ID: domain.PieChartID},
		ScatterGraph: domain.Graph{ID: domain.ScatterChartID},
	}
}
