package usecase

import (
	"context"
	"strconv"

	"LaunchDashboard/internal/domain"
	"LaunchDashboard/internal/reactive"
)

// DefaultInputs returns the initial control values shown by layout.
func DefaultInputs(layout domain.Layout) reactive.Inputs {
	rng := layout.PayloadSlider.Value
	return reactive.Inputs{
		layout.SiteDropdown.ID: {layout.SiteDropdown.Value},
		layout.PayloadSlider.ID: {
			strconv.FormatFloat(rng.Low, 'f', -1, 64),
			strconv.FormatFloat(rng.High, 'f', -1, 64),
		},
	}
}

// RegisterCallbacks binds the pie chart to the site selector and the
// scatter chart to the site selector and payload slider.
func RegisterCallbacks(reg *reactive.Registry, dash *Dashboard) error {
	err := reg.Register(reactive.Callback{
		Output: domain.PieChartID,
		Inputs: []string{domain.SiteDropdownID},
		Handler: func(_ context.Context, in reactive.Inputs) (domain.Figure, error) {
			site, err := in.String(domain.SiteDropdownID)
			if err != nil {
				return nil, err
			}
			return dash.SuccessPie(site), nil
		},
	})
	if err != nil {
		return err
	}

	return reg.Register(reactive.Callback{
		Output: domain.ScatterChartID,
		Inputs: []string{domain.SiteDropdownID, domain.PayloadSliderID},
		Handler: func(_ context.Context, in reactive.Inputs) (domain.Figure, error) {
			site, err := in.String(domain.SiteDropdownID)
			if err != nil {
				return nil, err
			}
			rng, err := in.Range(domain.PayloadSliderID)
			if err != nil {
				return nil, err
			}
			return dash.PayloadScatter(site, rng), nil
		},
	})
}
