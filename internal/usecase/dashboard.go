package usecase

import (
	"fmt"
	"log/slog"
	"strconv"

	"LaunchDashboard/internal/domain"
)

const (
	pieTitleAll      = "Total Success Launches by site"
	pieTitleSite     = "Total Success Launches for site %s"
	scatterTitleAll  = "Correlation between Payload and Success for all Sites"
	scatterTitleSite = "Correlation between Payload and Success for site %s"
)

// DashboardDeps wires the dataset and behaviour switches into the callbacks.
type DashboardDeps struct {
	Dataset *domain.Dataset
	// IgnorePayloadRange makes PayloadScatter skip the range filter.
	IgnorePayloadRange bool
	Logger             *slog.Logger
}

// Dashboard computes chart figures from the immutable dataset.
// Its methods are pure functions of the dataset and their arguments.
type Dashboard struct {
	dataset            *domain.Dataset
	ignorePayloadRange bool
	logger             *slog.Logger
}

// NewDashboard constructs the callback set.
func NewDashboard(deps DashboardDeps) *Dashboard {
	return &Dashboard{
		dataset:            deps.Dataset,
		ignorePayloadRange: deps.IgnorePayloadRange,
		logger:             deps.Logger,
	}
}

// Dataset exposes the table the dashboard reads.
func (d *Dashboard) Dataset() *domain.Dataset {
	return d.dataset
}

// SuccessPie counts successes per site for AllSites, or outcomes within one site otherwise.
// A site with no rows yields a figure without slices.
func (d *Dashboard) SuccessPie(site string) domain.PieFigure {
	if site == domain.AllSites {
		return d.successBySite()
	}

	rows := d.dataset.Select(func(rec domain.LaunchRecord) bool {
		return rec.Site == site
	})

	counts := map[int]float64{}
	var order []int
	for _, rec := range rows {
		if _, ok := counts[rec.Outcome]; !ok {
			order = append(order, rec.Outcome)
		}
		counts[rec.Outcome]++
	}

	slices := make([]domain.Slice, 0, len(order))
	for _, outcome := range order {
		slices = append(slices, domain.Slice{Label: strconv.Itoa(outcome), Value: counts[outcome]})
	}

	d.debug("success pie", "site", site, "rows", len(rows), "slices", len(slices))
	return domain.PieFigure{Title: fmt.Sprintf(pieTitleSite, site), Slices: slices}
}

func (d *Dashboard) successBySite() domain.PieFigure {
	successes := map[string]float64{}
	for _, rec := range d.dataset.Records() {
		successes[rec.Site] += float64(rec.Outcome)
	}

	sites := d.dataset.Sites()
	slices := make([]domain.Slice, 0, len(sites))
	for _, site := range sites {
		slices = append(slices, domain.Slice{Label: site, Value: successes[site]})
	}

	d.debug("success pie", "site", domain.AllSites, "slices", len(slices))
	return domain.PieFigure{Title: pieTitleAll, Slices: slices}
}

// PayloadScatter plots payload mass against outcome for the selected site,
// one series per booster category. Rows outside rng are dropped unless the
// dashboard ignores the payload range; an inverted rng filters nothing.
func (d *Dashboard) PayloadScatter(site string, rng domain.PayloadRange) domain.ScatterFigure {
	rows := d.dataset.Select(func(rec domain.LaunchRecord) bool {
		if !domain.MatchesSite(site, rec) {
			return false
		}
		return d.ignorePayloadRange || rng.Contains(rec.PayloadMass)
	})

	index := map[string]int{}
	var series []domain.ScatterSeries
	for _, rec := range rows {
		i, ok := index[rec.BoosterCategory]
		if !ok {
			i = len(series)
			index[rec.BoosterCategory] = i
			series = append(series, domain.ScatterSeries{Name: rec.BoosterCategory})
		}
		series[i].Points = append(series[i].Points, domain.Point{
			X: rec.PayloadMass,
			Y: float64(rec.Outcome),
		})
	}

	title := scatterTitleAll
	if site != domain.AllSites {
		title = fmt.Sprintf(scatterTitleSite, site)
	}

	d.debug("payload scatter", "site", site, "low", rng.Low, "high", rng.High, "points", len(rows))
	return domain.ScatterFigure{
		Title:  title,
		XLabel: domain.ColumnPayload,
		YLabel: domain.ColumnOutcome,
		Series: series,
	}
}

func (d *Dashboard) debug(msg string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
