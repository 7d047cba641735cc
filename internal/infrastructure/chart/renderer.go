package chart

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"

	"LaunchDashboard/internal/config"
	"LaunchDashboard/internal/domain"
	"LaunchDashboard/internal/ports"
)

const (
	noDataSuffix = " (no data)"
	dotWidth     = 5
)

// Renderer draws figures with go-chart as SVG or PNG.
type Renderer struct {
	width    int
	height   int
	format   string
	provider gochart.RendererProvider
}

var _ ports.FigureRenderer = (*Renderer)(nil)

// NewRenderer builds a renderer from configuration; unknown formats fall back to SVG.
func NewRenderer(cfg config.ChartConfig) *Renderer {
	r := &Renderer{width: cfg.Width, height: cfg.Height, format: "svg", provider: gochart.SVG}
	if cfg.Format == "png" {
		r.format = "png"
		r.provider = gochart.PNG
	}
	return r
}

// Format is the file extension of rendered images.
func (r *Renderer) Format() string {
	return r.format
}

// ContentType is the MIME type of rendered images.
func (r *Renderer) ContentType() string {
	if r.format == "png" {
		return "image/png"
	}
	return "image/svg+xml"
}

// Render writes fig to w. Empty figures become a titled placeholder.
func (r *Renderer) Render(w io.Writer, fig domain.Figure) error {
	if fig == nil {
		return fmt.Errorf("render: nil figure")
	}
	if fig.Empty() {
		return r.renderPlaceholder(w, fig.Caption())
	}

	switch f := fig.(type) {
	case domain.PieFigure:
		return r.renderPie(w, f)
	case domain.ScatterFigure:
		return r.renderScatter(w, f)
	default:
		return fmt.Errorf("render: unsupported figure kind %s", fig.Kind())
	}
}

func (r *Renderer) renderPie(w io.Writer, fig domain.PieFigure) error {
	values := make([]gochart.Value, 0, len(fig.Slices))
	for _, s := range fig.Slices {
		// zero-valued sectors have no area and break normalisation
		if s.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s (%.0f)", s.Label, s.Value),
			Value: s.Value,
		})
	}

	pie := gochart.PieChart{
		Title:  fig.Title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}
	if err := pie.Render(r.provider, w); err != nil {
		return fmt.Errorf("render pie: %w", err)
	}
	return nil
}

func (r *Renderer) renderScatter(w io.Writer, fig domain.ScatterFigure) error {
	minX, maxX := math.Inf(1), math.Inf(-1)
	series := make([]gochart.Series, 0, len(fig.Series))
	for i, s := range fig.Series {
		xs := make([]float64, 0, len(s.Points))
		ys := make([]float64, 0, len(s.Points))
		for _, p := range s.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(i),
		})
	}

	ch := gochart.Chart{
		Title:      fig.Title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  fig.XLabel,
			Range: paddedRange(minX, maxX),
		},
		YAxis: gochart.YAxis{
			Name:  fig.YLabel,
			Range: &gochart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []gochart.Tick{
				{Value: domain.OutcomeFailure, Label: "0"},
				{Value: domain.OutcomeSuccess, Label: "1"},
			},
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(r.provider, w); err != nil {
		return fmt.Errorf("render scatter: %w", err)
	}
	return nil
}

// renderPlaceholder draws empty axes so a chart region never disappears.
func (r *Renderer) renderPlaceholder(w io.Writer, title string) error {
	ch := gochart.Chart{
		Title:  title + noDataSuffix,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16},
		},
		XAxis: gochart.XAxis{Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		YAxis: gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: 1}},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Style:   gochart.Style{StrokeWidth: gochart.Disabled},
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
			},
		},
	}
	if err := ch.Render(r.provider, w); err != nil {
		return fmt.Errorf("render placeholder: %w", err)
	}
	return nil
}

// pointStyle renders markers only, no connecting line.
func pointStyle(index int) gochart.Style {
	col := gochart.GetDefaultColor(index)
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		StrokeColor: col,
		DotWidth:    dotWidth,
		DotColor:    col,
	}
}

func paddedRange(lo, hi float64) *gochart.ContinuousRange {
	span := hi - lo
	pad := span * 0.05
	if span == 0 {
		pad = 500
	}
	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
