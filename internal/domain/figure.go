package domain

// FigureKind names the chart type a figure is drawn as.
type FigureKind string

const (
	KindPie     FigureKind = "pie"
	KindScatter FigureKind = "scatter"
)

// Figure is the data behind one chart placeholder.
type Figure interface {
	Kind() FigureKind
	Caption() string
	Empty() bool
}

// Slice is one sector of a pie.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PieFigure shows proportions.
type PieFigure struct {
	Title  string  `json:"title"`
	Slices []Slice `json:"slices"`
}

func (p PieFigure) Kind() FigureKind { return KindPie }
func (p PieFigure) Caption() string  { return p.Title }

// Empty is true when no slice has a positive value.
func (p PieFigure) Empty() bool {
	return p.Total() <= 0
}

// Total sums all slice values.
func (p PieFigure) Total() float64 {
	var total float64
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

// Point is a single scatter marker.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScatterSeries groups markers sharing a colour.
type ScatterSeries struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// ScatterFigure plots payload mass against outcome, one series per booster category.
type ScatterFigure struct {
	Title  string          `json:"title"`
	XLabel string          `json:"xLabel"`
	YLabel string          `json:"yLabel"`
	Series []ScatterSeries `json:"series"`
}

func (s ScatterFigure) Kind() FigureKind { return KindScatter }
func (s ScatterFigure) Caption() string  { return s.Title }

// Empty is true when the figure has no points.
func (s ScatterFigure) Empty() bool {
	return s.PointCount() == 0
}

// PointCount totals the points across all series.
func (s ScatterFigure) PointCount() int {
	var n int
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}
