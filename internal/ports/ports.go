package ports

import (
	"context"
	"io"

	"LaunchDashboard/internal/domain"
)

// DatasetSource loads the launch table once at startup.
type DatasetSource interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// FigureRenderer draws a figure as an image.
type FigureRenderer interface {
	Render(w io.Writer, fig domain.Figure) error
	Format() string
	ContentType() string
}
