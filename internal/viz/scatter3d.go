// Package viz renders event tables: the interactive 3D HTML figure and static
// histograms and projections with gonum/plot. Gnuplot output lives in the
// gnuplot subpackage.
package viz

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/HamletTheHamster/ntupleviz/internal/events"
)

// ErrNoGnuplot is returned for gnuplot output from a binary built without
// the gnuplot tag.
var ErrNoGnuplot = errors.New("viz: built without gnuplot support (rebuild with -tags gnuplot)")

// Figure3D styles the interactive figure. The zero value gives the default
// light pink, half transparent "3D Scatter" series.
type Figure3D struct {
	Title     string
	Series    string
	Color     string
	Opacity   float32
	MaxPoints int // 0 keeps every event
}

func (f Figure3D) withDefaults() Figure3D {
	if f.Series == "" {
		f.Series = "3D Scatter"
	}
	if f.Color == "" {
		f.Color = "lightpink"
	}
	if f.Opacity == 0 {
		f.Opacity = 0.5
	}
	return f
}

// Scatter3D renders columns x, y and z of t as a self-contained HTML page.
func Scatter3D(
	t *events.Table,
	x, y, z string,
	fig Figure3D,
	w io.Writer,
) error {
	fig = fig.withDefaults()

	cols := make([][]float64, 3)
	for i, name := range []string{x, y, z} {
		col, err := t.Column(name)
		if err != nil {
			return fmt.Errorf("scatter3d: %w", err)
		}
		cols[i] = col
	}

	stride := 1
	if fig.MaxPoints > 0 && t.NumRows() > fig.MaxPoints {
		stride = (t.NumRows() + fig.MaxPoints - 1) / fig.MaxPoints
	}

	data := make([]opts.Chart3DData, 0, t.NumRows()/stride+1)
	for i := 0; i < t.NumRows(); i += stride {
		data = append(data, opts.Chart3DData{
			Value: []interface{}{cols[0][i], cols[1][i], cols[2][i]},
		})
	}

	title := fig.Title
	if title == "" {
		title = fmt.Sprintf("%s, %s, %s", x, y, z)
	}

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    "900px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d events", len(data)),
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: x, Show: true}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: y, Show: true}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: z, Show: true}),
	)
	scatter.AddSeries(fig.Series, data,
		charts.WithItemStyleOpts(opts.ItemStyle{
			Color:   fig.Color,
			Opacity: fig.Opacity,
		}),
	)

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("scatter3d: render: %w", err)
	}
	return nil
}

// WriteScatter3D renders the figure into the file at path.
func WriteScatter3D(
	t *events.Table,
	x, y, z string,
	fig Figure3D,
	path string,
) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("scatter3d: %w", err)
	}

	if err := Scatter3D(t, x, y, z, fig, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
