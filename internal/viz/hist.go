package viz

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/HamletTheHamster/ntupleviz/internal/events"
	"github.com/HamletTheHamster/ntupleviz/internal/fit"
)

// Histogram plots the finite values in bins equal-width bins.
func Histogram(
	values []float64,
	bins int,
	title, xlabel string,
	brush int,
	slide bool,
) (
	*plot.Plot, error,
) {
	vals := events.Finite(values)
	if len(vals) == 0 {
		return nil, fmt.Errorf("histogram %q: no finite values", xlabel)
	}

	p := prepPlot(title, xlabel, "Events", slide)

	hist, err := plotter.NewHist(plotter.Values(vals), bins)
	if err != nil {
		return nil, fmt.Errorf("histogram %q: %w", xlabel, err)
	}
	hist.FillColor = palette(brush, false)
	hist.LineStyle.Color = palette(brush, true)
	hist.LineStyle.Width = vg.Points(1.5)

	p.Add(hist)
	return p, nil
}

// FitOverlay draws the fitted curve over its histogram.
func FitOverlay(
	r fit.Result,
	title, xlabel string,
	brush int,
	slide bool,
) (
	*plot.Plot, error,
) {
	if len(r.Centers) < 2 {
		return nil, fmt.Errorf("fit overlay %q: empty histogram", xlabel)
	}

	p := prepPlot(title, xlabel, "Events", slide)

	pts := make(plotter.XYs, len(r.Centers))
	for i := range r.Centers {
		pts[i].X = r.Centers[i]
		pts[i].Y = r.Counts[i]
	}

	plotPts, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	plotPts.GlyphStyle.Color = palette(brush, false)
	plotPts.GlyphStyle.Radius = vg.Points(3)
	plotPts.Shape = draw.CircleGlyph{}

	lo, hi := r.Centers[0], r.Centers[len(r.Centers)-1]
	const fitPts = 600
	curve := r.Curve(lo, (hi-lo)/(fitPts-1), fitPts)
	line := make(plotter.XYs, fitPts)
	for i := range line {
		line[i].X = curve[0][i]
		line[i].Y = curve[1][i]
	}

	plotFit, err := plotter.NewLine(line)
	if err != nil {
		return nil, err
	}
	plotFit.LineStyle.Color = palette(brush, true)
	plotFit.LineStyle.Width = vg.Points(3)

	p.Add(plotPts, plotFit)
	p.Legend.Add(xlabel, plotPts)
	p.Legend.Add(fmt.Sprintf("%s fit", r.Shape), plotFit)
	return p, nil
}

// Projection scatters column y against column x.
func Projection(
	t *events.Table,
	x, y string,
	brush int,
	slide bool,
) (
	*plot.Plot, error,
) {
	xs, err := t.Column(x)
	if err != nil {
		return nil, err
	}
	ys, err := t.Column(y)
	if err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("projection %s vs %s: no finite points", y, x)
	}

	p := prepPlot(y+" vs "+x, x, y, slide)

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = palette(brush, false)
	s.GlyphStyle.Radius = vg.Points(1.5)
	s.Shape = draw.CircleGlyph{}

	p.Add(s)
	return p, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
