// Package gnuplot renders event tables through a gnuplot process.
//
// glot looks up the gnuplot binary when it is loaded and panics if it is
// missing, so only binaries built with the gnuplot tag import this package.
package gnuplot

import (
	"fmt"

	"github.com/Arafatk/glot"

	"github.com/HamletTheHamster/ntupleviz/internal/events"
)

// Scatter3D renders x, y and z as a point cloud saved to path. The terminal
// follows the file extension.
func Scatter3D(
	t *events.Table,
	x, y, z string,
	path string,
) error {
	var pts [][]float64
	for _, name := range []string{x, y, z} {
		col, err := t.Column(name)
		if err != nil {
			return fmt.Errorf("gnuplot: %w", err)
		}
		pts = append(pts, col)
	}

	dimensions := 3
	persist := false
	debug := false
	plot, err := glot.NewPlot(dimensions, persist, debug)
	if err != nil {
		return fmt.Errorf("gnuplot: %w", err)
	}
	defer plot.Close()

	if err := plot.AddPointGroup("events", "points", pts); err != nil {
		return fmt.Errorf("gnuplot: %w", err)
	}
	plot.SetTitle(fmt.Sprintf("%s, %s, %s", x, y, z))
	plot.SetXLabel(x)
	plot.SetYLabel(y)
	plot.SetZLabel(z)

	if err := plot.SavePlot(path); err != nil {
		return fmt.Errorf("gnuplot: %w", err)
	}
	return nil
}
