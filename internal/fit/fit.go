// Package fit fits peak shapes to the histogram of an event column.
package fit

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrTooFewPoints = errors.New("fit: too few populated bins")
	ErrUnknownShape = errors.New("fit: unknown shape")
)

// Shape is the peak model.
type Shape string

const (
	Gaussian   Shape = "gauss"
	Lorentzian Shape = "lorentz" // Breit-Wigner line shape
)

// ParseShape accepts "gauss" or "lorentz".
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case Gaussian, Lorentzian:
		return Shape(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// Result holds the fitted parameters and the histogram they were fit to.
// Width is σ for a Gaussian and the full width at half maximum for a
// Lorentzian.
type Result struct {
	Shape   Shape
	Amp     float64
	Center  float64
	Width   float64
	Offset  float64
	Centers []float64
	Counts  []float64
}

// Eval returns the fitted curve at x.
func (r Result) Eval(x float64) float64 {
	return eval(r.Shape, x, r.Amp, r.Center, r.Width, r.Offset)
}

// Curve samples the fitted curve at n points starting at x0, dx apart.
func (r Result) Curve(
	x0, dx float64,
	n int,
) [][]float64 {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = x0 + dx*float64(i)
		y[i] = r.Eval(x[i])
	}
	return [][]float64{x, y}
}

func (r Result) String() string {
	return fmt.Sprintf("%s: amp=%.4g center=%.4g width=%.4g offset=%.4g",
		r.Shape, r.Amp, r.Center, r.Width, r.Offset)
}

func eval(
	shape Shape,
	x, amp, cen, wid, c float64,
) float64 {
	if shape == Lorentzian {
		return .25*amp*math.Pow(wid, 2)/(math.Pow(x-cen, 2)+(.25*math.Pow(wid, 2))) + c
	}
	return amp*math.Exp(-math.Pow(x-cen, 2)/(2*math.Pow(wid, 2))) + c
}

// Histogram bins the finite values into bins equal-width bins spanning
// [min, max] and returns bin centers and counts.
func Histogram(
	values []float64,
	bins int,
) (
	[]float64, []float64,
) {
	x := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			x = append(x, v)
		}
	}
	if len(x) == 0 || bins < 1 {
		return nil, nil
	}
	sort.Float64s(x)

	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		return []float64{lo}, []float64{float64(len(x))}
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// the last divider is exclusive
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)

	centers := make([]float64, bins)
	for i := range centers {
		centers[i] = (dividers[i] + dividers[i+1]) / 2
	}
	return centers, counts
}

// Peak fits shape to the histogram of values with Levenberg-Marquardt.
// Bins are weighted by their Poisson uncertainty.
func Peak(
	shape Shape,
	values []float64,
	bins int,
) (
	Result, error,
) {
	centers, counts := Histogram(values, bins)

	populated := 0
	for _, c := range counts {
		if c > 0 {
			populated++
		}
	}
	if populated < 4 {
		return Result{}, fmt.Errorf("%w: %d of %d", ErrTooFewPoints, populated, len(counts))
	}

	init := guess(shape, centers, counts)

	f := func(dst, params []float64) {
		amp, cen, wid, c := params[0], params[1], params[2], params[3]
		for i, x := range centers {
			σ := math.Sqrt(math.Max(counts[i], 1))
			dst[i] = (eval(shape, x, amp, cen, wid, c) - counts[i]) / σ
		}
	}

	jacobian := lm.NumJac{Func: f}

	toBeSolved := lm.LMProblem{
		Dim:        4,
		Size:       len(centers),
		Func:       f,
		Jac:        jacobian.Jac,
		InitParams: init,
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	results, err := lm.LM(toBeSolved, &lm.Settings{Iterations: 1000, ObjectiveTol: 1e-16})
	if err != nil {
		return Result{}, fmt.Errorf("fit: optimization failed: %w", err)
	}

	return Result{
		Shape:   shape,
		Amp:     results.X[0],
		Center:  results.X[1],
		Width:   math.Abs(results.X[2]),
		Offset:  results.X[3],
		Centers: centers,
		Counts:  counts,
	}, nil
}

// guess starts the fit at the tallest bin with the histogram's own spread.
func guess(
	shape Shape,
	centers, counts []float64,
) []float64 {
	amp := floats.Max(counts)
	cen := centers[floats.MaxIdx(counts)]

	_, σ := stat.MeanStdDev(centers, counts)
	if σ == 0 || math.IsNaN(σ) {
		σ = centers[len(centers)-1] - centers[0]
	}

	wid := σ
	if shape == Lorentzian {
		// FWHM of a Gaussian with the same σ
		wid = 2 * math.Sqrt(2*math.Ln2) * σ
	}
	return []float64{amp, cen, wid, 0}
}
