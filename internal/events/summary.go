package events

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the finite values of one column.
type Summary struct {
	Name   string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%-8s n=%d \t min=%.4g \t max=%.4g \t mean=%.4g \t std=%.4g",
		s.Name, s.Count, s.Min, s.Max, s.Mean, s.StdDev)
}

// Summarize computes a Summary for every column, in table order.
func (t *Table) Summarize() []Summary {
	var out []Summary
	for _, name := range t.Names() {
		col, _ := t.Column(name)
		out = append(out, Summarize(name, col))
	}
	return out
}

// Summarize describes values, ignoring NaN and ±Inf. An empty or fully
// non-finite column yields Count == 0 and NaN statistics.
func Summarize(name string, values []float64) Summary {
	finite := Finite(values)
	s := Summary{Name: name, Count: len(finite)}
	if len(finite) == 0 {
		s.Min, s.Max, s.Mean, s.StdDev = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}

	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	if len(finite) == 1 {
		s.Mean = finite[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(finite, nil)
	return s
}

// Finite returns the values that are neither NaN nor infinite.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}
