//go:build gnuplot

package main

import "github.com/HamletTheHamster/ntupleviz/internal/viz/gnuplot"

func init() {
	gnuplot3D = gnuplot.Scatter3D
}
