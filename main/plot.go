package main

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/rigidgrid/layout"
)

// plotTexels plots the texel of each of the first n particles, one marker
// color per model, and saves the figure to fname.
func plotTexels(fname string, l *layout.Layout, n int) {
	colors := []string{"r", "g", "b", "k"}

	plt.Reset()
	plt.Figure()

	model := -1
	var xs, ys []float64
	flush := func() {
		if len(xs) == 0 {
			return
		}
		plt.Plot(xs, ys, "o", plt.C(colors[model%len(colors)]))
		xs, ys = nil, nil
	}

	for i := 0; i < n && i < l.Len(); i++ {
		if m := l.ModelIdx(i); m != model {
			flush()
			model = m
		}
		x, y := l.ParticleCoords(i)
		xs = append(xs, float64(x))
		ys = append(ys, float64(y))
	}
	flush()

	plt.Title(fmt.Sprintf(
		"%d particles in a %dx%d texture", n, l.EdgeLength, l.EdgeLength,
	))
	plt.XLabel("x", plt.FontSize(16))
	plt.YLabel("y", plt.FontSize(16))
	plt.SaveFig(fname)
	plt.Execute()
}
