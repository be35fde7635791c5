// Package viz renders cooling runs in the terminal: asciigraph plots of the
// sampled series and a bubbletea playback view for watching a run evolve.
package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// TemperaturePlot renders the temperature series with the ambient asymptote
// noted in the caption.
func TemperaturePlot(temps []float64, ambient float64) string {
	return asciigraph.Plot(temps,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(fmt.Sprintf("temperature (K), ambient %.0f K", ambient)),
	)
}

// FluxPlot renders the radiative heat flux series.
func FluxPlot(flux []float64) string {
	return asciigraph.Plot(flux,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("radiative heat flux (W)"),
	)
}

// RatePlot renders the cooling-rate series.
func RatePlot(rates []float64) string {
	return asciigraph.Plot(rates,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("cooling rate (K/s)"),
	)
}

// OverlayPlot renders several temperature series on one graph, one per sweep
// variant.
func OverlayPlot(series [][]float64, caption string) string {
	return asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight+5),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}
