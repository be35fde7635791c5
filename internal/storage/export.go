package storage

import (
	"encoding/json"
	"io"
	"os"
)

type exportPayload struct {
	Meta   RunMetadata `json:"metadata"`
	Times  []float64   `json:"times"`
	Temps  []float64   `json:"temperatures"`
	Flux   []float64   `json:"heat_flux"`
	Rates  []float64   `json:"cooling_rates"`
	Points int         `json:"points"`
}

// ExportJSON writes a run's metadata and full series as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, series *Series) error {
	payload := exportPayload{
		Meta:   *meta,
		Times:  series.Times,
		Temps:  series.Temps,
		Flux:   series.Flux,
		Rates:  series.Rates,
		Points: len(series.Times),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// ExportJSONStdout is a convenience wrapper for the CLI.
func ExportJSONStdout(meta *RunMetadata, series *Series) error {
	return ExportJSON(os.Stdout, meta, series)
}
