// Package export renders cooling runs to standalone SVG files.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/radcool/internal/thermo"
)

// CoolingCurveSVG renders a trajectory as an SVG polyline with the ambient
// asymptote drawn as a dashed reference line.
func CoolingCurveSVG(tr *thermo.Trajectory, ambient float64, width, height int) string {
	if tr.Len() < 2 {
		return ""
	}

	minT, maxT := ambient, tr.Temps[0]
	for _, v := range tr.Temps {
		if v < minT {
			minT = v
		}
		if v > maxT {
			maxT = v
		}
	}

	tMin := tr.Times[0]
	tMax := tr.Times[tr.Len()-1]
	rangeX := tMax - tMin
	rangeY := maxT - minT
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	// 5% padding on each side
	minT -= rangeY * 0.05
	rangeY *= 1.1

	toX := func(t float64) float64 {
		return (t - tMin) / rangeX * float64(width)
	}
	toY := func(T float64) float64 {
		return float64(height) - (T-minT)/rangeY*float64(height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	ay := toY(ambient)
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#ff4444" stroke-dasharray="6,4" stroke-width="1"/>
`, ay, width, ay))

	sb.WriteString(`<polyline fill="none" stroke="#00ccff" stroke-width="2" points="`)
	for i := range tr.Times {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", toX(tr.Times[i]), toY(tr.Temps[i])))
	}
	sb.WriteString("\"/>\n</svg>")

	return sb.String()
}
