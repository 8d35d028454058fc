/*
 * ramachandran.go, part of gorama
 *
 * Copyright 2024 Raul Mera <rmeraaatacademicosdotutadotcl>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

// Package chemplot produces Ramachandran plots, as scatter plots or as
// density heat maps, using gonum/plot. The output format is chosen from
// the extension of the file name (png, svg, pdf, eps, jpg, tiff), png being the default.
package chemplot

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/rmera/gorama/histo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Size is the width and height of the plots produced.
var Size = 5 * vg.Inch

// MaxTagged is the largest number of residues that can be highlighted in a plot.
const MaxTagged = 4

func basicRamaPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Phi"
	p.Y.Label.Text = "Psi"
	//Constant axes
	p.X.Min = -180
	p.X.Max = 180
	p.Y.Min = -180
	p.Y.Max = 180
	p.X.Tick.Marker = ticks{}
	p.Y.Tick.Marker = ticks{}
	p.Add(plotter.NewGrid())
	return p
}

// ticks puts a tick every 45 degrees, with labels every 90.
type ticks struct{}

func (ticks) Ticks(min, max float64) []plot.Tick {
	ret := make([]plot.Tick, 0, 9)
	for v := -180.0; v <= 180; v += 45 {
		t := plot.Tick{Value: v}
		if math.Mod(v, 90) == 0 {
			t.Label = fmt.Sprintf("%.0f", v)
		}
		ret = append(ret, t)
	}
	return ret
}

// save saves the plot to filename. If filename has no extension, .png is added.
func save(p *plot.Plot, filename string) error {
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}
	return p.Save(Size, Size, filename)
}

func checkPairs(phi, psi []float64) error {
	if len(phi) != len(psi) {
		return fmt.Errorf("gorama/chemplot: %d phi and %d psi angles given", len(phi), len(psi))
	}
	return nil
}

// RamaPlot produces a Ramachandran plot of the pairs phi[i], psi[i], with the title given,
// and saves it to filename. The points are colored along the chain, from red to violet.
// The points with the indexes in tag (maximum MaxTagged) are highlighted with different shapes.
func RamaPlot(phi, psi []float64, tag []int, title, filename string) error {
	if err := checkPairs(phi, psi); err != nil {
		return err
	}
	if len(tag) > MaxTagged {
		return fmt.Errorf("gorama/chemplot: %d residues tagged, the maximum is %d", len(tag), MaxTagged)
	}
	p := basicRamaPlot(title)
	var tagged int //How many residues have been tagged?
	for i := range phi {
		s, err := plotter.NewScatter(plotter.XYs{{X: phi[i], Y: psi[i]}})
		if err != nil {
			return err
		}
		if isInInt(tag, i) {
			s.GlyphStyle.Shape = getShape(tagged)
			s.GlyphStyle.Radius = vg.Points(4)
			tagged++
		}
		r, g, b := colors(i, len(phi))
		s.GlyphStyle.Color = color.RGBA{R: r, B: b, G: g, A: 255}
		p.Add(s)
	}
	return save(p, filename)
}

// RamaPlotParts produces a Ramachandran plot where each set of pairs phi[i], psi[i] is drawn in its own color.
// If names is not nil, it must contain one name per set, which are used in the legend.
// tag can be nil, or contain one slice (which can be nil) per set with the indexes
// of the pairs to be highlighted in that set. No more than MaxTagged pairs can be tagged in total.
func RamaPlotParts(phi, psi [][]float64, tag [][]int, names []string, title, filename string) error {
	if len(phi) != len(psi) || (names != nil && len(names) != len(phi)) || (tag != nil && len(tag) != len(phi)) {
		return fmt.Errorf("gorama/chemplot: mismatched number of sets")
	}
	p := basicRamaPlot(title)
	var tagged int
	for set := range phi {
		if err := checkPairs(phi[set], psi[set]); err != nil {
			return err
		}
		if len(phi[set]) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(phi[set]))
		for i := range pts {
			pts[i].X, pts[i].Y = phi[set][i], psi[set][i]
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(set, len(phi))
		col := color.RGBA{R: r, B: b, G: g, A: 255}
		s.GlyphStyle.Color = col
		p.Add(s)
		if names != nil {
			p.Legend.Add(names[set], s)
		}
		if tag == nil {
			continue
		}
		for _, t := range tag[set] {
			if t < 0 || t >= len(pts) {
				return fmt.Errorf("gorama/chemplot: tag %d out of range for set %d", t, set)
			}
			if tagged >= MaxTagged {
				return fmt.Errorf("gorama/chemplot: more than %d residues tagged", MaxTagged)
			}
			ts, err := plotter.NewScatter(plotter.XYs{pts[t]})
			if err != nil {
				return err
			}
			ts.GlyphStyle.Shape = getShape(tagged)
			ts.GlyphStyle.Radius = vg.Points(4)
			ts.GlyphStyle.Color = col
			tagged++
			p.Add(ts)
		}
	}
	return save(p, filename)
}

// RamaDensityPlot produces a heat map from the counts in grid.
func RamaDensityPlot(grid *histo.Rama, title, filename string) error {
	zmax := grid.Max()
	if zmax <= 0 {
		return fmt.Errorf("gorama/chemplot: no data to plot")
	}
	p := basicRamaPlot(title)
	h := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	h.Min = 0
	h.Max = zmax
	p.Add(h)
	p.Add(plotter.NewGrid())
	return save(p, filename)
}

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var r, g, b float64
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors returns the color for the element key in a series of steps elements.
// The hues go from red to violet, skipping the yellows, which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	return iHVS2RGB(h, 1, 1)
}

func getShape(tagged int) draw.GlyphDrawer {
	switch tagged {
	case 0:
		return draw.PyramidGlyph{}
	case 1:
		return draw.CircleGlyph{}
	case 2:
		return draw.SquareGlyph{}
	default:
		return draw.CrossGlyph{}
	}
}
