/*
Copyright © 2021 the nfix authors.
This file is part of nfix.

nfix is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nfix is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nfix.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package figure draws the AOC thickness contour figure.
package figure

import (
	"fmt"
	"image/color"

	"github.com/spatialmodel/nfix"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Config specifies the layout of the figure.
type Config struct {
	// Width and Height are the figure dimensions.
	Width, Height vg.Length

	// DPI is the resolution used for raster output formats.
	DPI int

	// Font is the typeface used for all text. The size is ignored.
	Font font.Font

	// XMin, XMax, YMin and YMax are the axis ranges.
	XMin, XMax, YMin, YMax float64

	// XMajor, XMinor, YMajor and YMinor are the tick intervals.
	XMajor, XMinor, YMajor, YMinor float64

	// TickFormat is the format of the major tick labels.
	TickFormat string

	// TickLength is the length of the major ticks. Minor ticks are
	// half as long.
	TickLength vg.Length

	XLabel, YLabel string

	AxisLabelSize, TickLabelSize vg.Length

	// SedimentGuide and EfficiencyGuide are the positions of the
	// vertical and horizontal guide bars.
	SedimentGuide, EfficiencyGuide float64
	GuideWidth                     vg.Length
	GuideColor                     color.Color

	// Levels are the contoured AOC thicknesses and LabelPositions are
	// the data coordinates of their labels, matched by index.
	Levels         []float64
	LabelPositions [][2]float64

	ContourWidth  vg.Length
	ContourDashes []vg.Length
	ContourColor  color.Color

	// LabelFormat is the format of the contour labels. It is given
	// the level as an integer.
	LabelFormat   string
	LabelSize     vg.Length
	InlineSpacing vg.Length
}

// DefaultConfig returns the layout of Fig. 10.
func DefaultConfig() Config {
	return Config{
		Width:  3.5 * vg.Inch,
		Height: 3.5 * vg.Inch,
		DPI:    600,
		Font:   font.Font{Typeface: "Liberation", Variant: "Serif"},

		XMin: 0, XMax: 2000,
		YMin: 0, YMax: 100,
		XMajor: 500, XMinor: 100,
		YMajor: 20, YMinor: 5,
		TickFormat: "%d",
		TickLength: vg.Points(5),

		XLabel:        "Sediment thickness (m)",
		YLabel:        "N re-fixation efficiency (%)",
		AxisLabelSize: vg.Points(12),
		TickLabelSize: vg.Points(10),

		SedimentGuide:   794,
		EfficiencyGuide: 40,
		GuideWidth:      vg.Points(8),
		GuideColor:      color.NRGBA{R: 128, G: 128, B: 128, A: 102},

		Levels:         append([]float64(nil), nfix.DefaultLevels...),
		LabelPositions: append([][2]float64(nil), nfix.DefaultLabelPositions...),

		ContourWidth:  vg.Points(0.85),
		ContourDashes: []vg.Length{vg.Points(3.1), vg.Points(1.4)},
		ContourColor:  color.Black,

		LabelFormat:   "%dm",
		LabelSize:     vg.Points(8),
		InlineSpacing: vg.Points(5),
	}
}

// Validate checks that cfg can be drawn.
func (cfg Config) Validate() error {
	if !(cfg.Width > 0) || !(cfg.Height > 0) {
		return fmt.Errorf("figure: size %v×%v must be positive", cfg.Width, cfg.Height)
	}
	if !(cfg.XMax > cfg.XMin) || !(cfg.YMax > cfg.YMin) {
		return fmt.Errorf("figure: empty axis range x=[%g, %g] y=[%g, %g]",
			cfg.XMin, cfg.XMax, cfg.YMin, cfg.YMax)
	}
	for _, v := range []float64{cfg.XMajor, cfg.XMinor, cfg.YMajor, cfg.YMinor} {
		if !(v > 0) {
			return fmt.Errorf("figure: tick interval %g must be positive", v)
		}
	}
	if len(cfg.Levels) == 0 {
		return fmt.Errorf("figure: no contour levels")
	}
	if _, err := nfix.PairLabels(cfg.Levels, cfg.LabelPositions); err != nil {
		return fmt.Errorf("figure: %v", err)
	}
	return nil
}

// New creates the contour figure of f.
func New(cfg Config, f *nfix.Field) (*plot.Plot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := plot.New()

	p.X.Label.Text = cfg.XLabel
	p.Y.Label.Text = cfg.YLabel
	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		a.Label.TextStyle.Font = font.From(cfg.Font, cfg.AxisLabelSize)
		a.Tick.Label.Font = font.From(cfg.Font, cfg.TickLabelSize)
		a.Tick.Length = cfg.TickLength
		a.Padding = 0
	}
	p.X.Tick.Marker = multipleTicker{Major: cfg.XMajor, Minor: cfg.XMinor, Format: cfg.TickFormat}
	p.Y.Tick.Marker = multipleTicker{Major: cfg.YMajor, Minor: cfg.YMinor, Format: cfg.TickFormat}

	guide := draw.LineStyle{Color: cfg.GuideColor, Width: cfg.GuideWidth}
	vGuide, err := plotter.NewLine(plotter.XYs{{X: cfg.SedimentGuide, Y: cfg.YMin}, {X: cfg.SedimentGuide, Y: cfg.YMax}})
	if err != nil {
		return nil, fmt.Errorf("figure: sediment guide: %v", err)
	}
	vGuide.LineStyle = guide
	hGuide, err := plotter.NewLine(plotter.XYs{{X: cfg.XMin, Y: cfg.EfficiencyGuide}, {X: cfg.XMax, Y: cfg.EfficiencyGuide}})
	if err != nil {
		return nil, fmt.Errorf("figure: efficiency guide: %v", err)
	}
	hGuide.LineStyle = guide

	c := plotter.NewContour(f, cfg.Levels, monochrome{cfg.ContourColor})
	c.LineStyles = []draw.LineStyle{{
		Color:  cfg.ContourColor,
		Width:  cfg.ContourWidth,
		Dashes: cfg.ContourDashes,
	}}

	labels, err := nfix.PairLabels(cfg.Levels, cfg.LabelPositions)
	if err != nil {
		return nil, fmt.Errorf("figure: %v", err)
	}
	for i, lab := range labels {
		labels[i] = f.Constants.PlaceLabel(lab, cfg.XMax-cfg.XMin, cfg.YMax-cfg.YMin)
	}
	l := &inlineLabels{
		Labels:  labels,
		Format:  cfg.LabelFormat,
		Spacing: cfg.InlineSpacing,
		Tangent: f.Constants.Tangent,
		TextStyle: draw.TextStyle{
			Color:   cfg.ContourColor,
			Font:    font.From(cfg.Font, cfg.LabelSize),
			XAlign:  draw.XCenter,
			YAlign:  draw.YCenter,
			Handler: plot.DefaultTextHandler,
		},
	}

	p.Add(vGuide, hGuide, c, l, frame{LineStyle: draw.LineStyle{Color: color.Black, Width: vg.Points(0.8)}})

	p.X.Min, p.X.Max = cfg.XMin, cfg.XMax
	p.Y.Min, p.Y.Max = cfg.YMin, cfg.YMax
	return p, nil
}

// monochrome is a single-colour palette.
type monochrome struct{ c color.Color }

func (m monochrome) Colors() []color.Color { return []color.Color{m.c} }

// frame outlines the data area.
type frame struct {
	draw.LineStyle
}

func (f frame) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	x0, x1 := trX(plt.X.Min), trX(plt.X.Max)
	y0, y1 := trY(plt.Y.Min), trY(plt.Y.Max)
	c.StrokeLines(f.LineStyle, []vg.Point{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}, {X: x0, Y: y0},
	})
}
