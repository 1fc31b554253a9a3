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

package figure

import (
	"image/color"
	"math"

	"github.com/spatialmodel/nfix"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// inlineLabels draws contour labels at fixed positions, rotated to
// follow the contour and blanking the line underneath each one.
type inlineLabels struct {
	Labels    []nfix.Label
	Format    string
	TextStyle draw.TextStyle

	// Spacing is the total blank space added around the label text.
	Spacing vg.Length

	// Tangent returns a data-space vector along the contour through a
	// point. If nil, labels are drawn horizontally.
	Tangent func(x, y float64) (dx, dy float64)

	// Background is the colour used to blank the contour. If nil,
	// white is used.
	Background color.Color
}

func (l *inlineLabels) text(lab nfix.Label) string {
	return formatTick(l.Format, lab.Level)
}

// angle returns the on-page direction of the contour at lab, kept
// between -π/2 and π/2 so the text is never upside down.
func (l *inlineLabels) angle(lab nfix.Label, trX, trY func(float64) vg.Length) float64 {
	if l.Tangent == nil {
		return 0
	}
	dx, dy := l.Tangent(lab.X, lab.Y)
	if dx == 0 && dy == 0 {
		return 0
	}
	// The axes are linear, so transforming the offset point gives the
	// on-page direction exactly.
	px := float64(trX(lab.X+dx) - trX(lab.X))
	py := float64(trY(lab.Y+dy) - trY(lab.Y))
	a := math.Atan2(py, px)
	if a > math.Pi/2 {
		a -= math.Pi
	} else if a <= -math.Pi/2 {
		a += math.Pi
	}
	return a
}

func (l *inlineLabels) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	bg := l.Background
	if bg == nil {
		bg = color.White
	}
	for _, lab := range l.Labels {
		pt := vg.Point{X: trX(lab.X), Y: trY(lab.Y)}
		if !c.Contains(pt) {
			continue
		}
		txt := l.text(lab)
		sty := l.TextStyle
		sty.Rotation = l.angle(lab, trX, trY)
		w := sty.Width(txt)/2 + l.Spacing/2
		h := sty.Height(txt) / 2
		sin, cos := math.Sincos(sty.Rotation)
		box := make([]vg.Point, 4)
		for i, corner := range [4][2]vg.Length{{-w, -h}, {w, -h}, {w, h}, {-w, h}} {
			box[i] = vg.Point{
				X: pt.X + corner[0]*vg.Length(cos) - corner[1]*vg.Length(sin),
				Y: pt.Y + corner[0]*vg.Length(sin) + corner[1]*vg.Length(cos),
			}
		}
		c.FillPolygon(bg, box)
		c.FillText(sty, pt, txt)
	}
}
