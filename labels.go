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

package nfix

import (
	"fmt"
	"math"
)

// Label is a manually placed contour label: the data coordinates where
// the label for contour Level is drawn.
type Label struct {
	X, Y  float64
	Level float64
}

// DefaultLevels are the contoured AOC thicknesses [m].
var DefaultLevels = []float64{300, 600, 1200, 1800, 2400, 3000, 3600, 4200}

// DefaultLabelPositions are the (sediment thickness, efficiency)
// coordinates of the contour labels, in the same order as DefaultLevels.
var DefaultLabelPositions = [][2]float64{
	{461, 24}, {671, 33}, {927, 48}, {1137, 59},
	{1318, 68}, {1471, 76}, {1622, 83}, {1762, 89},
}

// PairLabels matches label positions to contour levels by position.
func PairLabels(levels []float64, positions [][2]float64) ([]Label, error) {
	if len(levels) != len(positions) {
		return nil, fmt.Errorf("nfix: %d contour levels but %d label positions",
			len(levels), len(positions))
	}
	o := make([]Label, len(levels))
	for i, l := range levels {
		o[i] = Label{X: positions[i][0], Y: positions[i][1], Level: l}
	}
	return o, nil
}

// LabelMismatch describes a label that does not sit on its contour.
type LabelMismatch struct {
	Label
	// Value is the AOC thickness at the label position.
	Value float64
	// Error is |Value-Level|/Level.
	Error float64
}

func (m LabelMismatch) String() string {
	return fmt.Sprintf("label for %gm contour at (%g, %g) lies on the %.0fm contour (%.1f%% off)",
		m.Level, m.X, m.Y, m.Value, m.Error*100)
}

// CheckLabels returns the labels whose position evaluates to a thickness
// more than tol (relative) away from the level they annotate.
func (c Constants) CheckLabels(labels []Label, tol float64) []LabelMismatch {
	var o []LabelMismatch
	for _, l := range labels {
		v := c.Thickness(l.X, l.Y)
		e := math.Abs(v - l.Level)
		if l.Level != 0 {
			e /= math.Abs(l.Level)
		}
		if e > tol || math.IsNaN(e) {
			o = append(o, LabelMismatch{Label: l, Value: v, Error: e})
		}
	}
	return o
}

// PlaceLabel moves l to the nearest point on the contour of its level,
// the way an interactive contour labeller snaps a clicked position onto
// the line. Distances are measured after dividing x by xSpan and y by
// ySpan, so that with the axis ranges as spans "nearest" means nearest
// on the page. Labels that can't be placed (non-positive coordinates or
// level) are returned unchanged.
func (c Constants) PlaceLabel(l Label, xSpan, ySpan float64) Label {
	k := c.Coefficient()
	if !(l.X > 0 && l.Y > 0 && l.Level > 0 && k > 0 && xSpan > 0 && ySpan > 0) {
		return l
	}
	// The contour is x*y = level/k, or u*v = b in scaled coordinates.
	u0, v0 := l.X/xSpan, l.Y/ySpan
	b := l.Level / k / (xSpan * ySpan)

	// The nearest point is a root of u⁴ - u0·u³ + v0·b·u - b² = 0.
	// Start from where the ray through the origin crosses the contour.
	u := math.Sqrt(b * u0 / v0)
	for i := 0; i < 50; i++ {
		f := u*u*u*u - u0*u*u*u + v0*b*u - b*b
		df := 4*u*u*u - 3*u0*u*u + v0*b
		if df == 0 {
			break
		}
		step := f / df
		u -= step
		if !(u > 0) {
			return l
		}
		if math.Abs(step) < 1e-12*u {
			break
		}
	}
	return Label{X: u * xSpan, Y: b / u * ySpan, Level: l.Level}
}

// Tangent returns a vector along the contour through (hSed, efficiency),
// pointing toward increasing sediment thickness. It is perpendicular to
// the gradient of Thickness.
func (c Constants) Tangent(hSed, efficiency float64) (dx, dy float64) {
	k := c.Coefficient()
	// The gradient is (k·efficiency, k·hSed).
	return k * hSed, -k * efficiency
}
