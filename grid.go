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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Axis is an evenly spaced one-dimensional range of parameter values.
// Min and Max are both included when Max-Min is a multiple of Step.
type Axis struct {
	Min, Max, Step float64
}

// Default axes: sediment thickness from 0 to 2000 m every 10 m and
// re-fixation efficiency from 0 to 100 % every 1 %.
var (
	DefaultSedimentAxis   = Axis{Min: 0, Max: 2000, Step: 10}
	DefaultEfficiencyAxis = Axis{Min: 0, Max: 100, Step: 1}
)

// MaxAxisLen is the largest number of points allowed on one axis.
const MaxAxisLen = 100000

// MaxGridSize is the largest number of nodes allowed in a grid.
const MaxGridSize = 10000000

// Validate checks that a is a usable range.
func (a Axis) Validate() error {
	if !(a.Step > 0) || math.IsInf(a.Step, 0) {
		return fmt.Errorf("nfix: axis step=%g but should be >0", a.Step)
	}
	if math.IsNaN(a.Min) || math.IsNaN(a.Max) || math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0) {
		return fmt.Errorf("nfix: axis range [%g, %g] is not finite", a.Min, a.Max)
	}
	if a.Max < a.Min {
		return fmt.Errorf("nfix: axis max (%g) is less than min (%g)", a.Max, a.Min)
	}
	// Compare before converting to int so a tiny step can't overflow Len.
	if n := (a.Max-a.Min)/a.Step + 1; n > MaxAxisLen {
		return fmt.Errorf("nfix: axis [%g, %g] step %g has %.0f points; the maximum is %d",
			a.Min, a.Max, a.Step, n, MaxAxisLen)
	}
	return nil
}

// Len returns the number of points on the axis.
func (a Axis) Len() int {
	// The small offset keeps an exact multiple from being lost to
	// floating point error, e.g. (1-0)/0.1.
	return int(math.Floor((a.Max-a.Min)/a.Step+1e-9)) + 1
}

// Values returns the points on the axis.
func (a Axis) Values() []float64 {
	n := a.Len()
	v := make([]float64, n)
	if n == 1 {
		v[0] = a.Min
		return v
	}
	return floats.Span(v, a.Min, a.Min+a.Step*float64(n-1))
}

// Grid is the two-dimensional parameter grid: sediment thickness
// along X and re-fixation efficiency along Y.
type Grid struct {
	X, Y []float64
}

// NewGrid creates a grid from a sediment thickness axis and an
// efficiency axis.
func NewGrid(sediment, efficiency Axis) (*Grid, error) {
	if err := sediment.Validate(); err != nil {
		return nil, fmt.Errorf("nfix: sediment thickness axis: %v", err)
	}
	if err := efficiency.Validate(); err != nil {
		return nil, fmt.Errorf("nfix: efficiency axis: %v", err)
	}
	if n := sediment.Len() * efficiency.Len(); n > MaxGridSize {
		return nil, fmt.Errorf("nfix: grid has %d nodes; the maximum is %d", n, MaxGridSize)
	}
	return &Grid{X: sediment.Values(), Y: efficiency.Values()}, nil
}

// Mesh returns coordinate matrices with one row per Y value and
// one column per X value.
func (g *Grid) Mesh() (x, y *mat.Dense) {
	r, c := len(g.Y), len(g.X)
	x = mat.NewDense(r, c, nil)
	y = mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		x.SetRow(i, g.X)
		for j := 0; j < c; j++ {
			y.Set(i, j, g.Y[i])
		}
	}
	return x, y
}
