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
	"github.com/GaryBoone/GoStats/stats"
	"gonum.org/v1/gonum/mat"
)

// Field holds the required AOC thickness [m] at every node of a Grid.
// It satisfies gonum.org/v1/plot/plotter.GridXYZ.
type Field struct {
	Grid      *Grid
	Constants Constants
	data      *mat.Dense
}

// Evaluate calculates the required AOC thickness over the whole grid.
func Evaluate(g *Grid, c Constants) *Field {
	x, y := g.Mesh()
	r, cols := x.Dims()
	h := mat.NewDense(r, cols, nil)
	h.Apply(func(i, j int, v float64) float64 {
		return c.Thickness(v, y.At(i, j))
	}, x)
	return &Field{Grid: g, Constants: c, data: h}
}

// Dims returns the number of columns (sediment thicknesses) and
// rows (efficiencies).
func (f *Field) Dims() (c, r int) {
	r, c = f.data.Dims()
	return c, r
}

// Z returns the AOC thickness at column c and row r.
func (f *Field) Z(c, r int) float64 { return f.data.At(r, c) }

// X returns the sediment thickness of column c.
func (f *Field) X(c int) float64 { return f.Grid.X[c] }

// Y returns the efficiency of row r.
func (f *Field) Y(r int) float64 { return f.Grid.Y[r] }

// At returns the AOC thickness at efficiency index i and
// sediment index j.
func (f *Field) At(i, j int) float64 { return f.data.At(i, j) }

// Row returns a copy of the AOC thicknesses at efficiency index i.
func (f *Field) Row(i int) []float64 {
	return mat.Row(nil, i, f.data)
}

// Summary describes the range of values in a Field.
type Summary struct {
	Min, Max, Mean float64
}

// Summary returns the minimum, maximum and mean AOC thickness.
func (f *Field) Summary() Summary {
	r, c := f.data.Dims()
	v := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		v = append(v, f.Row(i)...)
	}
	return Summary{
		Min:  stats.StatsMin(v),
		Max:  stats.StatsMax(v),
		Mean: stats.StatsMean(v),
	}
}
