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
	"io"

	"github.com/ctessum/cdf"
	"github.com/tealeg/xlsx"
)

// WriteNetCDF writes f to netcdf file w. The AOC thickness variable has
// dimensions (efficiency, sediment), and the constants used to calculate
// it are stored as global attributes.
func (f *Field) WriteNetCDF(w cdf.ReaderWriterAt) error {
	nx, ny := len(f.Grid.X), len(f.Grid.Y)
	h := cdf.NewHeader([]string{"efficiency", "sediment"}, []int{ny, nx})
	h.AddAttribute("", "comment", "Thickness of metamorphosed AOC required to host re-fixed sedimentary N")
	c := f.Constants
	for _, a := range []struct {
		name string
		val  float64
	}{
		{"sediment_density", c.SedimentDensity},
		{"sediment_porosity", c.SedimentPorosity},
		{"sediment_nitrogen", c.SedimentNitrogen},
		{"aoc_density", c.AOCDensity},
		{"aoc_porosity", c.AOCPorosity},
		{"blueschist_nitrogen", c.BlueschistNitrogen},
		{"aoc_nitrogen", c.AOCNitrogen},
	} {
		h.AddAttribute("", a.name, []float64{a.val})
	}

	h.AddVariable("sediment", []string{"sediment"}, []float64{0})
	h.AddAttribute("sediment", "description", "Sediment thickness")
	h.AddAttribute("sediment", "units", "m")
	h.AddVariable("efficiency", []string{"efficiency"}, []float64{0})
	h.AddAttribute("efficiency", "description", "N re-fixation efficiency")
	h.AddAttribute("efficiency", "units", "%")
	h.AddVariable("H_AOC", []string{"efficiency", "sediment"}, []float64{0})
	h.AddAttribute("H_AOC", "description", "Required thickness of metamorphosed AOC")
	h.AddAttribute("H_AOC", "units", "m")
	h.Define()

	for _, err := range h.Check() {
		return fmt.Errorf("nfix: creating netcdf header: %v", err)
	}

	ff, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("nfix: creating netcdf file: %v", err)
	}
	if _, err := ff.Writer("sediment", []int{0}, []int{nx}).Write(f.Grid.X); err != nil {
		return fmt.Errorf("nfix: writing netcdf variable sediment: %v", err)
	}
	if _, err := ff.Writer("efficiency", []int{0}, []int{ny}).Write(f.Grid.Y); err != nil {
		return fmt.Errorf("nfix: writing netcdf variable efficiency: %v", err)
	}
	data := make([]float64, 0, nx*ny)
	for i := 0; i < ny; i++ {
		data = append(data, f.Row(i)...)
	}
	if _, err := ff.Writer("H_AOC", []int{0, 0}, []int{ny, nx}).Write(data); err != nil {
		return fmt.Errorf("nfix: writing netcdf variable H_AOC: %v", err)
	}
	return nil
}

// WriteXLSX writes f to w as a spreadsheet. The first row holds the
// sediment thicknesses and the first column the efficiencies.
func (f *Field) WriteXLSX(w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("H_AOC")
	if err != nil {
		return fmt.Errorf("nfix: creating spreadsheet: %v", err)
	}
	header := sheet.AddRow()
	header.AddCell().SetString("efficiency (%) \\ sediment (m)")
	for _, x := range f.Grid.X {
		header.AddCell().SetFloat(x)
	}
	for i, y := range f.Grid.Y {
		row := sheet.AddRow()
		row.AddCell().SetFloat(y)
		for _, v := range f.Row(i) {
			row.AddCell().SetFloat(v)
		}
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("nfix: writing spreadsheet: %v", err)
	}
	return nil
}
