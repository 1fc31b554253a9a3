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

	"github.com/ctessum/unit"
)

// Constants holds the physical properties used in the mass balance.
// Densities are in g/cm³, porosities are volume fractions and
// concentrations are in ppm N.
type Constants struct {
	// SedimentDensity is the average sediment density.
	SedimentDensity float64

	// SedimentPorosity is the average sediment porosity.
	SedimentPorosity float64

	// SedimentNitrogen is the average N concentration of sediments.
	SedimentNitrogen float64

	// AOCDensity is the average density of altered oceanic crust.
	AOCDensity float64

	// AOCPorosity is the average porosity of altered oceanic crust.
	AOCPorosity float64

	// BlueschistNitrogen is the average N concentration of blueschist,
	// i.e. of AOC after re-fixation.
	BlueschistNitrogen float64

	// AOCNitrogen is the average N concentration of subducted AOC
	// before re-fixation.
	AOCNitrogen float64
}

// DefaultConstants are the values given in the caption of Fig. 10.
var DefaultConstants = Constants{
	SedimentDensity:    1.64,
	SedimentPorosity:   0.3852,
	SedimentNitrogen:   299,
	AOCDensity:         2.93,
	AOCPorosity:        0.12,
	BlueschistNitrogen: 51,
	AOCNitrogen:        7,
}

// SedimentNitrogenMass returns the mass of nitrogen originally hosted
// in a sediment column of thickness hSed [m], per unit area
// (m × g/cm³ × ppm).
func (c Constants) SedimentNitrogenMass(hSed float64) float64 {
	return hSed * c.SedimentDensity * (1 - c.SedimentPorosity) * c.SedimentNitrogen
}

// aocCapacity is the nitrogen that one meter of AOC can take up
// when its concentration rises from AOCNitrogen to BlueschistNitrogen.
func (c Constants) aocCapacity() float64 {
	return c.AOCDensity * (1 - c.AOCPorosity) * (c.BlueschistNitrogen - c.AOCNitrogen)
}

// Thickness returns the thickness of metamorphosed AOC [m] required to
// host the nitrogen re-fixed from a sediment column of thickness hSed [m]
// at the given re-fixation efficiency [%]. Inputs are not range-checked:
// negative or out-of-range values give correspondingly meaningless results.
func (c Constants) Thickness(hSed, efficiency float64) float64 {
	return efficiency / 100 * c.SedimentNitrogenMass(hSed) / c.aocCapacity()
}

// Coefficient returns the factor K such that
// Thickness(hSed, efficiency) == K * hSed * efficiency.
func (c Constants) Coefficient() float64 {
	return c.Thickness(1, 1)
}

// Thickness calculates the required AOC thickness using DefaultConstants.
func Thickness(hSed, efficiency float64) float64 {
	return DefaultConstants.Thickness(hSed, efficiency)
}

// ThicknessUnits is a dimension-checked version of Thickness. hSed must
// be a length; the result is a length.
func (c Constants) ThicknessUnits(hSed *unit.Unit, efficiency float64) (*unit.Unit, error) {
	if err := hSed.Check(unit.Meter); err != nil {
		return nil, fmt.Errorf("nfix: sediment thickness: %v", err)
	}
	const (
		gPerCm3 = 1000.0 // kg/m³
		ppm     = 1.0e-6
	)
	sedMass := unit.Mul(
		hSed,
		unit.New(c.SedimentDensity*gPerCm3, unit.KilogramPerMeter3),
		unit.New(1-c.SedimentPorosity, unit.Dimless),
		unit.New(c.SedimentNitrogen*ppm, unit.Dimless),
	) // kg N / m²
	capacity := unit.Mul(
		unit.New(c.AOCDensity*gPerCm3, unit.KilogramPerMeter3),
		unit.New(1-c.AOCPorosity, unit.Dimless),
		unit.New((c.BlueschistNitrogen-c.AOCNitrogen)*ppm, unit.Dimless),
	) // kg N / m³
	h := unit.Div(unit.Mul(unit.New(efficiency/100, unit.Dimless), sedMass), capacity)
	if err := h.Check(unit.Meter); err != nil {
		return nil, fmt.Errorf("nfix: AOC thickness: %v", err)
	}
	return h, nil
}

// Validate checks that the constants describe a physically meaningful
// system. Thickness itself never calls Validate.
func (c Constants) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"SedimentDensity", c.SedimentDensity},
		{"AOCDensity", c.AOCDensity},
	} {
		if !(v.val > 0) {
			return fmt.Errorf("nfix: %s=%g but should be >0", v.name, v.val)
		}
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"SedimentPorosity", c.SedimentPorosity},
		{"AOCPorosity", c.AOCPorosity},
	} {
		if v.val < 0 || v.val >= 1 {
			return fmt.Errorf("nfix: %s=%g but should be in [0, 1)", v.name, v.val)
		}
	}
	if c.SedimentNitrogen < 0 {
		return fmt.Errorf("nfix: SedimentNitrogen=%g but should be >=0", c.SedimentNitrogen)
	}
	if !(c.BlueschistNitrogen > c.AOCNitrogen) {
		return fmt.Errorf("nfix: BlueschistNitrogen (%g) must be greater than AOCNitrogen (%g)",
			c.BlueschistNitrogen, c.AOCNitrogen)
	}
	return nil
}
