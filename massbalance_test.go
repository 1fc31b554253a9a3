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
	"math"
	"testing"

	"github.com/ctessum/unit"
)

const testTolerance = 1e-9

func different(a, b, tolerance float64) bool {
	if math.Abs(a-b) <= tolerance {
		return false
	}
	return math.Abs(a-b)/math.Max(math.Abs(a), math.Abs(b)) > tolerance
}

func TestThickness(t *testing.T) {
	mass := DefaultConstants.SedimentNitrogenMass(1000)
	if different(mass, 1000*1.64*0.6148*299, testTolerance) {
		t.Errorf("sediment N mass: %g", mass)
	}
	if different(mass, 301473.328, 1e-9) {
		t.Errorf("sediment N mass: %g", mass)
	}
	want := 0.5 * 301473.328 / (2.93 * 0.88 * 44)
	h := Thickness(1000, 50)
	if different(h, want, testTolerance) {
		t.Errorf("have %g, want %g", h, want)
	}
	if different(h, 1328.66, 1e-5) {
		t.Errorf("have %g, want ≈1328.66", h)
	}
}

func TestThicknessZero(t *testing.T) {
	for _, v := range []float64{0, 1, 794, 2000} {
		if h := Thickness(v, 0); h != 0 {
			t.Errorf("efficiency 0, sediment %g: %g", v, h)
		}
		if h := Thickness(0, v); h != 0 {
			t.Errorf("sediment 0, efficiency %g: %g", v, h)
		}
	}
}

func TestThicknessLinear(t *testing.T) {
	for _, c := range []struct{ hSed, eff float64 }{
		{1000, 50}, {794, 40}, {10, 1}, {2000, 100}, {123.4, 56.7},
	} {
		h := Thickness(c.hSed, c.eff)
		if h2 := Thickness(2*c.hSed, c.eff); different(h2, 2*h, testTolerance) {
			t.Errorf("doubling sediment (%g, %g): %g != 2×%g", c.hSed, c.eff, h2, h)
		}
		if h2 := Thickness(c.hSed, 2*c.eff); different(h2, 2*h, testTolerance) {
			t.Errorf("doubling efficiency (%g, %g): %g != 2×%g", c.hSed, c.eff, h2, h)
		}
		k := DefaultConstants.Coefficient()
		if different(h, k*c.hSed*c.eff, testTolerance) {
			t.Errorf("coefficient (%g, %g): %g != %g", c.hSed, c.eff, h, k*c.hSed*c.eff)
		}
	}
}

func TestThicknessNoValidation(t *testing.T) {
	if h := Thickness(-1000, 50); !(h < 0) {
		t.Errorf("negative sediment thickness should give a negative result, got %g", h)
	}
	if h := Thickness(1000, 150); different(h, 3*Thickness(1000, 50), testTolerance) {
		t.Errorf("efficiency above 100%% should scale linearly, got %g", h)
	}
}

func TestThicknessUnits(t *testing.T) {
	h, err := DefaultConstants.ThicknessUnits(unit.New(1000, unit.Meter), 50)
	if err != nil {
		t.Fatal(err)
	}
	if different(h.Value(), Thickness(1000, 50), testTolerance) {
		t.Errorf("have %g, want %g", h.Value(), Thickness(1000, 50))
	}
	if err := h.Check(unit.Meter); err != nil {
		t.Error(err)
	}
	if _, err := DefaultConstants.ThicknessUnits(unit.New(1000, unit.Kilogram), 50); err == nil {
		t.Error("mass should not be accepted as a sediment thickness")
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConstants.Validate(); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		modify func(c *Constants)
	}{
		{"sediment density", func(c *Constants) { c.SedimentDensity = 0 }},
		{"aoc density", func(c *Constants) { c.AOCDensity = -2.93 }},
		{"sediment porosity", func(c *Constants) { c.SedimentPorosity = 1 }},
		{"aoc porosity", func(c *Constants) { c.AOCPorosity = -0.1 }},
		{"sediment nitrogen", func(c *Constants) { c.SedimentNitrogen = -299 }},
		{"no uptake", func(c *Constants) { c.BlueschistNitrogen = c.AOCNitrogen }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := DefaultConstants
			test.modify(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
