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
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/plot"
)

// multipleTicker places major ticks at multiples of Major and unlabelled
// minor ticks at multiples of Minor.
type multipleTicker struct {
	Major, Minor float64
	Format       string
}

func (t multipleTicker) Ticks(min, max float64) []plot.Tick {
	const eps = 1e-9
	var ticks []plot.Tick
	first := int(math.Ceil(min/t.Minor - eps))
	last := int(math.Floor(max/t.Minor + eps))
	for i := first; i <= last; i++ {
		v := float64(i) * t.Minor
		tick := plot.Tick{Value: v}
		if r := math.Abs(math.Remainder(v, t.Major)); r < eps*t.Major {
			tick.Label = formatTick(t.Format, v)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

// formatTick formats v with a printf verb, rounding to an integer for
// integer verbs.
func formatTick(format string, v float64) string {
	if strings.HasSuffix(format, "d") {
		return fmt.Sprintf(format, int64(math.Round(v)))
	}
	return fmt.Sprintf(format, v)
}
