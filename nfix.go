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

// Package nfix computes the nitrogen mass balance between subducting
// sediment and metamorphosed altered oceanic crust (AOC): the thickness
// of AOC required to host the nitrogen that is lost from a sediment
// column and re-fixed into AOC minerals.
package nfix

// Version gives the version number.
const Version = "1.0.0"
