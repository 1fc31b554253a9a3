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

// Command nfix draws the nitrogen re-fixation mass balance figure.
// Run without arguments, it writes fixation-1.pdf to the current
// directory.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/nfix/nfixutil"
)

func main() {
	if err := nfixutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
