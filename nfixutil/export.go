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

package nfixutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nfix"
)

// Export evaluates the mass balance described by c over grid g and
// writes the result to outputFile, which may be a blob storage location.
// Files ending in .nc or .ncf are written in NetCDF format and files
// ending in .xlsx are written as spreadsheets.
func Export(ctx context.Context, c nfix.Constants, g *nfix.Grid, outputFile string) error {
	ext := strings.ToLower(filepath.Ext(outputFile))
	switch ext {
	case ".nc", ".ncf", ".xlsx":
	default:
		return fmt.Errorf("nfix: unsupported export format %q; use .nc, .ncf or .xlsx", ext)
	}
	f := nfix.Evaluate(g, c)

	var u uploader
	defer u.cleanup()
	local := u.maybeUpload(outputFile)
	if u.err != nil {
		return fmt.Errorf("nfix: preparing upload: %v", u.err)
	}
	w, err := os.Create(local)
	if err != nil {
		return fmt.Errorf("nfix: creating export file: %v", err)
	}
	if ext == ".xlsx" {
		err = f.WriteXLSX(w)
	} else {
		err = f.WriteNetCDF(w)
	}
	if err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("nfix: closing export file: %v", err)
	}
	if err := u.uploadOutput(ctx); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"file":       outputFile,
		"sediment":   len(g.X),
		"efficiency": len(g.Y),
	}).Info("exported AOC thickness")
	return nil
}
