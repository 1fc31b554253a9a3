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
	"math"

	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/spatialmodel/nfix"
	"github.com/spatialmodel/nfix/cloud"
	"github.com/spatialmodel/nfix/figure"
)

// openFile opens a file in the default viewer.
var openFile = open.Run

// Render evaluates the mass balance described by c over grid g, draws
// the contour figure laid out by fc and saves it to outputFile, which
// may be a blob storage location. Labels further than tol (relative)
// from their contours are logged as warnings. If show is true and the
// output is a local file, it is opened in the default viewer; failing to
// open it is not an error.
func Render(ctx context.Context, c nfix.Constants, g *nfix.Grid, fc figure.Config, tol float64, outputFile string, show bool) error {
	if err := checkTolerance(tol); err != nil {
		return err
	}
	f := nfix.Evaluate(g, c)
	if err := checkUnits(f); err != nil {
		return err
	}
	s := f.Summary()
	logrus.WithFields(logrus.Fields{
		"sediment":   len(g.X),
		"efficiency": len(g.Y),
		"min":        s.Min,
		"max":        s.Max,
		"mean":       s.Mean,
	}).Info("evaluated AOC thickness")

	labels, err := nfix.PairLabels(fc.Levels, fc.LabelPositions)
	if err != nil {
		return fmt.Errorf("nfix: %v", err)
	}
	for _, m := range c.CheckLabels(labels, tol) {
		logrus.Warn(m.String())
	}

	p, err := figure.New(fc, f)
	if err != nil {
		return err
	}

	var u uploader
	defer u.cleanup()
	local := u.maybeUpload(outputFile)
	if u.err != nil {
		return fmt.Errorf("nfix: preparing upload: %v", u.err)
	}
	if err := figure.Save(p, fc, local); err != nil {
		return err
	}
	if err := u.uploadOutput(ctx); err != nil {
		return err
	}
	logrus.WithField("file", outputFile).Info("saved figure")

	if show && !cloud.IsBlob(outputFile) {
		if err := openFile(local); err != nil {
			logrus.WithField("file", outputFile).Warnf("opening figure: %v", err)
		}
	}
	return nil
}

// Check reports the labels that are further than tol (relative)
// from the contours they annotate.
func Check(c nfix.Constants, levels []float64, positions [][2]float64, tol float64) ([]nfix.LabelMismatch, error) {
	if err := checkTolerance(tol); err != nil {
		return nil, err
	}
	labels, err := nfix.PairLabels(levels, positions)
	if err != nil {
		return nil, fmt.Errorf("nfix: %v", err)
	}
	return c.CheckLabels(labels, tol), nil
}

// checkTolerance makes sure the label tolerance is a non-negative number.
func checkTolerance(tol float64) error {
	if !(tol >= 0) {
		return fmt.Errorf("nfix: Contour.Tolerance must not be negative but is %g", tol)
	}
	return nil
}

// checkUnits recalculates the far corner of f with dimensional analysis
// and makes sure it is a length that matches the evaluated field.
func checkUnits(f *nfix.Field) error {
	c, r := f.Dims()
	x, y, z := f.X(c-1), f.Y(r-1), f.Z(c-1, r-1)
	h, err := f.Constants.ThicknessUnits(unit.New(x, unit.Meter), y)
	if err != nil {
		return err
	}
	if math.Abs(h.Value()-z) > 1e-9*math.Max(1, math.Abs(z)) {
		return fmt.Errorf("nfix: AOC thickness at (%g m, %g%%) is %g m with units but %g m without",
			x, y, h.Value(), z)
	}
	logrus.WithFields(logrus.Fields{
		"sediment":   x,
		"efficiency": y,
		"thickness":  h.Value(),
	}).Debug("checked units")
	return nil
}
