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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/nfix"
	"github.com/spatialmodel/nfix/cloud"
	"github.com/spatialmodel/nfix/figure"
	"github.com/spf13/cast"
	"gonum.org/v1/plot/vg"
)

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(ctx context.Context, f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`nfix: you need to specify an output file (for example: OutputFile="fixation-1.pdf")`)
	}
	f = os.ExpandEnv(f)
	if cloud.IsBlob(f) {
		if err := cloud.CheckPath(ctx, f); err != nil {
			return f, fmt.Errorf("nfix: error when checking output location: %v", err)
		}
		return f, nil
	}
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("nfix: the output directory doesn't exist: %v", err)
	}
	return f, nil
}

// ConstantsConfig unmarshals the mass balance constants from a viper
// configuration.
func ConstantsConfig(cfg *viper.Viper) (nfix.Constants, error) {
	c := nfix.Constants{
		SedimentDensity:    cfg.GetFloat64("Constants.SedimentDensity"),
		SedimentPorosity:   cfg.GetFloat64("Constants.SedimentPorosity"),
		SedimentNitrogen:   cfg.GetFloat64("Constants.SedimentNitrogen"),
		AOCDensity:         cfg.GetFloat64("Constants.AOCDensity"),
		AOCPorosity:        cfg.GetFloat64("Constants.AOCPorosity"),
		BlueschistNitrogen: cfg.GetFloat64("Constants.BlueschistNitrogen"),
		AOCNitrogen:        cfg.GetFloat64("Constants.AOCNitrogen"),
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// GridConfig unmarshals the evaluation grid from a viper configuration.
func GridConfig(cfg *viper.Viper) (*nfix.Grid, error) {
	sediment := nfix.Axis{
		Min:  cfg.GetFloat64("Grid.SedimentMin"),
		Max:  cfg.GetFloat64("Grid.SedimentMax"),
		Step: cfg.GetFloat64("Grid.SedimentStep"),
	}
	efficiency := nfix.Axis{
		Min:  cfg.GetFloat64("Grid.EfficiencyMin"),
		Max:  cfg.GetFloat64("Grid.EfficiencyMax"),
		Step: cfg.GetFloat64("Grid.EfficiencyStep"),
	}
	g, err := nfix.NewGrid(sediment, efficiency)
	if err != nil {
		return nil, fmt.Errorf("nfix: Grid: %v", err)
	}
	return g, nil
}

// contourConfig returns the contour levels and label positions.
func contourConfig(cfg *viper.Viper) (levels []float64, positions [][2]float64, err error) {
	l, err := toIntSliceE(cfg.Get("Contour.Levels"))
	if err != nil {
		return nil, nil, fmt.Errorf("nfix: Contour.Levels: %v", err)
	}
	levels = make([]float64, len(l))
	for i, v := range l {
		levels[i] = float64(v)
	}
	positions, err = toPointsE(cfg.Get("Contour.LabelPositions"))
	if err != nil {
		return nil, nil, fmt.Errorf("nfix: Contour.LabelPositions: %v", err)
	}
	if _, err := nfix.PairLabels(levels, positions); err != nil {
		return nil, nil, fmt.Errorf("nfix: %v", err)
	}
	return levels, positions, nil
}

// FigureConfig unmarshals the figure layout from a viper configuration.
// Settings that are not configurable keep their default values.
func FigureConfig(cfg *viper.Viper) (figure.Config, error) {
	fc := figure.DefaultConfig()
	fc.Width = vg.Length(cfg.GetFloat64("Figure.Width")) * vg.Inch
	fc.Height = vg.Length(cfg.GetFloat64("Figure.Height")) * vg.Inch
	fc.DPI = cfg.GetInt("DPI")
	fc.SedimentGuide = cfg.GetFloat64("Figure.SedimentGuide")
	fc.EfficiencyGuide = cfg.GetFloat64("Figure.EfficiencyGuide")
	fc.XMin = cfg.GetFloat64("Grid.SedimentMin")
	fc.XMax = cfg.GetFloat64("Grid.SedimentMax")
	fc.YMin = cfg.GetFloat64("Grid.EfficiencyMin")
	fc.YMax = cfg.GetFloat64("Grid.EfficiencyMax")

	var err error
	fc.Levels, fc.LabelPositions, err = contourConfig(cfg)
	if err != nil {
		return fc, err
	}
	if fc.DPI <= 0 {
		return fc, fmt.Errorf("nfix: DPI must be positive but is %d", fc.DPI)
	}
	if err := fc.Validate(); err != nil {
		return fc, fmt.Errorf("nfix: %v", err)
	}
	return fc, nil
}

// toIntSliceE converts a configuration value to a slice of integers,
// accounting for the fact that it might be a json array if it was set
// from a command line argument or environment variable.
func toIntSliceE(s interface{}) ([]int, error) {
	switch v := s.(type) {
	case []int:
		return v, nil
	case []interface{}:
		o := make([]int, len(v))
		for i, val := range v {
			var err error
			o[i], err = cast.ToIntE(val)
			if err != nil {
				return nil, err
			}
		}
		return o, nil
	case string:
		var o []int
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("can't convert %#v to []int", s)
	}
}

// toPointsE converts a configuration value to a slice of
// coordinate pairs. The value can either be a nested array from a
// configuration file or a json string.
func toPointsE(s interface{}) ([][2]float64, error) {
	switch v := s.(type) {
	case [][2]float64:
		return v, nil
	case []interface{}:
		o := make([][2]float64, len(v))
		for i, pt := range v {
			xy, ok := pt.([]interface{})
			if !ok || len(xy) != 2 {
				return nil, fmt.Errorf("position %d (%v) is not an [x, y] pair", i, pt)
			}
			for j := range xy {
				var err error
				o[i][j], err = cast.ToFloat64E(xy[j])
				if err != nil {
					return nil, fmt.Errorf("position %d: %v", i, err)
				}
			}
		}
		return o, nil
	case string:
		var o [][2]float64
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("can't convert %#v to [][2]float64", s)
	}
}
