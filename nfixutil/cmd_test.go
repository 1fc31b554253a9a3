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
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/nfix"
	"github.com/tealeg/xlsx"
	"gonum.org/v1/plot/vg"
)

// setTemp sets a configuration value for the duration of a test.
func setTemp(t *testing.T, key string, val interface{}) {
	old := Cfg.Get(key)
	Cfg.Set(key, val)
	t.Cleanup(func() { Cfg.Set(key, old) })
}

func checkPrefix(t *testing.T, path, prefix string) {
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte(prefix)) {
		t.Errorf("%s doesn't start with %q", path, prefix)
	}
}

func TestDefaults(t *testing.T) {
	for _, test := range []struct {
		key  string
		have interface{}
		want interface{}
	}{
		{"OutputFile", Cfg.GetString("OutputFile"), "fixation-1.pdf"},
		{"Show", Cfg.GetBool("Show"), true},
		{"DPI", Cfg.GetInt("DPI"), 600},
		{"Figure.Width", Cfg.GetFloat64("Figure.Width"), 3.5},
		{"Figure.Height", Cfg.GetFloat64("Figure.Height"), 3.5},
		{"Figure.SedimentGuide", Cfg.GetFloat64("Figure.SedimentGuide"), 794.0},
		{"Figure.EfficiencyGuide", Cfg.GetFloat64("Figure.EfficiencyGuide"), 40.0},
		{"Grid.SedimentMin", Cfg.GetFloat64("Grid.SedimentMin"), 0.0},
		{"Grid.SedimentMax", Cfg.GetFloat64("Grid.SedimentMax"), 2000.0},
		{"Grid.SedimentStep", Cfg.GetFloat64("Grid.SedimentStep"), 10.0},
		{"Grid.EfficiencyMin", Cfg.GetFloat64("Grid.EfficiencyMin"), 0.0},
		{"Grid.EfficiencyMax", Cfg.GetFloat64("Grid.EfficiencyMax"), 100.0},
		{"Grid.EfficiencyStep", Cfg.GetFloat64("Grid.EfficiencyStep"), 1.0},
		{"Contour.Tolerance", Cfg.GetFloat64("Contour.Tolerance"), 0.05},
		{"Export.File", Cfg.GetString("Export.File"), "fixation-1.ncf"},
	} {
		t.Run(test.key, func(t *testing.T) {
			if !reflect.DeepEqual(test.have, test.want) {
				t.Errorf("have %v, want %v", test.have, test.want)
			}
		})
	}

	fc, err := FigureConfig(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	if fc.Width != 3.5*vg.Inch || fc.Height != 3.5*vg.Inch || fc.DPI != 600 {
		t.Errorf("size: have %v×%v at %d dpi", fc.Width, fc.Height, fc.DPI)
	}
	wantLevels := []float64{300, 600, 1200, 1800, 2400, 3000, 3600, 4200}
	if !reflect.DeepEqual(fc.Levels, wantLevels) {
		t.Errorf("levels: have %v, want %v", fc.Levels, wantLevels)
	}
	wantPositions := [][2]float64{
		{461, 24}, {671, 33}, {927, 48}, {1137, 59},
		{1318, 68}, {1471, 76}, {1622, 83}, {1762, 89},
	}
	if !reflect.DeepEqual(fc.LabelPositions, wantPositions) {
		t.Errorf("label positions: have %v, want %v", fc.LabelPositions, wantPositions)
	}
}

func TestRenderDefault(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	setTemp(t, "Show", false)
	Root.SetArgs([]string{})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	checkPrefix(t, filepath.Join(dir, "fixation-1.pdf"), "%PDF")
}

func TestRenderNegativeTolerance(t *testing.T) {
	setTemp(t, "OutputFile", filepath.Join(t.TempDir(), "fixation-1.pdf"))
	setTemp(t, "Show", false)
	setTemp(t, "Contour.Tolerance", -0.1)
	Root.SetArgs([]string{"render"})
	if err := Root.Execute(); err == nil {
		t.Error("a negative tolerance should be rejected")
	}
}

func TestRenderGridTooLarge(t *testing.T) {
	setTemp(t, "OutputFile", filepath.Join(t.TempDir(), "fixation-1.pdf"))
	setTemp(t, "Show", false)
	setTemp(t, "Grid.SedimentStep", 1e-9)
	Root.SetArgs([]string{"render"})
	if err := Root.Execute(); err == nil {
		t.Error("a grid with too many points should be rejected")
	}
}

func TestCheckUnits(t *testing.T) {
	g, err := nfix.NewGrid(nfix.DefaultSedimentAxis, nfix.DefaultEfficiencyAxis)
	if err != nil {
		t.Fatal(err)
	}
	f := nfix.Evaluate(g, nfix.DefaultConstants)
	if err := checkUnits(f); err != nil {
		t.Error(err)
	}
	f.Constants.AOCNitrogen = 10
	if err := checkUnits(f); err == nil {
		t.Error("a field evaluated with other constants should not pass")
	}
}

func TestRenderShow(t *testing.T) {
	out := filepath.Join(t.TempDir(), "fixation-1.svg")
	setTemp(t, "OutputFile", out)
	setTemp(t, "Show", true)
	var opened []string
	defer func(o func(string) error) { openFile = o }(openFile)
	openFile = func(path string) error {
		opened = append(opened, path)
		return os.ErrNotExist
	}
	Root.SetArgs([]string{"render"})
	if err := Root.Execute(); err != nil {
		t.Fatalf("a viewer failure should not be fatal: %v", err)
	}
	if !reflect.DeepEqual(opened, []string{out}) {
		t.Errorf("opened %v, want [%s]", opened, out)
	}
	checkPrefix(t, out, "<?xml")
}

func TestRenderBlob(t *testing.T) {
	dir := t.TempDir()
	setTemp(t, "OutputFile", "file://"+filepath.ToSlash(dir)+"/fixation-1.png")
	setTemp(t, "Show", false)
	setTemp(t, "DPI", 72)
	Root.SetArgs([]string{"render"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	checkPrefix(t, filepath.Join(dir, "fixation-1.png"), "\x89PNG")
}

func TestRenderMissingDir(t *testing.T) {
	setTemp(t, "OutputFile", filepath.Join(t.TempDir(), "missing", "fixation-1.pdf"))
	setTemp(t, "Show", false)
	Root.SetArgs([]string{"render"})
	if err := Root.Execute(); err == nil {
		t.Error("rendering into a missing directory should fail")
	}
}

func TestCheck(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		var b bytes.Buffer
		Root.SetOut(&b)
		defer Root.SetOut(nil)
		Root.SetArgs([]string{"check"})
		if err := Root.Execute(); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(b.String(), "all 8 contour labels") {
			t.Errorf("unexpected output: %s", b.String())
		}
	})
	t.Run("tight", func(t *testing.T) {
		setTemp(t, "Contour.Tolerance", 0.015)
		var b bytes.Buffer
		Root.SetOut(&b)
		defer Root.SetOut(nil)
		Root.SetArgs([]string{"check"})
		if err := Root.Execute(); err == nil {
			t.Fatal("misplaced labels should cause an error")
		}
		if !strings.Contains(b.String(), "label for 300m contour") {
			t.Errorf("unexpected output: %s", b.String())
		}
	})
	t.Run("negative", func(t *testing.T) {
		if _, err := Check(nfix.DefaultConstants, nfix.DefaultLevels, nfix.DefaultLabelPositions, -1); err == nil {
			t.Error("a negative tolerance should be rejected")
		}
	})
}

func TestExport(t *testing.T) {
	setTemp(t, "Grid.SedimentStep", 500.0)
	setTemp(t, "Grid.EfficiencyStep", 20.0)

	t.Run("netcdf", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "fixation-1.ncf")
		setTemp(t, "Export.File", out)
		Root.SetArgs([]string{"export"})
		if err := Root.Execute(); err != nil {
			t.Fatal(err)
		}
		f, err := os.Open(out)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		ff, err := cdf.Open(f)
		if err != nil {
			t.Fatal(err)
		}
		if l := ff.Header.Lengths("H_AOC"); !reflect.DeepEqual(l, []int{6, 5}) {
			t.Errorf("H_AOC dimensions: have %v, want [6 5]", l)
		}
	})
	t.Run("xlsx", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "fixation-1.xlsx")
		setTemp(t, "Export.File", out)
		Root.SetArgs([]string{"export"})
		if err := Root.Execute(); err != nil {
			t.Fatal(err)
		}
		f, err := xlsx.OpenFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if n := len(f.Sheets[0].Rows); n != 7 {
			t.Errorf("have %d rows, want 7", n)
		}
	})
	t.Run("unsupported", func(t *testing.T) {
		setTemp(t, "Export.File", filepath.Join(t.TempDir(), "fixation-1.csv"))
		Root.SetArgs([]string{"export"})
		if err := Root.Execute(); err == nil {
			t.Error("csv export should be rejected")
		}
	})
}

func TestVersion(t *testing.T) {
	var b bytes.Buffer
	Root.SetOut(&b)
	defer Root.SetOut(nil)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if want := "nfix v" + nfix.Version + "\n"; b.String() != want {
		t.Errorf("have %q, want %q", b.String(), want)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	setTemp(t, "Figure.SedimentGuide", 700.0)
	setTemp(t, "Constants.AOCNitrogen", 10.0)

	var b bytes.Buffer
	Root.SetOut(&b)
	defer Root.SetOut(nil)
	Root.SetArgs([]string{"config"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "nfix.toml")
	if err := os.WriteFile(path, b.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	c, err := ConstantsConfig(v)
	if err != nil {
		t.Fatal(err)
	}
	want := nfix.DefaultConstants
	want.AOCNitrogen = 10
	if c != want {
		t.Errorf("constants: have %+v, want %+v", c, want)
	}
	g, err := GridConfig(v)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.X) != 201 || len(g.Y) != 101 {
		t.Errorf("grid: have %d×%d, want 201×101", len(g.X), len(g.Y))
	}
	fc, err := FigureConfig(v)
	if err != nil {
		t.Fatal(err)
	}
	if fc.SedimentGuide != 700 {
		t.Errorf("SedimentGuide: have %g, want 700", fc.SedimentGuide)
	}
	if !reflect.DeepEqual(fc.Levels, nfix.DefaultLevels) {
		t.Errorf("levels: have %v, want %v", fc.Levels, nfix.DefaultLevels)
	}
	if !reflect.DeepEqual(fc.LabelPositions, nfix.DefaultLabelPositions) {
		t.Errorf("label positions: have %v, want %v", fc.LabelPositions, nfix.DefaultLabelPositions)
	}
}

func TestToIntSliceE(t *testing.T) {
	want := []int{300, 600}
	for _, in := range []interface{}{
		[]int{300, 600},
		[]interface{}{int64(300), int64(600)},
		"[300,600]",
	} {
		have, err := toIntSliceE(in)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(have, want) {
			t.Errorf("%#v: have %v, want %v", in, have, want)
		}
	}
	if _, err := toIntSliceE(3.5); err == nil {
		t.Error("a float should be rejected")
	}
}

func TestToPointsE(t *testing.T) {
	want := [][2]float64{{461, 24}, {671, 33}}
	for _, in := range []interface{}{
		[]interface{}{[]interface{}{int64(461), int64(24)}, []interface{}{671.0, 33.0}},
		"[[461,24],[671,33]]",
	} {
		have, err := toPointsE(in)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(have, want) {
			t.Errorf("%#v: have %v, want %v", in, have, want)
		}
	}
	if _, err := toPointsE([]interface{}{[]interface{}{1.0}}); err == nil {
		t.Error("a point with one coordinate should be rejected")
	}
}
