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

// Package nfixutil contains the command-line interface for nfix.
package nfixutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/nfix"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	positions, err := json.Marshal(nfix.DefaultLabelPositions)
	if err != nil {
		panic(err)
	}
	levels := make([]int, len(nfix.DefaultLevels))
	for i, l := range nfix.DefaultLevels {
		levels[i] = int(l)
	}

	// Options are the configuration options available to nfix.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum severity of log messages: one of
              debug, info, warn or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the figure is saved. The format is
              chosen from the extension (pdf, svg, eps, png, jpg or tif). It can
              be a blob storage location (file://, gs:// or s3://) and can
              include environment variables.`,
			shorthand:  "o",
			defaultVal: "fixation-1.pdf",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Show",
			usage: `
              Show specifies whether to open the saved figure in the default
              viewer.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "DPI",
			usage: `
              DPI is the output resolution in dots per inch. It only affects
              raster formats; pdf, svg and eps are vector formats.`,
			defaultVal: 600,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Figure.Width",
			usage: `
              Figure.Width is the figure width in inches.`,
			defaultVal: 3.5,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Figure.Height",
			usage: `
              Figure.Height is the figure height in inches.`,
			defaultVal: 3.5,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Figure.SedimentGuide",
			usage: `
              Figure.SedimentGuide is the sediment thickness [m] of the vertical
              guide bar: the average sediment thickness of subducting slabs in
              the modern circum-Pacific subduction zones.`,
			defaultVal: 794.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Figure.EfficiencyGuide",
			usage: `
              Figure.EfficiencyGuide is the re-fixation efficiency [%] of the
              horizontal guide bar: the maximum degree of N loss observed in
              epidote-blueschist metamorphism.`,
			defaultVal: 40.0,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.SedimentMin",
			usage: `
              Grid.SedimentMin is the smallest sediment thickness [m] in the grid.`,
			defaultVal: nfix.DefaultSedimentAxis.Min,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.SedimentMax",
			usage: `
              Grid.SedimentMax is the largest sediment thickness [m] in the grid.
              It is also the upper limit of the x axis.`,
			defaultVal: nfix.DefaultSedimentAxis.Max,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.SedimentStep",
			usage: `
              Grid.SedimentStep is the sediment thickness [m] grid spacing.`,
			defaultVal: nfix.DefaultSedimentAxis.Step,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.EfficiencyMin",
			usage: `
              Grid.EfficiencyMin is the smallest re-fixation efficiency [%] in
              the grid.`,
			defaultVal: nfix.DefaultEfficiencyAxis.Min,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.EfficiencyMax",
			usage: `
              Grid.EfficiencyMax is the largest re-fixation efficiency [%] in the
              grid. It is also the upper limit of the y axis.`,
			defaultVal: nfix.DefaultEfficiencyAxis.Max,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Grid.EfficiencyStep",
			usage: `
              Grid.EfficiencyStep is the re-fixation efficiency [%] grid spacing.`,
			defaultVal: nfix.DefaultEfficiencyAxis.Step,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Contour.Levels",
			usage: `
              Contour.Levels are the AOC thicknesses [m] to draw contours at.`,
			defaultVal: levels,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Contour.LabelPositions",
			usage: `
              Contour.LabelPositions are the [sediment thickness, efficiency]
              coordinates of the contour labels, one for each of Contour.Levels
              in the same order.`,
			defaultVal: string(positions),
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Contour.Tolerance",
			usage: `
              Contour.Tolerance is the largest relative difference allowed between
              the AOC thickness at a label position and the level of the label.`,
			defaultVal: 0.05,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Constants.SedimentDensity",
			usage: `
              Constants.SedimentDensity is the average sediment density [g/cm³].`,
			defaultVal: nfix.DefaultConstants.SedimentDensity,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Constants.SedimentPorosity",
			usage: `
              Constants.SedimentPorosity is the average sediment porosity
              (fraction).`,
			defaultVal: nfix.DefaultConstants.SedimentPorosity,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Constants.SedimentNitrogen",
			usage: `
              Constants.SedimentNitrogen is the average N concentration of
              sediments [ppm].`,
			defaultVal: nfix.DefaultConstants.SedimentNitrogen,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Constants.AOCDensity",
			usage: `
              Constants.AOCDensity is the average AOC density [g/cm³].`,
			defaultVal: nfix.DefaultConstants.AOCDensity,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Constants.AOCPorosity",
			usage: `
              Constants.AOCPorosity is the average AOC porosity (fraction).`,
			defaultVal: nfix.DefaultConstants.AOCPorosity,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Constants.BlueschistNitrogen",
			usage: `
              Constants.BlueschistNitrogen is the average N concentration of
              blueschist [ppm].`,
			defaultVal: nfix.DefaultConstants.BlueschistNitrogen,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Constants.AOCNitrogen",
			usage: `
              Constants.AOCNitrogen is the average N concentration of subducted
              AOC [ppm].`,
			defaultVal: nfix.DefaultConstants.AOCNitrogen,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Export.File",
			usage: `
              Export.File is the path where the calculated AOC thicknesses are
              written. Files ending in .nc or .ncf are written as NetCDF and files
              ending in .xlsx as spreadsheets. It can be a blob storage location
              and can include environment variables.`,
			defaultVal: "fixation-1.ncf",
			flagsets:   []*pflag.FlagSet{exportCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("NFIX")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(renderCmd)
	Root.AddCommand(checkCmd)
	Root.AddCommand(exportCmd)
	Root.AddCommand(configCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("nfix: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("nfix: LogLevel: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command. Run without a subcommand it renders the
// figure.
var Root = &cobra.Command{
	Use:   "nfix",
	Short: "Nitrogen re-fixation mass balance figure.",
	Long: `nfix calculates the thickness of metamorphosed altered oceanic crust (AOC)
required to host the nitrogen re-fixed from subducting sediment, as a function
of sediment thickness and re-fixation efficiency, and draws it as a contour
figure. Run without a subcommand, nfix renders the figure to OutputFile
(fixation-1.pdf) and opens it.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'NFIX_var' where 'var' is the
name of the variable to be set. 'nfix config' prints the current
configuration in a format that can be used as a configuration file.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of nfix.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("nfix v%s\n", nfix.Version)
	},
	DisableAutoGenTag: true,
}

// renderCmd draws the figure.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the contour figure.",
	Long: `render evaluates the mass balance over the parameter grid and saves the
contour figure to OutputFile. If Show is true the figure is then opened in
the default viewer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ConstantsConfig(Cfg)
		if err != nil {
			return err
		}
		g, err := GridConfig(Cfg)
		if err != nil {
			return err
		}
		fc, err := FigureConfig(Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(context.TODO(), Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		return Render(context.TODO(), c, g, fc, Cfg.GetFloat64("Contour.Tolerance"),
			outputFile, Cfg.GetBool("Show"))
	},
	DisableAutoGenTag: true,
}

// checkCmd checks the contour label positions.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the contour label positions.",
	Long: `check verifies that each manually placed contour label lies on the
contour it annotates, i.e. that the AOC thickness at the label position is
within Contour.Tolerance of the label's level. It fails if any label is
misplaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ConstantsConfig(Cfg)
		if err != nil {
			return err
		}
		levels, positions, err := contourConfig(Cfg)
		if err != nil {
			return err
		}
		mismatches, err := Check(c, levels, positions, Cfg.GetFloat64("Contour.Tolerance"))
		if err != nil {
			return err
		}
		for _, m := range mismatches {
			cmd.Println(m.String())
		}
		if len(mismatches) > 0 {
			return fmt.Errorf("nfix: %d of %d contour labels are misplaced", len(mismatches), len(levels))
		}
		cmd.Printf("all %d contour labels are on their contours\n", len(levels))
		return nil
	},
	DisableAutoGenTag: true,
}

// exportCmd writes the calculated field to a file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the calculated AOC thicknesses.",
	Long: `export evaluates the mass balance over the parameter grid and writes
the result to Export.File as NetCDF (.nc, .ncf) or as a spreadsheet (.xlsx).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ConstantsConfig(Cfg)
		if err != nil {
			return err
		}
		g, err := GridConfig(Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(context.TODO(), Cfg.GetString("Export.File"))
		if err != nil {
			return err
		}
		return Export(context.TODO(), c, g, outputFile)
	},
	DisableAutoGenTag: true,
}

// configCmd prints the configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration.",
	Long: `config prints the current configuration in TOML format. The output
can be saved and used with the --config flag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b := bytes.NewBuffer(nil)
		if err := WriteConfig(b, Cfg); err != nil {
			return err
		}
		cmd.Print(b.String())
		return nil
	},
	DisableAutoGenTag: true,
}
