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
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Format returns the output format implied by the extension of path.
func Format(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Write draws p to w in the given format: pdf, svg, eps, png, jpg or tif.
// cfg.DPI sets the resolution of the raster formats.
func Write(w io.Writer, p *plot.Plot, cfg Config, format string) error {
	var c interface {
		vg.CanvasSizer
		io.WriterTo
	}
	switch format {
	case "pdf":
		pdf := vgpdf.New(cfg.Width, cfg.Height)
		pdf.EmbedFonts(true)
		c = pdf
	case "svg":
		c = vgsvg.New(cfg.Width, cfg.Height)
	case "eps":
		c = vgeps.New(cfg.Width, cfg.Height)
	case "png", "jpg", "jpeg", "tif", "tiff":
		img := vgimg.NewWith(vgimg.UseWH(cfg.Width, cfg.Height), vgimg.UseDPI(cfg.DPI))
		switch format {
		case "png":
			c = vgimg.PngCanvas{Canvas: img}
		case "jpg", "jpeg":
			c = vgimg.JpegCanvas{Canvas: img}
		default:
			c = vgimg.TiffCanvas{Canvas: img}
		}
	default:
		return fmt.Errorf("figure: unsupported output format %q", format)
	}
	p.Draw(draw.New(c))
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("figure: writing %s: %v", format, err)
	}
	return nil
}

// Save writes p to the file at path, choosing the format from the
// file extension.
func Save(p *plot.Plot, cfg Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("figure: %v", err)
	}
	if err := Write(f, p, cfg, Format(path)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("figure: closing %s: %v", path, err)
	}
	return nil
}
