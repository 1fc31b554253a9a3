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
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
)

// WriteConfig writes the configuration options held by cfg to w in TOML
// format, grouping dotted option names into tables. The output can be
// read back in with the --config flag.
func WriteConfig(w io.Writer, cfg *viper.Viper) error {
	o := make(map[string]interface{})
	for _, option := range options {
		if option.name == "config" {
			continue
		}
		var v interface{}
		switch option.defaultVal.(type) {
		case string:
			v = cfg.GetString(option.name)
		case bool:
			v = cfg.GetBool(option.name)
		case int:
			v = cfg.GetInt(option.name)
		case float64:
			v = cfg.GetFloat64(option.name)
		case []int:
			ints, err := toIntSliceE(cfg.Get(option.name))
			if err != nil {
				return fmt.Errorf("nfix: %s: %v", option.name, err)
			}
			v = ints
		}
		if option.name == "Contour.LabelPositions" {
			pts, err := toPointsE(cfg.Get(option.name))
			if err != nil {
				return fmt.Errorf("nfix: %s: %v", option.name, err)
			}
			xy := make([][]float64, len(pts))
			for i, p := range pts {
				xy[i] = []float64{p[0], p[1]}
			}
			v = xy
		}
		setNested(o, strings.Split(option.name, "."), v)
	}
	if err := toml.NewEncoder(w).Encode(o); err != nil {
		return fmt.Errorf("nfix: writing configuration: %v", err)
	}
	return nil
}

// setNested sets the value at the given key path, creating tables as
// needed.
func setNested(m map[string]interface{}, keys []string, v interface{}) {
	for _, k := range keys[:len(keys)-1] {
		sub, ok := m[k].(map[string]interface{})
		if !ok {
			sub = make(map[string]interface{})
			m[k] = sub
		}
		m = sub
	}
	m[keys[len(keys)-1]] = v
}
