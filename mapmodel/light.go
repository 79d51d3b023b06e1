// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package mapmodel

import (
	"strconv"
	"strings"

	"github.com/pulsar3d/engine/math/lin"
)

// extractLights pulls classname=="light" entities out of the flat entity
// list and parses their origin/_color/light keys into Light records.
// Entities that fail to parse (missing origin) are skipped rather than
// aborting the build -- a malformed light shouldn't take down the whole
// map.
func extractLights(entities []Entity) []Light {
	var lights []Light
	for _, e := range entities {
		if e.Props["classname"] != "light" {
			continue
		}
		origin, ok := parseVec3(e.Props["origin"])
		if !ok {
			continue
		}
		color := lin.V3{X: 1, Y: 1, Z: 1}
		if c, ok := parseVec3(e.Props["_color"]); ok {
			color = c
		}
		brightness := 300.0
		if b, ok := parseFloat(e.Props["light"]); ok {
			brightness = b
		}
		lights = append(lights, Light{Origin: origin, Color: color, Brightness: brightness})
	}
	return lights
}

func parseVec3(s string) (lin.V3, bool) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return lin.V3{}, false
	}
	x, ok1 := parseFloat(fields[0])
	y, ok2 := parseFloat(fields[1])
	z, ok3 := parseFloat(fields[2])
	if !ok1 || !ok2 || !ok3 {
		return lin.V3{}, false
	}
	return lin.V3{X: x, Y: y, Z: z}, true
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
