// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package bake

import (
	"encoding/binary"

	"github.com/pulsar3d/engine/job"
)

// encodePlaneJob packs a per-plane bake job's (planeIndex, w, h) triple
// into a job.Payload's inline bytes, leaving the remaining 40 bytes as
// padding. The job closure itself already captures what it needs to run;
// this round-trip exists so the payload carries the same inline data a
// job_queues.h-style union would, for inspection/logging.
func encodePlaneJob(planeIndex, w, h int) job.Payload {
	var p job.Payload
	binary.LittleEndian.PutUint64(p[0:8], uint64(planeIndex))
	binary.LittleEndian.PutUint64(p[8:16], uint64(w))
	binary.LittleEndian.PutUint64(p[16:24], uint64(h))
	return p
}

// decodePlaneJob reverses encodePlaneJob.
func decodePlaneJob(p job.Payload) (planeIndex, w, h int) {
	planeIndex = int(binary.LittleEndian.Uint64(p[0:8]))
	w = int(binary.LittleEndian.Uint64(p[8:16]))
	h = int(binary.LittleEndian.Uint64(p[16:24]))
	return
}
