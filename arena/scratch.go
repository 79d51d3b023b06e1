// Copyright © 2024 Pulsar3D Contributors.
// Use is governed by a BSD-style license found in the LICENSE file.

package arena

import "sync"

// scratch.go implements GetTemp: a transient arena distinct from every
// arena a caller already holds.
//
// A natural implementation keys scratch arenas off the calling OS thread
// (two per thread is enough because a function has at most one input
// arena). Go goroutines are not OS threads and migrate between Ms, so
// there is no stable "current thread" to key off. Instead this package
// keys scratch arenas off an explicit WorkerIndex -- every caller that
// wants scratch space already runs inside a bounded-concurrency worker (a
// job.Queue worker, the bake per-plane job, or the single
// main-thread/single-mix-thread callers which use WorkerIndex 0). This
// preserves "at most one scratch set in use per concurrent caller"
// without pretending Go has thread-locals.
type scratchSet struct {
	arenas [2]*Arena
}

var (
	scratchMu   sync.Mutex
	scratchPool = map[int]*scratchSet{}
)

func scratchFor(workerIndex int) *scratchSet {
	scratchMu.Lock()
	defer scratchMu.Unlock()
	s, ok := scratchPool[workerIndex]
	if !ok {
		s = &scratchSet{arenas: [2]*Arena{
			New("scratch0", 1<<20, true),
			New("scratch1", 1<<20, true),
		}}
		scratchPool[workerIndex] = s
	}
	return s
}

// GetTemp returns a scratch Arena for workerIndex that is not any of the
// arenas listed in conflicts. Two scratch arenas per worker is always
// enough because every caller holds at most one input arena.
func GetTemp(workerIndex int, conflicts ...*Arena) *Arena {
	set := scratchFor(workerIndex)
	for _, candidate := range set.arenas {
		conflicted := false
		for _, c := range conflicts {
			if candidate == c {
				conflicted = true
				break
			}
		}
		if !conflicted {
			return candidate
		}
	}
	// Unreachable given exactly one input arena and two scratch slots,
	// but fall back to the first rather than returning nil.
	return set.arenas[0]
}
