// Package xtesting contains helpers shared by the conformance tests and
// benchmarks of the set drivers.
package xtesting

import (
	"fmt"
	"sync"
	"sync/atomic"
)

var counters sync.Map

// SequentialName returns a name with the given prefix that is unique within
// the process, such as "set-1", "set-2" and so on.
func SequentialName(prefix string) string {
	v, ok := counters.Load(prefix)
	if !ok {
		v, _ = counters.LoadOrStore(prefix, &atomic.Uint64{})
	}

	return fmt.Sprintf("%s-%d", prefix, v.(*atomic.Uint64).Add(1))
}
