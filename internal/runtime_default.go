//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// goroutine id -> *Runtime
var runtimes sync.Map

// GetRuntime returns the calling goroutine's runtime, creating it on first use.
func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// Bind makes r the calling goroutine's runtime until restore is called.
func Bind(r *Runtime) (restore func()) {
	gid := getGID()

	prev, had := runtimes.Load(gid)
	runtimes.Store(gid, r)

	return func() {
		if had {
			runtimes.Store(gid, prev)
		} else {
			runtimes.Delete(gid)
		}
	}
}

// Release forgets the calling goroutine's runtime.
func Release() {
	runtimes.Delete(getGID())
}

func getGID() int64 {
	return goid.Get()
}
