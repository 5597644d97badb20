//go:build wasm

package internal

import "sync"

var once sync.Once
var globalRuntime *Runtime

func GetRuntime() *Runtime {
	once.Do(func() {
		globalRuntime = NewRuntime()
	})

	return globalRuntime
}

// Bind swaps the single wasm runtime until restore is called.
func Bind(r *Runtime) (restore func()) {
	prev := GetRuntime()
	globalRuntime = r

	return func() { globalRuntime = prev }
}

func Release() {}
