//go:build js && wasm

package zefix

import "syscall/js"

func runningInBrowser() bool {
	global := js.Global()

	return global.Get("window").Truthy() && global.Get("document").Truthy()
}
