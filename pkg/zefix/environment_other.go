//go:build !(js && wasm)

package zefix

func runningInBrowser() bool {
	return false
}
