package zefix

// browserDetector reports whether the process runs inside a browser page.
// Tests replace it.
var browserDetector = runningInBrowser

// CheckEnvironment returns ErrBrowserEnvironment when the client runs inside
// a browser page (both window and document globals exist). It is called once,
// before a configuration is accepted.
func CheckEnvironment() error {
	if browserDetector() {
		return ErrBrowserEnvironment
	}

	return nil
}
