// Package version reports the ShikaBOM release.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"
)

//go:embed VERSION
var embedded string

// Override replaces the embedded release when set at link time:
//
//	go build -ldflags "-X github.com/ShayCichocki/shikabom/internal/version.Override=1.2.3"
var Override string

// Get returns the release, preferring a link-time override.
func Get() string {
	if v := strings.TrimSpace(Override); v != "" {
		return v
	}
	return strings.TrimSpace(embedded)
}

// Info returns the release with the Go runtime and platform it was built for.
func Info() string {
	return fmt.Sprintf("%s (%s %s/%s)", Get(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
