package cmd

import (
	"fmt"
	"runtime"
)

// Version is the release version, injected at build time via ldflags.
var Version = "0.1.0-dev"

// runVersion prints version and build information.
func runVersion() {
	fmt.Printf("parley %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
