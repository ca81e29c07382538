// Package version holds build-time version information.
//
// The Git* variables are set via -ldflags at build time:
//
//	go build -ldflags "-X github.com/yeschef/hungie/version.GitRelease=$(git describe --tags)"
package version

import (
	"fmt"
	"runtime"
)

var (
	// GitRelease is the release tag, set at build time.
	GitRelease = "dev"
	// GitCommit is the commit hash, set at build time.
	GitCommit = "unknown"
	// GitCommitDate is the commit date, set at build time.
	GitCommitDate = "unknown"
)

// GoInfo describes the Go toolchain and platform this binary was built with.
var GoInfo = fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
