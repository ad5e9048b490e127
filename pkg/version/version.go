// Package version holds the build stamp of the ai-context binary.
package version

import (
	"fmt"
	"runtime"
)

// Overridden by the release build, for example:
//
//	go build -ldflags "-X aicontext/pkg/version.Version=1.2.3 -X aicontext/pkg/version.Commit=abcdefg -X aicontext/pkg/version.BuildTime=2024-04-27T15:04:05Z"
//
// Local builds keep the placeholders.
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// AppName is the name stamped into logs and generated documents.
const AppName = "ai-context"

// Info is the build stamp plus the toolchain and target it was built for.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // GOOS/GOARCH
}

// Get snapshots the stamped variables together with the running toolchain.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String is what `ai-context version` prints without --short.
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s %s)",
		AppName, i.Version, i.GitCommit, i.BuildTime, i.GoVersion, i.Platform)
}
