// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

// Package version exposes the CLI's build metadata.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// Populated through -ldflags at release time. Anything left at its default
// is filled from the binary's embedded build info on first use, which
// covers "go install module@version" builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var resolve = sync.OnceFunc(func() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" && len(s.Value) >= 7 {
				Commit = s.Value[:7]
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
})

// Info returns the full version line printed by the version command.
func Info() string {
	resolve()
	return fmt.Sprintf("zodgen version %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, runtime.Version())
}

// Short returns just the version string, for cobra's --version flag.
func Short() string {
	resolve()
	return Version
}
