// Package buildinfo identifies the exact build of a command-line tool.
// Enrichment scores end up in papers; knowing which binary produced a table
// matters when a result needs to be reproduced months later.
package buildinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type Info struct {
	Path      string
	GoVersion string
	Commit    string
	BuildTime string
	Dirty     bool
}

func (i Info) String() string {
	commit := i.Commit
	if commit == "" {
		commit = "unknown"
	}
	suffix := ""
	if i.Dirty {
		suffix = " (modified working tree)"
	}
	return fmt.Sprintf("%s built with %s from commit %s at %s%s", i.Path, i.GoVersion, commit, i.BuildTime, suffix)
}

// Get reads the build metadata stamped into the running binary.
func Get() Info {
	out := Info{}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.Path = bi.Path
	out.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.BuildTime = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}
	return out
}

// Print writes the build identification to standard error, keeping standard
// output clean for data.
func Print() {
	fmt.Fprintln(os.Stderr, Get())
}
