package main

import (
	_ "embed"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/willhansen/jvmsig"
)

//go:embed VERSION
var embeddedVersion string

// Version returns the module version when installed with go install, or
// "devel-BASE[+REV]" for a source build.
func Version() string {
	base := strings.TrimSpace(embeddedVersion)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	if rev := revision(info); rev != "" {
		return "devel-" + base + "+" + rev
	}
	return "devel-" + base
}

func revision(info *debug.BuildInfo) string {
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}

// versionLine is printed by the version command.
func versionLine() string {
	return "jvmsig " + Version() + " (default language " + jvmsig.DefaultLanguageVersion + ", " + runtime.Version() + ")"
}
