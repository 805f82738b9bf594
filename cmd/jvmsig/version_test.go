package main

import (
	"strings"
	"testing"

	"github.com/willhansen/jvmsig"
)

func TestVersion(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatal("Version() is empty")
	}
	if !strings.Contains(v, strings.TrimSpace(embeddedVersion)) && !strings.HasPrefix(v, "v") {
		t.Errorf("Version() = %q, want module version or devel build of %q", v, embeddedVersion)
	}

	line := versionLine()
	if !strings.HasPrefix(line, "jvmsig ") || !strings.Contains(line, jvmsig.DefaultLanguageVersion) {
		t.Errorf("versionLine() = %q", line)
	}
}
