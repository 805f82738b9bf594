package inspect

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/willhansen/jvmsig/cmd/jvmsig/internal/session"
)

const testGraph = "../../../../provider/testdata/graph.yaml"

var quiet = session.Logger(io.Discard, false)

func TestNameCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := &NameCmd{Graph: testGraph, Refs: []string{"com.acme.Outer.Inner", "@anon1", "com.acme.Strings"}}
	if err := cmd.run(&out, quiet); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := "com.acme.Outer.Inner\tcom/acme/Outer$Inner\n" +
		"@anon1\tcom/acme/Base\n" +
		"com.acme.Strings\tkotlin/collections/List\n"
	if got := out.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestNameCmd_UnknownRef(t *testing.T) {
	cmd := &NameCmd{Graph: testGraph, Refs: []string{"com.acme.Missing"}}
	err := cmd.run(io.Discard, quiet)
	if err == nil || !strings.Contains(err.Error(), "no such declaration") {
		t.Errorf("run error = %v, want no such declaration", err)
	}
}

func TestSigCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := &SigCmd{Graph: testGraph, Names: []string{"nested", "platform"}, Mode: "default"}
	if err := cmd.run(&out, quiet); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out.String())
	}
	if lines[0] != "# "+testGraph+" (default)" {
		t.Errorf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); len(fields) != 3 ||
		fields[0] != "nested" ||
		fields[1] != "Lcom/acme/Outer$Nested;" ||
		fields[2] != "Lcom/acme/Outer<Ljava/lang/String;>.Nested;" {
		t.Errorf("nested line = %q", lines[1])
	}
	if fields := strings.Fields(lines[2]); len(fields) != 3 || fields[0] != "platform" || fields[2] != "-" {
		t.Errorf("platform line = %q", lines[2])
	}
}

func TestSigCmd_AllTypes(t *testing.T) {
	var out bytes.Buffer
	cmd := &SigCmd{Graph: testGraph, Mode: "erased"}
	if err := cmd.run(&out, quiet); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, name := range []string{"anonymous", "inner", "nested", "pairs", "platform", "strings", "unresolved", "wide"} {
		if !strings.Contains(out.String(), "\n"+name+" ") {
			t.Errorf("output lacks %s:\n%s", name, out.String())
		}
	}
	if strings.Contains(out.String(), "<") {
		t.Errorf("erased mode should not write arguments:\n%s", out.String())
	}
}

func TestSigCmd_Trace(t *testing.T) {
	var out bytes.Buffer
	cmd := &SigCmd{Graph: testGraph, Names: []string{"nested"}, Mode: "default", Trace: true}
	if err := cmd.run(&out, quiet); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "nested:\n") || !strings.Contains(got, "innerClass(Nested)") {
		t.Errorf("trace output =\n%s", got)
	}
}

func TestSigCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		cmd  SigCmd
	}{
		{"bad mode", SigCmd{Graph: testGraph, Mode: "sideways"}},
		{"unknown type", SigCmd{Graph: testGraph, Names: []string{"missing"}}},
		{"missing graph", SigCmd{Graph: "missing.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.run(io.Discard, quiet); err == nil {
				t.Error("expected error")
			}
		})
	}
}
