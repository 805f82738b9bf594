// Package provider builds ir graphs from external descriptions: YAML graph
// files and Go source packages.
package provider

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/willhansen/jvmsig/ir"
	"gopkg.in/yaml.v3"
)

//go:embed builtins.yaml
var builtinsYAML []byte

// GraphOptions configures graph file loading.
type GraphOptions struct {
	// SkipBuiltins leaves out the builtin kotlin declarations (kotlin.Any,
	// kotlin.String, kotlin.collections.List, ...). A file may redeclare any
	// builtin; its own declaration wins.
	SkipBuiltins bool
}

// graphFile is the YAML document layout.
type graphFile struct {
	LanguageVersion string            `yaml:"languageVersion"`
	Classes         []classDecl       `yaml:"classes"`
	Aliases         []aliasDecl       `yaml:"aliases"`
	Types           map[string]string `yaml:"types"`
}

type classDecl struct {
	Name           string          `yaml:"name"`
	Package        string          `yaml:"package"`
	Owner          string          `yaml:"owner"`
	Callable       string          `yaml:"callable"`
	ID             string          `yaml:"id"`
	Kind           string          `yaml:"kind"`
	Inner          bool            `yaml:"inner"`
	Final          bool            `yaml:"final"`
	Marker         string          `yaml:"marker"`
	TypeParameters []typeParamDecl `yaml:"typeParameters"`
	Supertypes     []string        `yaml:"supertypes"`
}

type aliasDecl struct {
	Name           string          `yaml:"name"`
	Package        string          `yaml:"package"`
	Owner          string          `yaml:"owner"`
	ID             string          `yaml:"id"`
	TypeParameters []typeParamDecl `yaml:"typeParameters"`
	Expands        string          `yaml:"expands"`
}

type typeParamDecl struct {
	Name     string   `yaml:"name"`
	Variance string   `yaml:"variance"`
	Bounds   []string `yaml:"bounds"`
	Reified  bool     `yaml:"reified"`
}

// LoadGraphFile reads a YAML graph file.
func LoadGraphFile(path string, opts GraphOptions) (*ir.Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open graph file %v", path)
	}
	defer file.Close()

	g, err := decodeGraph(file, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load graph file %v", path)
	}
	return g, nil
}

// ParseGraph parses a YAML graph document.
func ParseGraph(data []byte, opts GraphOptions) (*ir.Graph, error) {
	return decodeGraph(bytes.NewReader(data), opts)
}

func decodeGraph(r io.Reader, opts GraphOptions) (*ir.Graph, error) {
	doc, err := decodeFile(r)
	if err != nil {
		return nil, err
	}

	l := newLoader()
	if !opts.SkipBuiltins {
		if err := declareBuiltins(l); err != nil {
			return nil, err
		}
	}
	if err := l.declare(doc, false); err != nil {
		return nil, err
	}
	if err := l.resolveOwners(); err != nil {
		return nil, err
	}
	if err := l.resolveTypes(doc.Types); err != nil {
		return nil, err
	}
	g := l.build()
	g.LanguageVersion = doc.LanguageVersion
	return g, nil
}

// declareBuiltins adds the embedded builtin declarations to l.
func declareBuiltins(l *loader) error {
	doc, err := decodeFile(bytes.NewReader(builtinsYAML))
	if err != nil {
		return errors.Wrap(err, "invalid builtin declarations")
	}
	return errors.Wrap(l.declare(doc, true), "invalid builtin declarations")
}

func decodeFile(r io.Reader) (*graphFile, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc graphFile
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, errors.Wrap(err, "failed to decode graph")
	}
	return &doc, nil
}

func parseClassKind(s string) (ir.ClassKind, bool) {
	switch s {
	case "", "class":
		return ir.ClassKindClass, true
	case "interface":
		return ir.ClassKindInterface, true
	case "annotation":
		return ir.ClassKindAnnotation, true
	case "object":
		return ir.ClassKindObject, true
	case "enum":
		return ir.ClassKindEnum, true
	}
	return ir.ClassKindClass, false
}

func parseMarker(s string) (ir.Marker, bool) {
	switch s {
	case "", "none":
		return ir.MarkerNone, true
	case "nothing":
		return ir.MarkerNothing, true
	case "function":
		return ir.MarkerFunction, true
	case "kfunction":
		return ir.MarkerReflectFunction, true
	case "array":
		return ir.MarkerArray, true
	}
	return ir.MarkerNone, false
}
