package jvmsig

import (
	"log/slog"

	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/jvm"
	"github.com/willhansen/jvmsig/names"
)

// Report is the result of checking a graph.
type Report struct {
	// Errors are structural problems found by ir.Graph.Validate.
	Errors []error

	// Collisions are internal names claimed by several declarations.
	Collisions []jvm.Collision

	// Warnings are the non-fatal issues recorded while building the graph.
	Warnings []ir.Warning
}

// OK reports whether the graph has no errors and no collisions.
func (r *Report) OK() bool {
	return len(r.Errors) == 0 && len(r.Collisions) == 0
}

// Check validates g and looks for internal name collisions under the
// configured language version. If g carries a language version it takes
// precedence for the collision check.
func (m *Mapper) Check(g *ir.Graph) (*Report, error) {
	e, _, err := m.init()
	if err != nil {
		return nil, err
	}
	resolver := e.Resolver()
	if g.LanguageVersion != "" && g.LanguageVersion != resolver.NamingConfig().Version {
		if err := (Config{LanguageVersion: g.LanguageVersion}).Validate(); err != nil {
			return nil, err
		}
		bigArity := resolver.BigArity
		resolver = jvm.NewResolver(names.LanguageVersionConfig{Version: g.LanguageVersion}, m.log())
		resolver.BigArity = bigArity
	}

	report := &Report{
		Errors:     g.Validate(),
		Collisions: jvm.CheckCollisions(g, resolver),
		Warnings:   append([]ir.Warning(nil), g.Warnings...),
	}
	m.log().Debug("checked graph",
		slog.Int("classes", len(g.Classes())),
		slog.Int("errors", len(report.Errors)),
		slog.Int("collisions", len(report.Collisions)))
	return report, nil
}
