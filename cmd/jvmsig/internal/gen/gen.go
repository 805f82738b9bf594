package gen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/willhansen/jvmsig"
	"github.com/willhansen/jvmsig/cmd/jvmsig/internal/session"
	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/output"
	"github.com/willhansen/jvmsig/provider"
)

// FileName is the listing written to the output directory.
const FileName = "signatures.txt"

type Cmd struct {
	Out             string   `help:"Output directory." short:"o" required:"" type:"path"`
	Packages        []string `arg:"" help:"Go package patterns to analyze."`
	Types           []string `help:"Root type names (default: all exported and local types)." short:"T"`
	LanguageVersion string   `help:"Language version for name sanitization." name:"language-version" default:"${default_language_version}"`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	return c.run(ctx, output.NewDirWriter(c.Out), logger)
}

func (c *Cmd) run(ctx context.Context, w output.Writer, logger *slog.Logger) error {
	sp := &provider.SourceProvider{}
	g, err := sp.BuildGraph(ctx, provider.SourceInputOptions{
		Packages:        c.Packages,
		RootTypes:       c.Types,
		LanguageVersion: c.LanguageVersion,
	})
	if err != nil {
		return err
	}
	for _, warn := range g.Warnings {
		logger.Warn(warn.Message, slog.String("code", warn.Code))
	}

	m, err := session.Mapper(g, c.LanguageVersion, logger)
	if err != nil {
		return err
	}
	entries, err := Entries(g, m)
	if err != nil {
		return err
	}
	logger.Debug("mapped source graph", slog.Int("entries", len(entries)))

	content := output.Listing(strings.Join(c.Packages, " "), entries)
	if err := w.WriteFile(ctx, FileName, content); err != nil {
		return fmt.Errorf("write %s: %w", FileName, err)
	}
	return nil
}

// Entries maps every class declared in the graph's packages and every
// recorded field type.
func Entries(g *ir.Graph, m *jvmsig.Mapper) ([]output.Entry, error) {
	var entries []output.Entry
	for _, c := range g.Classes() {
		if !declaredIn(c, g.Packages) {
			continue
		}
		res, err := m.Signature(c.DefaultType())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}
		entries = append(entries, output.Entry{Name: c.String(), Descriptor: res.Descriptor, Signature: res.Generic()})
	}
	for name, t := range g.Types {
		res, err := m.Signature(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		entries = append(entries, output.Entry{Name: name, Descriptor: res.Descriptor, Signature: res.Generic()})
	}
	return entries, nil
}

func declaredIn(c *ir.ClassRef, packages []string) bool {
	name := c.String()
	for _, pkg := range packages {
		if strings.HasPrefix(name, pkg+".") {
			return true
		}
	}
	return false
}
