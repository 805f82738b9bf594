// Package inspect implements the name and sig commands, which query the
// declarations and named types of a graph file.
package inspect

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/willhansen/jvmsig/cmd/jvmsig/internal/session"
	"github.com/willhansen/jvmsig/jvm"
	"github.com/willhansen/jvmsig/output"
)

type NameCmd struct {
	Graph string   `arg:"" help:"YAML graph file." type:"existingfile"`
	Refs  []string `arg:"" help:"Declarations by fq name or @id."`
}

func (c *NameCmd) Run(logger *slog.Logger) error {
	return c.run(os.Stdout, logger)
}

func (c *NameCmd) run(w io.Writer, logger *slog.Logger) error {
	g, m, err := session.Open(c.Graph, logger)
	if err != nil {
		return err
	}
	for _, name := range c.Refs {
		ref := g.Lookup(name)
		if ref == nil {
			return fmt.Errorf("%s: no such declaration", name)
		}
		internal, err := m.Name(ref)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Fprintf(w, "%s\t%s\n", name, internal)
	}
	return nil
}

type SigCmd struct {
	Graph string   `arg:"" help:"YAML graph file." type:"existingfile"`
	Names []string `arg:"" optional:"" help:"Entries of the graph's types section (default: all)."`
	Mode  string   `help:"Mode preset or query, e.g. 'argument' or 'preset=supertype&box=true'." short:"m" default:"default"`
	Trace bool     `help:"Print the sink calls instead of the signature." short:"t"`
}

func (c *SigCmd) Run(logger *slog.Logger) error {
	return c.run(os.Stdout, logger)
}

func (c *SigCmd) run(w io.Writer, logger *slog.Logger) error {
	mode, err := jvm.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	g, m, err := session.Open(c.Graph, logger)
	if err != nil {
		return err
	}

	names := c.Names
	if len(names) == 0 {
		for name := range g.Types {
			names = append(names, name)
		}
		slices.Sort(names)
	}

	var entries []output.Entry
	for _, name := range names {
		t, ok := g.Types[name]
		if !ok {
			return fmt.Errorf("%s: no such type in %s", name, c.Graph)
		}
		if c.Trace {
			tokens, err := m.Trace(t, mode)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			fmt.Fprintf(w, "%s:\n", name)
			for _, tok := range tokens {
				fmt.Fprintf(w, "  %s\n", tok)
			}
			continue
		}
		res, err := m.SignatureMode(t, mode)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		entries = append(entries, output.Entry{Name: name, Descriptor: res.Descriptor, Signature: res.Generic()})
	}
	if !c.Trace {
		_, err = w.Write(output.Listing(c.Graph+" ("+mode.String()+")", entries))
	}
	return err
}
