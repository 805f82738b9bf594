package check

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/willhansen/jvmsig/cmd/jvmsig/internal/session"
)

type Cmd struct {
	Graph  string `arg:"" help:"YAML graph file." type:"existingfile"`
	Strict bool   `help:"Treat warnings as errors."`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	return c.run(os.Stdout, logger)
}

func (c *Cmd) run(w io.Writer, logger *slog.Logger) error {
	g, m, err := session.Open(c.Graph, logger)
	if err != nil {
		return err
	}
	report, err := m.Check(g)
	if err != nil {
		return err
	}

	for _, e := range report.Errors {
		fmt.Fprintf(w, "✗ %v\n", e)
	}
	for _, col := range report.Collisions {
		fmt.Fprintf(w, "✗ %s claimed by %s\n", col.InternalName, strings.Join(col.Declarations, ", "))
	}
	for _, warn := range report.Warnings {
		fmt.Fprintf(w, "! %s: %s\n", warn.Code, warn.Message)
	}

	problems := len(report.Errors) + len(report.Collisions)
	if c.Strict {
		problems += len(report.Warnings)
	}
	if problems > 0 {
		return fmt.Errorf("%s: %d problems", c.Graph, problems)
	}
	fmt.Fprintf(w, "✓ %d classes, %d aliases, %d types\n", len(g.Classes()), len(g.Aliases()), len(g.Types))
	return nil
}
