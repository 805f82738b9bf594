// Package session holds the setup shared by the jvmsig commands.
package session

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/willhansen/jvmsig"
	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/provider"
)

// Logger returns a text logger writing to w, at debug level when verbose.
func Logger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Mapper returns a Mapper for g. The graph's language version wins over
// the flag value, which wins over the default.
func Mapper(g *ir.Graph, languageVersion string, logger *slog.Logger) (*jvmsig.Mapper, error) {
	m := jvmsig.New().WithLogger(logger).WithCache(4096)
	switch {
	case g.LanguageVersion != "":
		m.WithLanguageVersion(g.LanguageVersion)
	case languageVersion != "":
		m.WithLanguageVersion(languageVersion)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Open loads a graph file and returns it with a Mapper configured for it.
func Open(path string, logger *slog.Logger) (*ir.Graph, *jvmsig.Mapper, error) {
	g, err := provider.LoadGraphFile(path, provider.GraphOptions{})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded graph",
		slog.String("path", path),
		slog.Int("classes", len(g.Classes())),
		slog.Int("aliases", len(g.Aliases())),
		slog.Int("types", len(g.Types)))

	m, err := Mapper(g, "", logger)
	if err != nil {
		return nil, nil, fmt.Errorf("graph %s: %w", path, err)
	}
	return g, m, nil
}
