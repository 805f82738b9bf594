// Package jvmsig computes JVM internal names, erased descriptors and generic
// signatures for the types of an ir.Graph.
//
// A Mapper is configured with a fluent API. Its methods are safe for
// concurrent use; a reconfigured Mapper builds a new engine on its next call:
//
//	m := jvmsig.New().
//	    WithLanguageVersion("v1.9").
//	    WithCache(1024).
//	    WithLogger(logger)
//	res, err := m.Signature(t)
//
// The graph is read-only for the Mapper. The optional cache is keyed by type
// identity and mode, so a graph must not be mutated while a caching Mapper
// is in use.
package jvmsig

import (
	"log/slog"
	"sync"

	"github.com/willhansen/jvmsig/internal/memo"
	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/jvm"
	"github.com/willhansen/jvmsig/signature"
)

type cacheKey struct {
	typ  *ir.Type
	mode jvm.Mode
}

// Mapper maps types to JVM names and signatures.
type Mapper struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	engine *jvm.Engine
	cache  *memo.Cache[cacheKey, jvm.Result]
}

// New returns a Mapper with the default configuration.
func New() *Mapper {
	return &Mapper{}
}

// WithConfig replaces the configuration.
func (m *Mapper) WithConfig(cfg Config) *Mapper {
	return m.update(func(c *Config) { *c = cfg })
}

// WithLanguageVersion sets the language version for name sanitization.
func (m *Mapper) WithLanguageVersion(v string) *Mapper {
	return m.update(func(c *Config) { c.LanguageVersion = v })
}

// WithBigArity sets the largest function arity with a dedicated carrier class.
func (m *Mapper) WithBigArity(n int) *Mapper {
	return m.update(func(c *Config) { c.BigArity = n })
}

// WithCache enables a signature cache of the given size.
func (m *Mapper) WithCache(size int) *Mapper {
	return m.update(func(c *Config) { c.CacheSize = size })
}

// WithMode sets the mode used by Signature.
func (m *Mapper) WithMode(mode jvm.Mode) *Mapper {
	return m.update(func(c *Config) { c.Mode = mode })
}

// WithLogger sets the logger. Nil uses slog.Default().
func (m *Mapper) WithLogger(logger *slog.Logger) *Mapper {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
	m.engine, m.cache = nil, nil
	return m
}

// Config returns the effective configuration.
func (m *Mapper) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return applyConfigDefaults(m.cfg)
}

// update changes the configuration and drops the engine built from the
// previous one. Calls already in flight finish with the old engine.
func (m *Mapper) update(f func(*Config)) *Mapper {
	m.mu.Lock()
	defer m.mu.Unlock()
	f(&m.cfg)
	m.engine, m.cache = nil, nil
	return m
}

func (m *Mapper) log() *slog.Logger {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logLocked()
}

func (m *Mapper) logLocked() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// init builds the engine on first use.
func (m *Mapper) init() (*jvm.Engine, *memo.Cache[cacheKey, jvm.Result], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engine != nil {
		return m.engine, m.cache, nil
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, nil, err
	}
	cfg := applyConfigDefaults(m.cfg)
	m.engine = jvm.NewEngine(jvm.Options{
		LanguageVersion: cfg.LanguageVersion,
		BigArity:        cfg.BigArity,
		Logger:          m.logLocked(),
	})
	if cfg.CacheSize > 0 {
		m.cache = memo.New[cacheKey, jvm.Result](cfg.CacheSize)
	}
	return m.engine, m.cache, nil
}

// Validate reports configuration errors without mapping anything.
func (m *Mapper) Validate() error {
	_, _, err := m.init()
	return err
}

// Name returns the JVM internal name of ref.
func (m *Mapper) Name(ref ir.Ref) (string, error) {
	e, _, err := m.init()
	if err != nil {
		return "", err
	}
	return e.InternalName(ref)
}

// Signature maps t in the configured mode.
func (m *Mapper) Signature(t *ir.Type) (jvm.Result, error) {
	m.mu.Lock()
	mode := m.cfg.Mode
	m.mu.Unlock()
	return m.SignatureMode(t, mode)
}

// SignatureMode maps t in the given mode.
func (m *Mapper) SignatureMode(t *ir.Type, mode jvm.Mode) (jvm.Result, error) {
	e, cache, err := m.init()
	if err != nil {
		return jvm.Result{}, err
	}
	if cache == nil {
		return e.Signature(t, mode)
	}
	res, hit, err := cache.GetOrCompute(cacheKey{typ: t, mode: mode}, func() (jvm.Result, error) {
		return e.Signature(t, mode)
	})
	if hit {
		m.log().Debug("signature cache hit",
			slog.String("type", t.String()),
			slog.String("mode", mode.String()))
	}
	return res, err
}

// Write maps t into a caller-owned sink. It bypasses the cache.
func (m *Mapper) Write(t *ir.Type, mode jvm.Mode, sink signature.Sink) error {
	e, _, err := m.init()
	if err != nil {
		return err
	}
	return e.MapType(t, mode, sink)
}

// Trace returns the token stream written for t.
func (m *Mapper) Trace(t *ir.Type, mode jvm.Mode) ([]signature.Token, error) {
	e, _, err := m.init()
	if err != nil {
		return nil, err
	}
	return e.Trace(t, mode)
}

// CacheStats reports signature cache usage.
type CacheStats struct {
	Hits, Misses, Evictions, Len int
}

// CacheStats returns the cache counters, all zero when caching is disabled.
func (m *Mapper) CacheStats() CacheStats {
	m.mu.Lock()
	cache := m.cache
	m.mu.Unlock()
	if cache == nil {
		return CacheStats{}
	}
	s := cache.Stats()
	return CacheStats{Hits: s.Hits, Misses: s.Misses, Evictions: s.Evictions, Len: s.Len}
}
