package jvm

import (
	"log/slog"
	"strings"

	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/names"
)

// ObjectInternalName is the name used when no supertype of an unnamed class
// can be named.
const ObjectInternalName = "java/lang/Object"

// Resolver computes JVM internal names of declarations.
type Resolver struct {
	names  names.LanguageVersionConfig
	logger *slog.Logger

	// BigArity overrides the package BigArity when positive. It selects the
	// function carrier classes and is shared with the Writer.
	BigArity int
}

// NewResolver returns a resolver applying the naming rules of cfg.
// A nil logger uses slog.Default().
func NewResolver(cfg names.LanguageVersionConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{names: cfg, logger: logger}
}

func (r *Resolver) bigArity() int {
	if r.BigArity > 0 {
		return r.BigArity
	}
	return BigArity
}

func (r *Resolver) platformClass(c *ir.ClassRef) (PlatformClass, bool) {
	return platformClassOf(c, r.bigArity())
}

// NamingConfig returns the language version configuration in use.
func (r *Resolver) NamingConfig() names.LanguageVersionConfig { return r.names }

// InternalName returns the internal name of ref.
//
// Type parameters map to their sanitized name and aliases to the name of
// their expansion. A class whose owner chain is nameable maps to
// "pkg/path/Name" or "Owner$Name"; any other class borrows the name of its
// first nameable supertype, preferring classes over interfaces, and falls
// back to ObjectInternalName. Error refs fail with ir.CodeUnsupportedRefKind.
func (r *Resolver) InternalName(ref ir.Ref) (string, error) {
	switch ref := ref.(type) {
	case *ir.TypeParameterRef:
		return names.Sanitize(ref.Name, r.names), nil
	case *ir.TypeAliasRef:
		ctor, err := ir.ExpandedConstructor(ref)
		if err != nil {
			return "", err
		}
		return r.InternalName(ctor)
	case *ir.ClassRef:
		if name, ok := r.classInternalName(ref, 0); ok {
			return name, nil
		}
		return r.supertypeInternalName(ref), nil
	case *ir.ErrorRef:
		return "", ir.Errorf(ir.CodeUnsupportedRefKind, "no internal name for error type %s", ref.Description).
			WithDetail("kind", ref.Kind().String())
	case nil:
		return "", ir.NewError(ir.CodeUnsupportedRefKind, "no internal name for an absent declaration")
	default:
		return "", ir.Errorf(ir.CodeUnsupportedRefKind, "no internal name for %T", ref)
	}
}

// ClassInternalName returns the JVM name a class compiles to: its platform
// class when it is a builtin, its internal name otherwise.
func (r *Resolver) ClassInternalName(c *ir.ClassRef) (string, error) {
	if p, ok := r.platformClass(c); ok {
		return p.InternalName, nil
	}
	return r.InternalName(c)
}

// ShortName returns the binary short name of c as written after "." in a
// nested generic signature.
func (r *Resolver) ShortName(c *ir.ClassRef) string {
	if p, ok := r.platformClass(c); ok {
		return p.ShortName()
	}
	return names.SafeIdentifier(c.Name)
}

// FqName returns the dotted fq name of c, or "" when c is not nameable.
func (r *Resolver) FqName(c *ir.ClassRef) string { return c.FqName() }

// classInternalName names c from its owner chain. It reports false when a
// name in the chain is special.
func (r *Resolver) classInternalName(c *ir.ClassRef, depth int) (string, bool) {
	if depth > maxChainDepth || ir.IsSpecialName(c.Name) {
		return "", false
	}
	self := names.Sanitize(c.Name, r.names)
	switch owner := c.Owner.(type) {
	case *ir.PackageRef:
		if owner.IsRoot() {
			return self, true
		}
		return strings.ReplaceAll(owner.Path, ".", "/") + "/" + self, true
	case *ir.ClassRef:
		parent, ok := r.classInternalName(owner, depth+1)
		if !ok {
			return "", false
		}
		return parent + "$" + self, true
	default:
		return self, true
	}
}

const maxChainDepth = 256

// supertypeInternalName implements the fallback for classes without a
// nameable chain. Supertypes are scanned in declaration order.
func (r *Resolver) supertypeInternalName(c *ir.ClassRef) string {
	var fallback string
	for i, st := range c.Supertypes {
		decl, err := r.supertypeClass(st)
		if err != nil {
			r.logger.Debug("skipping unresolved supertype",
				slog.String("class", c.String()),
				slog.Int("index", i),
				slog.String("code", string(ir.CodeUnresolvedSupertype)),
				slog.String("reason", err.Error()))
			continue
		}
		name, ok := r.candidateName(decl)
		if !ok {
			r.logger.Debug("skipping unnamed supertype",
				slog.String("class", c.String()),
				slog.Int("index", i))
			continue
		}
		if !decl.ClassKind.IsInterfaceLike() {
			r.logger.Debug("naming class after supertype",
				slog.String("class", c.String()),
				slog.String("name", name))
			return name
		}
		if fallback == "" {
			fallback = name
		}
	}
	if fallback != "" {
		r.logger.Debug("naming class after interface supertype",
			slog.String("class", c.String()),
			slog.String("name", fallback))
		return fallback
	}
	r.logger.Debug("no nameable supertype",
		slog.String("class", c.String()),
		slog.String("name", ObjectInternalName))
	return ObjectInternalName
}

func (r *Resolver) supertypeClass(st *ir.Type) (*ir.ClassRef, error) {
	if st.IsError() {
		return nil, ir.NewError(ir.CodeUnresolvedSupertype, "supertype is unresolved")
	}
	expanded, err := ir.ExpandAliases(st)
	if err != nil {
		return nil, ir.Wrap(err, ir.CodeUnresolvedSupertype, "supertype alias does not expand")
	}
	decl := expanded.Class()
	if decl == nil {
		return nil, ir.Errorf(ir.CodeUnresolvedSupertype, "supertype %s is not a class", expanded)
	}
	return decl, nil
}

// candidateName names a supertype without recursing into its own fallback.
// Builtins resolve to their platform class, since the result names an erasure.
func (r *Resolver) candidateName(decl *ir.ClassRef) (string, bool) {
	if p, ok := r.platformClass(decl); ok {
		return p.InternalName, true
	}
	return r.classInternalName(decl, 0)
}
