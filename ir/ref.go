// Package ir defines the type graph consumed by the JVM name and signature
// engine. The graph is a read-only view produced by an external resolver
// (a YAML graph file, the Go source provider, or a caller building it by hand);
// nothing in this module mutates it once built.
package ir

// RefKind identifies the variant of a type constructor reference.
type RefKind int

const (
	KindClass         RefKind = iota // Nominal class, interface, annotation or object
	KindTypeAlias                    // Type alias wrapping an expanded type
	KindTypeParameter                // Formal type parameter
	KindError                        // Unresolved placeholder
)

// String returns the string representation of the ref kind.
func (k RefKind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindTypeAlias:
		return "TypeAlias"
	case KindTypeParameter:
		return "TypeParameter"
	case KindError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Ref identifies the declaration underlying a type.
// The set of implementations is closed: *ClassRef, *TypeAliasRef,
// *TypeParameterRef and *ErrorRef.
type Ref interface {
	// Kind returns the ref kind for type switching.
	Kind() RefKind

	// DeclaredName returns the raw declaration name, which may be special.
	DeclaredName() string

	// Ensure only types in this package can implement Ref.
	sealed()
}

// Container is the declaration that owns a class or alias.
// Implementations: *PackageRef, *ClassRef, *CallableRef.
type Container interface {
	containerName() string
	sealedContainer()
}

// PackageRef is a dotted package path owning top-level declarations.
// The empty path is the root package.
type PackageRef struct {
	Path string
}

// Package returns a PackageRef for the dotted path.
func Package(path string) *PackageRef {
	return &PackageRef{Path: path}
}

// IsRoot reports whether this is the root (unnamed) package.
func (p *PackageRef) IsRoot() bool { return p.Path == "" }

func (p *PackageRef) containerName() string { return p.Path }
func (*PackageRef) sealedContainer() {}

// CallableRef is a function or property body owning local declarations.
type CallableRef struct {
	Name  string
	Owner Container
}

func (c *CallableRef) containerName() string { return c.Name }
func (*CallableRef) sealedContainer() {}

// ErrorRef is an unresolved or erroneous type constructor.
type ErrorRef struct {
	// Description is a human-readable explanation from the resolver.
	Description string
}

// Kind returns KindError.
func (r *ErrorRef) Kind() RefKind { return KindError }

// DeclaredName returns the error description wrapped as a special name.
func (r *ErrorRef) DeclaredName() string { return "<error: " + r.Description + ">" }

func (*ErrorRef) sealed() {}

// ErrorType returns a Type whose constructor is an ErrorRef.
func ErrorType(description string) *Type {
	return &Type{Constructor: &ErrorRef{Description: description}}
}

// IsSpecialName reports whether name is a compiler-special placeholder such as
// "<anonymous>" or "<no name provided>". The empty name is also special.
func IsSpecialName(name string) bool {
	return name == "" || (len(name) >= 2 && name[0] == '<' && name[len(name)-1] == '>')
}

// Special names produced by resolvers for unnamed declarations.
const (
	NameNoNameProvided = "<no name provided>"
	NameAnonymous      = "<anonymous>"
	NameLocal          = "<local>"
)
