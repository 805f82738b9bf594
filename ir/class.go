package ir

import "strings"

// ClassKind identifies the declaration form of a class.
type ClassKind int

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindAnnotation
	ClassKindObject
	ClassKindEnum
)

// String returns the string representation of the class kind.
func (k ClassKind) String() string {
	switch k {
	case ClassKindClass:
		return "class"
	case ClassKindInterface:
		return "interface"
	case ClassKindAnnotation:
		return "annotation"
	case ClassKindObject:
		return "object"
	case ClassKindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// IsInterfaceLike reports whether the kind is an interface or annotation.
// The supertype fallback search prefers any other kind over these.
func (k ClassKind) IsInterfaceLike() bool {
	return k == ClassKindInterface || k == ClassKindAnnotation
}

// Marker carries the predicates the resolver exposes about special classes.
type Marker int

const (
	MarkerNone            Marker = iota
	MarkerNothing                // Bottom type
	MarkerFunction               // Callable-shape function carrier (Function0..FunctionN)
	MarkerReflectFunction        // Reflective function type (KFunction*)
	MarkerArray                  // Generic array carrier; one type parameter
)

// String returns the string representation of the marker.
func (m Marker) String() string {
	switch m {
	case MarkerNone:
		return "none"
	case MarkerNothing:
		return "nothing"
	case MarkerFunction:
		return "function"
	case MarkerReflectFunction:
		return "kfunction"
	case MarkerArray:
		return "array"
	default:
		return "unknown"
	}
}

// Owner chains deeper than this are treated as cyclic.
const maxOwnerDepth = 256

// ClassRef is a nominal class, interface, annotation class or object.
type ClassRef struct {
	// Name is the declared simple name. It may be special (see IsSpecialName)
	// for anonymous objects and compiler-generated classes.
	Name string

	// ClassKind is the declaration form.
	ClassKind ClassKind

	// Owner is the containing declaration: a *PackageRef for top-level
	// classes, a *ClassRef for nested classes, a *CallableRef for local
	// classes, or nil when unknown.
	Owner Container

	// TypeParameters are the parameters declared by this class itself.
	// Parameters captured from the owner of an inner class are not included;
	// see AllTypeParameters.
	TypeParameters []*TypeParameterRef

	// Supertypes are the direct supertypes in declaration order. The order is
	// a contract owed by the resolver: the fallback name search depends on it.
	Supertypes []*Type

	// Inner is true for inner classes, which capture the owner's type
	// parameters and instance.
	Inner bool

	// Final is true when the class cannot be subclassed.
	Final bool

	// Marker flags function, reflective-function, array and bottom classes.
	Marker Marker
}

// Class returns a ClassRef owned by the given container.
func Class(name string, owner Container, params ...*TypeParameterRef) *ClassRef {
	return &ClassRef{Name: name, Owner: owner, TypeParameters: params}
}

// Interface returns an interface ClassRef owned by the given container.
func Interface(name string, owner Container, params ...*TypeParameterRef) *ClassRef {
	return &ClassRef{Name: name, ClassKind: ClassKindInterface, Owner: owner, TypeParameters: params}
}

// Kind returns KindClass.
func (c *ClassRef) Kind() RefKind { return KindClass }

// DeclaredName returns the raw class name.
func (c *ClassRef) DeclaredName() string { return c.Name }

func (*ClassRef) sealed() {}

func (c *ClassRef) containerName() string { return c.Name }
func (*ClassRef) sealedContainer() {}

// OwnerClass returns the owning class, or nil if the owner is not a class.
func (c *ClassRef) OwnerClass() *ClassRef {
	owner, _ := c.Owner.(*ClassRef)
	return owner
}

// AllTypeParameters returns the full parameter list of the class's type
// constructor: the class's own parameters followed, for inner classes, by
// every parameter of the owner chain.
func (c *ClassRef) AllTypeParameters() []*TypeParameterRef {
	if !c.Inner {
		return c.TypeParameters
	}
	owner := c.OwnerClass()
	if owner == nil {
		return c.TypeParameters
	}
	outer := owner.AllTypeParameters()
	all := make([]*TypeParameterRef, 0, len(c.TypeParameters)+len(outer))
	all = append(all, c.TypeParameters...)
	return append(all, outer...)
}

// DefaultType returns the class applied to its own type parameters.
func (c *ClassRef) DefaultType() *Type {
	params := c.AllTypeParameters()
	args := make([]TypeArgument, len(params))
	for i, p := range params {
		args[i] = Arg(&Type{Constructor: p})
	}
	return &Type{Constructor: c, Arguments: args}
}

// HasNameableChain reports whether the class and every class owning it have
// non-special names.
func (c *ClassRef) HasNameableChain() bool {
	depth := 0
	for cur := c; cur != nil; cur = cur.OwnerClass() {
		if depth++; depth > maxOwnerDepth || IsSpecialName(cur.Name) {
			return false
		}
	}
	return true
}

// FqName returns the dotted fully qualified name, e.g. "kotlin.collections.Map.Entry".
// It returns "" when the class is not nameable or is not ultimately owned by a package.
func (c *ClassRef) FqName() string {
	var parts []string
	var cur Container = c
	for depth := 0; ; depth++ {
		if depth > maxOwnerDepth {
			return ""
		}
		switch owner := cur.(type) {
		case *ClassRef:
			if IsSpecialName(owner.Name) {
				return ""
			}
			parts = append(parts, owner.Name)
			cur = owner.Owner
			continue
		case *PackageRef:
			if !owner.IsRoot() {
				parts = append(parts, owner.Path)
			}
		default:
			return ""
		}
		break
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Package returns the package ultimately owning this class, or nil for
// local classes and classes with no owner.
func (c *ClassRef) Package() *PackageRef {
	var cur Container = c
	for {
		switch owner := cur.(type) {
		case *ClassRef:
			cur = owner.Owner
		case *PackageRef:
			return owner
		default:
			return nil
		}
	}
}
