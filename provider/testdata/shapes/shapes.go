// Package shapes is a fixture for the source provider tests.
package shapes

import "io"

// Base is embedded by Circle.
type Base struct {
	ID string
}

// Named is implemented by every shape.
type Named interface {
	Name() string
}

// Circle embeds a class and an interface.
type Circle struct {
	Base
	Named

	Radius float64
	Tags   []string
	Meta   map[string]*Base
	hidden int
}

// Box is a generic container.
type Box[T any] struct {
	Item  T
	Items []T
}

// Sorted has a named constraint.
type Sorted[T Named] struct {
	Items []T
}

// NamedReader embeds an external interface.
type NamedReader interface {
	io.Reader
	Named
}

// ID is a defined non-struct type.
type ID string

// Label aliases a basic type.
type Label = string

// Circles aliases an instantiation.
type Circles = Box[Circle]

// Handler has a function-typed field.
type Handler struct {
	OnEvent func(string, int) error
}

// Run declares a local type and returns an anonymous struct.
func Run() any {
	type local struct {
		Base
	}
	_ = local{}
	return struct {
		Base
		io.Closer
	}{}
}

// Wrap returns an anonymous struct embedding only interfaces.
func Wrap(r io.Reader) io.ReadCloser {
	return struct {
		io.Reader
		io.Closer
	}{r, io.NopCloser(nil)}
}
