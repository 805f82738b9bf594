package jvm

import (
	"fmt"

	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/signature"
)

// world is a small graph of builtins and user classes shared by the tests.
type world struct {
	kotlin, collections, acme *ir.PackageRef

	any, str, num, intc, nothing, array *ir.ClassRef
	list, mutableList, mapc, entry      *ir.ClassRef
	comparable, kfunction               *ir.ClassRef

	outer, nested, inner, box, plain, cell *ir.ClassRef
	base, ifaceA, ifaceB, ifaceC           *ir.ClassRef
}

func newWorld() *world {
	w := &world{
		kotlin:      ir.Package("kotlin"),
		collections: ir.Package("kotlin.collections"),
		acme:        ir.Package("com.acme"),
	}

	w.any = ir.Class("Any", w.kotlin)
	w.str = ir.Class("String", w.kotlin)
	w.str.Final = true
	w.num = ir.Class("Number", w.kotlin)
	w.intc = ir.Class("Int", w.kotlin)
	w.intc.Final = true
	w.nothing = ir.Class("Nothing", w.kotlin)
	w.nothing.Marker = ir.MarkerNothing
	w.array = ir.Class("Array", w.kotlin, ir.TypeParam("T", ir.Invariant))
	w.array.Marker = ir.MarkerArray
	w.array.Final = true

	w.list = ir.Interface("List", w.collections, ir.TypeParam("E", ir.Out))
	w.mutableList = ir.Interface("MutableList", w.collections, ir.TypeParam("E", ir.Invariant))
	w.mapc = ir.Interface("Map", w.collections, ir.TypeParam("K", ir.Invariant), ir.TypeParam("V", ir.Out))
	w.entry = ir.Interface("Entry", w.mapc, ir.TypeParam("K", ir.Out), ir.TypeParam("V", ir.Out))
	w.comparable = ir.Interface("Comparable", w.kotlin, ir.TypeParam("T", ir.In))

	w.kfunction = ir.Interface("KFunction2", ir.Package("kotlin.reflect"),
		ir.TypeParam("P1", ir.In), ir.TypeParam("P2", ir.In), ir.TypeParam("R", ir.Out))
	w.kfunction.Marker = ir.MarkerReflectFunction

	// com.acme.Outer<T> { inner class Nested; inner class Inner<U>; class Box<B> }
	w.outer = ir.Class("Outer", w.acme, ir.TypeParam("T", ir.Invariant))
	w.nested = ir.Class("Nested", w.outer)
	w.nested.Inner = true
	w.inner = ir.Class("Inner", w.outer, ir.TypeParam("U", ir.Invariant))
	w.inner.Inner = true
	w.box = ir.Class("Box", w.outer, ir.TypeParam("B", ir.Invariant))

	// com.acme.Plain { inner class Cell<C> }
	w.plain = ir.Class("Plain", w.acme)
	w.cell = ir.Class("Cell", w.plain, ir.TypeParam("C", ir.Invariant))
	w.cell.Inner = true

	w.base = ir.Class("ConcreteB", w.acme)
	w.ifaceA = ir.Interface("InterfaceA", w.acme)
	w.ifaceB = ir.Interface("InterfaceB", w.acme)
	w.ifaceC = ir.Interface("InterfaceC", w.acme)
	return w
}

// function returns kotlin.FunctionN for n parameters, declared as
// <in P1, ..., in Pn, out R>.
func (w *world) function(n int) *ir.ClassRef {
	params := make([]*ir.TypeParameterRef, 0, n+1)
	for i := 1; i <= n; i++ {
		params = append(params, ir.TypeParam(fmt.Sprintf("P%d", i), ir.In))
	}
	params = append(params, ir.TypeParam("R", ir.Out))
	c := ir.Interface(fmt.Sprintf("Function%d", n), w.kotlin, params...)
	c.Marker = ir.MarkerFunction
	return c
}

// applied returns c applied to one copy of arg per type parameter.
func applied(c *ir.ClassRef, arg *ir.Type) *ir.Type {
	args := make([]*ir.Type, len(c.TypeParameters))
	for i := range args {
		args[i] = arg
	}
	return ir.Simple(c, args...)
}

func (w *world) stringType() *ir.Type { return ir.Simple(w.str) }
func (w *world) intType() *ir.Type    { return ir.Simple(w.intc) }

// anonymous returns an unnamed local class with the given supertypes.
func (w *world) anonymous(supertypes ...*ir.Type) *ir.ClassRef {
	c := ir.Class(ir.NameNoNameProvided, &ir.CallableRef{Name: "run", Owner: w.acme})
	c.ClassKind = ir.ClassKindObject
	c.Supertypes = supertypes
	return c
}

// stubMap writes every argument as a bare class token named after its
// declaration.
func stubMap(t *ir.Type, _ Mode, sink signature.Sink) error {
	sink.WriteAsmType(t.Constructor.DeclaredName())
	return nil
}
