package jvm

import (
	"errors"
	"strings"
	"testing"

	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/signature"
)

func newEngine() *Engine {
	return NewEngine(Options{LanguageVersion: "v1.9"})
}

func TestEngine_NestedScenario(t *testing.T) {
	w := newWorld()
	e := newEngine()

	name, err := e.InternalName(w.nested)
	if err != nil {
		t.Fatal(err)
	}
	if name != "com/acme/Outer$Nested" {
		t.Errorf("InternalName(Nested) = %q, want %q", name, "com/acme/Outer$Nested")
	}

	typ := ir.Simple(w.nested, w.stringType())
	chain, err := Decompose(typ)
	if err != nil {
		t.Fatal(err)
	}
	if chain.Root.Class != w.outer {
		t.Errorf("root = %s, want Outer", chain.Root.Class)
	}
	if len(chain.Nested) != 1 || chain.Nested[0].Class != w.nested || len(chain.Nested[0].Arguments) != 0 {
		t.Fatalf("nested = %+v, want [Nested] without arguments", chain.Nested)
	}

	got, err := e.Signature(typ, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}
	if got.Signature != "Lcom/acme/Outer<Ljava/lang/String;>.Nested;" {
		t.Errorf("Signature = %q", got.Signature)
	}
	if got.Descriptor != "Lcom/acme/Outer$Nested;" {
		t.Errorf("Descriptor = %q", got.Descriptor)
	}
}

func TestEngine_Signature(t *testing.T) {
	w := newWorld()
	str, integer := w.stringType(), w.intType()

	strMapV := ir.TypeParam("V", ir.Invariant)
	strMap := ir.Alias("StrMap", w.acme, ir.Simple(w.mapc, str, ir.Simple(strMapV)), strMapV)

	bounded := ir.TypeParam("N", ir.Invariant, ir.Simple(w.num))
	chained := ir.TypeParam("M", ir.Invariant, ir.Simple(bounded))

	tests := []struct {
		name     string
		typ      *ir.Type
		mode     Mode
		wantSig  string
		wantDesc string
	}{
		{"primitive", integer, ModeDefault, "I", "I"},
		{"nullable primitive", integer.AsNullable(), ModeDefault, "Ljava/lang/Integer;", "Ljava/lang/Integer;"},
		{"boxed primitive", integer, ModeGenericArgument, "Ljava/lang/Integer;", "Ljava/lang/Integer;"},
		{"platform class", str, ModeDefault, "Ljava/lang/String;", "Ljava/lang/String;"},
		{"nothing", ir.Simple(w.nothing), ModeDefault, "Ljava/lang/Void;", "Ljava/lang/Void;"},
		{"error type", ir.ErrorType("missing"), ModeDefault, "Lerror/NonExistentClass;", "Lerror/NonExistentClass;"},
		{
			"covariant list", ir.Simple(w.list, str), ModeDefault,
			"Ljava/util/List<+Ljava/lang/String;>;", "Ljava/util/List;",
		},
		{
			"covariant list of final class as parameter", ir.Simple(w.list, str), ModeValueParameter,
			"Ljava/util/List<Ljava/lang/String;>;", "Ljava/util/List;",
		},
		{
			"supertype list", ir.Simple(w.list, ir.Simple(w.ifaceA)), ModeSuperType,
			"Ljava/util/List<Lcom/acme/InterfaceA;>;", "Ljava/util/List;",
		},
		{
			"map boxes arguments", ir.Simple(w.mapc, str, integer), ModeDefault,
			"Ljava/util/Map<Ljava/lang/String;+Ljava/lang/Integer;>;", "Ljava/util/Map;",
		},
		{
			"platform nested class", ir.Simple(w.entry, str, integer), ModeDefault,
			"Ljava/util/Map$Entry<+Ljava/lang/String;+Ljava/lang/Integer;>;", "Ljava/util/Map$Entry;",
		},
		{
			"alias with arguments", ir.Simple(strMap, integer), ModeDefault,
			"Ljava/util/Map<Ljava/lang/String;+Ljava/lang/Integer;>;", "Ljava/util/Map;",
		},
		{
			"contravariant", ir.Simple(w.comparable, str), ModeDefault,
			"Ljava/lang/Comparable<-Ljava/lang/String;>;", "Ljava/lang/Comparable;",
		},
		{
			"contravariant top type as parameter", ir.Simple(w.comparable, ir.Simple(w.any)), ModeValueParameter,
			"Ljava/lang/Comparable<Ljava/lang/Object;>;", "Ljava/lang/Comparable;",
		},
		{
			"star projection", ir.Of(w.list, ir.Star()), ModeDefault,
			"Ljava/util/List<*>;", "Ljava/util/List;",
		},
		{
			"nothing argument is erased", ir.Simple(w.list, ir.Simple(w.nothing)), ModeDefault,
			"Ljava/util/List;", "Ljava/util/List;",
		},
		{"erased", ir.Simple(w.list, str), ModeErased, "Ljava/util/List;", "Ljava/util/List;"},
		{"array of primitives boxes", ir.Simple(w.array, integer), ModeDefault, "[Ljava/lang/Integer;", "[Ljava/lang/Integer;"},
		{"array of star", ir.Of(w.array, ir.Star()), ModeDefault, "[Ljava/lang/Object;", "[Ljava/lang/Object;"},
		{
			"array of generic", ir.Simple(w.array, ir.Simple(w.list, str)), ModeDefault,
			"[Ljava/util/List<+Ljava/lang/String;>;", "[Ljava/util/List;",
		},
		{"type variable", ir.Simple(bounded), ModeDefault, "TN;", "Ljava/lang/Number;"},
		{"type variable bounded by type variable", ir.Simple(chained), ModeDefault, "TM;", "Ljava/lang/Number;"},
		{"unbounded type variable", ir.Simple(ir.TypeParam("T", ir.Invariant)), ModeDefault, "TT;", "Ljava/lang/Object;"},
		{
			"flexible type uses lower bound",
			&ir.Type{Constructor: w.str, Flexible: &ir.FlexibleBounds{Lower: str, Upper: str.AsNullable()}},
			ModeDefault, "Ljava/lang/String;", "Ljava/lang/String;",
		},
		{
			"nested generic chain", ir.Simple(w.inner, integer, str), ModeDefault,
			"Lcom/acme/Outer<Ljava/lang/String;>.Inner<Ljava/lang/Integer;>;", "Lcom/acme/Outer$Inner;",
		},
		{
			"non-generic outer", ir.Simple(w.cell, str), ModeDefault,
			"Lcom/acme/Plain$Cell<Ljava/lang/String;>;", "Lcom/acme/Plain$Cell;",
		},
		{
			"generic argument inside nested chain", ir.Simple(w.nested, ir.Simple(w.list, str)), ModeDefault,
			"Lcom/acme/Outer<Ljava/util/List<+Ljava/lang/String;>;>.Nested;", "Lcom/acme/Outer$Nested;",
		},
		{
			"reflective function", ir.Simple(w.kfunction, str, str, integer), ModeDefault,
			"Lkotlin/reflect/KFunction<+Ljava/lang/Integer;>;", "Lkotlin/reflect/KFunction;",
		},
	}

	e := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Signature(tt.typ, tt.mode)
			if err != nil {
				t.Fatalf("Signature error: %v", err)
			}
			if got.Signature != tt.wantSig {
				t.Errorf("Signature = %q, want %q", got.Signature, tt.wantSig)
			}
			if got.Descriptor != tt.wantDesc {
				t.Errorf("Descriptor = %q, want %q", got.Descriptor, tt.wantDesc)
			}
		})
	}
}

// functionSignature is the signature of kotlin.FunctionN<String, ..., Unit>
// when all type arguments are written to the named carrier.
func functionSignature(carrier string, arity int) string {
	return "L" + carrier + "<" + strings.Repeat("-Ljava/lang/String;", arity) + "+Lkotlin/Unit;>;"
}

func TestEngine_FunctionCarriers(t *testing.T) {
	w := newWorld()
	unit := ir.Simple(ir.Class("Unit", w.kotlin))
	fn := func(arity int) *ir.Type {
		typ := applied(w.function(arity), w.stringType())
		typ.Arguments[arity] = ir.Arg(unit)
		return typ
	}
	const single = "Lkotlin/jvm/functions/FunctionN<+Lkotlin/Unit;>;"

	tests := []struct {
		name     string
		bigArity int
		arity    int
		wantSig  string
		wantDesc string
	}{
		{"below threshold", 0, BigArity - 1, functionSignature("kotlin/jvm/functions/Function21", BigArity-1), "Lkotlin/jvm/functions/Function21;"},
		{"at threshold", 0, BigArity, functionSignature("kotlin/jvm/functions/Function22", BigArity), "Lkotlin/jvm/functions/Function22;"},
		{"above threshold", 0, BigArity + 1, single, "Lkotlin/jvm/functions/FunctionN;"},
		{"at lowered threshold", 5, 5, functionSignature("kotlin/jvm/functions/Function5", 5), "Lkotlin/jvm/functions/Function5;"},
		{"above lowered threshold", 5, 6, single, "Lkotlin/jvm/functions/FunctionN;"},
		{"at raised threshold", 30, 23, functionSignature("kotlin/jvm/functions/Function23", 23), "Lkotlin/jvm/functions/Function23;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(Options{LanguageVersion: "v1.9", BigArity: tt.bigArity})
			got, err := e.Signature(fn(tt.arity), ModeDefault)
			if err != nil {
				t.Fatalf("Signature error: %v", err)
			}
			if got.Signature != tt.wantSig {
				t.Errorf("Signature =\n%s\nwant\n%s", got.Signature, tt.wantSig)
			}
			if got.Descriptor != tt.wantDesc {
				t.Errorf("Descriptor = %q, want %q", got.Descriptor, tt.wantDesc)
			}
		})
	}
}

func TestEngine_Deterministic(t *testing.T) {
	w := newWorld()
	e := newEngine()
	typ := ir.Simple(w.inner, ir.Simple(w.mapc, w.stringType(), w.intType()), w.stringType())

	first, err := e.Signature(typ, ModeDefault)
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		again, err := e.Signature(typ, ModeDefault)
		if err != nil || again != first {
			t.Fatalf("Signature() = (%+v, %v), want %+v", again, err, first)
		}
	}
}

func TestEngine_Trace(t *testing.T) {
	w := newWorld()
	tokens, err := newEngine().Trace(ir.Simple(w.inner, w.intType(), w.stringType()), ModeDefault)
	if err != nil {
		t.Fatal(err)
	}

	rec := &signature.Recorder{Tokens: tokens}
	want := "outerClassBegin(com/acme/Outer$Inner, com/acme/Outer) -> typeArgument(=) -> asmType(java/lang/String) -> typeArgumentEnd -> " +
		"innerClass(Inner) -> typeArgument(=) -> asmType(java/lang/Integer) -> typeArgumentEnd -> classEnd"
	if got := rec.String(); got != want {
		t.Errorf("Trace() =\n%s\nwant\n%s", got, want)
	}
}

func TestEngine_Errors(t *testing.T) {
	w := newWorld()
	e := newEngine()

	a := ir.Alias("A", w.acme, nil)
	a.Expanded = ir.Simple(a)

	tests := []struct {
		name string
		typ  *ir.Type
		want error
	}{
		{"nil type", nil, ir.ErrMalformedType},
		{"alias cycle", ir.Simple(a), ir.ErrMalformedType},
		{"argument count", ir.Simple(w.nested, w.stringType(), w.stringType()), ir.ErrMalformedType},
		{"nested argument count", ir.Simple(w.list, ir.Simple(w.inner, w.stringType())), ir.ErrMalformedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Signature(tt.typ, ModeDefault); !errors.Is(err, tt.want) {
				t.Errorf("Signature error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResult_Generic(t *testing.T) {
	if got := (Result{Descriptor: "I", Signature: "I"}).Generic(); got != "" {
		t.Errorf("Generic() = %q, want empty", got)
	}
	if got := (Result{Descriptor: "Ljava/util/List;", Signature: "Ljava/util/List<*>;"}).Generic(); got != "Ljava/util/List<*>;" {
		t.Errorf("Generic() = %q", got)
	}
}
