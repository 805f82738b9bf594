package ir

import "testing"

func TestVariance(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Variance
		ok   bool
	}{
		{"", Invariant, true},
		{"invariant", Invariant, true},
		{" in ", In, true},
		{"out", Out, true},
		{"inout", Invariant, false},
	} {
		got, ok := ParseVariance(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseVariance(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if In.Opposite() != Out || Out.Opposite() != In || Invariant.Opposite() != Invariant {
		t.Error("Opposite is wrong")
	}
}

func TestType_String(t *testing.T) {
	collections := Package("kotlin.collections")
	str := Class("String", Package("kotlin"))
	mapc := Interface("Map", collections, TypeParam("K", Invariant), TypeParam("V", Out))
	anon := Class(NameNoNameProvided, &CallableRef{Name: "run"})

	tests := []struct {
		typ  *Type
		want string
	}{
		{Simple(str), "kotlin.String"},
		{Of(mapc, Arg(Simple(str)), OutOf(Simple(str).AsNullable())), "kotlin.collections.Map<kotlin.String, out kotlin.String?>"},
		{Of(mapc, Star(), InOf(Simple(str))).AsNullable(), "kotlin.collections.Map<*, in kotlin.String>?"},
		{Simple(anon), NameNoNameProvided},
		{ErrorType("gone"), "<error: gone>"},
		{&Type{}, "<absent>"},
		{nil, "<nil>"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestType_Predicates(t *testing.T) {
	nothing := Class("Nothing", Package("kotlin"))
	nothing.Marker = MarkerNothing
	str := Class("String", Package("kotlin"))

	if !Simple(nothing).IsNothing() || Simple(nothing).IsNullableNothing() {
		t.Error("Nothing is not nullable")
	}
	if !Simple(nothing).AsNullable().IsNullableNothing() {
		t.Error("Nothing? is nullable nothing")
	}
	if Simple(str).IsNothing() {
		t.Error("String is not Nothing")
	}
	if !ErrorType("x").IsError() || !(&Type{}).IsError() || Simple(str).IsError() {
		t.Error("IsError is wrong")
	}

	lower := Simple(str)
	flexible := &Type{Constructor: str, Flexible: &FlexibleBounds{Lower: lower, Upper: lower.AsNullable()}}
	if flexible.Unflexible() != lower {
		t.Error("Unflexible should return the lower bound")
	}
	if lower.Unflexible() != lower {
		t.Error("Unflexible of an inflexible type is the type itself")
	}

	nullable := lower.AsNullable()
	if lower.Nullable || !nullable.Nullable {
		t.Error("AsNullable must copy")
	}
}
