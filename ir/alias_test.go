package ir

import (
	"errors"
	"testing"
)

func TestExpandAliases(t *testing.T) {
	acme := Package("com.acme")
	str := Class("String", Package("kotlin"))
	list := Interface("List", Package("kotlin.collections"), TypeParam("E", Out))
	mapc := Interface("Map", Package("kotlin.collections"), TypeParam("K", Invariant), TypeParam("V", Out))

	strings := Alias("Strings", acme, Simple(list, Simple(str)))
	chained := Alias("MoreStrings", acme, Simple(strings))
	k := TypeParam("K", Invariant)
	byKey := Alias("ByKey", acme, Simple(mapc, Simple(k), Simple(str)), k)

	tests := []struct {
		name string
		typ  *Type
		want string
	}{
		{"direct", Simple(strings), "kotlin.collections.List<kotlin.String>"},
		{"chained", Simple(chained), "kotlin.collections.List<kotlin.String>"},
		{"nullable use", Simple(chained).AsNullable(), "kotlin.collections.List<kotlin.String>?"},
		{"substituted", Simple(byKey, Simple(list, Simple(str))), "kotlin.collections.Map<kotlin.collections.List<kotlin.String>, kotlin.String>"},
		{"not an alias", Simple(str), "kotlin.String"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandAliases(tt.typ)
			if err != nil {
				t.Fatalf("ExpandAliases error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("ExpandAliases(%s) = %s, want %s", tt.typ, got, tt.want)
			}
		})
	}

	ctor, err := ExpandedConstructor(chained)
	if err != nil || ctor != list {
		t.Errorf("ExpandedConstructor(MoreStrings) = %v, %v; want List", ctor, err)
	}
}

func TestExpandAliases_Errors(t *testing.T) {
	acme := Package("com.acme")
	a := Alias("A", acme, nil)
	b := Alias("B", acme, Simple(a))
	a.Expanded = Simple(b)
	empty := Alias("Empty", acme, nil)

	for _, typ := range []*Type{Simple(a), Simple(empty), nil} {
		_, err := ExpandAliases(typ)
		if !errors.Is(err, ErrMalformedType) {
			t.Errorf("ExpandAliases(%s) error = %v, want malformed_type", typ, err)
		}
	}
}

func TestSubstitute_Projections(t *testing.T) {
	str := Class("String", Package("kotlin"))
	box := Class("Box", Package("com.acme"), TypeParam("T", Invariant))
	p := TypeParam("P", Invariant)

	tests := []struct {
		name string
		use  TypeArgument
		arg  TypeArgument
		want string
	}{
		{"invariant takes argument projection", Arg(Simple(p)), OutOf(Simple(str)), "com.acme.Box<out kotlin.String>"},
		{"use-site projection kept", InOf(Simple(p)), Arg(Simple(str)), "com.acme.Box<in kotlin.String>"},
		{"same projection", OutOf(Simple(p)), OutOf(Simple(str)), "com.acme.Box<out kotlin.String>"},
		{"conflict degrades to star", InOf(Simple(p)), OutOf(Simple(str)), "com.acme.Box<*>"},
		{"star argument", Arg(Simple(p)), Star(), "com.acme.Box<*>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Substitute(Of(box, tt.use), map[*TypeParameterRef]TypeArgument{p: tt.arg})
			if got.String() != tt.want {
				t.Errorf("Substitute = %s, want %s", got, tt.want)
			}
		})
	}

	unrelated := Simple(box, Simple(str))
	if Substitute(unrelated, map[*TypeParameterRef]TypeArgument{p: Arg(Simple(str))}) != unrelated {
		t.Error("types without bound parameters are returned unchanged")
	}
	if got := Substitute(Simple(p).AsNullable(), map[*TypeParameterRef]TypeArgument{p: Arg(Simple(str))}); !got.Nullable {
		t.Error("a nullable parameter use stays nullable")
	}
}
