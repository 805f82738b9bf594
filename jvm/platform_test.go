package jvm

import (
	"strconv"
	"testing"

	"github.com/willhansen/jvmsig/ir"
)

func TestLookupPlatformClass(t *testing.T) {
	tests := []struct {
		fqName    string
		bigArity  int
		want      string
		primitive byte
	}{
		{"kotlin.Any", 0, "java/lang/Object", 0},
		{"kotlin.Int", 0, "java/lang/Integer", 'I'},
		{"kotlin.collections.MutableMap.MutableEntry", 0, "java/util/Map$Entry", 0},
		{"kotlin.Function0", 0, "kotlin/jvm/functions/Function0", 0},
		{"kotlin.Function2", 0, "kotlin/jvm/functions/Function2", 0},
		{"kotlin.Function" + strconv.Itoa(BigArity), 0, "kotlin/jvm/functions/Function" + strconv.Itoa(BigArity), 0},
		{"kotlin.Function" + strconv.Itoa(BigArity+1), 0, "kotlin/jvm/functions/FunctionN", 0},
		{"kotlin.Function" + strconv.Itoa(BigArity+1), -1, "kotlin/jvm/functions/FunctionN", 0},
		{"kotlin.Function5", 5, "kotlin/jvm/functions/Function5", 0},
		{"kotlin.Function6", 5, "kotlin/jvm/functions/FunctionN", 0},
		{"kotlin.Function" + strconv.Itoa(BigArity+1), 30, "kotlin/jvm/functions/Function" + strconv.Itoa(BigArity+1), 0},
		{"kotlin.reflect.KFunction3", 0, "kotlin/reflect/KFunction", 0},
		{"kotlin.reflect.KFunction3", 2, "kotlin/reflect/KFunction", 0},
	}

	for _, tt := range tests {
		t.Run(tt.fqName+"/"+strconv.Itoa(tt.bigArity), func(t *testing.T) {
			p, ok := LookupPlatformClass(tt.fqName, tt.bigArity)
			if !ok {
				t.Fatalf("LookupPlatformClass(%q, %d) not mapped", tt.fqName, tt.bigArity)
			}
			if p.InternalName != tt.want {
				t.Errorf("InternalName = %q, want %q", p.InternalName, tt.want)
			}
			if p.Primitive != tt.primitive {
				t.Errorf("Primitive = %q, want %q", p.Primitive, tt.primitive)
			}
		})
	}
}

func TestLookupPlatformClass_NotMapped(t *testing.T) {
	for _, fqName := range []string{
		"kotlin.Function",
		"kotlin.Function01",
		"kotlin.Function-1",
		"kotlin.FunctionX",
		"kotlin.Function99999",
		"kotlin.reflect.KFunction",
		"kotlin.Unit",
		"com.acme.Function2",
	} {
		if _, ok := LookupPlatformClass(fqName, 0); ok {
			t.Errorf("LookupPlatformClass(%q) is mapped", fqName)
		}
	}
}

func TestFunctionArity(t *testing.T) {
	w := newWorld()

	tests := []struct {
		name  string
		class *ir.ClassRef
		want  int
		ok    bool
	}{
		{"no parameters", w.function(0), 0, true},
		{"two parameters", w.function(2), 2, true},
		{"above threshold", w.function(BigArity + 1), BigArity + 1, true},
		{"reflective", w.kfunction, 0, false},
		{"plain class", w.outer, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FunctionArity(tt.class)
			if got != tt.want || ok != tt.ok {
				t.Errorf("FunctionArity() = (%d, %t), want (%d, %t)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPlatformClass_ShortName(t *testing.T) {
	for internal, want := range map[string]string{
		"java/util/Map$Entry": "Entry",
		"java/lang/String":    "String",
		"Top":                 "Top",
	} {
		if got := (PlatformClass{InternalName: internal}).ShortName(); got != want {
			t.Errorf("ShortName(%q) = %q, want %q", internal, got, want)
		}
	}
}
