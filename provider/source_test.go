package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willhansen/jvmsig/ir"
	"github.com/willhansen/jvmsig/jvm"
)

const (
	shapesPackage  = "github.com/willhansen/jvmsig/provider/testdata/shapes"
	shapesFqPrefix = "github.com.willhansen.jvmsig.provider.testdata.shapes."
	shapesInternal = "github/com/willhansen/jvmsig/provider/testdata/shapes/"
)

func buildShapes(t *testing.T, roots ...string) *ir.Graph {
	t.Helper()
	provider := &SourceProvider{}
	g, err := provider.BuildGraph(context.Background(), SourceInputOptions{
		Packages:        []string{shapesPackage},
		RootTypes:       roots,
		LanguageVersion: "v1.9",
	})
	require.NoError(t, err)
	return g
}

func TestSourceProvider_Declarations(t *testing.T) {
	g := buildShapes(t)

	circle := g.FindClass(shapesFqPrefix + "Circle")
	require.NotNil(t, circle)
	assert.True(t, circle.Final)
	assert.Equal(t, ir.ClassKindClass, circle.ClassKind)
	require.Len(t, circle.Supertypes, 2)
	assert.Same(t, g.FindClass(shapesFqPrefix+"Base"), circle.Supertypes[0].Class())
	named := circle.Supertypes[1].Class()
	require.NotNil(t, named)
	assert.Equal(t, ir.ClassKindInterface, named.ClassKind)

	reader := g.FindClass(shapesFqPrefix + "NamedReader")
	require.NotNil(t, reader)
	assert.Equal(t, ir.ClassKindInterface, reader.ClassKind)
	require.Len(t, reader.Supertypes, 2)
	external := g.FindClass("io.Reader")
	require.NotNil(t, external, "external interfaces are declared")
	assert.Same(t, external, reader.Supertypes[0].Class())

	box := g.FindClass(shapesFqPrefix + "Box")
	require.NotNil(t, box)
	require.Len(t, box.TypeParameters, 1)
	assert.Equal(t, "T", box.TypeParameters[0].Name)
	assert.Empty(t, box.TypeParameters[0].UpperBounds, "constraint any has no bound")

	sorted := g.FindClass(shapesFqPrefix + "Sorted")
	require.NotNil(t, sorted)
	require.Len(t, sorted.TypeParameters, 1)
	bounds := sorted.TypeParameters[0].UpperBounds
	require.Len(t, bounds, 1)
	assert.Same(t, g.FindClass(shapesFqPrefix+"Named"), bounds[0].Class())

	id := g.FindClass(shapesFqPrefix + "ID")
	require.NotNil(t, id)
	assert.True(t, id.Final)
	assert.Nil(t, g.FindClass(shapesFqPrefix+"hidden"), "unexported fields must not produce declarations")

	circles := g.FindAlias(shapesFqPrefix + "Circles")
	require.NotNil(t, circles)
	assert.Same(t, box, circles.Expanded.Class())
	assert.Same(t, circle, circles.Expanded.Arguments[0].Type.Class())
}

func TestSourceProvider_InternalNames(t *testing.T) {
	g := buildShapes(t)
	engine := jvm.NewEngine(jvm.Options{LanguageVersion: g.LanguageVersion})

	tests := []struct {
		name string
		want string
	}{
		{shapesFqPrefix + "Circle", shapesInternal + "Circle"},
		{shapesFqPrefix + "Label", "kotlin/String"},
		{"@Run.anon1", shapesInternal + "Base"},
		{"@Wrap.anon1", "io/Reader"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := g.Lookup(tt.name)
			require.NotNil(t, ref)
			got, err := engine.InternalName(ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSourceProvider_LocalTypes(t *testing.T) {
	g := buildShapes(t)
	engine := jvm.NewEngine(jvm.Options{LanguageVersion: g.LanguageVersion})

	var local *ir.ClassRef
	for _, c := range g.Classes() {
		if c.Name == "local" {
			local = c
		}
	}
	require.NotNil(t, local, "local type in Run not found")
	owner, ok := local.Owner.(*ir.CallableRef)
	require.True(t, ok, "owner is %T", local.Owner)
	assert.Equal(t, "Run", owner.Name)

	// A declared local type keeps its own name; only unnamed ones borrow
	// the name of a supertype.
	got, err := engine.InternalName(local)
	require.NoError(t, err)
	assert.Equal(t, "local", got)
	require.Len(t, local.Supertypes, 1)
	assert.Same(t, g.FindClass(shapesFqPrefix+"Base"), local.Supertypes[0].Class())

	anon := g.FindClass("@Run.anon1")
	require.NotNil(t, anon, "anonymous struct in Run not found")
	assert.Equal(t, ir.NameNoNameProvided, anon.Name)
	assert.Equal(t, ir.ClassKindObject, anon.ClassKind)
	assert.Nil(t, g.FindClass("@Run.anon2"), "the struct of a declared local type is not anonymous")
}

func TestSourceProvider_FieldSignatures(t *testing.T) {
	g := buildShapes(t)
	engine := jvm.NewEngine(jvm.Options{LanguageVersion: g.LanguageVersion})

	tests := []struct {
		field string
		want  string
	}{
		{"shapes.Circle.Radius", "D"},
		{"shapes.Circle.Tags", "[Ljava/lang/String;"},
		{"shapes.Base.ID", "Ljava/lang/String;"},
		{"shapes.Circle.Meta", "Ljava/util/Map<Ljava/lang/String;+L" + shapesInternal + "Base;>;"},
		{"shapes.Box.Item", "TT;"},
		{"shapes.Handler.OnEvent", "Lkotlin/jvm/functions/Function2<-Ljava/lang/String;-Ljava/lang/Long;+Ljava/lang/Throwable;>;"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			typ, ok := g.Types[tt.field]
			require.True(t, ok, "field type %s not recorded", tt.field)
			res, err := engine.Signature(typ, jvm.ModeDefault)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Signature)
		})
	}

	assert.NotContains(t, g.Types, "shapes.Circle.hidden")
	assert.True(t, g.Types["shapes.Circle.Meta"].Arguments[1].Type.Nullable, "pointer element should be nullable")
}

func TestSourceProvider_RootTypes(t *testing.T) {
	g := buildShapes(t, "Circle")

	for _, name := range []string{"Circle", "Base", "Named"} {
		assert.NotNil(t, g.FindClass(shapesFqPrefix+name), "%s should be reachable from Circle", name)
	}
	assert.Nil(t, g.FindClass(shapesFqPrefix+"Box"), "Box is not reachable from Circle")
	assert.NotNil(t, g.FindClass("kotlin.collections.Map"), "builtins should be part of the graph")
	assert.Empty(t, g.Validate())
}

func TestSourceProvider_Errors(t *testing.T) {
	provider := &SourceProvider{}

	_, err := provider.BuildGraph(context.Background(), SourceInputOptions{})
	assert.Error(t, err, "no packages")

	_, err = provider.BuildGraph(context.Background(), SourceInputOptions{
		Packages:  []string{shapesPackage},
		RootTypes: []string{"Missing"},
	})
	assert.Error(t, err, "unknown root type")
}
