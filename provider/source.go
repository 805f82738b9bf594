package provider

import (
	"context"
	"fmt"
	"go/ast"
	"go/types"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/willhansen/jvmsig/ir"
	"golang.org/x/tools/go/packages"
)

// SourceProvider builds graphs by analyzing Go source code.
//
// Go declarations map onto the graph as follows: a named struct is a final
// class whose embedded fields are its supertypes, a named interface is an
// interface whose embedded interfaces are its supertypes, any other defined
// type is a final class, and an alias is a type alias. Type parameters keep
// their names and take named constraints as bounds. Types declared inside a
// function are local classes owned by that function, and an anonymous struct
// literal with embedded fields inside a function body becomes an unnamed
// local class.
//
// Go package paths become dotted packages: "example.com/shop" is the package
// "example.com.shop".
type SourceProvider struct{}

// SourceInputOptions configures source-based graph extraction.
type SourceInputOptions struct {
	// Packages are the Go package paths to analyze.
	Packages []string

	// RootTypes are the type names to extract (e.g., "User", "Page").
	// If empty, all exported package-level types and all function-local
	// types are extracted.
	RootTypes []string

	// LanguageVersion is recorded on the graph.
	LanguageVersion string
}

// BuildGraph analyzes source code and returns a Graph.
// Types reachable from the extracted declarations are added as well; named
// types from packages outside Packages become bare external classes.
func (p *SourceProvider) BuildGraph(ctx context.Context, opts SourceInputOptions) (*ir.Graph, error) {
	if len(opts.Packages) == 0 {
		return nil, errors.New("no packages specified")
	}

	// Load packages using go/packages
	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, opts.Packages...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}

	// Check for errors in loaded packages
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, errors.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}

	if len(pkgs) == 0 {
		return nil, errors.New("no packages found")
	}

	builder, err := newGraphBuilder(pkgs)
	if err != nil {
		return nil, err
	}

	if len(opts.RootTypes) > 0 {
		for _, rootName := range opts.RootTypes {
			if err := builder.extractRootType(rootName); err != nil {
				return nil, errors.Wrapf(err, "failed to extract root type %s", rootName)
			}
		}
	} else if err := builder.extractAllTypes(); err != nil {
		return nil, errors.Wrap(err, "failed to extract types")
	}

	g := builder.build()
	g.LanguageVersion = opts.LanguageVersion
	return g, nil
}

// graphBuilder accumulates declarations and manages the extraction process.
type graphBuilder struct {
	pkgs    []*packages.Package
	byTypes map[*types.Package]*packages.Package

	// builtins provides the kotlin classes Go builtin types map to, and
	// synthesizes function interfaces.
	builtins *loader

	refs     map[*types.TypeName]ir.Ref
	params   map[*types.TypeName]*ir.TypeParameterRef
	classes  []*ir.ClassRef
	aliases  []*ir.TypeAliasRef
	ids      map[string]ir.Ref
	types    map[string]*ir.Type
	warnings []ir.Warning
}

func newGraphBuilder(pkgs []*packages.Package) (*graphBuilder, error) {
	l := newLoader()
	if err := declareBuiltins(l); err != nil {
		return nil, err
	}
	if err := l.resolveOwners(); err != nil {
		return nil, err
	}
	if err := l.resolveTypes(nil); err != nil {
		return nil, err
	}

	b := &graphBuilder{
		pkgs:     pkgs,
		byTypes:  make(map[*types.Package]*packages.Package, len(pkgs)),
		builtins: l,
		refs:     make(map[*types.TypeName]ir.Ref),
		params:   make(map[*types.TypeName]*ir.TypeParameterRef),
		ids:      make(map[string]ir.Ref),
		types:    make(map[string]*ir.Type),
	}
	for _, pkg := range pkgs {
		b.byTypes[pkg.Types] = pkg
	}
	return b, nil
}

// extractRootType finds and extracts a package-level type by name.
func (b *graphBuilder) extractRootType(name string) error {
	for _, pkg := range b.pkgs {
		obj := pkg.Types.Scope().Lookup(name)
		typeName, ok := obj.(*types.TypeName)
		if !ok {
			continue
		}
		_, err := b.extractNamedType(typeName)
		return err
	}
	return errors.Errorf("type %s not found in any package", name)
}

// extractAllTypes extracts all exported package-level types, then every
// function-local type and anonymous embedding struct in source order.
func (b *graphBuilder) extractAllTypes() error {
	for _, pkg := range b.pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if !obj.Exported() {
				continue
			}
			typeName, ok := obj.(*types.TypeName)
			if !ok {
				continue
			}
			if _, err := b.extractNamedType(typeName); err != nil {
				return err
			}
		}
	}
	for _, pkg := range b.pkgs {
		if err := b.extractLocalTypes(pkg); err != nil {
			return err
		}
	}
	return nil
}

// extractLocalTypes walks function bodies for type declarations and for
// anonymous struct types embedding other types.
func (b *graphBuilder) extractLocalTypes(pkg *packages.Package) error {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || fn.Body == nil {
				continue
			}
			anonymous := 0
			declared := make(map[ast.Expr]bool)
			var walkErr error
			ast.Inspect(fn.Body, func(n ast.Node) bool {
				if walkErr != nil {
					return false
				}
				switch node := n.(type) {
				case *ast.TypeSpec:
					declared[node.Type] = true
					if tn, ok := pkg.TypesInfo.Defs[node.Name].(*types.TypeName); ok {
						_, walkErr = b.extractNamedType(tn)
					}
				case *ast.StructType:
					if declared[node] {
						return true
					}
					st, ok := pkg.TypesInfo.TypeOf(node).(*types.Struct)
					if !ok || !hasEmbeddedField(st) {
						return true
					}
					anonymous++
					walkErr = b.extractAnonymousStruct(pkg, fn.Name.Name, anonymous, st)
				}
				return true
			})
			if walkErr != nil {
				return walkErr
			}
		}
	}
	return nil
}

func hasEmbeddedField(st *types.Struct) bool {
	for i := 0; i < st.NumFields(); i++ {
		if st.Field(i).Embedded() {
			return true
		}
	}
	return false
}

// extractAnonymousStruct records an unnamed local class for st. It is
// registered under the id "@fn.anonN".
func (b *graphBuilder) extractAnonymousStruct(pkg *packages.Package, fn string, n int, st *types.Struct) error {
	c := &ir.ClassRef{
		Name:      ir.NameNoNameProvided,
		ClassKind: ir.ClassKindObject,
		Owner:     &ir.CallableRef{Name: fn, Owner: b.goPackage(pkg.Types)},
		Final:     true,
	}
	b.classes = append(b.classes, c)
	b.ids["@"+fn+".anon"+strconv.Itoa(n)] = c

	supertypes, err := b.embeddedSupertypes(st)
	if err != nil {
		return errors.Wrapf(err, "anonymous struct in %s", fn)
	}
	c.Supertypes = supertypes
	return nil
}

// extractNamedType extracts a declared type and recursively processes the
// types it references.
func (b *graphBuilder) extractNamedType(tn *types.TypeName) (ir.Ref, error) {
	// Check if already processed
	if ref, ok := b.refs[tn]; ok {
		return ref, nil
	}
	if _, isParam := tn.Type().(*types.TypeParam); isParam {
		return nil, nil
	}
	if tn.IsAlias() {
		return b.extractAlias(tn)
	}

	named, ok := tn.Type().(*types.Named)
	if !ok {
		return nil, nil
	}

	c := &ir.ClassRef{Name: tn.Name(), Owner: b.owner(tn)}
	b.refs[tn] = c
	b.classes = append(b.classes, c)

	params, err := b.declareParams(named.TypeParams())
	if err != nil {
		return nil, errors.Wrapf(err, "type %s", tn.Name())
	}
	c.TypeParameters = params

	// Check the underlying type
	switch underlying := named.Underlying().(type) {
	case *types.Struct:
		c.Final = true
		supertypes, err := b.embeddedSupertypes(underlying)
		if err != nil {
			return nil, errors.Wrapf(err, "type %s", tn.Name())
		}
		c.Supertypes = supertypes
		if err := b.recordFields(tn, underlying); err != nil {
			return nil, err
		}

	case *types.Interface:
		c.ClassKind = ir.ClassKindInterface
		for i := 0; i < underlying.NumEmbeddeds(); i++ {
			embedded := underlying.EmbeddedType(i)
			switch embedded.(type) {
			case *types.Named, *types.Alias:
			default:
				// Unions and approximation terms of constraint interfaces
				continue
			}
			st, err := b.convertType(embedded)
			if err != nil {
				return nil, errors.Wrapf(err, "type %s", tn.Name())
			}
			c.Supertypes = append(c.Supertypes, nonNull(st))
		}

	default:
		c.Final = true
	}

	return c, nil
}

// extractAlias extracts a type alias. Generic aliases keep their parameters.
func (b *graphBuilder) extractAlias(tn *types.TypeName) (ir.Ref, error) {
	a := &ir.TypeAliasRef{Name: tn.Name(), Owner: b.owner(tn)}
	b.refs[tn] = a
	b.aliases = append(b.aliases, a)

	rhs := tn.Type()
	if alias, ok := tn.Type().(*types.Alias); ok {
		params, err := b.declareParams(alias.TypeParams())
		if err != nil {
			return nil, errors.Wrapf(err, "alias %s", tn.Name())
		}
		a.TypeParameters = params
		rhs = alias.Rhs()
	}
	expanded, err := b.convertType(rhs)
	if err != nil {
		return nil, errors.Wrapf(err, "alias %s", tn.Name())
	}
	a.Expanded = expanded
	return a, nil
}

// embeddedSupertypes returns the embedded field types of st in field order.
func (b *graphBuilder) embeddedSupertypes(st *types.Struct) ([]*ir.Type, error) {
	var supertypes []*ir.Type
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		t, err := b.convertType(f.Type())
		if err != nil {
			return nil, errors.Wrapf(err, "embedded field %s", f.Name())
		}
		supertypes = append(supertypes, nonNull(t))
	}
	return supertypes, nil
}

// recordFields adds the type of every exported field of a package-level
// struct to the graph's named types, keyed "pkg.Type.Field".
func (b *graphBuilder) recordFields(tn *types.TypeName, st *types.Struct) error {
	if tn.Parent() != tn.Pkg().Scope() {
		return nil
	}
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Exported() || f.Embedded() {
			continue
		}
		t, err := b.convertType(f.Type())
		if err != nil {
			return errors.Wrapf(err, "field %s.%s", tn.Name(), f.Name())
		}
		b.types[tn.Pkg().Name()+"."+tn.Name()+"."+f.Name()] = t
	}
	return nil
}

// declareParams creates the parameters first and binds bounds afterwards,
// since a constraint may mention any parameter of the list.
func (b *graphBuilder) declareParams(list *types.TypeParamList) ([]*ir.TypeParameterRef, error) {
	if list == nil || list.Len() == 0 {
		return nil, nil
	}
	params := make([]*ir.TypeParameterRef, list.Len())
	for i := range params {
		tp := list.At(i)
		params[i] = &ir.TypeParameterRef{Name: tp.Obj().Name()}
		b.params[tp.Obj()] = params[i]
	}
	for i, p := range params {
		bound := constraintBound(list.At(i).Constraint())
		if bound == nil {
			continue
		}
		t, err := b.convertType(bound)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint of %s", p.Name)
		}
		p.UpperBounds = append(p.UpperBounds, nonNull(t))
	}
	return params, nil
}

// constraintBound returns the named constraint of a type parameter, or nil
// for "any", "comparable" and inline type-set interfaces.
func constraintBound(constraint types.Type) types.Type {
	switch c := constraint.(type) {
	case *types.Alias:
		if c.Obj().Pkg() == nil {
			return nil
		}
		return constraintBound(types.Unalias(c))
	case *types.Named:
		if c.Obj().Pkg() == nil {
			return nil
		}
		return c
	default:
		return nil
	}
}

// owner returns the package of a package-level type, or the function that
// declares a local type.
func (b *graphBuilder) owner(tn *types.TypeName) ir.Container {
	pkg := b.goPackage(tn.Pkg())
	if tn.Pkg() == nil || tn.Parent() == tn.Pkg().Scope() {
		return pkg
	}
	return &ir.CallableRef{Name: b.enclosingFunc(tn), Owner: pkg}
}

func (b *graphBuilder) enclosingFunc(tn *types.TypeName) string {
	pos := tn.Pos()
	if pkg, ok := b.byTypes[tn.Pkg()]; ok {
		for _, file := range pkg.Syntax {
			if pos < file.Pos() || pos > file.End() {
				continue
			}
			for _, decl := range file.Decls {
				if fn, ok := decl.(*ast.FuncDecl); ok && fn.Pos() <= pos && pos < fn.End() {
					return fn.Name.Name
				}
			}
		}
	}
	return "init"
}

func (b *graphBuilder) goPackage(pkg *types.Package) *ir.PackageRef {
	if pkg == nil {
		return b.builtins.pkg("")
	}
	return b.builtins.pkg(strings.ReplaceAll(pkg.Path(), "/", "."))
}

// convertType converts a Go type to an ir Type.
func (b *graphBuilder) convertType(t types.Type) (*ir.Type, error) {
	switch typ := t.(type) {
	case *types.Basic:
		return b.convertBasicType(typ), nil

	case *types.Alias:
		obj := typ.Obj()
		if _, local := b.byTypes[obj.Pkg()]; !local || obj.Pkg() == nil {
			return b.convertType(types.Unalias(typ))
		}
		ref, err := b.extractNamedType(obj)
		if err != nil {
			return nil, err
		}
		return b.applyArgs(ref, typ.TypeArgs())

	case *types.Named:
		ref, err := b.namedRef(typ)
		if err != nil {
			return nil, err
		}
		return b.applyArgs(ref, typ.TypeArgs())

	case *types.Pointer:
		elem, err := b.convertType(typ.Elem())
		if err != nil {
			return nil, err
		}
		return elem.AsNullable(), nil

	case *types.Slice:
		return b.container("kotlin.Array", typ.Elem())

	case *types.Array:
		return b.container("kotlin.Array", typ.Elem())

	case *types.Map:
		return b.container("kotlin.collections.Map", typ.Key(), typ.Elem())

	case *types.Interface:
		if !typ.Empty() {
			b.warnings = append(b.warnings, ir.Warning{
				Code:    "INTERFACE_TYPE",
				Message: fmt.Sprintf("interface type %s mapped to kotlin.Any", typ.String()),
			})
		}
		return b.builtin("kotlin.Any"), nil

	case *types.Struct:
		b.warnings = append(b.warnings, ir.Warning{
			Code:    "ANONYMOUS_STRUCT",
			Message: fmt.Sprintf("anonymous struct %s mapped to kotlin.Any", typ.String()),
		})
		return b.builtin("kotlin.Any"), nil

	case *types.TypeParam:
		p, ok := b.params[typ.Obj()]
		if !ok {
			return nil, errors.Errorf("type parameter %s used outside its declaration", typ.Obj().Name())
		}
		return &ir.Type{Constructor: p}, nil

	case *types.Signature:
		return b.convertSignature(typ)

	case *types.Chan:
		b.warnings = append(b.warnings, ir.Warning{
			Code:    "CHANNEL_TYPE",
			Message: fmt.Sprintf("channel type %s has no class", typ.String()),
		})
		return ir.ErrorType(typ.String()), nil

	default:
		return nil, errors.Errorf("unknown type: %T", t)
	}
}

func (b *graphBuilder) applyArgs(ref ir.Ref, targs *types.TypeList) (*ir.Type, error) {
	t := &ir.Type{Constructor: ref}
	for i := 0; i < targs.Len(); i++ {
		arg, err := b.convertType(targs.At(i))
		if err != nil {
			return nil, err
		}
		t.Arguments = append(t.Arguments, ir.Arg(arg))
	}
	return t, nil
}

// namedRef returns the declaration of a named type. Types of the analyzed
// packages are extracted; others become external classes without
// supertypes. The universe type "error" maps to kotlin.Throwable.
func (b *graphBuilder) namedRef(named *types.Named) (ir.Ref, error) {
	obj := named.Origin().Obj()
	if obj.Pkg() == nil {
		return b.builtin("kotlin.Throwable").Constructor, nil
	}
	if _, local := b.byTypes[obj.Pkg()]; local {
		return b.extractNamedType(obj)
	}
	if ref, ok := b.refs[obj]; ok {
		return ref, nil
	}

	c := &ir.ClassRef{Name: obj.Name(), Owner: b.goPackage(obj.Pkg())}
	if _, isInterface := named.Underlying().(*types.Interface); isInterface {
		c.ClassKind = ir.ClassKindInterface
	}
	b.refs[obj] = c
	b.classes = append(b.classes, c)
	if tparams := named.Origin().TypeParams(); tparams != nil {
		for i := 0; i < tparams.Len(); i++ {
			c.TypeParameters = append(c.TypeParameters, ir.TypeParam(tparams.At(i).Obj().Name(), ir.Invariant))
		}
	}
	return c, nil
}

// container applies a builtin collection class to converted element types.
// Element types are boxed by the engine as type arguments.
func (b *graphBuilder) container(name string, elems ...types.Type) (*ir.Type, error) {
	t := b.builtin(name)
	for _, e := range elems {
		arg, err := b.convertType(e)
		if err != nil {
			return nil, err
		}
		t.Arguments = append(t.Arguments, ir.Arg(arg))
	}
	return t, nil
}

// convertSignature maps a func type to kotlin.FunctionN over its parameters
// and result. Several results map to kotlin.Any and none to kotlin.Unit.
func (b *graphBuilder) convertSignature(sig *types.Signature) (*ir.Type, error) {
	n := sig.Params().Len()
	fn, err := b.builtins.lookup("kotlin.Function"+strconv.Itoa(n), nil)
	if err != nil {
		return nil, err
	}
	t := &ir.Type{Constructor: fn}
	for i := 0; i < n; i++ {
		arg, err := b.convertType(sig.Params().At(i).Type())
		if err != nil {
			return nil, err
		}
		t.Arguments = append(t.Arguments, ir.Arg(arg))
	}

	var result *ir.Type
	switch sig.Results().Len() {
	case 0:
		result = b.builtin("kotlin.Unit")
	case 1:
		if result, err = b.convertType(sig.Results().At(0).Type()); err != nil {
			return nil, err
		}
	default:
		result = b.builtin("kotlin.Any")
	}
	t.Arguments = append(t.Arguments, ir.Arg(result))
	return t, nil
}

// convertBasicType converts a Go basic type to its kotlin builtin.
func (b *graphBuilder) convertBasicType(basic *types.Basic) *ir.Type {
	switch basic.Kind() {
	case types.Bool, types.UntypedBool:
		return b.builtin("kotlin.Boolean")
	case types.String, types.UntypedString:
		return b.builtin("kotlin.String")
	case types.Int8, types.Uint8:
		return b.builtin("kotlin.Byte")
	case types.Int16, types.Uint16:
		return b.builtin("kotlin.Short")
	case types.Int32, types.Uint32, types.UntypedRune:
		return b.builtin("kotlin.Int")
	case types.Int, types.Int64, types.Uint, types.Uint64, types.Uintptr, types.UntypedInt:
		return b.builtin("kotlin.Long")
	case types.Float32:
		return b.builtin("kotlin.Float")
	case types.Float64, types.UntypedFloat:
		return b.builtin("kotlin.Double")
	default:
		// Complex numbers, unsafe.Pointer and untyped nil
		return b.builtin("kotlin.Any")
	}
}

// builtin returns a fresh use of a builtin class.
func (b *graphBuilder) builtin(name string) *ir.Type {
	ref, err := b.builtins.lookup(name, nil)
	if err != nil {
		return ir.ErrorType(name)
	}
	return &ir.Type{Constructor: ref}
}

func nonNull(t *ir.Type) *ir.Type {
	if !t.Nullable {
		return t
	}
	c := *t
	c.Nullable = false
	return &c
}

// build assembles the graph: builtins first, then the extracted declarations
// in discovery order.
func (b *graphBuilder) build() *ir.Graph {
	g := b.builtins.build()
	for _, c := range b.classes {
		g.AddClass(c)
	}
	for _, a := range b.aliases {
		g.AddAlias(a)
	}
	ids := make([]string, 0, len(b.ids))
	for id := range b.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		g.SetID(id, b.ids[id])
	}
	for name, t := range b.types {
		g.Types[name] = t
	}
	for _, w := range b.warnings {
		g.AddWarning(w)
	}
	for _, pkg := range b.pkgs {
		g.Packages = append(g.Packages, b.goPackage(pkg.Types).Path)
	}
	slices.Sort(g.Packages)
	return g
}
