package provider

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/willhansen/jvmsig/ir"
)

// loader binds the declarations of one or more graph files. Declarations
// may reference each other in any order: owners are resolved to a fixpoint
// and type expressions only once every declaration is known.
type loader struct {
	packages map[string]*ir.PackageRef
	byName   map[string]*binding
	classes  []*pendingClass
	aliases  []*pendingAlias
	synth    []*ir.ClassRef
	types    map[string]*ir.Type
}

type binding struct {
	ref     ir.Ref
	builtin bool
}

type pendingClass struct {
	decl       classDecl
	class      *ir.ClassRef
	builtin    bool
	resolved   bool
	overridden bool
}

type pendingAlias struct {
	decl       aliasDecl
	alias      *ir.TypeAliasRef
	builtin    bool
	resolved   bool
	overridden bool
}

func newLoader() *loader {
	return &loader{
		packages: make(map[string]*ir.PackageRef),
		byName:   make(map[string]*binding),
		types:    make(map[string]*ir.Type),
	}
}

func (l *loader) pkg(path string) *ir.PackageRef {
	p, ok := l.packages[path]
	if !ok {
		p = ir.Package(path)
		l.packages[path] = p
	}
	return p
}

// declare creates the refs of doc without resolving any reference.
func (l *loader) declare(doc *graphFile, builtin bool) error {
	for i, d := range doc.Classes {
		if d.Name == "" {
			return errors.Errorf("classes[%d]: name is required", i)
		}
		if d.Package != "" && d.Owner != "" {
			return errors.Errorf("classes[%d] %s: package and owner are exclusive", i, d.Name)
		}
		kind, ok := parseClassKind(d.Kind)
		if !ok {
			return errors.Errorf("classes[%d] %s: unknown kind %q", i, d.Name, d.Kind)
		}
		marker, ok := parseMarker(d.Marker)
		if !ok {
			return errors.Errorf("classes[%d] %s: unknown marker %q", i, d.Name, d.Marker)
		}
		params, err := declareParams(d.TypeParameters)
		if err != nil {
			return errors.Wrapf(err, "classes[%d] %s", i, d.Name)
		}
		c := &ir.ClassRef{
			Name:           d.Name,
			ClassKind:      kind,
			TypeParameters: params,
			Inner:          d.Inner,
			Final:          d.Final,
			Marker:         marker,
		}
		if d.ID != "" {
			if err := l.bind("@"+d.ID, c, builtin); err != nil {
				return errors.Wrapf(err, "classes[%d]", i)
			}
		}
		l.classes = append(l.classes, &pendingClass{decl: d, class: c, builtin: builtin})
	}

	for i, d := range doc.Aliases {
		if d.Name == "" {
			return errors.Errorf("aliases[%d]: name is required", i)
		}
		if d.Package != "" && d.Owner != "" {
			return errors.Errorf("aliases[%d] %s: package and owner are exclusive", i, d.Name)
		}
		if d.Expands == "" {
			return errors.Errorf("aliases[%d] %s: expands is required", i, d.Name)
		}
		params, err := declareParams(d.TypeParameters)
		if err != nil {
			return errors.Wrapf(err, "aliases[%d] %s", i, d.Name)
		}
		a := &ir.TypeAliasRef{Name: d.Name, TypeParameters: params}
		if d.ID != "" {
			if err := l.bind("@"+d.ID, a, builtin); err != nil {
				return errors.Wrapf(err, "aliases[%d]", i)
			}
		}
		l.aliases = append(l.aliases, &pendingAlias{decl: d, alias: a, builtin: builtin})
	}
	return nil
}

func declareParams(decls []typeParamDecl) ([]*ir.TypeParameterRef, error) {
	var params []*ir.TypeParameterRef
	for _, d := range decls {
		if d.Name == "" {
			return nil, errors.New("type parameter name is required")
		}
		v, ok := ir.ParseVariance(d.Variance)
		if !ok {
			return nil, errors.Errorf("type parameter %s: unknown variance %q", d.Name, d.Variance)
		}
		params = append(params, &ir.TypeParameterRef{Name: d.Name, Variance: v, Reified: d.Reified})
	}
	return params, nil
}

// bind registers ref under name. A user declaration replaces a builtin one.
func (l *loader) bind(name string, ref ir.Ref, builtin bool) error {
	if prev, ok := l.byName[name]; ok {
		switch {
		case prev.builtin && !builtin:
			l.override(prev.ref)
		case !prev.builtin && builtin:
			l.override(ref)
			return nil
		default:
			return errors.Errorf("duplicate declaration %s", name)
		}
	}
	l.byName[name] = &binding{ref: ref, builtin: builtin}
	return nil
}

func (l *loader) override(ref ir.Ref) {
	for _, p := range l.classes {
		if ir.Ref(p.class) == ref {
			p.overridden = true
		}
	}
	for _, p := range l.aliases {
		if ir.Ref(p.alias) == ref {
			p.overridden = true
		}
	}
}

// resolveOwners attaches every declaration to its container and binds its
// fq name. Nested declarations wait until their owner is bound.
func (l *loader) resolveOwners() error {
	for progress := true; progress; {
		progress = false
		for _, p := range l.classes {
			if p.resolved {
				continue
			}
			owner, ok := l.container(p.decl.Package, p.decl.Owner, p.decl.Callable)
			if !ok {
				continue
			}
			p.class.Owner = owner
			p.resolved, progress = true, true
			if fq := p.class.FqName(); fq != "" {
				if err := l.bind(fq, p.class, p.builtin); err != nil {
					return err
				}
			}
		}
		for _, p := range l.aliases {
			if p.resolved {
				continue
			}
			owner, ok := l.container(p.decl.Package, p.decl.Owner, "")
			if !ok {
				continue
			}
			p.alias.Owner = owner
			p.resolved, progress = true, true
			if fq := aliasFqName(p.alias); fq != "" {
				if err := l.bind(fq, p.alias, p.builtin); err != nil {
					return err
				}
			}
		}
	}

	var unresolved []string
	for _, p := range l.classes {
		if !p.resolved {
			unresolved = append(unresolved, fmt.Sprintf("class %s (owner %s)", p.decl.Name, p.decl.Owner))
		}
	}
	for _, p := range l.aliases {
		if !p.resolved {
			unresolved = append(unresolved, fmt.Sprintf("alias %s (owner %s)", p.decl.Name, p.decl.Owner))
		}
	}
	if len(unresolved) > 0 {
		return errors.Errorf("unknown or cyclic owners: %s", strings.Join(unresolved, ", "))
	}
	return nil
}

// container returns the container named by a declaration. It reports false
// while an owner class is not yet bound.
func (l *loader) container(pkg, owner, callable string) (ir.Container, bool) {
	var c ir.Container = l.pkg(pkg)
	if owner != "" {
		b, ok := l.byName[owner]
		if !ok {
			return nil, false
		}
		class, ok := b.ref.(*ir.ClassRef)
		if !ok || class.Owner == nil {
			return nil, false
		}
		c = class
	}
	if callable != "" {
		c = &ir.CallableRef{Name: callable, Owner: c}
	}
	return c, true
}

func aliasFqName(a *ir.TypeAliasRef) string {
	if ir.IsSpecialName(a.Name) {
		return ""
	}
	switch owner := a.Owner.(type) {
	case *ir.PackageRef:
		if owner.IsRoot() {
			return a.Name
		}
		return owner.Path + "." + a.Name
	case *ir.ClassRef:
		if fq := owner.FqName(); fq != "" {
			return fq + "." + a.Name
		}
	}
	return ""
}

// resolveTypes binds bounds, supertypes, alias expansions and named types.
func (l *loader) resolveTypes(named map[string]string) error {
	for _, p := range l.classes {
		scope := p.class.AllTypeParameters()
		if err := l.resolveBounds(p.class.TypeParameters, p.decl.TypeParameters, scope); err != nil {
			return errors.Wrapf(err, "class %s", p.class)
		}
		for _, src := range p.decl.Supertypes {
			t, err := l.parseType(src, scope)
			if err != nil {
				return errors.Wrapf(err, "class %s: supertype", p.class)
			}
			p.class.Supertypes = append(p.class.Supertypes, t)
		}
	}
	for _, p := range l.aliases {
		scope := p.alias.TypeParameters
		if err := l.resolveBounds(scope, p.decl.TypeParameters, scope); err != nil {
			return errors.Wrapf(err, "alias %s", p.alias.Name)
		}
		t, err := l.parseType(p.decl.Expands, scope)
		if err != nil {
			return errors.Wrapf(err, "alias %s: expands", p.alias.Name)
		}
		p.alias.Expanded = t
	}

	keys := make([]string, 0, len(named))
	for k := range named {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		t, err := l.parseType(named[k], nil)
		if err != nil {
			return errors.Wrapf(err, "types.%s", k)
		}
		l.types[k] = t
	}
	return nil
}

func (l *loader) resolveBounds(params []*ir.TypeParameterRef, decls []typeParamDecl, scope []*ir.TypeParameterRef) error {
	for i, d := range decls {
		for _, src := range d.Bounds {
			t, err := l.parseType(src, scope)
			if err != nil {
				return errors.Wrapf(err, "bound of %s", d.Name)
			}
			params[i].UpperBounds = append(params[i].UpperBounds, t)
		}
	}
	return nil
}

func (l *loader) parseType(src string, scope []*ir.TypeParameterRef) (*ir.Type, error) {
	expr, err := ParseTypeExpr(src)
	if err != nil {
		return nil, err
	}
	return l.bindType(expr, scope)
}

// bindType resolves the references of e. Bare names are looked up in scope
// before the declarations.
func (l *loader) bindType(e *TypeExpr, scope []*ir.TypeParameterRef) (*ir.Type, error) {
	t := &ir.Type{}
	switch {
	case e.Error:
		t.Constructor = &ir.ErrorRef{Description: e.Description}
	case e.Param != "":
		p, err := l.lookupParam(e.Ref, e.Param)
		if err != nil {
			return nil, err
		}
		t.Constructor = p
	default:
		ref, err := l.lookup(e.Ref, scope)
		if err != nil {
			return nil, err
		}
		t.Constructor = ref
	}

	for _, a := range e.Args {
		if a.Star {
			t.Arguments = append(t.Arguments, ir.Star())
			continue
		}
		at, err := l.bindType(a.Type, scope)
		if err != nil {
			return nil, err
		}
		t.Arguments = append(t.Arguments, ir.TypeArgument{Type: at, Projection: a.Projection})
	}

	if e.Flexible {
		lower := *t
		t.Flexible = &ir.FlexibleBounds{Lower: &lower, Upper: lower.AsNullable()}
	}
	t.Nullable = e.Nullable
	return t, nil
}

func (l *loader) lookup(name string, scope []*ir.TypeParameterRef) (ir.Ref, error) {
	if !strings.ContainsAny(name, ".@") {
		for _, p := range scope {
			if p.Name == name {
				return p, nil
			}
		}
	}
	if b, ok := l.byName[name]; ok {
		return b.ref, nil
	}
	if c := l.synthesize(name); c != nil {
		return c, nil
	}
	return nil, errors.Errorf("unknown declaration %s", name)
}

func (l *loader) lookupParam(owner, name string) (*ir.TypeParameterRef, error) {
	ref, err := l.lookup(owner, nil)
	if err != nil {
		return nil, err
	}
	var params []*ir.TypeParameterRef
	switch ref := ref.(type) {
	case *ir.ClassRef:
		params = ref.AllTypeParameters()
	case *ir.TypeAliasRef:
		params = ref.TypeParameters
	}
	for _, p := range params {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.Errorf("%s has no type parameter %s", owner, name)
}

// synthesize creates the function interfaces kotlin.FunctionN and
// kotlin.reflect.KFunctionN on first use, for any arity.
func (l *loader) synthesize(name string) *ir.ClassRef {
	var (
		pkg, base string
		marker    ir.Marker
	)
	switch {
	case strings.HasPrefix(name, "kotlin.Function"):
		pkg, base, marker = "kotlin", "Function", ir.MarkerFunction
	case strings.HasPrefix(name, "kotlin.reflect.KFunction"):
		pkg, base, marker = "kotlin.reflect", "KFunction", ir.MarkerReflectFunction
	default:
		return nil
	}
	digits := strings.TrimPrefix(name, pkg+"."+base)
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil || (len(digits) > 1 && digits[0] == '0') {
		return nil
	}

	params := make([]*ir.TypeParameterRef, 0, n+1)
	for i := 1; i <= int(n); i++ {
		params = append(params, ir.TypeParam("P"+strconv.Itoa(i), ir.In))
	}
	result := ir.TypeParam("R", ir.Out)
	params = append(params, result)

	c := ir.Interface(base+digits, l.pkg(pkg), params...)
	c.Marker = marker
	if b, ok := l.byName[pkg+"."+base]; ok {
		c.Supertypes = []*ir.Type{ir.Simple(b.ref, ir.Simple(result))}
	}
	l.byName[name] = &binding{ref: c, builtin: true}
	l.synth = append(l.synth, c)
	return c
}

// build registers the bound declarations in a new graph, in declaration
// order followed by synthesized classes.
func (l *loader) build() *ir.Graph {
	g := ir.NewGraph()
	for _, p := range l.classes {
		if !p.overridden {
			g.AddClass(p.class)
		}
	}
	for _, c := range l.synth {
		g.AddClass(c)
	}
	for _, p := range l.aliases {
		if !p.overridden {
			g.AddAlias(p.alias)
		}
	}
	for name, b := range l.byName {
		if strings.HasPrefix(name, "@") {
			g.SetID(name, b.ref)
		}
	}
	for name, t := range l.types {
		g.Types[name] = t
	}
	return g
}
