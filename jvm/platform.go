package jvm

import (
	"strconv"
	"strings"

	"github.com/willhansen/jvmsig/ir"
)

// PlatformClass is the JVM class a builtin class compiles to.
type PlatformClass struct {
	// InternalName is the JVM internal name, e.g. "java/util/Map$Entry".
	InternalName string

	// Primitive is the base type descriptor for classes with an unboxed
	// representation, 0 otherwise.
	Primitive byte
}

// ShortName returns the innermost binary name segment, e.g. "Entry".
func (p PlatformClass) ShortName() string {
	name := p.InternalName[strings.LastIndexByte(p.InternalName, '/')+1:]
	return name[strings.LastIndexByte(name, '$')+1:]
}

var platformClasses = map[string]PlatformClass{
	"kotlin.Any":          {InternalName: "java/lang/Object"},
	"kotlin.String":       {InternalName: "java/lang/String"},
	"kotlin.CharSequence": {InternalName: "java/lang/CharSequence"},
	"kotlin.Throwable":    {InternalName: "java/lang/Throwable"},
	"kotlin.Cloneable":    {InternalName: "java/lang/Cloneable"},
	"kotlin.Number":       {InternalName: "java/lang/Number"},
	"kotlin.Comparable":   {InternalName: "java/lang/Comparable"},
	"kotlin.Enum":         {InternalName: "java/lang/Enum"},
	"kotlin.Annotation":   {InternalName: "java/lang/annotation/Annotation"},
	"kotlin.Nothing":      {InternalName: "java/lang/Void"},

	"kotlin.Boolean": {InternalName: "java/lang/Boolean", Primitive: 'Z'},
	"kotlin.Byte":    {InternalName: "java/lang/Byte", Primitive: 'B'},
	"kotlin.Short":   {InternalName: "java/lang/Short", Primitive: 'S'},
	"kotlin.Char":    {InternalName: "java/lang/Character", Primitive: 'C'},
	"kotlin.Int":     {InternalName: "java/lang/Integer", Primitive: 'I'},
	"kotlin.Long":    {InternalName: "java/lang/Long", Primitive: 'J'},
	"kotlin.Float":   {InternalName: "java/lang/Float", Primitive: 'F'},
	"kotlin.Double":  {InternalName: "java/lang/Double", Primitive: 'D'},

	"kotlin.collections.Iterable":                {InternalName: "java/lang/Iterable"},
	"kotlin.collections.MutableIterable":         {InternalName: "java/lang/Iterable"},
	"kotlin.collections.Iterator":                {InternalName: "java/util/Iterator"},
	"kotlin.collections.MutableIterator":         {InternalName: "java/util/Iterator"},
	"kotlin.collections.Collection":              {InternalName: "java/util/Collection"},
	"kotlin.collections.MutableCollection":       {InternalName: "java/util/Collection"},
	"kotlin.collections.List":                    {InternalName: "java/util/List"},
	"kotlin.collections.MutableList":             {InternalName: "java/util/List"},
	"kotlin.collections.ListIterator":            {InternalName: "java/util/ListIterator"},
	"kotlin.collections.MutableListIterator":     {InternalName: "java/util/ListIterator"},
	"kotlin.collections.Set":                     {InternalName: "java/util/Set"},
	"kotlin.collections.MutableSet":              {InternalName: "java/util/Set"},
	"kotlin.collections.Map":                     {InternalName: "java/util/Map"},
	"kotlin.collections.MutableMap":              {InternalName: "java/util/Map"},
	"kotlin.collections.Map.Entry":               {InternalName: "java/util/Map$Entry"},
	"kotlin.collections.MutableMap.MutableEntry": {InternalName: "java/util/Map$Entry"},
}

// LookupPlatformClass returns the platform class for a dotted fq name.
// Function types "kotlin.FunctionN" map to their JVM carrier, which is the
// vararg kotlin/jvm/functions/FunctionN above bigArity (BigArity when not
// positive). Reflective function types "kotlin.reflect.KFunctionN" all erase
// to kotlin/reflect/KFunction.
func LookupPlatformClass(fqName string, bigArity int) (PlatformClass, bool) {
	if p, ok := platformClasses[fqName]; ok {
		return p, true
	}
	if bigArity <= 0 {
		bigArity = BigArity
	}
	if n, ok := arity(fqName, "kotlin.Function"); ok {
		if n > bigArity {
			return PlatformClass{InternalName: "kotlin/jvm/functions/FunctionN"}, true
		}
		return PlatformClass{InternalName: "kotlin/jvm/functions/Function" + strconv.Itoa(n)}, true
	}
	if _, ok := arity(fqName, "kotlin.reflect.KFunction"); ok {
		return PlatformClass{InternalName: "kotlin/reflect/KFunction"}, true
	}
	return PlatformClass{}, false
}

func arity(fqName, prefix string) (int, bool) {
	digits, ok := strings.CutPrefix(fqName, prefix)
	if !ok || digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 16)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// FunctionArity returns the number of value parameters of a function
// carrier: its type parameters minus the trailing return type R.
func FunctionArity(c *ir.ClassRef) (int, bool) {
	if c == nil || c.Marker != ir.MarkerFunction || len(c.TypeParameters) == 0 {
		return 0, false
	}
	return len(c.TypeParameters) - 1, true
}

func platformClassOf(c *ir.ClassRef, bigArity int) (PlatformClass, bool) {
	if c == nil {
		return PlatformClass{}, false
	}
	fq := c.FqName()
	if fq == "" {
		return PlatformClass{}, false
	}
	return LookupPlatformClass(fq, bigArity)
}
