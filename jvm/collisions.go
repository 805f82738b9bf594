package jvm

import (
	"slices"
	"strings"

	"github.com/willhansen/jvmsig/ir"
)

// Collision is a set of distinct declarations sharing an internal name.
type Collision struct {
	InternalName string
	Declarations []string
}

// CheckCollisions resolves every class of g with a nameable owner chain and
// returns the internal names claimed by more than one declaration, sorted by
// name. Classes named through the supertype fallback are skipped: they share
// names with their supertypes by construction.
func CheckCollisions(g *ir.Graph, r *Resolver) []Collision {
	owners := make(map[string][]*ir.ClassRef)
	var order []string
	for _, c := range g.Classes() {
		name, ok := r.classInternalName(c, 0)
		if !ok {
			continue
		}
		if slices.Contains(owners[name], c) {
			continue
		}
		if _, seen := owners[name]; !seen {
			order = append(order, name)
		}
		owners[name] = append(owners[name], c)
	}

	var collisions []Collision
	for _, name := range order {
		decls := owners[name]
		if len(decls) < 2 {
			continue
		}
		col := Collision{InternalName: name}
		for _, c := range decls {
			col.Declarations = append(col.Declarations, c.String())
		}
		collisions = append(collisions, col)
	}
	slices.SortFunc(collisions, func(a, b Collision) int {
		return strings.Compare(a.InternalName, b.InternalName)
	})
	return collisions
}
