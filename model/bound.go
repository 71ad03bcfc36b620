package model

import (
	"strings"

	"github.com/dhamidi/symdoc/dri"
)

// Bound is a type as seen by the documentation renderer.
type Bound interface {
	bound()
	String() string
}

// TypeConstructor is a class type with its type arguments.
type TypeConstructor struct {
	DRI           dri.DRI
	Name          string
	Projections   []Projection
	PresentableAs string // alias name when written through a type alias
	IsFunctional  bool
	IsSuspendable bool
}

type TypeParameterRef struct {
	DRI             dri.DRI
	Name            string
	PresentableName string
}

type Nullable struct {
	Inner Bound
}

type Primitive struct {
	Name string
}

type Dynamic struct{}

// Unresolved is a type the compiler could not resolve.
type Unresolved struct {
	Name string
}

func (*TypeConstructor) bound()  {}
func (*TypeParameterRef) bound() {}
func (*Nullable) bound()         {}
func (*Primitive) bound()        {}
func (*Dynamic) bound()          {}
func (*Unresolved) bound()       {}

func (t *TypeConstructor) String() string {
	name := t.Name
	if t.PresentableAs != "" {
		name = t.PresentableAs
	}
	if len(t.Projections) == 0 {
		return name
	}
	parts := make([]string, len(t.Projections))
	for i, p := range t.Projections {
		parts[i] = p.String()
	}
	return name + "<" + strings.Join(parts, ", ") + ">"
}

func (t *TypeParameterRef) String() string { return t.Name }
func (t *Nullable) String() string         { return t.Inner.String() + "?" }
func (t *Primitive) String() string        { return t.Name }
func (*Dynamic) String() string            { return "dynamic" }
func (t *Unresolved) String() string       { return t.Name }

// Projection is a type argument: Star, or a bound with a variance.
type Projection struct {
	Star     bool
	Variance Variance
	Bound    Bound
}

func (p Projection) String() string {
	if p.Star {
		return "*"
	}
	if p.Variance == Covariant || p.Variance == Contravariant {
		return string(p.Variance) + " " + p.Bound.String()
	}
	return p.Bound.String()
}

// TypeConstructorWithKind annotates a type reference with the kind of the
// classlike it points at.
type TypeConstructorWithKind struct {
	TypeConstructor *TypeConstructor
	Kind            ClasslikeKind
}

// AncestryNode is the supertype closure of one type.
type AncestryNode struct {
	TypeConstructor *TypeConstructor
	Kind            ClasslikeKind
	Superclass      *AncestryNode
	Interfaces      []*AncestryNode
}

// AllInterfaces returns every interface reachable from n, each once, in
// breadth-first order.
func (n *AncestryNode) AllInterfaces() []*TypeConstructor {
	var out []*TypeConstructor
	seen := make(map[string]bool)
	queue := []*AncestryNode{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.Superclass != nil {
			queue = append(queue, cur.Superclass)
		}
		for _, i := range cur.Interfaces {
			key := i.TypeConstructor.DRI.String()
			if !seen[key] {
				seen[key] = true
				out = append(out, i.TypeConstructor)
			}
			queue = append(queue, i)
		}
	}
	return out
}
