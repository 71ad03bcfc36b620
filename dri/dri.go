// Package dri defines the structural identifier used to cross-link documented
// declarations.
package dri

import (
	"strconv"
	"strings"
)

// DRI identifies a declaration by package, enclosing class chain, an optional
// callable signature and a target inside the declaration.
type DRI struct {
	PackageName string
	ClassNames  string // dot separated, empty for top-level callables and packages
	Callable    *Callable
	Target      Target
	Extra       string
}

type Callable struct {
	Name     string
	Receiver TypeRef // nil when the callable has no receiver
	Params   []TypeRef
}

func (c *Callable) Signature() string {
	var sb strings.Builder
	if c.Receiver != nil {
		sb.WriteString(c.Receiver.String())
	}
	sb.WriteString("#")
	for i, p := range c.Params {
		if i > 0 {
			sb.WriteString("#")
		}
		sb.WriteString(p.String())
	}
	return sb.String()
}

// ForPackage returns the DRI of a package.
func ForPackage(name string) DRI {
	return DRI{PackageName: name}
}

// ForClass returns the DRI of a classifier.
func ForClass(pkg, classNames string) DRI {
	return DRI{PackageName: pkg, ClassNames: classNames}
}

// String is the canonical form; two DRIs are equal iff their strings are.
func (d DRI) String() string {
	var sb strings.Builder
	sb.WriteString(d.PackageName)
	sb.WriteString("/")
	sb.WriteString(d.ClassNames)
	sb.WriteString("/")
	if d.Callable != nil {
		sb.WriteString(d.Callable.Name)
		sb.WriteString("/")
		sb.WriteString(d.Callable.Signature())
	} else {
		sb.WriteString("/")
	}
	sb.WriteString("/")
	sb.WriteString(d.Target.String())
	sb.WriteString("/")
	sb.WriteString(d.Extra)
	return sb.String()
}

func (d DRI) Equal(other DRI) bool {
	return d.String() == other.String()
}

// SameDeclaringClass reports whether d and other share package and class chain.
func (d DRI) SameDeclaringClass(other DRI) bool {
	return d.PackageName == other.PackageName && d.ClassNames == other.ClassNames
}

// WithCallable returns a copy of d with the callable component replaced.
func (d DRI) WithCallable(c *Callable) DRI {
	d.Callable = c
	return d
}

func (d DRI) WithTarget(t Target) DRI {
	d.Target = t
	return d
}

func (d DRI) WithExtra(extra string) DRI {
	d.Extra = extra
	return d
}

// WithClass appends name to the class chain.
func (d DRI) WithClass(name string) DRI {
	if d.ClassNames == "" {
		d.ClassNames = name
	} else {
		d.ClassNames = d.ClassNames + "." + name
	}
	return d
}

// ClassOnly drops callable, target and extra.
func (d DRI) ClassOnly() DRI {
	return DRI{PackageName: d.PackageName, ClassNames: d.ClassNames}
}

type TargetKind int

const (
	PointingToDeclaration TargetKind = iota
	PointingToCallableParameters
	PointingToGenericParameters
)

// Target selects a part of a declaration. The zero value points to the
// declaration itself.
type Target struct {
	Kind  TargetKind
	Index int
}

func ToCallableParameter(i int) Target {
	return Target{Kind: PointingToCallableParameters, Index: i}
}

func ToGenericParameter(i int) Target {
	return Target{Kind: PointingToGenericParameters, Index: i}
}

func (t Target) String() string {
	switch t.Kind {
	case PointingToCallableParameters:
		return "param(" + strconv.Itoa(t.Index) + ")"
	case PointingToGenericParameters:
		return "generic(" + strconv.Itoa(t.Index) + ")"
	}
	return "decl"
}
