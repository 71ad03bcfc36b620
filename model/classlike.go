package model

import (
	"github.com/dhamidi/symdoc/doc"
	"github.com/dhamidi/symdoc/dri"
)

type ClasslikeKind string

const (
	KindClass      ClasslikeKind = "class"
	KindInterface  ClasslikeKind = "interface"
	KindObject     ClasslikeKind = "object"
	KindEnum       ClasslikeKind = "enum"
	KindAnnotation ClasslikeKind = "annotation"
	KindUnknown    ClasslikeKind = "unknown"
)

// Classlike is one of *Class, *Interface, *Object, *Enum or *AnnotationClass.
type Classlike interface {
	classlike()
	Kind() ClasslikeKind
	Base() *ClasslikeBase
}

// ClasslikeBase holds what every classlike carries.
type ClasslikeBase struct {
	DRI           dri.DRI
	Name          string
	Visibility    Visibility
	Modality      Modality
	Supertypes    []TypeConstructorWithKind
	Generics      []*TypeParameter
	Constructors  []*Function
	Functions     []*Function
	Properties    []*Property
	Classlikes    []Classlike
	Companion     *dri.DRI
	IsExpect      bool
	Documentation *doc.Tree
	Sources       []string
	SourceSets    []string
	Extras        Extras
}

type Class struct {
	ClasslikeBase
}

type Interface struct {
	ClasslikeBase
}

type Object struct {
	ClasslikeBase
	IsCompanion bool
}

type Enum struct {
	ClasslikeBase
	Entries []*EnumEntry
}

type AnnotationClass struct {
	ClasslikeBase
}

func (*Class) classlike()           {}
func (*Interface) classlike()       {}
func (*Object) classlike()          {}
func (*Enum) classlike()            {}
func (*AnnotationClass) classlike() {}

func (*Class) Kind() ClasslikeKind           { return KindClass }
func (*Interface) Kind() ClasslikeKind       { return KindInterface }
func (*Object) Kind() ClasslikeKind          { return KindObject }
func (*Enum) Kind() ClasslikeKind            { return KindEnum }
func (*AnnotationClass) Kind() ClasslikeKind { return KindAnnotation }

func (c *Class) Base() *ClasslikeBase           { return &c.ClasslikeBase }
func (c *Interface) Base() *ClasslikeBase       { return &c.ClasslikeBase }
func (c *Object) Base() *ClasslikeBase          { return &c.ClasslikeBase }
func (c *Enum) Base() *ClasslikeBase            { return &c.ClasslikeBase }
func (c *AnnotationClass) Base() *ClasslikeBase { return &c.ClasslikeBase }

// EnumEntry is an enum constant with its own member scope.
type EnumEntry struct {
	DRI           dri.DRI
	Name          string
	Visibility    Visibility
	Functions     []*Function
	Properties    []*Property
	Classlikes    []Classlike
	Documentation *doc.Tree
	Sources       []string
	SourceSets    []string
	Extras        Extras
}

// Walk calls fn for every classlike in the package, nested ones included, in
// declaration order.
func (p *Package) Walk(fn func(Classlike)) {
	for _, c := range p.Classlikes {
		walkClasslike(c, fn)
	}
}

func walkClasslike(c Classlike, fn func(Classlike)) {
	fn(c)
	for _, nested := range c.Base().Classlikes {
		walkClasslike(nested, fn)
	}
	if e, ok := c.(*Enum); ok {
		for _, entry := range e.Entries {
			for _, nested := range entry.Classlikes {
				walkClasslike(nested, fn)
			}
		}
	}
}
