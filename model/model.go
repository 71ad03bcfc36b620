// Package model is the language-agnostic documentation model produced by the
// translator. Nodes are built bottom-up and must not be modified afterwards.
package model

import (
	"github.com/dhamidi/symdoc/doc"
	"github.com/dhamidi/symdoc/dri"
)

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityInternal  Visibility = "internal"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type Modality string

const (
	ModalityFinal    Modality = "final"
	ModalityOpen     Modality = "open"
	ModalityAbstract Modality = "abstract"
	ModalitySealed   Modality = "sealed"
)

type Variance string

const (
	Invariant     Variance = "invariant"
	Covariant     Variance = "out"
	Contravariant Variance = "in"
)

// SourceSet is a source context a node is valid for.
type SourceSet struct {
	ID          string
	DisplayName string
	Platform    string
	Roots       []string
}

type Module struct {
	Name       string
	Packages   []*Package
	SourceSets []SourceSet
	Extras     Extras
}

type Package struct {
	DRI         dri.DRI
	Name        string
	Functions   []*Function
	Properties  []*Property
	Classlikes  []Classlike
	TypeAliases []*TypeAlias
	SourceSets  []string
	Extras      Extras
}

// Member carries the fields shared by functions, properties and type aliases.
type Member struct {
	DRI           dri.DRI
	Name          string
	Visibility    Visibility
	Modality      Modality
	Generics      []*TypeParameter
	IsExpect      bool
	Documentation *doc.Tree
	Sources       []string
	SourceSets    []string
	Extras        Extras
}

type Function struct {
	Member
	IsConstructor bool
	Receiver      *Parameter
	Parameters    []*Parameter
	Type          Bound
	// InheritedFrom points at the declaring class when the function is
	// declared in a supertype. Its callable component is always nil.
	InheritedFrom *dri.DRI
	// Obvious marks compiler generated, undocumented members inherited from a
	// universal root type such as equals or hashCode.
	Obvious bool
}

type Property struct {
	Member
	Receiver      *Parameter
	Type          Bound
	Getter        *Function
	Setter        *Function
	IsVar         bool
	InheritedFrom *dri.DRI
	DefaultValue  Expr
	// Obvious has the same meaning as on Function, e.g. the name and ordinal
	// every enum inherits.
	Obvious bool
}

type Parameter struct {
	DRI           dri.DRI
	Name          string // empty for receivers
	Type          Bound
	DefaultValue  Expr
	Documentation *doc.Tree
	Extras        Extras
}

type TypeParameter struct {
	DRI             dri.DRI
	Name            string
	PresentableName string
	Variance        Variance
	Bounds          []Bound
	IsReified       bool
	Documentation   *doc.Tree
	Extras          Extras
}

type TypeAlias struct {
	Member
	Type       Bound
	Underlying Bound
}
