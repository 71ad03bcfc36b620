package model

import (
	"github.com/dhamidi/symdoc/dri"
)

// Extra is per-kind metadata attached to a node.
type Extra interface {
	ExtraKey() string
}

// Extras is an immutable property bag keyed by Extra.ExtraKey.
type Extras map[string]Extra

// NewExtras builds a bag from the non-nil items; later items replace earlier
// ones with the same key. It returns nil when nothing is left.
func NewExtras(items ...Extra) Extras {
	var e Extras
	for _, item := range items {
		if item == nil {
			continue
		}
		if e == nil {
			e = make(Extras, len(items))
		}
		e[item.ExtraKey()] = item
	}
	return e
}

// Get returns the extra of type T stored in e.
func Get[T Extra](e Extras) (T, bool) {
	var zero T
	x, ok := e[zero.ExtraKey()]
	if !ok {
		return zero, false
	}
	t, ok := x.(T)
	return t, ok
}

type Annotations struct {
	Items []Annotation
}

type Modifiers struct {
	Items []string
}

// ImplementedInterfaces lists every interface of a classlike, transitively.
type ImplementedInterfaces struct {
	Interfaces []*TypeConstructor
}

// ExceptionInSupertypes lists supertypes that are throwable types.
type ExceptionInSupertypes struct {
	Exceptions []dri.DRI
}

// CheckedExceptions lists the exceptions declared with @Throws.
type CheckedExceptions struct {
	Exceptions []dri.DRI
}

// Ancestry keeps the full supertype closure of a classlike.
type Ancestry struct {
	Root *AncestryNode
	// Unresolved holds supertypes whose declaration could not be found.
	Unresolved []dri.DRI
}

// IsCompanion marks the object that is a companion of its outer classlike.
type IsCompanion struct{}

// TranslationRun identifies the run that produced a module.
type TranslationRun struct {
	ID string
}

func (Annotations) ExtraKey() string           { return "annotations" }
func (Modifiers) ExtraKey() string             { return "modifiers" }
func (ImplementedInterfaces) ExtraKey() string { return "implemented-interfaces" }
func (ExceptionInSupertypes) ExtraKey() string { return "exception-in-supertypes" }
func (CheckedExceptions) ExtraKey() string     { return "checked-exceptions" }
func (Ancestry) ExtraKey() string              { return "ancestry" }
func (IsCompanion) ExtraKey() string           { return "is-companion" }
func (TranslationRun) ExtraKey() string        { return "translation-run" }
