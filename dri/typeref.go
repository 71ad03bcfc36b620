package dri

import "strings"

// TypeRef is the erased form of a type used inside callable signatures.
type TypeRef interface {
	typeRef()
	String() string
}

type TypeConstructor struct {
	FQName string
	Params []TypeRef
}

// TypeParam refers to a type parameter by its upper bounds, so that renaming a
// type parameter does not change the signature.
type TypeParam struct {
	Bounds []TypeRef
}

type Nullable struct {
	Wrapped TypeRef
}

type StarProjection struct{}

// RecursiveType breaks cycles such as T : Comparable<T>. Rank counts the type
// parameters between the reference and the one it points back to.
type RecursiveType struct {
	Rank int
}

func (TypeConstructor) typeRef() {}
func (TypeParam) typeRef()       {}
func (Nullable) typeRef()        {}
func (StarProjection) typeRef()  {}
func (RecursiveType) typeRef()   {}

func (t TypeConstructor) String() string {
	if len(t.Params) == 0 {
		return t.FQName
	}
	return t.FQName + "[" + joinRefs(t.Params) + "]"
}

func (t TypeParam) String() string {
	return "{" + joinRefs(t.Bounds) + "}"
}

func (t Nullable) String() string { return t.Wrapped.String() + "?" }

func (StarProjection) String() string { return "*" }

func (t RecursiveType) String() string {
	return "^" + strings.Repeat("^", t.Rank)
}

func joinRefs(refs []TypeRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}
