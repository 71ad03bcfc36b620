package translate

import (
	"github.com/dhamidi/symdoc/dri"
	"github.com/dhamidi/symdoc/symbol"
)

var (
	kotlinAny  = symbol.ClassID{Package: "kotlin", Relative: "Any"}
	kotlinEnum = symbol.ClassID{Package: "kotlin", Relative: "Enum"}
	javaObject = symbol.ClassID{Package: "java.lang", Relative: "Object"}
	javaEnum   = symbol.ClassID{Package: "java.lang", Relative: "Enum"}
)

// ObviousPolicy is the table of universally inherited root types whose
// compiler generated members are flagged as obvious.
type ObviousPolicy struct {
	roots map[symbol.ClassID]bool
}

// DefaultObviousPolicy covers the universal root class and enum base of
// Kotlin and Java.
func DefaultObviousPolicy() ObviousPolicy {
	return NewObviousPolicy(kotlinAny, kotlinEnum, javaObject, javaEnum)
}

func NewObviousPolicy(roots ...symbol.ClassID) ObviousPolicy {
	p := ObviousPolicy{roots: make(map[symbol.ClassID]bool, len(roots))}
	for _, r := range roots {
		p.roots[r] = true
	}
	return p
}

// With returns a copy of p that also covers roots.
func (p ObviousPolicy) With(roots ...symbol.ClassID) ObviousPolicy {
	all := make([]symbol.ClassID, 0, len(p.roots)+len(roots))
	for r := range p.roots {
		all = append(all, r)
	}
	return NewObviousPolicy(append(all, roots...)...)
}

func (p ObviousPolicy) IsRoot(id symbol.ClassID) bool {
	return p.roots[id]
}

// IsObvious reports whether a member is compiler generated, undocumented, not
// an override, and declared by one of the root types.
func (p ObviousPolicy) IsObvious(origin symbol.Origin, documented, override bool, declaredIn dri.DRI) bool {
	if !origin.IsGenerated() || documented || override {
		return false
	}
	return p.roots[symbol.ClassID{Package: declaredIn.PackageName, Relative: declaredIn.ClassNames}]
}
