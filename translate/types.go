package translate

import (
	"github.com/dhamidi/symdoc/dri"
	"github.com/dhamidi/symdoc/model"
	"github.com/dhamidi/symdoc/symbol"
)

var throwableRoots = classSet(
	"kotlin/Throwable",
	"kotlin/Exception",
	"kotlin/RuntimeException",
	"kotlin/Error",
	"java.lang/Throwable",
	"java.lang/Exception",
	"java.lang/RuntimeException",
	"java.lang/Error",
)

func classSet(ids ...string) map[symbol.ClassID]bool {
	set := make(map[symbol.ClassID]bool, len(ids))
	for _, id := range ids {
		set[symbol.ParseClassID(id)] = true
	}
	return set
}

// TypeTranslator converts compiler types into bounds. It remembers the DRI
// of every type parameter declared so far so references can point back at
// their declaration.
type TypeTranslator struct {
	session *symbol.Session
	params  map[*symbol.TypeParameter]dri.DRI
	// enclosing declarations, innermost last
	scope []dri.DRI
}

func NewTypeTranslator(s *symbol.Session) *TypeTranslator {
	return &TypeTranslator{
		session: s,
		params:  make(map[*symbol.TypeParameter]dri.DRI),
	}
}

// Declare records the DRI of a type parameter.
func (tt *TypeTranslator) Declare(p *symbol.TypeParameter, d dri.DRI) {
	tt.params[p] = d
}

// Enter makes d the enclosing declaration until the returned func is called.
func (tt *TypeTranslator) Enter(d dri.DRI) (leave func()) {
	tt.scope = append(tt.scope, d)
	n := len(tt.scope)
	return func() { tt.scope = tt.scope[:n-1] }
}

// ToBound converts t. A nil type is Unit.
func (tt *TypeTranslator) ToBound(t symbol.Type) model.Bound {
	switch t := t.(type) {
	case nil:
		return tt.typeConstructor(unitClass, nil)
	case *symbol.ClassType:
		tc := tt.typeConstructor(t.ID, t.Arguments)
		if t.Abbreviated != nil {
			tc.PresentableAs = t.Abbreviated.ShortName()
		}
		return wrapNullable(tc, t.Nullable)
	case *symbol.TypeParameterType:
		ref := &model.TypeParameterRef{
			DRI:             tt.paramDRI(t.Param),
			Name:            t.Param.Name,
			PresentableName: t.Param.Name,
		}
		return wrapNullable(ref, t.Nullable)
	case *symbol.FunctionType:
		var projections []model.Projection
		if t.Receiver != nil {
			projections = append(projections, model.Projection{Variance: model.Invariant, Bound: tt.ToBound(t.Receiver)})
		}
		for _, p := range t.Parameters {
			projections = append(projections, model.Projection{Variance: model.Invariant, Bound: tt.ToBound(p)})
		}
		projections = append(projections, model.Projection{Variance: model.Invariant, Bound: tt.ToBound(t.Return)})
		id := functionClass(t)
		tc := &model.TypeConstructor{
			DRI:           classDRI(id),
			Name:          id.Relative,
			Projections:   projections,
			IsFunctional:  true,
			IsSuspendable: t.IsSuspend,
		}
		return wrapNullable(tc, t.Nullable)
	case *symbol.FlexibleType:
		return tt.ToBound(t.Lower)
	case *symbol.PrimitiveType:
		return &model.Primitive{Name: t.Name}
	case *symbol.DynamicType:
		return &model.Dynamic{}
	case *symbol.ErrorType:
		return &model.Unresolved{Name: t.Text}
	}
	return &model.Unresolved{Name: t.String()}
}

func (tt *TypeTranslator) typeConstructor(id symbol.ClassID, args []symbol.Projection) *model.TypeConstructor {
	var projections []model.Projection
	for _, a := range args {
		projections = append(projections, tt.projection(a))
	}
	return &model.TypeConstructor{
		DRI:         classDRI(id),
		Name:        id.Relative,
		Projections: projections,
	}
}

func (tt *TypeTranslator) projection(p symbol.Projection) model.Projection {
	if p.IsStar() {
		return model.Projection{Star: true}
	}
	return model.Projection{Variance: variance(p.Variance), Bound: tt.ToBound(p.Type)}
}

func (tt *TypeTranslator) paramDRI(p *symbol.TypeParameter) dri.DRI {
	if d, ok := tt.params[p]; ok {
		return d
	}
	// Declared outside the translated code, e.g. by a library supertype. The
	// reference is anchored at the enclosing declaration.
	var owner dri.DRI
	if n := len(tt.scope); n > 0 {
		owner = tt.scope[n-1].WithTarget(dri.Target{})
	}
	return owner.WithExtra("type-parameter:" + p.Name)
}

func wrapNullable(b model.Bound, isNullable bool) model.Bound {
	if isNullable {
		return &model.Nullable{Inner: b}
	}
	return b
}

func variance(v symbol.Variance) model.Variance {
	switch v {
	case symbol.VarianceCovariant:
		return model.Covariant
	case symbol.VarianceContravariant:
		return model.Contravariant
	}
	return model.Invariant
}

// ToTypeConstructorWithKind annotates t with the kind of the classlike it
// refers to. Types whose classifier cannot be found get KindUnknown.
func (tt *TypeTranslator) ToTypeConstructorWithKind(t symbol.Type) model.TypeConstructorWithKind {
	if ct, ok := t.(*symbol.ClassType); ok {
		tc := tt.typeConstructor(ct.ID, ct.Arguments)
		if c, ok := tt.session.Class(ct.ID); ok {
			return model.TypeConstructorWithKind{TypeConstructor: tc, Kind: classlikeKind(c.Kind)}
		}
		return model.TypeConstructorWithKind{TypeConstructor: tc, Kind: model.KindUnknown}
	}
	name := "<unknown>"
	if t != nil {
		name = t.String()
	}
	return model.TypeConstructorWithKind{
		TypeConstructor: &model.TypeConstructor{DRI: dri.ForClass("", name), Name: name},
		Kind:            model.KindUnknown,
	}
}

func classlikeKind(k symbol.ClassKind) model.ClasslikeKind {
	switch k {
	case symbol.ClassKindClass:
		return model.KindClass
	case symbol.ClassKindInterface:
		return model.KindInterface
	case symbol.ClassKindObject, symbol.ClassKindCompanion, symbol.ClassKindEnumEntry, symbol.ClassKindAnonymous:
		return model.KindObject
	case symbol.ClassKindEnum:
		return model.KindEnum
	case symbol.ClassKindAnnotation:
		return model.KindAnnotation
	}
	return model.KindUnknown
}

// Ancestry is the result of BuildAncestryInformation.
type Ancestry struct {
	Root *model.AncestryNode
	// Unresolved lists supertypes recorded with KindUnknown.
	Unresolved []dri.DRI
	// Exceptions lists supertypes that are throwable types.
	Exceptions []dri.DRI
}

// BuildAncestryInformation computes the supertype closure of t: the direct
// superclass without the universal root, and every interface reachable from
// it. Supertypes that cannot be resolved stay in the tree with KindUnknown.
func (tt *TypeTranslator) BuildAncestryInformation(t symbol.Type) Ancestry {
	b := &ancestryBuilder{tt: tt, onPath: make(map[symbol.ClassID]bool), exceptions: make(map[string]bool)}
	root := b.node(t)
	return Ancestry{Root: root, Unresolved: b.unresolved, Exceptions: b.exceptionList}
}

type ancestryBuilder struct {
	tt            *TypeTranslator
	onPath        map[symbol.ClassID]bool
	unresolved    []dri.DRI
	exceptions    map[string]bool
	exceptionList []dri.DRI
}

func (b *ancestryBuilder) node(t symbol.Type) *model.AncestryNode {
	tk := b.tt.ToTypeConstructorWithKind(t)
	n := &model.AncestryNode{TypeConstructor: tk.TypeConstructor, Kind: tk.Kind}

	ct, ok := t.(*symbol.ClassType)
	if !ok {
		b.unresolved = append(b.unresolved, tk.TypeConstructor.DRI)
		return n
	}
	c, found := b.tt.session.Class(ct.ID)
	if !found {
		b.unresolved = append(b.unresolved, tk.TypeConstructor.DRI)
		if throwableRoots[ct.ID] {
			b.exception(tk.TypeConstructor.DRI)
		}
		return n
	}
	if b.onPath[ct.ID] {
		return n
	}
	b.onPath[ct.ID] = true
	defer delete(b.onPath, ct.ID)

	for _, st := range c.Supertypes {
		if sct, ok := st.(*symbol.ClassType); ok && isUniversalRoot(sct.ID) {
			continue
		}
		child := b.node(st)
		switch {
		case child.Kind == model.KindInterface:
			n.Interfaces = append(n.Interfaces, child)
		case n.Superclass == nil:
			n.Superclass = child
		default:
			n.Interfaces = append(n.Interfaces, child)
		}
	}

	if throwableRoots[ct.ID] || (n.Superclass != nil && b.exceptions[n.Superclass.TypeConstructor.DRI.String()]) {
		b.exception(tk.TypeConstructor.DRI)
	}
	return n
}

func (b *ancestryBuilder) exception(d dri.DRI) {
	key := d.String()
	if b.exceptions[key] {
		return
	}
	b.exceptions[key] = true
	b.exceptionList = append(b.exceptionList, d)
}

func isUniversalRoot(id symbol.ClassID) bool {
	return id == kotlinAny || id == javaObject
}
