package translate

import (
	"fmt"
	"strconv"

	"github.com/dhamidi/symdoc/dri"
	"github.com/dhamidi/symdoc/symbol"
)

// Resolve returns the canonical reference of sym. Overriding callables
// resolve to the declaration at the end of their overridden chain, so an
// override and the member it overrides share one identity.
func Resolve(sym symbol.Symbol) (dri.DRI, error) {
	switch s := sym.(type) {
	case *symbol.Class:
		return classDRI(s.ID), nil
	case *symbol.TypeAlias:
		return classDRI(s.ID), nil
	case *symbol.EnumEntry:
		return classDRI(s.Owner).WithClass(s.Name), nil
	case *symbol.Function:
		return functionDRI(rootFunction(s)), nil
	case *symbol.Property:
		p := rootProperty(s)
		return callableDRI(p.ID, &dri.Callable{Name: p.ID.Name, Receiver: optionalTypeRef(p.Receiver)}), nil
	case *symbol.JavaField:
		return callableDRI(s.ID, &dri.Callable{Name: s.ID.Name}), nil
	case *symbol.SyntheticJavaProperty:
		return callableDRI(s.ID, &dri.Callable{Name: s.ID.Name}), nil
	}
	return dri.DRI{}, fmt.Errorf("no reference for %T", sym)
}

// InheritedFrom returns nil when ref is declared directly in enclosing.
// Otherwise it returns ref without its callable component, pointing at the
// declaring class.
func InheritedFrom(ref, enclosing dri.DRI) *dri.DRI {
	if ref.SameDeclaringClass(enclosing) {
		return nil
	}
	declaring := ref.WithCallable(nil)
	return &declaring
}

// rootFunction follows the first overridden symbol until a declaration that
// overrides nothing. Overridden lists that point back into the chain stop
// the walk at the last symbol not seen yet.
func rootFunction(fn *symbol.Function) *symbol.Function {
	seen := map[*symbol.Function]bool{fn: true}
	for len(fn.Overridden) > 0 {
		next := fn.Overridden[0]
		if next == nil || seen[next] {
			break
		}
		seen[next] = true
		fn = next
	}
	return fn
}

func rootProperty(p *symbol.Property) *symbol.Property {
	seen := map[*symbol.Property]bool{p: true}
	for len(p.Overridden) > 0 {
		next := p.Overridden[0]
		if next == nil || seen[next] {
			break
		}
		seen[next] = true
		p = next
	}
	return p
}

func classDRI(id symbol.ClassID) dri.DRI {
	return dri.ForClass(id.Package, id.Relative)
}

func callableDRI(id symbol.CallableID, c *dri.Callable) dri.DRI {
	return dri.ForClass(id.Package, id.ClassName).WithCallable(c)
}

func functionDRI(fn *symbol.Function) dri.DRI {
	name := fn.ID.Name
	if fn.IsConstructor {
		if owner, ok := fn.ID.Class(); ok {
			name = owner.ShortName()
		}
	}
	params := make([]dri.TypeRef, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = typeRef(p.Type, nil)
	}
	return callableDRI(fn.ID, &dri.Callable{
		Name:     name,
		Receiver: optionalTypeRef(fn.Receiver),
		Params:   params,
	})
}

func optionalTypeRef(t symbol.Type) dri.TypeRef {
	if t == nil {
		return nil
	}
	return typeRef(t, nil)
}

// typeRef erases t for use in a callable signature. stack holds the type
// parameters whose bounds are being expanded and turns cycles into
// RecursiveType references.
func typeRef(t symbol.Type, stack []*symbol.TypeParameter) dri.TypeRef {
	switch t := t.(type) {
	case *symbol.ClassType:
		params := make([]dri.TypeRef, len(t.Arguments))
		for i, a := range t.Arguments {
			if a.IsStar() {
				params[i] = dri.StarProjection{}
			} else {
				params[i] = typeRef(a.Type, stack)
			}
		}
		return nullable(dri.TypeConstructor{FQName: t.ID.FQName(), Params: params}, t.Nullable)
	case *symbol.TypeParameterType:
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i] == t.Param {
				return nullable(dri.RecursiveType{Rank: len(stack) - 1 - i}, t.Nullable)
			}
		}
		inner := append(append([]*symbol.TypeParameter(nil), stack...), t.Param)
		bounds := make([]dri.TypeRef, len(t.Param.UpperBounds))
		for i, b := range t.Param.UpperBounds {
			bounds[i] = typeRef(b, inner)
		}
		return nullable(dri.TypeParam{Bounds: bounds}, t.Nullable)
	case *symbol.FunctionType:
		var params []dri.TypeRef
		if t.Receiver != nil {
			params = append(params, typeRef(t.Receiver, stack))
		}
		for _, p := range t.Parameters {
			params = append(params, typeRef(p, stack))
		}
		params = append(params, typeRef(t.Return, stack))
		return nullable(dri.TypeConstructor{FQName: functionClass(t).FQName(), Params: params}, t.Nullable)
	case *symbol.FlexibleType:
		return typeRef(t.Lower, stack)
	case *symbol.PrimitiveType:
		return dri.TypeConstructor{FQName: t.Name}
	case *symbol.DynamicType:
		return dri.TypeConstructor{FQName: "dynamic"}
	case *symbol.ErrorType:
		return dri.TypeConstructor{FQName: t.Text}
	case nil:
		return dri.TypeConstructor{FQName: unitClass.FQName()}
	}
	return dri.TypeConstructor{FQName: t.String()}
}

func nullable(ref dri.TypeRef, isNullable bool) dri.TypeRef {
	if isNullable {
		return dri.Nullable{Wrapped: ref}
	}
	return ref
}

var unitClass = symbol.ClassID{Package: "kotlin", Relative: "Unit"}

// functionClass is the kotlin.FunctionN or kotlin.coroutines.SuspendFunctionN
// class a functional type desugars to.
func functionClass(t *symbol.FunctionType) symbol.ClassID {
	arity := len(t.Parameters)
	if t.Receiver != nil {
		arity++
	}
	if t.IsSuspend {
		return symbol.ClassID{Package: "kotlin.coroutines", Relative: "SuspendFunction" + strconv.Itoa(arity)}
	}
	return symbol.ClassID{Package: "kotlin", Relative: "Function" + strconv.Itoa(arity)}
}
