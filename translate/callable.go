package translate

import (
	"fmt"

	"github.com/dhamidi/symdoc/doc"
	"github.com/dhamidi/symdoc/dri"
	"github.com/dhamidi/symdoc/model"
	"github.com/dhamidi/symdoc/symbol"
)

// generics declares params under owner and translates them. Bounds are
// translated after every parameter is declared so they may refer to each
// other. A parameter without bounds is bounded by Any?.
func (r *run) generics(params []*symbol.TypeParameter, owner dri.DRI) []*model.TypeParameter {
	if len(params) == 0 {
		return nil
	}
	for i, p := range params {
		r.types.Declare(p, owner.WithTarget(dri.ToGenericParameter(i)))
	}

	out := make([]*model.TypeParameter, len(params))
	for i, p := range params {
		var bounds []model.Bound
		for _, b := range p.UpperBounds {
			bounds = append(bounds, r.types.ToBound(b))
		}
		if len(bounds) == 0 {
			bounds = []model.Bound{&model.Nullable{Inner: r.types.ToBound(&symbol.ClassType{ID: kotlinAny})}}
		}
		var extras model.Extras
		if p.IsReified {
			extras = model.NewExtras(model.Modifiers{Items: []string{"reified"}})
		}
		out[i] = &model.TypeParameter{
			DRI:             owner.WithTarget(dri.ToGenericParameter(i)),
			Name:            p.Name,
			PresentableName: p.Name,
			Variance:        variance(p.Variance),
			Bounds:          bounds,
			IsReified:       p.IsReified,
			Extras:          extras,
		}
	}
	return out
}

func (r *run) visitFunction(fn *symbol.Function, parent dri.DRI) (*model.Function, error) {
	return guard(fn, func() (*model.Function, error) {
		ref, err := Resolve(fn)
		if err != nil {
			return nil, err
		}
		inherited := InheritedFrom(ref, parent)
		defer r.types.Enter(ref)()

		docs, err := r.documentation(fn)
		if err != nil {
			return nil, err
		}

		generics := r.generics(fn.TypeParameters, ref)

		var receiver *model.Parameter
		if fn.Receiver != nil {
			receiver = &model.Parameter{DRI: ref, Type: r.types.ToBound(fn.Receiver)}
		}

		params := make([]*model.Parameter, len(fn.Parameters))
		for i, p := range fn.Parameters {
			params[i] = r.parameter(p, ref.WithTarget(dri.ToCallableParameter(i)), docs)
		}

		name := fn.Name
		returnType := r.types.ToBound(fn.ReturnType)
		if fn.IsConstructor {
			if owner, ok := fn.ID.Class(); ok {
				name = owner.ShortName()
				if fn.ReturnType == nil {
					returnType = r.types.ToBound(&symbol.ClassType{ID: owner})
				}
			}
		}

		var more []model.Extra
		if len(fn.Throws) > 0 {
			var thrown []dri.DRI
			for _, id := range fn.Throws {
				thrown = append(thrown, classDRI(id))
			}
			more = append(more, model.CheckedExceptions{Exceptions: thrown})
		}

		return &model.Function{
			Member: model.Member{
				DRI:           ref,
				Name:          name,
				Visibility:    visibility(fn.Visibility),
				Modality:      modality(fn.Modality),
				Generics:      generics,
				IsExpect:      fn.IsExpect,
				Documentation: docs,
				Sources:       sources(fn),
				SourceSets:    r.sourceSets(),
				Extras:        declarationExtras(fn, &fn.Declaration, more...),
			},
			IsConstructor: fn.IsConstructor,
			Receiver:      receiver,
			Parameters:    params,
			Type:          returnType,
			InheritedFrom: inherited,
			Obvious:       r.obvious.IsObvious(fn.Origin, docs != nil, fn.IsOverride, ref),
		}, nil
	})
}

// parameter translates a value parameter. Its documentation is the matching
// @param tag of the function.
func (r *run) parameter(p *symbol.ValueParameter, ref dri.DRI, fnDocs *doc.Tree) *model.Parameter {
	var docs *doc.Tree
	if tag, ok := fnDocs.Tag("param", p.Name); ok {
		docs = &doc.Tree{Description: tag.Body}
	}

	var items []model.Extra
	if anns := annotations(p.Annotations); anns != nil {
		items = append(items, model.Annotations{Items: anns})
	}
	if len(p.Modifiers) > 0 {
		mods := make([]string, len(p.Modifiers))
		for i, m := range p.Modifiers {
			mods[i] = string(m)
		}
		items = append(items, model.Modifiers{Items: mods})
	}

	return &model.Parameter{
		DRI:           ref,
		Name:          p.Name,
		Type:          r.types.ToBound(p.Type),
		DefaultValue:  expression(p.Default),
		Documentation: docs,
		Extras:        model.NewExtras(items...),
	}
}

// visitAnyProperty translates Kotlin properties, Java fields and synthetic
// Java properties into one Property shape.
func (r *run) visitAnyProperty(sym symbol.Symbol, parent dri.DRI) (*model.Property, error) {
	return guard(sym, func() (*model.Property, error) {
		ref, err := Resolve(sym)
		if err != nil {
			return nil, err
		}
		defer r.types.Enter(ref)()
		docs, err := r.documentation(sym)
		if err != nil {
			return nil, err
		}

		switch s := sym.(type) {
		case *symbol.Property:
			return r.property(s, ref, parent, docs)
		case *symbol.JavaField:
			return &model.Property{
				Member:        r.member(sym, &s.Declaration, ref, nil, docs),
				Type:          r.types.ToBound(s.Type),
				IsVar:         s.IsVar,
				InheritedFrom: InheritedFrom(ref, parent),
				DefaultValue:  literal(s.Value),
				Obvious:       r.obvious.IsObvious(s.Origin, docs != nil, false, ref),
			}, nil
		case *symbol.SyntheticJavaProperty:
			p := &model.Property{
				Member:        r.member(sym, &s.Declaration, ref, nil, docs),
				Type:          r.types.ToBound(s.Type),
				IsVar:         s.Setter != nil,
				InheritedFrom: InheritedFrom(ref, parent),
				Obvious:       r.obvious.IsObvious(s.Origin, docs != nil, false, ref),
			}
			if s.Getter != nil {
				if p.Getter, err = r.accessor(s.Getter, ref, "get", s.Name); err != nil {
					return nil, err
				}
				p.Visibility = visibility(s.Getter.Visibility)
			}
			if s.Setter != nil {
				if p.Setter, err = r.accessor(s.Setter, ref, "set", s.Name); err != nil {
					return nil, err
				}
			}
			return p, nil
		}
		return nil, fmt.Errorf("not a property: %T", sym)
	})
}

func (r *run) property(s *symbol.Property, ref, parent dri.DRI, docs *doc.Tree) (*model.Property, error) {
	generics := r.generics(s.TypeParameters, ref)

	p := &model.Property{
		Member:        r.member(s, &s.Declaration, ref, generics, docs),
		Type:          r.types.ToBound(s.Type),
		IsVar:         s.IsVar,
		InheritedFrom: InheritedFrom(ref, parent),
		DefaultValue:  literal(s.Initializer),
		Obvious:       r.obvious.IsObvious(s.Origin, docs != nil, s.IsOverride, ref),
	}
	if s.Receiver != nil {
		p.Receiver = &model.Parameter{DRI: ref, Type: r.types.ToBound(s.Receiver)}
	}

	var err error
	if s.Getter != nil {
		if p.Getter, err = r.accessor(s.Getter, ref, "get", s.Name); err != nil {
			return nil, err
		}
	}
	if s.Setter != nil {
		if p.Setter, err = r.accessor(s.Setter, ref, "set", s.Name); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *run) member(sym symbol.Symbol, d *symbol.Declaration, ref dri.DRI, generics []*model.TypeParameter, docs *doc.Tree) model.Member {
	return model.Member{
		DRI:           ref,
		Name:          d.Name,
		Visibility:    visibility(d.Visibility),
		Modality:      modality(d.Modality),
		Generics:      generics,
		IsExpect:      d.IsExpect,
		Documentation: docs,
		Sources:       sources(sym),
		SourceSets:    r.sourceSets(),
		Extras:        declarationExtras(sym, d),
	}
}

// accessor translates a getter or setter. Its DRI hangs off the property's
// so accessors of overriding properties share identity as well.
func (r *run) accessor(fn *symbol.Function, property dri.DRI, kind, name string) (*model.Function, error) {
	return guard(fn, func() (*model.Function, error) {
		var params []dri.TypeRef
		for _, p := range fn.Parameters {
			params = append(params, typeRef(p.Type, nil))
		}
		var receiver dri.TypeRef
		if property.Callable != nil {
			receiver = property.Callable.Receiver
		}
		ref := property.WithCallable(&dri.Callable{
			Name:     "<" + kind + "-" + name + ">",
			Receiver: receiver,
			Params:   params,
		})

		docs, err := r.documentation(fn)
		if err != nil {
			return nil, err
		}

		out := make([]*model.Parameter, len(fn.Parameters))
		for i, p := range fn.Parameters {
			out[i] = r.parameter(p, ref.WithTarget(dri.ToCallableParameter(i)), docs)
		}

		return &model.Function{
			Member:     r.member(fn, &fn.Declaration, ref, nil, docs),
			Parameters: out,
			Type:       r.types.ToBound(fn.ReturnType),
		}, nil
	})
}

// literal keeps constant initializers; computed ones are implementation
// detail and are not documented.
func literal(v symbol.Value) model.Expr {
	if c, ok := v.(*symbol.Constant); ok {
		return constant(c)
	}
	return nil
}
