package translate

import (
	"fmt"

	"github.com/dhamidi/symdoc/dri"
	"github.com/dhamidi/symdoc/model"
	"github.com/dhamidi/symdoc/symbol"
)

// members is a class or enum entry scope split by kind.
type members struct {
	constructors []*model.Function
	functions    []*model.Function
	properties   []*model.Property
	classlikes   []model.Classlike
}

// visitClasslike translates c unless it was already translated in this run,
// in which case it returns nil.
func (r *run) visitClasslike(c *symbol.Class) (model.Classlike, error) {
	if r.visited[c.ID] {
		return nil, nil
	}
	r.visited[c.ID] = true

	if err := r.ctx.Err(); err != nil {
		return nil, fmt.Errorf("translate %s: %w", c.ID, err)
	}

	return guard(c, func() (model.Classlike, error) {
		if c.Kind == symbol.ClassKindAnonymous {
			return nil, fmt.Errorf("%w: anonymous or local object", ErrUnsupported)
		}

		self := classDRI(c.ID)
		defer r.types.Enter(self)()
		base := model.ClasslikeBase{
			DRI:        self,
			Name:       c.ID.ShortName(),
			Visibility: visibility(c.Visibility),
			Modality:   modality(c.Modality),
			IsExpect:   c.IsExpect,
			Sources:    sources(c),
			SourceSets: r.sourceSets(),
		}
		base.Generics = r.generics(c.TypeParameters, self)

		for _, st := range c.Supertypes {
			if ct, ok := st.(*symbol.ClassType); ok && isUniversalRoot(ct.ID) {
				continue
			}
			base.Supertypes = append(base.Supertypes, r.types.ToTypeConstructorWithKind(st))
		}

		scope := make([]symbol.Symbol, 0, len(c.Members)+len(c.StaticMembers))
		scope = append(scope, c.Members...)
		scope = append(scope, c.StaticMembers...)
		m, err := r.visitMembers(c, scope, self)
		if err != nil {
			return nil, err
		}
		base.Constructors = m.constructors
		base.Functions = m.functions
		base.Properties = m.properties
		base.Classlikes = m.classlikes

		if c.Companion != "" {
			companion := classDRI(c.ID.Nested(c.Companion))
			base.Companion = &companion
		}

		if base.Documentation, err = r.documentation(c); err != nil {
			return nil, err
		}
		base.Extras = declarationExtras(c, &c.Declaration, r.ancestryExtras(c)...)

		switch c.Kind {
		case symbol.ClassKindClass:
			return &model.Class{ClasslikeBase: base}, nil
		case symbol.ClassKindInterface:
			return &model.Interface{ClasslikeBase: base}, nil
		case symbol.ClassKindObject:
			return &model.Object{ClasslikeBase: base}, nil
		case symbol.ClassKindCompanion:
			base.Extras = mergeExtras(base.Extras, model.IsCompanion{})
			return &model.Object{ClasslikeBase: base, IsCompanion: true}, nil
		case symbol.ClassKindAnnotation:
			return &model.AnnotationClass{ClasslikeBase: base}, nil
		case symbol.ClassKindEnum:
			entries, err := r.visitEnumEntries(c, self)
			if err != nil {
				return nil, err
			}
			return &model.Enum{ClasslikeBase: base, Entries: entries}, nil
		case symbol.ClassKindEnumEntry:
			return nil, fmt.Errorf("%w: enum entry outside of its enum", ErrUnsupported)
		case symbol.ClassKindAnonymous:
			return nil, fmt.Errorf("%w: anonymous or local object", ErrUnsupported)
		}
		return nil, fmt.Errorf("unknown class kind %q", c.Kind)
	})
}

func mergeExtras(e model.Extras, items ...model.Extra) model.Extras {
	all := make([]model.Extra, 0, len(e)+len(items))
	for _, x := range e {
		all = append(all, x)
	}
	return model.NewExtras(append(all, items...)...)
}

// ancestryExtras records the supertype closure, the implemented interfaces
// and any throwable supertypes of c.
func (r *run) ancestryExtras(c *symbol.Class) []model.Extra {
	a := r.types.BuildAncestryInformation(&symbol.ClassType{ID: c.ID})
	for _, u := range a.Unresolved {
		r.log.Warning("unresolved supertype", "run", r.id, "class", c.ID.String(), "supertype", u.String())
	}

	items := []model.Extra{model.Ancestry{Root: a.Root, Unresolved: a.Unresolved}}
	if ifaces := a.Root.AllInterfaces(); len(ifaces) > 0 {
		items = append(items, model.ImplementedInterfaces{Interfaces: ifaces})
	}

	self := classDRI(c.ID)
	var exceptions []dri.DRI
	for _, e := range a.Exceptions {
		if !e.Equal(self) {
			exceptions = append(exceptions, e)
		}
	}
	if len(exceptions) > 0 {
		items = append(items, model.ExceptionInSupertypes{Exceptions: exceptions})
	}
	return items
}

// visitMembers partitions a scope. Synthetic Java properties replace the
// accessors and fields they subsume, the placeholder companion of an enum is
// dropped, and classlikes already translated are skipped.
func (r *run) visitMembers(owner *symbol.Class, scope []symbol.Symbol, parent dri.DRI) (members, error) {
	subsumedAccessors := make(map[*symbol.Function]bool)
	subsumedFields := make(map[string]bool)
	for _, sym := range scope {
		if sp, ok := sym.(*symbol.SyntheticJavaProperty); ok {
			if sp.Getter != nil {
				subsumedAccessors[sp.Getter] = true
			}
			if sp.Setter != nil {
				subsumedAccessors[sp.Setter] = true
			}
			subsumedFields[sp.Name] = true
		}
	}

	var m members
	for _, sym := range scope {
		switch s := sym.(type) {
		case *symbol.Function:
			if subsumedAccessors[s] {
				continue
			}
			fn, err := r.visitFunction(s, parent)
			if err != nil {
				return members{}, err
			}
			if s.IsConstructor {
				m.constructors = append(m.constructors, fn)
			} else {
				m.functions = append(m.functions, fn)
			}
		case *symbol.JavaField:
			if subsumedFields[s.Name] {
				continue
			}
			p, err := r.visitAnyProperty(s, parent)
			if err != nil {
				return members{}, err
			}
			m.properties = append(m.properties, p)
		case *symbol.Property, *symbol.SyntheticJavaProperty:
			p, err := r.visitAnyProperty(s, parent)
			if err != nil {
				return members{}, err
			}
			m.properties = append(m.properties, p)
		case *symbol.Class:
			if owner != nil && isEnumCompanionPlaceholder(owner, s) {
				continue
			}
			c, err := r.visitClasslike(s)
			if err != nil {
				return members{}, err
			}
			if c != nil {
				m.classlikes = append(m.classlikes, c)
			}
		}
	}
	return m, nil
}

func isEnumCompanionPlaceholder(owner, nested *symbol.Class) bool {
	return owner.Kind == symbol.ClassKindEnum &&
		nested.Kind == symbol.ClassKindCompanion &&
		nested.Origin == symbol.OriginSynthetic
}

func (r *run) visitEnumEntries(c *symbol.Class, enum dri.DRI) ([]*model.EnumEntry, error) {
	var out []*model.EnumEntry
	for _, e := range c.EnumEntries {
		entry, err := guard(e, func() (*model.EnumEntry, error) {
			self := enum.WithClass(e.Name)
			m, err := r.visitMembers(nil, e.Members, self)
			if err != nil {
				return nil, err
			}
			docs, err := r.documentation(e)
			if err != nil {
				return nil, err
			}
			return &model.EnumEntry{
				DRI:           self,
				Name:          e.Name,
				Visibility:    visibility(e.Visibility),
				Functions:     m.functions,
				Properties:    m.properties,
				Classlikes:    m.classlikes,
				Documentation: docs,
				Sources:       sources(e),
				SourceSets:    r.sourceSets(),
				Extras:        declarationExtras(e, &e.Declaration),
			}, nil
		})
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *run) visitTypeAlias(a *symbol.TypeAlias) (*model.TypeAlias, error) {
	return guard(a, func() (*model.TypeAlias, error) {
		self := classDRI(a.ID)
		defer r.types.Enter(self)()
		generics := r.generics(a.TypeParameters, self)

		var projections []model.Projection
		for _, g := range generics {
			projections = append(projections, model.Projection{
				Variance: model.Invariant,
				Bound:    &model.TypeParameterRef{DRI: g.DRI, Name: g.Name, PresentableName: g.PresentableName},
			})
		}

		docs, err := r.documentation(a)
		if err != nil {
			return nil, err
		}

		return &model.TypeAlias{
			Member: model.Member{
				DRI:           self,
				Name:          a.ID.ShortName(),
				Visibility:    visibility(a.Visibility),
				Modality:      model.ModalityFinal,
				Generics:      generics,
				IsExpect:      a.IsExpect,
				Documentation: docs,
				Sources:       sources(a),
				SourceSets:    r.sourceSets(),
				Extras:        declarationExtras(a, &a.Declaration),
			},
			Type:       &model.TypeConstructor{DRI: self, Name: a.ID.Relative, Projections: projections},
			Underlying: r.types.ToBound(a.Underlying),
		}, nil
	})
}
