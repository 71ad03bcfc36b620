// Package index flattens documentation modules into declaration entries and
// stores them for lookup by DRI or name.
package index

import (
	"context"
	"sort"
	"strings"

	"github.com/dhamidi/symdoc/dri"
	"github.com/dhamidi/symdoc/model"
)

// Entry is one declaration of a module. Members inherited into several
// classes share a DRI and differ by Parent.
type Entry struct {
	DRI           string
	SourceSet     string
	Kind          string
	Name          string
	Package       string
	Parent        string
	Visibility    string
	InheritedFrom string
	Obvious       bool
	Source        string
}

// Searcher finds entries whose name contains query, case-insensitively.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Entry, error)
}

// Flatten lists every declaration of m in traversal order.
func Flatten(m *model.Module) []Entry {
	f := &flattener{}
	for _, ss := range m.SourceSets {
		f.sourceSet = ss.ID
		for _, p := range m.Packages {
			f.pkg = p.Name
			f.add("package", p.DRI, p.Name, "", "", nil, false, nil)
			f.functions(p.DRI, p.Functions)
			f.properties(p.DRI, p.Properties)
			for _, c := range p.Classlikes {
				f.classlike(p.DRI, c)
			}
			for _, a := range p.TypeAliases {
				f.add("typealias", a.DRI, a.Name, p.DRI.String(), string(a.Visibility), nil, false, a.Sources)
			}
		}
	}
	return f.out
}

type flattener struct {
	sourceSet string
	pkg       string
	out       []Entry
}

func (f *flattener) add(kind string, d dri.DRI, name, parent, visibility string, inherited *dri.DRI, obvious bool, sources []string) {
	e := Entry{
		DRI:        d.String(),
		SourceSet:  f.sourceSet,
		Kind:       kind,
		Name:       name,
		Package:    f.pkg,
		Parent:     parent,
		Visibility: visibility,
		Obvious:    obvious,
	}
	if inherited != nil {
		e.InheritedFrom = inherited.String()
	}
	if len(sources) > 0 {
		e.Source = sources[0]
	}
	f.out = append(f.out, e)
}

func (f *flattener) classlike(parent dri.DRI, c model.Classlike) {
	b := c.Base()
	f.add(string(c.Kind()), b.DRI, b.Name, parent.String(), string(b.Visibility), nil, false, b.Sources)
	f.functions(b.DRI, b.Constructors)
	f.functions(b.DRI, b.Functions)
	f.properties(b.DRI, b.Properties)
	for _, nested := range b.Classlikes {
		f.classlike(b.DRI, nested)
	}
	if e, ok := c.(*model.Enum); ok {
		for _, entry := range e.Entries {
			f.add("entry", entry.DRI, entry.Name, b.DRI.String(), string(entry.Visibility), nil, false, entry.Sources)
			f.functions(entry.DRI, entry.Functions)
			f.properties(entry.DRI, entry.Properties)
			for _, nested := range entry.Classlikes {
				f.classlike(entry.DRI, nested)
			}
		}
	}
}

func (f *flattener) functions(parent dri.DRI, fns []*model.Function) {
	for _, fn := range fns {
		kind := "function"
		if fn.IsConstructor {
			kind = "constructor"
		}
		f.add(kind, fn.DRI, fn.Name, parent.String(), string(fn.Visibility), fn.InheritedFrom, fn.Obvious, fn.Sources)
	}
}

func (f *flattener) properties(parent dri.DRI, ps []*model.Property) {
	for _, p := range ps {
		f.add("property", p.DRI, p.Name, parent.String(), string(p.Visibility), p.InheritedFrom, p.Obvious, p.Sources)
	}
}

// Memory searches a slice of entries.
type Memory []Entry

// Search matches names case-insensitively. Exact matches sort first, then
// shorter names. Obvious members are left out.
func (m Memory) Search(ctx context.Context, query string, limit int) ([]Entry, error) {
	q := strings.ToLower(query)
	var out []Entry
	for _, e := range m {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.Obvious || !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ei, ej := strings.EqualFold(out[i].Name, query), strings.EqualFold(out[j].Name, query)
		if ei != ej {
			return ei
		}
		return len(out[i].Name) < len(out[j].Name)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
