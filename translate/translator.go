// Package translate turns a compiler symbol graph into the documentation
// model. One Translator serves one session; every call to Translate is an
// independent run with its own visited set.
package translate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/symdoc/doc"
	"github.com/dhamidi/symdoc/dri"
	"github.com/dhamidi/symdoc/model"
	"github.com/dhamidi/symdoc/symbol"
)

type Translator struct {
	session *symbol.Session
	docs    doc.Extractor
	obvious ObviousPolicy
	log     commonlog.Logger
}

type Option func(*Translator)

// WithDocumentation sets the documentation service. Comments attached to
// symbols are still used when it returns nothing.
func WithDocumentation(e doc.Extractor) Option {
	return func(t *Translator) {
		t.docs = doc.Chain(e, doc.CommentExtractor{})
	}
}

func WithObviousPolicy(p ObviousPolicy) Option {
	return func(t *Translator) {
		t.obvious = p
	}
}

func WithLogger(l commonlog.Logger) Option {
	return func(t *Translator) {
		t.log = l
	}
}

func New(s *symbol.Session, opts ...Option) *Translator {
	t := &Translator{
		session: s,
		docs:    doc.CommentExtractor{},
		obvious: DefaultObviousPolicy(),
		log:     commonlog.GetLogger("symdoc.translate"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate builds the module for one source set. Either the complete module
// or an error is returned; a cancelled context aborts the run.
func (t *Translator) Translate(ctx context.Context, ss model.SourceSet) (*model.Module, error) {
	roots := ss.Roots
	if len(roots) == 0 {
		roots = t.session.SourceRoots()
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}

	r := &run{
		Translator: t,
		ctx:        ctx,
		id:         uuid.New().String(),
		sourceSet:  ss,
		roots:      roots,
		types:      NewTypeTranslator(t.session),
		visited:    make(map[symbol.ClassID]bool),
	}

	t.log.Info("translating source set", "run", r.id, "sourceSet", ss.ID, "module", t.session.Module())

	packages, err := r.packages()
	if err != nil {
		t.log.Error("translation failed", "run", r.id, "sourceSet", ss.ID, "error", err)
		return nil, err
	}

	t.log.Info("translated source set", "run", r.id, "sourceSet", ss.ID, "packages", len(packages), "classlikes", len(r.visited))

	return &model.Module{
		Name:       t.session.Module(),
		Packages:   packages,
		SourceSets: []model.SourceSet{ss},
		Extras:     model.NewExtras(model.TranslationRun{ID: r.id}),
	}, nil
}

// run is the state of one translation.
type run struct {
	*Translator
	ctx       context.Context
	id        string
	sourceSet model.SourceSet
	roots     []string
	types     *TypeTranslator
	visited   map[symbol.ClassID]bool
}

func (r *run) packages() ([]*model.Package, error) {
	var names []string
	seen := make(map[string]bool)
	for _, f := range r.session.Files() {
		if !symbol.IsUnderSourceRoot(f.Path, r.roots) || seen[f.Package] {
			continue
		}
		seen[f.Package] = true
		names = append(names, f.Package)
	}

	var out []*model.Package
	for _, name := range names {
		if err := r.ctx.Err(); err != nil {
			return nil, fmt.Errorf("translate package %s: %w", name, err)
		}
		scope, ok := r.session.Package(name)
		if !ok {
			r.log.Debug("skipping vanished package", "run", r.id, "package", name)
			continue
		}
		pkg, err := r.visitPackage(scope)
		if err != nil {
			return nil, err
		}
		out = append(out, pkg)
	}
	return out, nil
}

func (r *run) inSourceRoots(sym symbol.Symbol) bool {
	return symbol.IsUnderSourceRoot(sym.SourceFile(), r.roots)
}

func (r *run) visitPackage(scope *symbol.PackageScope) (*model.Package, error) {
	parent := dri.ForPackage(scope.Name)
	pkg := &model.Package{
		DRI:        parent,
		Name:       scope.Name,
		SourceSets: r.sourceSets(),
	}

	for _, sym := range scope.Callables {
		if !r.inSourceRoots(sym) {
			continue
		}
		switch s := sym.(type) {
		case *symbol.Function:
			fn, err := r.visitFunction(s, parent)
			if err != nil {
				return nil, err
			}
			pkg.Functions = append(pkg.Functions, fn)
		case *symbol.Property, *symbol.JavaField, *symbol.SyntheticJavaProperty:
			p, err := r.visitAnyProperty(sym, parent)
			if err != nil {
				return nil, err
			}
			pkg.Properties = append(pkg.Properties, p)
		}
	}

	for _, sym := range scope.Classifiers {
		if !r.inSourceRoots(sym) {
			continue
		}
		switch s := sym.(type) {
		case *symbol.Class:
			c, err := r.visitClasslike(s)
			if err != nil {
				return nil, err
			}
			if c != nil {
				pkg.Classlikes = append(pkg.Classlikes, c)
			}
		case *symbol.TypeAlias:
			a, err := r.visitTypeAlias(s)
			if err != nil {
				return nil, err
			}
			pkg.TypeAliases = append(pkg.TypeAliases, a)
		}
	}

	return pkg, nil
}

func (r *run) sourceSets() []string {
	return []string{r.sourceSet.ID}
}

func (r *run) documentation(sym symbol.Symbol) (*doc.Tree, error) {
	tree, err := r.docs.Documentation(r.session, sym)
	if err != nil {
		return nil, fmt.Errorf("documentation: %w", err)
	}
	return tree, nil
}

func sources(sym symbol.Symbol) []string {
	if f := sym.SourceFile(); f != "" {
		return []string{f}
	}
	return nil
}

func visibility(v symbol.Visibility) model.Visibility {
	switch v {
	case symbol.VisibilityProtected:
		return model.VisibilityProtected
	case symbol.VisibilityInternal:
		return model.VisibilityInternal
	case symbol.VisibilityPrivate, symbol.VisibilityLocal:
		return model.VisibilityPrivate
	case symbol.VisibilityPackage:
		return model.VisibilityPackage
	}
	return model.VisibilityPublic
}

func modality(m symbol.Modality) model.Modality {
	switch m {
	case symbol.ModalityOpen:
		return model.ModalityOpen
	case symbol.ModalityAbstract:
		return model.ModalityAbstract
	case symbol.ModalitySealed:
		return model.ModalitySealed
	}
	return model.ModalityFinal
}

// declarationExtras collects annotations and modifiers; absent ones are
// left out of the bag.
func declarationExtras(sym symbol.Symbol, d *symbol.Declaration, more ...model.Extra) model.Extras {
	var items []model.Extra
	if anns := AllAnnotations(sym); anns != nil {
		items = append(items, model.Annotations{Items: anns})
	}
	if mods := modifiers(d); mods != nil {
		items = append(items, model.Modifiers{Items: mods})
	}
	return model.NewExtras(append(items, more...)...)
}

func modifiers(d *symbol.Declaration) []string {
	var out []string
	for _, m := range d.Modifiers {
		out = append(out, string(m))
	}
	if d.IsActual {
		out = append(out, "actual")
	}
	return out
}
