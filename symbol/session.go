package symbol

import (
	"path/filepath"
	"sort"
	"strings"
)

// File is a source file known to the compiler.
type File struct {
	Path    string
	Package string
}

// PackageScope is the member scope of one package.
type PackageScope struct {
	Name        string
	Callables   []Symbol // functions and properties
	Classifiers []Symbol // classes, objects and type aliases
}

// Session is the analysis context of one compilation. It is read-only once
// built and is passed explicitly to every resolution call.
type Session struct {
	module      string
	roots       []string
	files       []File
	packages    map[string]*PackageScope
	classes     map[ClassID]*Class
	typeAliases map[ClassID]*TypeAlias
}

func NewSession(module string) *Session {
	return &Session{
		module:      module,
		packages:    make(map[string]*PackageScope),
		classes:     make(map[ClassID]*Class),
		typeAliases: make(map[ClassID]*TypeAlias),
	}
}

func (s *Session) Module() string { return s.module }

func (s *Session) SourceRoots() []string { return s.roots }

func (s *Session) Files() []File { return s.files }

// Package returns the scope of the named package. ok is false when the package
// is not known, for example because the index changed after file discovery.
func (s *Session) Package(name string) (*PackageScope, bool) {
	p, ok := s.packages[name]
	return p, ok
}

func (s *Session) PackageNames() []string {
	names := make([]string, 0, len(s.packages))
	for name := range s.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Class looks up a classifier by ID, including nested classes.
func (s *Session) Class(id ClassID) (*Class, bool) {
	c, ok := s.classes[id]
	return c, ok
}

func (s *Session) TypeAlias(id ClassID) (*TypeAlias, bool) {
	a, ok := s.typeAliases[id]
	return a, ok
}

// IsUnderSourceRoot reports whether path lies under one of roots.
func IsUnderSourceRoot(path string, roots []string) bool {
	if path == "" {
		return false
	}
	path = filepath.Clean(path)
	for _, root := range roots {
		root = filepath.Clean(root)
		if root == "." || path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Builder assembles a Session. It is used by loaders and tests.
type Builder struct {
	s *Session
}

func NewBuilder(module string) *Builder {
	return &Builder{s: NewSession(module)}
}

func (b *Builder) SourceRoots(roots ...string) *Builder {
	b.s.roots = append(b.s.roots, roots...)
	return b
}

func (b *Builder) File(path, pkg string) *Builder {
	b.s.files = append(b.s.files, File{Path: path, Package: pkg})
	return b
}

func (b *Builder) scope(pkg string) *PackageScope {
	p, ok := b.s.packages[pkg]
	if !ok {
		p = &PackageScope{Name: pkg}
		b.s.packages[pkg] = p
	}
	return p
}

// Package makes sure an (possibly empty) package scope exists.
func (b *Builder) Package(pkg string) *Builder {
	b.scope(pkg)
	return b
}

// Class registers a top-level classifier in its package and indexes it and
// every class nested in its scopes.
func (b *Builder) Class(c *Class) *Builder {
	p := b.scope(c.ID.Package)
	p.Classifiers = append(p.Classifiers, c)
	b.index(c)
	return b
}

// Library indexes a classifier without adding it to a package scope, the way
// dependency classes are reachable only through lookups.
func (b *Builder) Library(c *Class) *Builder {
	b.index(c)
	return b
}

func (b *Builder) index(c *Class) {
	if _, seen := b.s.classes[c.ID]; seen {
		return
	}
	b.s.classes[c.ID] = c
	for _, scope := range [][]Symbol{c.Members, c.StaticMembers} {
		for _, m := range scope {
			if nested, ok := m.(*Class); ok {
				b.index(nested)
			}
		}
	}
}

func (b *Builder) TypeAlias(a *TypeAlias) *Builder {
	p := b.scope(a.ID.Package)
	p.Classifiers = append(p.Classifiers, a)
	b.s.typeAliases[a.ID] = a
	return b
}

func (b *Builder) Callable(pkg string, sym Symbol) *Builder {
	p := b.scope(pkg)
	p.Callables = append(p.Callables, sym)
	return b
}

func (b *Builder) Build() *Session {
	return b.s
}
