// Package load reads a symbol graph from YAML.
//
// A document lists source files, the classes and top-level callables declared
// in them, and library classes that are only reachable through lookups:
//
//	module: app
//	sourceRoots: [src]
//	classes:
//	  - id: p/Repo
//	    file: src/Repo.kt
//	    typeParameters: [{name: T}]
//	    supertypes: [p/Store<T>]
//	    members:
//	      - kind: function
//	        name: find
//	        params: [{name: key, type: kotlin/String}]
//	        returns: T?
//	        overrides: ["p/Store#find(kotlin/String)"]
//
// Types are written as expressions, see parseType. Overridden callables are
// named by their "package/Class#name" key and resolved once every declaration
// is known. A function key may add its parameter types in parentheses, as
// written in params; the bare key must then name a single overload.
package load

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/symdoc/symbol"
)

var (
	// ErrUnknownSymbol is returned when a document refers to a callable it
	// does not declare.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrAmbiguousSymbol is returned when a key without parameter types
	// matches several overloads.
	ErrAmbiguousSymbol = errors.New("ambiguous symbol")
)

type document struct {
	Module      string       `yaml:"module"`
	SourceRoots []string     `yaml:"sourceRoots"`
	Files       []fileNode   `yaml:"files"`
	Classes     []classNode  `yaml:"classes"`
	Libraries   []classNode  `yaml:"libraries"`
	TypeAliases []aliasNode  `yaml:"typeAliases"`
	Callables   []memberNode `yaml:"callables"`
}

type fileNode struct {
	Path    string `yaml:"path"`
	Package string `yaml:"package"`
}

type declNode struct {
	Name        string           `yaml:"name"`
	File        string           `yaml:"file"`
	Visibility  string           `yaml:"visibility"`
	Modality    string           `yaml:"modality"`
	Origin      string           `yaml:"origin"`
	Doc         string           `yaml:"doc"`
	Expect      bool             `yaml:"expect"`
	Actual      bool             `yaml:"actual"`
	Modifiers   []string         `yaml:"modifiers"`
	Annotations []annotationNode `yaml:"annotations"`
}

type typeParamNode struct {
	Name     string   `yaml:"name"`
	Variance string   `yaml:"variance"`
	Bounds   []string `yaml:"bounds"`
	Reified  bool     `yaml:"reified"`
}

type classNode struct {
	declNode       `yaml:",inline"`
	ID             string          `yaml:"id"`
	Kind           string          `yaml:"kind"`
	TypeParameters []typeParamNode `yaml:"typeParameters"`
	Supertypes     []string        `yaml:"supertypes"`
	Companion      string          `yaml:"companion"`
	Members        []memberNode    `yaml:"members"`
	Static         []memberNode    `yaml:"static"`
	Entries        []entryNode     `yaml:"entries"`
}

type entryNode struct {
	declNode `yaml:",inline"`
	Members  []memberNode `yaml:"members"`
}

type paramNode struct {
	Name        string           `yaml:"name"`
	Type        string           `yaml:"type"`
	Default     *valueNode       `yaml:"default"`
	Modifiers   []string         `yaml:"modifiers"`
	Annotations []annotationNode `yaml:"annotations"`
}

type memberNode struct {
	declNode `yaml:",inline"`
	// Kind is function, constructor, property, field, javaProperty or class.
	Kind           string          `yaml:"kind"`
	Package        string          `yaml:"package"`
	TypeParameters []typeParamNode `yaml:"typeParameters"`
	Receiver       string          `yaml:"receiver"`
	Params         []paramNode     `yaml:"params"`
	Returns        string          `yaml:"returns"`
	Type           string          `yaml:"type"`
	Override       bool            `yaml:"override"`
	Overrides      []string        `yaml:"overrides"`
	Primary        bool            `yaml:"primary"`
	Throws         []string        `yaml:"throws"`
	Var            bool            `yaml:"var"`
	Value          *valueNode      `yaml:"value"`
	Get            *memberNode     `yaml:"get"`
	Set            *memberNode     `yaml:"set"`
	Getter         string          `yaml:"getter"`
	Setter         string          `yaml:"setter"`
	Class          *classNode      `yaml:"class"`
}

type aliasNode struct {
	declNode       `yaml:",inline"`
	ID             string          `yaml:"id"`
	TypeParameters []typeParamNode `yaml:"typeParameters"`
	Underlying     string          `yaml:"underlying"`
}

// File decodes the graph stored at path.
func File(path string) (*symbol.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol graph: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads one YAML document. Unknown keys are rejected.
func Decode(r io.Reader) (*symbol.Session, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode symbol graph: %w", err)
	}

	d := &decoder{
		b:          symbol.NewBuilder(doc.Module).SourceRoots(doc.SourceRoots...),
		functions:  make(map[string]*symbol.Function),
		overloads:  make(map[string][]*symbol.Function),
		properties: make(map[string]*symbol.Property),
		files:      make(map[string]bool),
	}
	for _, f := range doc.Files {
		d.file(f.Path, f.Package)
	}
	if err := d.document(&doc); err != nil {
		return nil, err
	}
	if err := d.link(); err != nil {
		return nil, err
	}
	return d.b.Build(), nil
}

type pendingOverride struct {
	function *symbol.Function
	property *symbol.Property
	keys     []string
}

type decoder struct {
	b          *symbol.Builder
	functions  map[string]*symbol.Function   // by name and parameter types
	overloads  map[string][]*symbol.Function // by name
	properties map[string]*symbol.Property
	overrides  []pendingOverride
	files      map[string]bool
	library    bool
}

// file registers a source file the first time it is seen. Library
// declarations contribute no files.
func (d *decoder) file(path, pkg string) {
	if path == "" || d.library || d.files[path] {
		return
	}
	d.files[path] = true
	d.b.File(path, pkg)
}

func (d *decoder) document(doc *document) error {
	for i := range doc.Classes {
		c, err := d.class(&doc.Classes[i], "", nil)
		if err != nil {
			return err
		}
		d.b.Class(c)
	}

	d.library = true
	for i := range doc.Libraries {
		c, err := d.class(&doc.Libraries[i], "", nil)
		if err != nil {
			return err
		}
		d.b.Library(c)
	}
	d.library = false

	for i := range doc.TypeAliases {
		a, err := d.typeAlias(&doc.TypeAliases[i])
		if err != nil {
			return err
		}
		d.b.TypeAlias(a)
	}

	for i := range doc.Callables {
		n := &doc.Callables[i]
		owner := symbol.ClassID{Package: n.Package}
		sym, err := d.member(n, owner, n.File, nil, nil)
		if err != nil {
			return err
		}
		d.file(n.File, n.Package)
		d.b.Callable(n.Package, sym)
	}
	return nil
}

// link resolves overridden keys now that every callable is known.
func (d *decoder) link() error {
	for _, p := range d.overrides {
		for _, key := range p.keys {
			switch {
			case p.function != nil:
				fn, err := d.overridden(key)
				if err != nil {
					return fmt.Errorf("%s overrides %s: %w", p.function.ID, key, err)
				}
				p.function.Overridden = append(p.function.Overridden, fn)
			case p.property != nil:
				prop, ok := d.properties[key]
				if !ok {
					return fmt.Errorf("%s overrides %s: %w", p.property.ID, key, ErrUnknownSymbol)
				}
				p.property.Overridden = append(p.property.Overridden, prop)
			}
		}
	}
	return nil
}

func (d *decoder) overridden(key string) (*symbol.Function, error) {
	if strings.HasSuffix(key, ")") {
		fn, ok := d.functions[strings.ReplaceAll(key, " ", "")]
		if !ok {
			return nil, ErrUnknownSymbol
		}
		return fn, nil
	}
	switch fns := d.overloads[key]; len(fns) {
	case 0:
		return nil, ErrUnknownSymbol
	case 1:
		return fns[0], nil
	default:
		return nil, fmt.Errorf("%d overloads: %w", len(fns), ErrAmbiguousSymbol)
	}
}

// signatureKey is the function key with its parameter types as written in the
// document, blanks removed.
func signatureKey(id symbol.CallableID, params []paramNode) string {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = strings.ReplaceAll(p.Type, " ", "")
	}
	return id.String() + "(" + strings.Join(types, ",") + ")"
}

func (d *decoder) declaration(n *declNode, name, file string) (symbol.Declaration, error) {
	if n.Name != "" {
		name = n.Name
	}
	if n.File != "" {
		file = n.File
	}
	origin := symbol.Origin(n.Origin)
	if origin == "" {
		origin = symbol.OriginSource
		if d.library {
			origin = symbol.OriginLibrary
		}
	}
	switch origin {
	case symbol.OriginSource, symbol.OriginLibrary, symbol.OriginJava, symbol.OriginSynthetic, symbol.OriginInherited:
	default:
		return symbol.Declaration{}, fmt.Errorf("%s: unknown origin %q", name, n.Origin)
	}

	var mods []symbol.Modifier
	for _, m := range n.Modifiers {
		mods = append(mods, symbol.Modifier(m))
	}
	return symbol.Declaration{
		Name:        name,
		Visibility:  symbol.Visibility(n.Visibility),
		Modality:    symbol.Modality(n.Modality),
		Origin:      origin,
		File:        file,
		Doc:         n.Doc,
		IsExpect:    n.Expect,
		IsActual:    n.Actual,
		Modifiers:   mods,
		Annotations: annotations(n.Annotations),
	}, nil
}

// typeParameters declares params in a new scope and then parses their bounds
// in it, so a bound may mention any parameter of the same list.
func (d *decoder) typeParameters(nodes []typeParamNode, outer *scope) ([]*symbol.TypeParameter, *scope, error) {
	if len(nodes) == 0 {
		return nil, outer, nil
	}
	params := make([]*symbol.TypeParameter, len(nodes))
	for i, n := range nodes {
		params[i] = &symbol.TypeParameter{Name: n.Name, Variance: symbol.Variance(n.Variance), IsReified: n.Reified}
	}
	sc := outer.with(params)
	for i, n := range nodes {
		for _, b := range n.Bounds {
			t, err := parseType(b, sc)
			if err != nil {
				return nil, nil, fmt.Errorf("bound of %s: %w", n.Name, err)
			}
			params[i].UpperBounds = append(params[i].UpperBounds, t)
		}
	}
	return params, sc, nil
}

func (d *decoder) optionalType(expr string, sc *scope) (symbol.Type, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	return parseType(expr, sc)
}

func (d *decoder) class(n *classNode, file string, outer *scope) (*symbol.Class, error) {
	id := symbol.ParseClassID(n.ID)
	if id.Relative == "" {
		return nil, fmt.Errorf("class without id (name %q)", n.Name)
	}
	decl, err := d.declaration(&n.declNode, id.ShortName(), file)
	if err != nil {
		return nil, err
	}
	d.file(decl.File, id.Package)

	kind := symbol.ClassKind(n.Kind)
	if kind == "" {
		kind = symbol.ClassKindClass
	}
	c := &symbol.Class{Declaration: decl, ID: id, Kind: kind, Companion: n.Companion}

	var sc *scope
	if c.TypeParameters, sc, err = d.typeParameters(n.TypeParameters, outer); err != nil {
		return nil, fmt.Errorf("class %s: %w", id, err)
	}
	for _, st := range n.Supertypes {
		t, err := parseType(st, sc)
		if err != nil {
			return nil, fmt.Errorf("class %s: supertype: %w", id, err)
		}
		c.Supertypes = append(c.Supertypes, t)
	}

	if c.Members, err = d.members(n.Members, id, decl.File, sc); err != nil {
		return nil, fmt.Errorf("class %s: %w", id, err)
	}
	if c.StaticMembers, err = d.members(n.Static, id, decl.File, sc); err != nil {
		return nil, fmt.Errorf("class %s: %w", id, err)
	}

	for i := range n.Entries {
		e := &n.Entries[i]
		entryDecl, err := d.declaration(&e.declNode, e.Name, decl.File)
		if err != nil {
			return nil, err
		}
		members, err := d.members(e.Members, id.Nested(entryDecl.Name), decl.File, sc)
		if err != nil {
			return nil, fmt.Errorf("enum entry %s.%s: %w", id, entryDecl.Name, err)
		}
		c.EnumEntries = append(c.EnumEntries, &symbol.EnumEntry{Declaration: entryDecl, Owner: id, Members: members})
	}
	return c, nil
}

func (d *decoder) members(nodes []memberNode, owner symbol.ClassID, file string, sc *scope) ([]symbol.Symbol, error) {
	out := make([]symbol.Symbol, 0, len(nodes))
	for i := range nodes {
		sym, err := d.member(&nodes[i], owner, file, sc, out)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, nil
}

// member decodes one member. siblings are the members decoded before it;
// synthetic Java properties name their accessors among them.
func (d *decoder) member(n *memberNode, owner symbol.ClassID, file string, sc *scope, siblings []symbol.Symbol) (symbol.Symbol, error) {
	switch n.Kind {
	case "class":
		if n.Class == nil {
			return nil, fmt.Errorf("member %q: kind class needs a class", n.Name)
		}
		return d.class(n.Class, file, sc)
	case "function", "constructor", "":
		return d.function(n, owner, file, sc)
	case "property":
		return d.property(n, owner, file, sc)
	case "field":
		return d.field(n, owner, file, sc)
	case "javaProperty":
		return d.javaProperty(n, owner, file, sc, siblings)
	}
	return nil, fmt.Errorf("member %q: unknown kind %q", n.Name, n.Kind)
}

func callableID(owner symbol.ClassID, name string) symbol.CallableID {
	return symbol.CallableID{Package: owner.Package, ClassName: owner.Relative, Name: name}
}

func (d *decoder) function(n *memberNode, owner symbol.ClassID, file string, outer *scope) (*symbol.Function, error) {
	name := n.Name
	isConstructor := n.Kind == "constructor"
	if isConstructor && name == "" {
		name = "<init>"
	}
	decl, err := d.declaration(&n.declNode, name, file)
	if err != nil {
		return nil, err
	}
	fn := &symbol.Function{
		Declaration:   decl,
		ID:            callableID(owner, decl.Name),
		IsConstructor: isConstructor,
		IsPrimary:     n.Primary,
		IsOverride:    n.Override,
	}
	wrap := func(err error) error { return fmt.Errorf("function %s: %w", fn.ID, err) }

	var sc *scope
	if fn.TypeParameters, sc, err = d.typeParameters(n.TypeParameters, outer); err != nil {
		return nil, wrap(err)
	}
	if fn.Receiver, err = d.optionalType(n.Receiver, sc); err != nil {
		return nil, wrap(err)
	}
	if fn.ReturnType, err = d.optionalType(n.Returns, sc); err != nil {
		return nil, wrap(err)
	}
	for _, p := range n.Params {
		vp, err := d.parameter(&p, sc)
		if err != nil {
			return nil, wrap(err)
		}
		fn.Parameters = append(fn.Parameters, vp)
	}
	for _, t := range n.Throws {
		fn.Throws = append(fn.Throws, symbol.ParseClassID(t))
	}

	if key := signatureKey(fn.ID, n.Params); d.functions[key] == nil {
		d.functions[key] = fn
		d.overloads[fn.ID.String()] = append(d.overloads[fn.ID.String()], fn)
	}
	if len(n.Overrides) > 0 {
		d.overrides = append(d.overrides, pendingOverride{function: fn, keys: n.Overrides})
	}
	return fn, nil
}

func (d *decoder) parameter(n *paramNode, sc *scope) (*symbol.ValueParameter, error) {
	t, err := parseType(n.Type, sc)
	if err != nil {
		return nil, fmt.Errorf("parameter %s: %w", n.Name, err)
	}
	vp := &symbol.ValueParameter{Name: n.Name, Type: t, Annotations: annotations(n.Annotations)}
	if n.Default != nil {
		vp.Default = n.Default.value
	}
	for _, m := range n.Modifiers {
		vp.Modifiers = append(vp.Modifiers, symbol.Modifier(m))
	}
	return vp, nil
}

func (d *decoder) property(n *memberNode, owner symbol.ClassID, file string, outer *scope) (*symbol.Property, error) {
	decl, err := d.declaration(&n.declNode, n.Name, file)
	if err != nil {
		return nil, err
	}
	p := &symbol.Property{
		Declaration: decl,
		ID:          callableID(owner, decl.Name),
		IsVar:       n.Var,
		IsOverride:  n.Override,
	}
	wrap := func(err error) error { return fmt.Errorf("property %s: %w", p.ID, err) }

	var sc *scope
	if p.TypeParameters, sc, err = d.typeParameters(n.TypeParameters, outer); err != nil {
		return nil, wrap(err)
	}
	if p.Receiver, err = d.optionalType(n.Receiver, sc); err != nil {
		return nil, wrap(err)
	}
	if p.Type, err = parseType(n.Type, sc); err != nil {
		return nil, wrap(err)
	}
	if n.Value != nil {
		p.Initializer = n.Value.value
	}
	if n.Get != nil {
		if p.Getter, err = d.accessor(n.Get, owner, "<get-"+decl.Name+">", decl, sc); err != nil {
			return nil, wrap(err)
		}
	}
	if n.Set != nil {
		if p.Setter, err = d.accessor(n.Set, owner, "<set-"+decl.Name+">", decl, sc); err != nil {
			return nil, wrap(err)
		}
	}

	if _, dup := d.properties[p.ID.String()]; !dup {
		d.properties[p.ID.String()] = p
	}
	if len(n.Overrides) > 0 {
		d.overrides = append(d.overrides, pendingOverride{property: p, keys: n.Overrides})
	}
	return p, nil
}

// accessor decodes a property getter or setter. Unset attributes are taken
// from the property.
func (d *decoder) accessor(n *memberNode, owner symbol.ClassID, name string, prop symbol.Declaration, sc *scope) (*symbol.Function, error) {
	decl, err := d.declaration(&n.declNode, name, prop.File)
	if err != nil {
		return nil, err
	}
	if decl.Visibility == "" {
		decl.Visibility = prop.Visibility
	}
	if n.Origin == "" {
		decl.Origin = prop.Origin
	}
	fn := &symbol.Function{Declaration: decl, ID: callableID(owner, name)}
	if fn.ReturnType, err = d.optionalType(n.Returns, sc); err != nil {
		return nil, err
	}
	for _, p := range n.Params {
		vp, err := d.parameter(&p, sc)
		if err != nil {
			return nil, err
		}
		fn.Parameters = append(fn.Parameters, vp)
	}
	return fn, nil
}

func (d *decoder) field(n *memberNode, owner symbol.ClassID, file string, sc *scope) (*symbol.JavaField, error) {
	decl, err := d.declaration(&n.declNode, n.Name, file)
	if err != nil {
		return nil, err
	}
	f := &symbol.JavaField{Declaration: decl, ID: callableID(owner, decl.Name), IsVar: n.Var}
	if f.Type, err = parseType(n.Type, sc); err != nil {
		return nil, fmt.Errorf("field %s: %w", f.ID, err)
	}
	if n.Value != nil {
		f.Value = n.Value.value
	}
	return f, nil
}

func (d *decoder) javaProperty(n *memberNode, owner symbol.ClassID, file string, sc *scope, siblings []symbol.Symbol) (*symbol.SyntheticJavaProperty, error) {
	decl, err := d.declaration(&n.declNode, n.Name, file)
	if err != nil {
		return nil, err
	}
	p := &symbol.SyntheticJavaProperty{Declaration: decl, ID: callableID(owner, decl.Name)}
	if p.Type, err = parseType(n.Type, sc); err != nil {
		return nil, fmt.Errorf("property %s: %w", p.ID, err)
	}
	if p.Getter, err = sibling(siblings, n.Getter); err != nil {
		return nil, fmt.Errorf("property %s: getter: %w", p.ID, err)
	}
	if p.Setter, err = sibling(siblings, n.Setter); err != nil {
		return nil, fmt.Errorf("property %s: setter: %w", p.ID, err)
	}
	return p, nil
}

func sibling(siblings []symbol.Symbol, name string) (*symbol.Function, error) {
	if name == "" {
		return nil, nil
	}
	for _, s := range siblings {
		if fn, ok := s.(*symbol.Function); ok && fn.Name == name {
			return fn, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnknownSymbol)
}

func (d *decoder) typeAlias(n *aliasNode) (*symbol.TypeAlias, error) {
	id := symbol.ParseClassID(n.ID)
	decl, err := d.declaration(&n.declNode, id.ShortName(), "")
	if err != nil {
		return nil, err
	}
	d.file(decl.File, id.Package)

	a := &symbol.TypeAlias{Declaration: decl, ID: id}
	var sc *scope
	if a.TypeParameters, sc, err = d.typeParameters(n.TypeParameters, nil); err != nil {
		return nil, fmt.Errorf("typealias %s: %w", id, err)
	}
	if a.Underlying, err = parseType(n.Underlying, sc); err != nil {
		return nil, fmt.Errorf("typealias %s: %w", id, err)
	}
	return a, nil
}
