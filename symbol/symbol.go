// Package symbol describes the read-only symbol graph a compiler front-end hands to the
// documentation translator.
package symbol

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityInternal  Visibility = "internal"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
	VisibilityLocal     Visibility = "local"
)

type Modality string

const (
	ModalityFinal    Modality = "final"
	ModalityOpen     Modality = "open"
	ModalityAbstract Modality = "abstract"
	ModalitySealed   Modality = "sealed"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindObject     ClassKind = "object"
	ClassKindCompanion  ClassKind = "companion"
	ClassKindEnum       ClassKind = "enum"
	ClassKindEnumEntry  ClassKind = "enum_entry"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindAnonymous  ClassKind = "anonymous"
)

// Origin tells where a symbol came from.
type Origin string

const (
	OriginSource    Origin = "source"
	OriginLibrary   Origin = "library"
	OriginJava      Origin = "java"
	OriginSynthetic Origin = "synthetic" // generated by the compiler (data class members, enum values())
	OriginInherited Origin = "inherited" // materialized in a subclass scope from a supertype
)

func (o Origin) IsGenerated() bool {
	return o == OriginSynthetic || o == OriginInherited
}

type Modifier string

const (
	ModifierData        Modifier = "data"
	ModifierInline      Modifier = "inline"
	ModifierValue       Modifier = "value"
	ModifierFun         Modifier = "fun"
	ModifierInner       Modifier = "inner"
	ModifierSuspend     Modifier = "suspend"
	ModifierOperator    Modifier = "operator"
	ModifierInfix       Modifier = "infix"
	ModifierTailrec     Modifier = "tailrec"
	ModifierExternal    Modifier = "external"
	ModifierConst       Modifier = "const"
	ModifierLateinit    Modifier = "lateinit"
	ModifierVararg      Modifier = "vararg"
	ModifierNoinline    Modifier = "noinline"
	ModifierCrossinline Modifier = "crossinline"
	ModifierStatic      Modifier = "static"
)

// ClassID names a classifier: its package and its dot separated chain of
// enclosing class names. It is comparable and used as an identity key.
type ClassID struct {
	Package  string
	Relative string
}

// ParseClassID reads the "pkg.name/Outer.Inner" form. A missing slash means the
// root package.
func ParseClassID(s string) ClassID {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return ClassID{Package: s[:i], Relative: s[i+1:]}
	}
	return ClassID{Relative: s}
}

func (id ClassID) String() string {
	return id.Package + "/" + id.Relative
}

func (id ClassID) IsZero() bool {
	return id.Package == "" && id.Relative == ""
}

func (id ClassID) FQName() string {
	if id.Package == "" {
		return id.Relative
	}
	return id.Package + "." + id.Relative
}

func (id ClassID) ShortName() string {
	if i := strings.LastIndex(id.Relative, "."); i >= 0 {
		return id.Relative[i+1:]
	}
	return id.Relative
}

func (id ClassID) Outer() (ClassID, bool) {
	i := strings.LastIndex(id.Relative, ".")
	if i < 0 {
		return ClassID{}, false
	}
	return ClassID{Package: id.Package, Relative: id.Relative[:i]}, true
}

func (id ClassID) Nested(name string) ClassID {
	if id.Relative == "" {
		return ClassID{Package: id.Package, Relative: name}
	}
	return ClassID{Package: id.Package, Relative: id.Relative + "." + name}
}

// CallableID locates a function or property by package, enclosing class chain
// (empty for top-level callables) and name.
type CallableID struct {
	Package   string
	ClassName string
	Name      string
}

func (id CallableID) Class() (ClassID, bool) {
	if id.ClassName == "" {
		return ClassID{}, false
	}
	return ClassID{Package: id.Package, Relative: id.ClassName}, true
}

func (id CallableID) String() string {
	return id.Package + "/" + id.ClassName + "#" + id.Name
}

// Symbol is implemented by every declaration in the graph.
type Symbol interface {
	symbol()
	SymbolName() string
	SourceFile() string
	DocComment() string
	DeclaredAnnotations() []Annotation
}

// Declaration holds what every named declaration carries.
type Declaration struct {
	Name        string
	Visibility  Visibility
	Modality    Modality
	Origin      Origin
	File        string
	Doc         string
	IsExpect    bool
	IsActual    bool
	Modifiers   []Modifier
	Annotations []Annotation
}

func (d *Declaration) SymbolName() string { return d.Name }
func (d *Declaration) SourceFile() string { return d.File }
func (d *Declaration) DocComment() string { return d.Doc }

func (d *Declaration) DeclaredAnnotations() []Annotation { return d.Annotations }

func (d *Declaration) Has(m Modifier) bool {
	for _, x := range d.Modifiers {
		if x == m {
			return true
		}
	}
	return false
}

type Class struct {
	Declaration
	ID             ClassID
	Kind           ClassKind
	TypeParameters []*TypeParameter
	Supertypes     []Type
	Members        []Symbol // instance scope, including inherited members
	StaticMembers  []Symbol // static scope, including compiler generated enum members
	Companion      string
	EnumEntries    []*EnumEntry
}

func (*Class) symbol() {}

func (c *Class) IsCompanion() bool { return c.Kind == ClassKindCompanion }

type EnumEntry struct {
	Declaration
	Owner   ClassID
	Members []Symbol
}

func (*EnumEntry) symbol() {}

type TypeParameter struct {
	Name        string
	Variance    Variance
	UpperBounds []Type
	IsReified   bool
}

type ValueParameter struct {
	Name        string
	Type        Type
	Default     Value
	Modifiers   []Modifier
	Annotations []Annotation
}

func (p *ValueParameter) Has(m Modifier) bool {
	for _, x := range p.Modifiers {
		if x == m {
			return true
		}
	}
	return false
}

type Function struct {
	Declaration
	ID             CallableID
	Receiver       Type
	Parameters     []*ValueParameter
	ReturnType     Type
	TypeParameters []*TypeParameter
	IsConstructor  bool
	IsPrimary      bool
	IsOverride     bool
	Overridden     []*Function // directly overridden symbols, in compiler order
	Throws         []ClassID
}

func (*Function) symbol() {}

type Property struct {
	Declaration
	ID             CallableID
	Receiver       Type
	Type           Type
	TypeParameters []*TypeParameter
	IsVar          bool
	IsOverride     bool
	Overridden     []*Property
	Getter         *Function
	Setter         *Function
	Initializer    Value
}

func (*Property) symbol() {}

// JavaField is a plain Java field.
type JavaField struct {
	Declaration
	ID    CallableID
	Type  Type
	IsVar bool
	Value Value
}

func (*JavaField) symbol() {}

// SyntheticJavaProperty is a getter/setter pair surfaced as one property. The
// accessor functions and any field of the same name are subsumed by it.
type SyntheticJavaProperty struct {
	Declaration
	ID     CallableID
	Type   Type
	Getter *Function
	Setter *Function
}

func (*SyntheticJavaProperty) symbol() {}

type TypeAlias struct {
	Declaration
	ID             ClassID
	TypeParameters []*TypeParameter
	Underlying     Type
}

func (*TypeAlias) symbol() {}
