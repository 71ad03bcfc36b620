package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/symdoc/doc"
	"github.com/dhamidi/symdoc/dri"
	"github.com/dhamidi/symdoc/model"
	"github.com/dhamidi/symdoc/symbol"
)

var mainSet = model.SourceSet{ID: "main", DisplayName: "main", Platform: "jvm"}

func decl(name, file string) symbol.Declaration {
	return symbol.Declaration{
		Name:       name,
		Visibility: symbol.VisibilityPublic,
		Modality:   symbol.ModalityFinal,
		Origin:     symbol.OriginSource,
		File:       file,
	}
}

func class(id, file string, kind symbol.ClassKind, members ...symbol.Symbol) *symbol.Class {
	cid := symbol.ParseClassID(id)
	return &symbol.Class{
		Declaration: decl(cid.ShortName(), file),
		ID:          cid,
		Kind:        kind,
		Members:     members,
	}
}

func function(owner symbol.ClassID, name, file string) *symbol.Function {
	return &symbol.Function{
		Declaration: decl(name, file),
		ID:          symbol.CallableID{Package: owner.Package, ClassName: owner.Relative, Name: name},
	}
}

func translate(t *testing.T, s *symbol.Session, opts ...Option) *model.Module {
	t.Helper()
	m, err := New(s, opts...).Translate(context.Background(), mainSet)
	require.NoError(t, err)
	return m
}

func allClasslikes(m *model.Module) []model.Classlike {
	var out []model.Classlike
	for _, p := range m.Packages {
		p.Walk(func(c model.Classlike) { out = append(out, c) })
	}
	return out
}

func TestTranslate_SingleClass(t *testing.T) {
	s := symbol.NewBuilder("app").
		File("src/Bar.kt", "").
		Class(class("Bar", "src/Bar.kt", symbol.ClassKindClass)).
		Build()

	m := translate(t, s)

	require.Len(t, m.Packages, 1)
	pkg := m.Packages[0]
	assert.Equal(t, "", pkg.Name)
	assert.Empty(t, pkg.Functions)
	assert.Empty(t, pkg.Properties)
	assert.Empty(t, pkg.TypeAliases)
	require.Len(t, pkg.Classlikes, 1)

	bar, ok := pkg.Classlikes[0].(*model.Class)
	require.True(t, ok, "got %T", pkg.Classlikes[0])
	assert.Equal(t, "Bar", bar.Name)
	assert.Equal(t, model.VisibilityPublic, bar.Visibility)
	assert.Equal(t, model.ModalityFinal, bar.Modality)
	assert.Empty(t, bar.Constructors)
	assert.Empty(t, bar.Functions)
	assert.Empty(t, bar.Properties)
	assert.Empty(t, bar.Classlikes)
	assert.Empty(t, bar.Generics)
	assert.Nil(t, bar.Documentation)
	assert.Equal(t, []string{"main"}, bar.SourceSets)

	_, hasAnnotations := model.Get[model.Annotations](bar.Extras)
	assert.False(t, hasAnnotations)
	run, ok := model.Get[model.TranslationRun](m.Extras)
	require.True(t, ok)
	assert.NotEmpty(t, run.ID)
}

func TestTranslate_OverrideChainSharesIdentity(t *testing.T) {
	a := class("p/A", "src/A.kt", symbol.ClassKindClass)
	a.Modality = symbol.ModalityOpen
	aFoo := function(a.ID, "foo", "src/A.kt")
	aFoo.Modality = symbol.ModalityOpen
	a.Members = []symbol.Symbol{aFoo}

	b := class("p/B", "src/B.kt", symbol.ClassKindClass)
	b.Modality = symbol.ModalityOpen
	b.Supertypes = []symbol.Type{&symbol.ClassType{ID: a.ID}}
	bFoo := function(b.ID, "foo", "src/B.kt")
	bFoo.IsOverride = true
	bFoo.Overridden = []*symbol.Function{aFoo}
	b.Members = []symbol.Symbol{bFoo}

	c := class("p/C", "src/C.kt", symbol.ClassKindClass)
	c.Supertypes = []symbol.Type{&symbol.ClassType{ID: b.ID}}
	cFoo := function(c.ID, "foo", "src/C.kt")
	cFoo.IsOverride = true
	cFoo.Overridden = []*symbol.Function{bFoo}
	c.Members = []symbol.Symbol{cFoo}

	s := symbol.NewBuilder("app").
		File("src/A.kt", "p").File("src/B.kt", "p").File("src/C.kt", "p").
		Class(a).Class(b).Class(c).
		Build()

	m := translate(t, s)
	classes := allClasslikes(m)
	require.Len(t, classes, 3)

	fa := classes[0].Base().Functions[0]
	fc := classes[2].Base().Functions[0]
	assert.True(t, fa.DRI.Equal(fc.DRI), "%s != %s", fa.DRI, fc.DRI)
	assert.Equal(t, "p/A/foo/#/decl/", fc.DRI.String())

	assert.Nil(t, fa.InheritedFrom)
	require.NotNil(t, fc.InheritedFrom)
	assert.Nil(t, fc.InheritedFrom.Callable)
	assert.Equal(t, dri.ForClass("p", "A").String(), fc.InheritedFrom.String())

	// a second run produces the same identities
	again := allClasslikes(translate(t, s))
	assert.Equal(t, fc.DRI.String(), again[2].Base().Functions[0].DRI.String())
}

func TestTranslate_SelfNestedCompanionTerminates(t *testing.T) {
	outer := class("p/Foo", "src/Foo.kt", symbol.ClassKindClass)
	companion := class("p/Foo.Companion", "src/Foo.kt", symbol.ClassKindCompanion)
	companion.Members = []symbol.Symbol{outer}
	outer.Members = []symbol.Symbol{companion}
	outer.Companion = "Companion"

	s := symbol.NewBuilder("app").File("src/Foo.kt", "p").Class(outer).Build()
	m := translate(t, s)

	seen := map[string]int{}
	for _, c := range allClasslikes(m) {
		seen[c.Base().DRI.String()]++
	}
	assert.Equal(t, map[string]int{
		"p/Foo///decl/":           1,
		"p/Foo.Companion///decl/": 1,
	}, seen)

	foo := m.Packages[0].Classlikes[0].Base()
	require.NotNil(t, foo.Companion)
	assert.Equal(t, "p/Foo.Companion///decl/", foo.Companion.String())

	obj, ok := foo.Classlikes[0].(*model.Object)
	require.True(t, ok)
	assert.True(t, obj.IsCompanion)
	_, marked := model.Get[model.IsCompanion](obj.Extras)
	assert.True(t, marked)
}

func TestTranslate_EnumCompanionPlaceholderDropped(t *testing.T) {
	enum := class("p/Color", "src/Color.kt", symbol.ClassKindEnum)
	placeholder := class("p/Color.Companion", "src/Color.kt", symbol.ClassKindCompanion)
	placeholder.Origin = symbol.OriginSynthetic
	values := function(enum.ID, "values", "src/Color.kt")
	values.Origin = symbol.OriginSynthetic
	enum.StaticMembers = []symbol.Symbol{placeholder, values}
	enum.EnumEntries = []*symbol.EnumEntry{
		{Declaration: decl("RED", "src/Color.kt"), Owner: enum.ID},
		{Declaration: decl("GREEN", "src/Color.kt"), Owner: enum.ID},
	}

	s := symbol.NewBuilder("app").File("src/Color.kt", "p").Class(enum).Build()
	m := translate(t, s)

	e, ok := m.Packages[0].Classlikes[0].(*model.Enum)
	require.True(t, ok)
	assert.Empty(t, e.Classlikes)
	require.Len(t, e.Functions, 1)
	assert.Equal(t, "values", e.Functions[0].Name)
	require.Len(t, e.Entries, 2)
	assert.Equal(t, "p/Color.RED///decl/", e.Entries[0].DRI.String())
	assert.Equal(t, "GREEN", e.Entries[1].Name)
}

func TestTranslate_SyntheticJavaProperty(t *testing.T) {
	id := symbol.ParseClassID("j/Bean")
	getter := function(id, "getName", "src/Bean.java")
	getter.ReturnType = &symbol.ClassType{ID: symbol.ParseClassID("kotlin/String")}
	setter := function(id, "setName", "src/Bean.java")
	setter.Parameters = []*symbol.ValueParameter{{Name: "value", Type: &symbol.ClassType{ID: symbol.ParseClassID("kotlin/String")}}}
	field := &symbol.JavaField{
		Declaration: decl("name", "src/Bean.java"),
		ID:          symbol.CallableID{Package: "j", ClassName: "Bean", Name: "name"},
		Type:        &symbol.ClassType{ID: symbol.ParseClassID("kotlin/String")},
	}
	field.Visibility = symbol.VisibilityPrivate
	prop := &symbol.SyntheticJavaProperty{
		Declaration: decl("name", "src/Bean.java"),
		ID:          symbol.CallableID{Package: "j", ClassName: "Bean", Name: "name"},
		Type:        &symbol.ClassType{ID: symbol.ParseClassID("kotlin/String")},
		Getter:      getter,
		Setter:      setter,
	}
	bean := class("j/Bean", "src/Bean.java", symbol.ClassKindClass, getter, setter, field, prop)

	s := symbol.NewBuilder("app").File("src/Bean.java", "j").Class(bean).Build()
	m := translate(t, s)

	b := m.Packages[0].Classlikes[0].Base()
	assert.Empty(t, b.Functions)
	require.Len(t, b.Properties, 1)
	p := b.Properties[0]
	assert.Equal(t, "name", p.Name)
	assert.True(t, p.IsVar)
	require.NotNil(t, p.Getter)
	require.NotNil(t, p.Setter)
	assert.Equal(t, "<get-name>", p.Getter.DRI.Callable.Name)
	assert.Equal(t, "<set-name>", p.Setter.DRI.Callable.Name)
	assert.Equal(t, "String", p.Type.String())
}

func TestTranslate_AnonymousObjectIsUnsupported(t *testing.T) {
	anon := class("p/Foo.<anonymous>", "src/Foo.kt", symbol.ClassKindAnonymous)
	foo := class("p/Foo", "src/Foo.kt", symbol.ClassKindClass, anon)
	s := symbol.NewBuilder("app").File("src/Foo.kt", "p").Class(foo).Build()

	m, err := New(s).Translate(context.Background(), mainSet)
	assert.Nil(t, m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))

	var te *TranslationError
	require.True(t, errors.As(err, &te))
	assert.Contains(t, te.Symbol, "<anonymous>")
	assert.Equal(t, "src/Foo.kt", te.Location)
}

func TestTranslate_PanicBecomesTranslationError(t *testing.T) {
	foo := class("p/Foo", "src/Foo.kt", symbol.ClassKindClass)
	s := symbol.NewBuilder("app").File("src/Foo.kt", "p").Class(foo).Build()

	boom := doc.ExtractorFunc(func(*symbol.Session, symbol.Symbol) (*doc.Tree, error) {
		panic("index corrupted")
	})
	_, err := New(s, WithDocumentation(boom)).Translate(context.Background(), mainSet)

	var te *TranslationError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "class p/Foo", te.Symbol)
	assert.Contains(t, te.Error(), "index corrupted")
}

func TestTranslate_ExtractorErrorIsWrapped(t *testing.T) {
	foo := class("p/Foo", "src/Foo.kt", symbol.ClassKindClass)
	s := symbol.NewBuilder("app").File("src/Foo.kt", "p").Class(foo).Build()

	cause := errors.New("doc service down")
	failing := doc.ExtractorFunc(func(*symbol.Session, symbol.Symbol) (*doc.Tree, error) {
		return nil, cause
	})
	_, err := New(s, WithDocumentation(failing)).Translate(context.Background(), mainSet)
	assert.ErrorIs(t, err, cause)
}

func TestTranslate_VanishedPackageIsSkipped(t *testing.T) {
	s := symbol.NewBuilder("app").
		File("src/gone/X.kt", "gone").
		File("src/Bar.kt", "p").
		Class(class("p/Bar", "src/Bar.kt", symbol.ClassKindClass)).
		Build()

	m := translate(t, s)
	require.Len(t, m.Packages, 1)
	assert.Equal(t, "p", m.Packages[0].Name)
}

func TestTranslate_SourceRootsFilter(t *testing.T) {
	s := symbol.NewBuilder("app").
		File("src/main/Bar.kt", "p").
		File("build/gen/Gen.kt", "p").
		Class(class("p/Bar", "src/main/Bar.kt", symbol.ClassKindClass)).
		Class(class("p/Gen", "build/gen/Gen.kt", symbol.ClassKindClass)).
		Build()

	ss := mainSet
	ss.Roots = []string{"src/main"}
	m, err := New(s).Translate(context.Background(), ss)
	require.NoError(t, err)
	require.Len(t, m.Packages, 1)
	require.Len(t, m.Packages[0].Classlikes, 1)
	assert.Equal(t, "Bar", m.Packages[0].Classlikes[0].Base().Name)
}

func TestTranslate_CancelledContext(t *testing.T) {
	s := symbol.NewBuilder("app").
		File("src/Bar.kt", "p").
		Class(class("p/Bar", "src/Bar.kt", symbol.ClassKindClass)).
		Build()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, err := New(s).Translate(ctx, mainSet)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTranslate_AncestryAndExceptions(t *testing.T) {
	base := class("p/AppError", "src/Err.kt", symbol.ClassKindClass)
	base.Supertypes = []symbol.Type{&symbol.ClassType{ID: symbol.ParseClassID("kotlin/Exception")}}
	iface := class("p/Coded", "src/Err.kt", symbol.ClassKindInterface)
	leaf := class("p/NotFound", "src/Err.kt", symbol.ClassKindClass)
	leaf.Supertypes = []symbol.Type{
		&symbol.ClassType{ID: base.ID},
		&symbol.ClassType{ID: iface.ID},
		&symbol.ClassType{ID: symbol.ParseClassID("kotlin/Any")},
	}

	s := symbol.NewBuilder("app").File("src/Err.kt", "p").Class(base).Class(iface).Class(leaf).Build()
	m := translate(t, s)
	nf := m.Packages[0].Classlikes[2].Base()

	require.Len(t, nf.Supertypes, 2)
	assert.Equal(t, model.KindClass, nf.Supertypes[0].Kind)
	assert.Equal(t, model.KindInterface, nf.Supertypes[1].Kind)

	anc, ok := model.Get[model.Ancestry](nf.Extras)
	require.True(t, ok)
	require.NotNil(t, anc.Root.Superclass)
	assert.Equal(t, "AppError", anc.Root.Superclass.TypeConstructor.Name)
	require.NotNil(t, anc.Root.Superclass.Superclass)
	assert.Equal(t, model.KindUnknown, anc.Root.Superclass.Superclass.Kind)
	require.Len(t, anc.Unresolved, 1)
	assert.Equal(t, "kotlin/Exception///decl/", anc.Unresolved[0].String())

	ifaces, ok := model.Get[model.ImplementedInterfaces](nf.Extras)
	require.True(t, ok)
	require.Len(t, ifaces.Interfaces, 1)
	assert.Equal(t, "Coded", ifaces.Interfaces[0].Name)

	exc, ok := model.Get[model.ExceptionInSupertypes](nf.Extras)
	require.True(t, ok)
	var names []string
	for _, d := range exc.Exceptions {
		names = append(names, d.String())
	}
	assert.ElementsMatch(t, []string{"kotlin/Exception///decl/", "p/AppError///decl/"}, names)

	_, ok = model.Get[model.ExceptionInSupertypes](m.Packages[0].Classlikes[1].Base().Extras)
	assert.False(t, ok)
}

func TestTranslate_ObviousInheritedMembers(t *testing.T) {
	anyID := symbol.ParseClassID("kotlin/Any")
	anyToString := function(anyID, "toString", "")
	anyToString.Origin = symbol.OriginLibrary

	foo := class("p/Foo", "src/Foo.kt", symbol.ClassKindClass)
	inherited := function(foo.ID, "toString", "src/Foo.kt")
	inherited.Origin = symbol.OriginInherited
	inherited.Overridden = []*symbol.Function{anyToString}

	documented := function(foo.ID, "hashCode", "src/Foo.kt")
	documented.Origin = symbol.OriginInherited
	documented.Doc = "/** Stable hash. */"
	documented.Overridden = []*symbol.Function{function(anyID, "hashCode", "")}

	own := function(foo.ID, "run", "src/Foo.kt")
	foo.Members = []symbol.Symbol{inherited, documented, own}

	s := symbol.NewBuilder("app").File("src/Foo.kt", "p").Class(foo).Build()
	fns := translate(t, s).Packages[0].Classlikes[0].Base().Functions
	require.Len(t, fns, 3)

	assert.True(t, fns[0].Obvious)
	require.NotNil(t, fns[0].InheritedFrom)
	assert.Equal(t, "kotlin/Any///decl/", fns[0].InheritedFrom.String())

	assert.False(t, fns[1].Obvious)
	require.NotNil(t, fns[1].Documentation)
	assert.Equal(t, "Stable hash.", fns[1].Documentation.Description)

	assert.False(t, fns[2].Obvious)
	assert.Nil(t, fns[2].InheritedFrom)
}

func TestTranslate_ObviousInheritedEnumProperty(t *testing.T) {
	str := &symbol.ClassType{ID: symbol.ParseClassID("kotlin/String")}
	enumName := &symbol.Property{
		Declaration: decl("name", ""),
		ID:          symbol.CallableID{Package: "kotlin", ClassName: "Enum", Name: "name"},
		Type:        str,
	}
	enumName.Origin = symbol.OriginLibrary

	enum := class("p/Color", "src/Color.kt", symbol.ClassKindEnum)
	name := &symbol.Property{
		Declaration: decl("name", "src/Color.kt"),
		ID:          symbol.CallableID{Package: "p", ClassName: "Color", Name: "name"},
		Type:        str,
		Overridden:  []*symbol.Property{enumName},
	}
	name.Origin = symbol.OriginInherited
	label := &symbol.Property{
		Declaration: decl("label", "src/Color.kt"),
		ID:          symbol.CallableID{Package: "p", ClassName: "Color", Name: "label"},
		Type:        str,
	}
	enum.Members = []symbol.Symbol{name, label}

	s := symbol.NewBuilder("app").File("src/Color.kt", "p").Class(enum).Build()
	props := translate(t, s).Packages[0].Classlikes[0].Base().Properties
	require.Len(t, props, 2)

	assert.True(t, props[0].Obvious)
	assert.Equal(t, "kotlin/Enum/name/#/decl/", props[0].DRI.String())
	require.NotNil(t, props[0].InheritedFrom)
	assert.Equal(t, "kotlin/Enum///decl/", props[0].InheritedFrom.String())

	assert.False(t, props[1].Obvious)
	assert.Nil(t, props[1].InheritedFrom)
}

func TestTranslate_PackageSpreadOverFiles(t *testing.T) {
	s := symbol.NewBuilder("app").
		File("src/A.kt", "p").
		File("src/B.kt", "p").
		Class(class("p/A", "src/A.kt", symbol.ClassKindClass)).
		Class(class("p/B", "src/B.kt", symbol.ClassKindClass)).
		Build()

	m := translate(t, s)
	require.Len(t, m.Packages, 1)
	assert.Equal(t, "p////decl/", m.Packages[0].DRI.String())

	var got []string
	for _, c := range m.Packages[0].Classlikes {
		got = append(got, c.Base().Name+" "+c.Base().Sources[0])
	}
	assert.Equal(t, []string{"A src/A.kt", "B src/B.kt"}, got)
}

func TestTranslate_EnumEntryVisibilityAndSource(t *testing.T) {
	enum := class("p/Color", "src/Color.kt", symbol.ClassKindEnum)
	enum.Visibility = symbol.VisibilityInternal
	red := &symbol.EnumEntry{Declaration: decl("RED", "src/Color.kt"), Owner: enum.ID}
	enum.EnumEntries = []*symbol.EnumEntry{red}

	s := symbol.NewBuilder("app").File("src/Color.kt", "p").Class(enum).Build()
	e, ok := translate(t, s).Packages[0].Classlikes[0].(*model.Enum)
	require.True(t, ok)
	assert.Equal(t, model.VisibilityInternal, e.Visibility)
	require.Len(t, e.Entries, 1)
	assert.Equal(t, model.VisibilityPublic, e.Entries[0].Visibility)
	assert.Equal(t, []string{"src/Color.kt"}, e.Entries[0].Sources)
}

func TestTranslate_FunctionDetails(t *testing.T) {
	owner := symbol.ParseClassID("p/Repo")
	str := &symbol.ClassType{ID: symbol.ParseClassID("kotlin/String")}
	tp := &symbol.TypeParameter{Name: "T"}

	find := function(owner, "find", "src/Repo.kt")
	find.Doc = "/**\n * Finds it.\n * @param key the lookup key\n */"
	find.TypeParameters = []*symbol.TypeParameter{tp}
	find.Parameters = []*symbol.ValueParameter{
		{Name: "key", Type: str},
		{Name: "limit", Type: &symbol.ClassType{ID: symbol.ParseClassID("kotlin/Int")}, Default: &symbol.Constant{Kind: symbol.ConstantInt, Value: 10}},
	}
	find.ReturnType = &symbol.TypeParameterType{Param: tp, Nullable: true}
	find.Throws = []symbol.ClassID{symbol.ParseClassID("java.io/IOException")}

	ctor := function(owner, "<init>", "src/Repo.kt")
	ctor.IsConstructor = true
	ctor.IsPrimary = true

	repo := class("p/Repo", "src/Repo.kt", symbol.ClassKindClass, ctor, find)
	s := symbol.NewBuilder("app").File("src/Repo.kt", "p").Class(repo).Build()
	b := translate(t, s).Packages[0].Classlikes[0].Base()

	require.Len(t, b.Constructors, 1)
	assert.Equal(t, "Repo", b.Constructors[0].Name)
	assert.True(t, b.Constructors[0].IsConstructor)
	assert.Equal(t, "Repo", b.Constructors[0].Type.String())

	require.Len(t, b.Functions, 1)
	fn := b.Functions[0]
	require.Len(t, fn.Generics, 1)
	assert.Equal(t, "Any?", fn.Generics[0].Bounds[0].String())
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, dri.ToCallableParameter(0), fn.Parameters[0].DRI.Target)
	require.NotNil(t, fn.Parameters[0].Documentation)
	assert.Equal(t, "the lookup key", fn.Parameters[0].Documentation.Description)
	assert.Equal(t, model.IntegerConstant{Value: 10}, fn.Parameters[1].DefaultValue)

	ret, ok := fn.Type.(*model.Nullable)
	require.True(t, ok)
	ref, ok := ret.Inner.(*model.TypeParameterRef)
	require.True(t, ok)
	assert.True(t, ref.DRI.Equal(fn.Generics[0].DRI))

	thrown, ok := model.Get[model.CheckedExceptions](fn.Extras)
	require.True(t, ok)
	assert.Equal(t, "java.io/IOException///decl/", thrown.Exceptions[0].String())
}

func TestTranslate_UndeclaredTypeParameterIsAnchored(t *testing.T) {
	listID := symbol.ParseClassID("kotlin.collections/List")
	e := &symbol.TypeParameter{Name: "E"}
	first := function(listID, "first", "")
	first.Origin = symbol.OriginLibrary
	first.ReturnType = &symbol.TypeParameterType{Param: e}

	names := class("p/Names", "src/Names.kt", symbol.ClassKindClass)
	inherited := function(names.ID, "first", "src/Names.kt")
	inherited.Origin = symbol.OriginInherited
	inherited.ReturnType = &symbol.TypeParameterType{Param: e}
	inherited.Overridden = []*symbol.Function{first}
	names.Members = []symbol.Symbol{inherited}

	s := symbol.NewBuilder("app").File("src/Names.kt", "p").Class(names).Build()
	fn := translate(t, s).Packages[0].Classlikes[0].Base().Functions[0]

	ref, ok := fn.Type.(*model.TypeParameterRef)
	require.True(t, ok, "got %T", fn.Type)
	assert.Equal(t, "E", ref.Name)
	assert.Equal(t, "kotlin.collections", ref.DRI.PackageName)
	assert.Equal(t, "List", ref.DRI.ClassNames)
	require.NotNil(t, ref.DRI.Callable)
	assert.Equal(t, "first", ref.DRI.Callable.Name)
	assert.Equal(t, "type-parameter:E", ref.DRI.Extra)
}

func TestAllAnnotations(t *testing.T) {
	foo := class("p/Foo", "src/Foo.kt", symbol.ClassKindClass)
	assert.Nil(t, AllAnnotations(foo))

	foo.Annotations = []symbol.Annotation{{
		Class: symbol.ParseClassID("kotlin/Deprecated"),
		Arguments: []symbol.NamedArgument{
			{Name: "message", Value: &symbol.Constant{Kind: symbol.ConstantString, Value: "use Bar"}},
			{Name: "level", Value: &symbol.EnumValue{Enum: symbol.ParseClassID("kotlin/DeprecationLevel"), Entry: "ERROR"}},
		},
	}}
	anns := AllAnnotations(foo)
	require.Len(t, anns, 1)
	assert.Equal(t, "kotlin/Deprecated///decl/", anns[0].DRI.String())
	require.Len(t, anns[0].Params, 2)
	assert.Equal(t, `"use Bar"`, anns[0].Params[0].Value.(model.LiteralValue).String())
	assert.Equal(t, "DeprecationLevel.ERROR", anns[0].Params[1].Value.String())
}
