package index

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/symdoc/dri"
	"github.com/dhamidi/symdoc/model"
	"github.com/dhamidi/symdoc/symbol/load"
	"github.com/dhamidi/symdoc/translate"
)

const graph = `
module: shapes
classes:
  - id: geo/Shape
    kind: interface
    file: src/Shape.kt
    members:
      - name: area
        modality: abstract
        returns: kotlin/Double
  - id: geo/Circle
    file: src/Circle.kt
    supertypes: [geo/Shape]
    members:
      - kind: constructor
        params:
          - name: radius
            type: kotlin/Double
      - name: area
        override: true
        overrides: ["geo/Shape#area"]
        returns: kotlin/Double
      - kind: property
        name: radius
        type: kotlin/Double
  - id: geo/Color
    kind: enum
    file: src/Color.kt
    entries:
      - name: RED
`

func translated(t *testing.T) *model.Module {
	t.Helper()
	s, err := load.Decode(strings.NewReader(graph))
	require.NoError(t, err)
	m, err := translate.New(s).Translate(context.Background(), model.SourceSet{ID: "main"})
	require.NoError(t, err)
	return m
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Kind + " " + e.Name
	}
	return out
}

func TestFlatten(t *testing.T) {
	entries := Flatten(translated(t))

	assert.Equal(t, []string{
		"package geo",
		"interface Shape",
		"function area",
		"class Circle",
		"constructor Circle",
		"function area",
		"property radius",
		"enum Color",
		"entry RED",
	}, names(entries))

	inherited := entries[5]
	assert.Equal(t, "geo/Shape/area/#/decl/", inherited.DRI)
	assert.Equal(t, "geo/Circle///decl/", inherited.Parent)
	assert.Equal(t, "geo/Shape///decl/", inherited.InheritedFrom)
	assert.Equal(t, "src/Circle.kt", inherited.Source)
	assert.Equal(t, "main", inherited.SourceSet)
}

func TestFlatten_EnumEntriesAndObviousProperties(t *testing.T) {
	color := dri.ForClass("geo", "Color")
	enumDecl := dri.ForClass("kotlin", "Enum")
	name := enumDecl.WithCallable(&dri.Callable{Name: "name"})
	m := &model.Module{
		SourceSets: []model.SourceSet{{ID: "main"}},
		Packages: []*model.Package{{
			DRI:  dri.ForPackage("geo"),
			Name: "geo",
			Classlikes: []model.Classlike{&model.Enum{
				ClasslikeBase: model.ClasslikeBase{
					DRI:        color,
					Name:       "Color",
					Visibility: model.VisibilityInternal,
					Sources:    []string{"src/Color.kt"},
					Properties: []*model.Property{{
						Member:        model.Member{DRI: name, Name: "name", Visibility: model.VisibilityPublic},
						InheritedFrom: &enumDecl,
						Obvious:       true,
					}},
				},
				Entries: []*model.EnumEntry{{
					DRI:        color.WithClass("RED"),
					Name:       "RED",
					Visibility: model.VisibilityPublic,
					Sources:    []string{"src/colors/Red.kt"},
				}},
			}},
		}},
	}

	entries := Flatten(m)
	require.Equal(t, []string{"package geo", "enum Color", "property name", "entry RED"}, names(entries))

	prop := entries[2]
	assert.True(t, prop.Obvious)
	assert.Equal(t, "kotlin/Enum///decl/", prop.InheritedFrom)

	entry := entries[3]
	assert.Equal(t, "public", entry.Visibility)
	assert.Equal(t, "src/colors/Red.kt", entry.Source)
	assert.Equal(t, "geo/Color///decl/", entry.Parent)

	got, err := Memory(entries).Search(context.Background(), "name", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemory_Search(t *testing.T) {
	mem := Memory{
		{Name: "circleArea"},
		{Name: "Circle"},
		{Name: "hashCode", Obvious: true},
		{Name: "Circles"},
	}
	got, err := mem.Search(context.Background(), "circle", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Circle", "Circles", "circleArea"}, []string{got[0].Name, got[1].Name, got[2].Name})

	got, err = mem.Search(context.Background(), "code", 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = mem.Search(context.Background(), "c", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_PutLookupSearch(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "index.sqlite"))
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Put(ctx, translated(t))
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	area, err := store.Lookup(ctx, "geo/Shape/area/#/decl/")
	require.NoError(t, err)
	require.Len(t, area, 2)
	assert.Equal(t, "geo/Circle///decl/", area[0].Parent)
	assert.Equal(t, "geo/Shape///decl/", area[1].Parent)

	found, err := store.Search(ctx, "CIRCLE", 10)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "class", found[0].Kind)
	assert.Equal(t, "constructor", found[1].Kind)

	pkgs, err := store.Packages(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"geo"}, pkgs)
}

func TestStore_PutReplacesSourceSet(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	m := translated(t)
	_, err = store.Put(ctx, m)
	require.NoError(t, err)
	n, err := store.Put(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	found, err := store.Search(ctx, "RED", 0)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestStore_SearchEscapesWildcards(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Put(ctx, translated(t))
	require.NoError(t, err)

	found, err := store.Search(ctx, "%", 0)
	require.NoError(t, err)
	assert.Empty(t, found)
}
