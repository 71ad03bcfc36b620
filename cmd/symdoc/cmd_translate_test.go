package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/symdoc/config"
	"github.com/dhamidi/symdoc/format"
	"github.com/dhamidi/symdoc/symbol/load"
	"github.com/dhamidi/symdoc/translate"
)

const graph = `
module: shapes
classes:
  - id: geo/Circle
    file: src/main/Circle.kt
    members:
      - name: area
        returns: kotlin/Double
  - id: geo/Fixture
    file: src/test/Fixture.kt
`

func twoSourceSets() *config.Config {
	c := config.Default()
	c.SourceSets = []config.SourceSet{
		{ID: "main", Platform: "jvm", Roots: []string{"src/main"}},
		{ID: "test", Platform: "jvm", Roots: []string{"src/test"}},
	}
	return c
}

func TestSelectSourceSets(t *testing.T) {
	c := twoSourceSets()

	all, err := selectSourceSets(c, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "main", all[0].DisplayName)

	one, err := selectSourceSets(c, []string{"test"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, []string{"src/test"}, one[0].Roots)

	_, err = selectSourceSets(c, []string{"js"})
	assert.ErrorContains(t, err, `unknown source set "js"`)
}

func TestTranslateAll(t *testing.T) {
	s, err := load.Decode(strings.NewReader(graph))
	require.NoError(t, err)
	sets, err := selectSourceSets(twoSourceSets(), nil)
	require.NoError(t, err)

	modules, err := translateAll(context.Background(), s, sets, translate.DefaultObviousPolicy())
	require.NoError(t, err)
	require.Len(t, modules, 2)

	assert.Equal(t, "main", modules[0].SourceSets[0].ID)
	require.Len(t, modules[0].Packages, 1)
	require.Len(t, modules[0].Packages[0].Classlikes, 1)
	assert.Equal(t, "Circle", modules[0].Packages[0].Classlikes[0].Base().Name)

	assert.Equal(t, "test", modules[1].SourceSets[0].ID)
	require.Len(t, modules[1].Packages, 1)
	assert.Equal(t, "Fixture", modules[1].Packages[0].Classlikes[0].Base().Name)
}

func TestTranslateAll_Cancelled(t *testing.T) {
	s, err := load.Decode(strings.NewReader(graph))
	require.NoError(t, err)
	sets, err := selectSourceSets(twoSourceSets(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = translateAll(ctx, s, sets, translate.DefaultObviousPolicy())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteModules_Compressed(t *testing.T) {
	s, err := load.Decode(strings.NewReader(graph))
	require.NoError(t, err)
	sets, err := selectSourceSets(twoSourceSets(), []string{"main"})
	require.NoError(t, err)
	modules, err := translateAll(context.Background(), s, sets, translate.DefaultObviousPolicy())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.line.zst")
	require.NoError(t, writeModules(modules, config.Output{Format: "line", Zstd: true, Path: path}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	zr, err := format.Decompress(f)
	require.NoError(t, err)
	defer zr.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(zr)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "class\tgeo/Circle///decl/\tCircle")
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, false))
	assert.Error(t, runInit(dir, false))
	require.NoError(t, runInit(dir, true))

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default().SourceSets, loaded.SourceSets)
}
