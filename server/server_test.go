package server

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/symdoc/index"
)

func TestWorkspaceSymbol(t *testing.T) {
	root := t.TempDir()
	ls := NewLSPServer("test", index.Memory{
		{Kind: "class", Name: "Circle", Parent: "geo////decl/", Source: "src/Circle.kt"},
		{Kind: "function", Name: "area", Parent: "geo/Circle///decl/", Source: "src/Circle.kt"},
		{Kind: "function", Name: "hashCode", Parent: "geo/Circle///decl/", Obvious: true},
	})
	ls.rootDir = root

	got, err := ls.workspaceSymbol(nil, &protocol.WorkspaceSymbolParams{Query: "circ"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Circle", got[0].Name)
	assert.Equal(t, protocol.SymbolKindClass, got[0].Kind)
	require.NotNil(t, got[0].ContainerName)
	assert.Equal(t, "geo", *got[0].ContainerName)
	assert.Equal(t, "file://"+filepath.ToSlash(filepath.Join(root, "src", "Circle.kt")), got[0].Location.URI)

	got, err = ls.workspaceSymbol(nil, &protocol.WorkspaceSymbolParams{Query: "AREA"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, protocol.SymbolKindFunction, got[0].Kind)
	assert.Equal(t, "geo.Circle", *got[0].ContainerName)

	got, err = ls.workspaceSymbol(nil, &protocol.WorkspaceSymbolParams{Query: "hashCode"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWorkspaceSymbol_SwappedSearcher(t *testing.T) {
	ls := NewLSPServer("test", nil)
	got, err := ls.workspaceSymbol(nil, &protocol.WorkspaceSymbolParams{Query: "x"})
	require.NoError(t, err)
	assert.Nil(t, got)

	ls.SetSearcher(index.Memory{{Kind: "typealias", Name: "xs"}})
	got, err = ls.workspaceSymbol(nil, &protocol.WorkspaceSymbolParams{Query: "x"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].ContainerName)
	assert.Empty(t, got[0].Location.URI)
}

func TestContainerName(t *testing.T) {
	tests := []struct {
		parent string
		want   string
	}{
		{"", ""},
		{"geo////decl/", "geo"},
		{"geo/Outer.Inner///decl/", "geo.Outer.Inner"},
		{"/Root///decl/", "Root"},
	}
	for _, tt := range tests {
		t.Run(tt.parent, func(t *testing.T) {
			assert.Equal(t, tt.want, containerName(index.Entry{Parent: tt.parent}))
		})
	}
}

func TestGraphWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.yaml")
	require.NoError(t, os.WriteFile(path, []byte("module: a\n"), 0o644))

	var reloads atomic.Int32
	w, err := NewGraphWatcher(path, func() error {
		reloads.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.settle = 50 * time.Millisecond
	w.Start()
	defer w.Stop()

	other := filepath.Join(filepath.Dir(path), "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), reloads.Load())

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("module: b\n"), 0o644))
	}
	assert.Eventually(t, func() bool { return reloads.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load())
}
