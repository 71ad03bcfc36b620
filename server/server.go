// Package server answers LSP workspace/symbol queries from a documentation
// index.
package server

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/symdoc/index"
)

const lsName = "symdoc"

// MaxSymbols bounds a single workspace/symbol answer.
const MaxSymbols = 200

var log = commonlog.GetLogger("symdoc.server")

type LSPServer struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu       sync.RWMutex
	searcher index.Searcher
	rootDir  string
}

func NewLSPServer(version string, searcher index.Searcher) *LSPServer {
	ls := &LSPServer{
		version:  version,
		searcher: searcher,
		rootDir:  ".",
	}

	ls.handler = protocol.Handler{
		Initialize:      ls.initialize,
		Initialized:     ls.initialized,
		Shutdown:        ls.shutdown,
		SetTrace:        ls.setTrace,
		WorkspaceSymbol: ls.workspaceSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

// SetSearcher swaps the index queries are answered from.
func (ls *LSPServer) SetSearcher(s index.Searcher) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.searcher = s
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	ls.mu.Lock()
	ls.rootDir = rootDir
	ls.mu.Unlock()

	capabilities := ls.handler.CreateServerCapabilities()

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("client initialized", "root", ls.root())
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	ls.mu.RLock()
	searcher := ls.searcher
	ls.mu.RUnlock()
	if searcher == nil {
		return nil, nil
	}

	entries, err := searcher.Search(context.Background(), params.Query, MaxSymbols)
	if err != nil {
		log.Error("workspace/symbol failed", "query", params.Query, "error", err)
		return nil, err
	}
	return ls.symbols(entries), nil
}

func (ls *LSPServer) symbols(entries []index.Entry) []protocol.SymbolInformation {
	root := ls.root()
	out := make([]protocol.SymbolInformation, 0, len(entries))
	for _, e := range entries {
		info := protocol.SymbolInformation{
			Name: e.Name,
			Kind: toSymbolKind(e.Kind),
			Location: protocol.Location{
				URI: pathToURI(root, e.Source),
			},
		}
		if container := containerName(e); container != "" {
			info.ContainerName = &container
		}
		out = append(out, info)
	}
	return out
}

func (ls *LSPServer) root() string {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.rootDir
}

// containerName renders the enclosing declaration as a dotted name.
func containerName(e index.Entry) string {
	if e.Parent == "" {
		return ""
	}
	pkg, classes, _ := strings.Cut(e.Parent, "/")
	classes, _, _ = strings.Cut(classes, "/")
	switch {
	case classes == "":
		return pkg
	case pkg == "":
		return classes
	}
	return pkg + "." + classes
}

func toSymbolKind(kind string) protocol.SymbolKind {
	switch kind {
	case "package":
		return protocol.SymbolKindPackage
	case "class", "annotation":
		return protocol.SymbolKindClass
	case "interface":
		return protocol.SymbolKindInterface
	case "object":
		return protocol.SymbolKindObject
	case "enum":
		return protocol.SymbolKindEnum
	case "entry":
		return protocol.SymbolKindEnumMember
	case "constructor":
		return protocol.SymbolKindConstructor
	case "function":
		return protocol.SymbolKindFunction
	case "property":
		return protocol.SymbolKindProperty
	case "typealias":
		return protocol.SymbolKindTypeParameter
	default:
		return protocol.SymbolKindVariable
	}
}

func pathToURI(root, path string) protocol.DocumentUri {
	if path == "" {
		return ""
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}
