package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/interpreter"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func TestSessionRunsManifestEntry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "naja.driver")
	defer teardown()

	m, err := LoadManifest(filepath.Join("testdata", "project", ManifestFileName))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	var out bytes.Buffer
	session := NewSession(m, &out, nil)
	val, err := session.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n, ok := val.(runtime.IntValue); !ok || n.Val != 42 {
		t.Fatalf("entry result = %s, want 42", runtime.Repr(val))
	}
	if got := out.String(); got != "hi 5\n" {
		t.Fatalf("unexpected output %q", got)
	}
	for _, name := range m.Preload {
		if !session.resolver.Cached(name) {
			t.Fatalf("preload module %s was not cached", name)
		}
	}
}

func TestSessionWithoutManifest(t *testing.T) {
	entry := filepath.Join("testdata", "project", "main.json")
	m, err := DefaultManifest(entry)
	if err != nil {
		t.Fatalf("DefaultManifest: %v", err)
	}
	_, err = NewSession(m, &bytes.Buffer{}, nil).Run(context.Background(), entry)
	if !runtime.IsKind(err, runtime.ErrModuleNotFound) {
		t.Fatalf("math lives under lib/ and should not be found, got %v", err)
	}

	m.ModulePaths = append(m.ModulePaths, filepath.Join(m.Dir, "lib"), filepath.Join(m.Dir, "extra"))
	var out bytes.Buffer
	if _, err := NewSession(m, &out, nil).Run(context.Background(), entry); err != nil {
		t.Fatalf("Run with roots: %v", err)
	}
	if out.String() != "hi 5\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestSessionParsesTextModules(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "motd.naja"), []byte("welcome"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	entry := filepath.Join(root, "main.json")
	program := `{"type": "Program", "body": [
  {"type": "ImportStatement", "source": "motd", "kind": "wildcard"},
  {"type": "Identifier", "name": "text"}
]}`
	if err := os.WriteFile(entry, []byte(program), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := DefaultManifest(entry)
	if err != nil {
		t.Fatalf("DefaultManifest: %v", err)
	}
	parser := interpreter.ParserFunc(func(name string, src []byte) (*ast.Program, error) {
		return ast.NamedProg(name, ast.Export(ast.Const("", "text", ast.Str(strings.ToUpper(string(src)))))), nil
	})
	val, err := NewSession(m, &bytes.Buffer{}, parser).Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s, ok := val.(runtime.StringValue); !ok || s.Val != "WELCOME" {
		t.Fatalf("got %s", runtime.Repr(val))
	}
}

func TestLoadProgramErrors(t *testing.T) {
	if _, err := LoadProgram("main.naja"); err == nil || !strings.Contains(err.Error(), "needs a parser") {
		t.Fatalf("expected parser error, got %v", err)
	}
	if _, err := LoadProgram(filepath.Join("testdata", "project", "lib", "broken.json")); err == nil || !strings.Contains(err.Error(), "$.body[0]") {
		t.Fatalf("expected decode error with path, got %v", err)
	}
	if _, err := LoadProgram(filepath.Join("testdata", "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

type countingResolver struct {
	calls atomic.Int32
}

func (c *countingResolver) Resolve(name string) (interpreter.ModuleSource, error) {
	c.calls.Add(1)
	if name == "fail" {
		return interpreter.ModuleSource{}, interpreter.ErrModuleNotFound
	}
	return interpreter.ModuleSource{Name: name, Program: ast.NamedProg(name)}, nil
}

func TestPreloadCachesAndReportsFailures(t *testing.T) {
	next := &countingResolver{}
	cache := NewCachingResolver(next)
	names := []string{"a", "b", "c", "d", "e"}
	if err := cache.Preload(context.Background(), names, 2); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	for _, name := range names {
		if _, err := cache.Resolve(name); err != nil {
			t.Fatalf("Resolve(%s): %v", name, err)
		}
	}
	if got := next.calls.Load(); got != int32(len(names)) {
		t.Fatalf("resolver called %d times, want %d", got, len(names))
	}

	err := cache.Preload(context.Background(), []string{"a", "fail"}, 0)
	if err == nil || !strings.Contains(err.Error(), "preload fail") {
		t.Fatalf("expected preload failure, got %v", err)
	}
	if cache.Cached("fail") {
		t.Fatalf("failures must not be cached")
	}
}

func TestCheckWalksImports(t *testing.T) {
	m, err := LoadManifest(filepath.Join("testdata", "project", ManifestFileName))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	infos, err := NewSession(m, &bytes.Buffer{}, nil).Check("")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	var got []string
	for _, info := range infos {
		got = append(got, fmt.Sprintf("%d:%s", info.Level, info.Name))
	}
	if diff := cmp.Diff([]string{"0:main.json", "1:math", "1:greet"}, got); diff != "" {
		t.Fatalf("import tree mismatch (-want +got):\n%s", diff)
	}
}

func TestImportSourcesFindsNestedImports(t *testing.T) {
	program := ast.Prog(
		ast.ImportAll("top"),
		ast.Fn("load", nil,
			ast.If(ast.Bool(true), ast.Block(ast.ImportWholeModule("in/if", "")), ast.Block(ast.ImportAll("in/else"))),
		),
		ast.For(nil, ast.Bool(false), nil, ast.ImportAs("in/loop", "l")),
		ast.Try(ast.Block(ast.ImportAll("in/try")), "e", ast.Block(ast.ImportAll("top")), nil),
		ast.Class("Loader", "", nil,
			ast.Method(ast.VisibilityPublic, "run", nil, ast.Switch(ast.Int(1), ast.Case(ast.Int(1), ast.ImportAll("in/method")))),
		),
		ast.Export(ast.Fn("exported", nil, ast.ImportAll("in/export"))),
	)
	want := []string{"top", "in/if", "in/else", "in/loop", "in/try", "in/method", "in/export"}
	if diff := cmp.Diff(want, ImportSources(program)); diff != "" {
		t.Fatalf("import sources mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckReportsCyclesAndFailures(t *testing.T) {
	root := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(root, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	importOf := func(source string) string {
		return `{"type": "Program", "body": [{"type": "ImportStatement", "source": "` + source + `"}]}`
	}
	write("main.json", importOf("a"))
	write("a.json", importOf("b"))
	write("b.json", importOf("a"))
	write("lost.json", importOf("nowhere"))

	m, err := DefaultManifest(filepath.Join(root, "main.json"))
	if err != nil {
		t.Fatalf("DefaultManifest: %v", err)
	}
	session := NewSession(m, &bytes.Buffer{}, nil)
	infos, err := session.Check("")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	last := infos[len(infos)-1]
	if len(infos) != 4 || last.Name != "a" || !last.Cycle || last.Level != 3 {
		t.Fatalf("expected a cycle back to a at level 3, got %+v", infos)
	}

	_, err = session.Check(filepath.Join(root, "lost.json"))
	if !errors.Is(err, interpreter.ErrModuleNotFound) || !strings.Contains(err.Error(), `import "nowhere"`) {
		t.Fatalf("expected unresolved import error, got %v", err)
	}
}
