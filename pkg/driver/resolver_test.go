package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/interpreter"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func projectResolver(t *testing.T) *FileResolver {
	t.Helper()
	m, err := LoadManifest(filepath.Join("testdata", "project", ManifestFileName))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	return NewFileResolver(m)
}

func TestCandidatePaths(t *testing.T) {
	cases := map[string][]string{
		"math":           {"math.json", "math.naja"},
		"lib/math.naja":  {"lib/math.naja"},
		`lib\tree`:       {"lib/tree.json", "lib/tree.naja"},
		"./util/../io":   {"io.json", "io.naja"},
		"data.json.json": {"data.json.json"},
	}
	for in, want := range cases {
		if diff := cmp.Diff(want, candidatePaths(in)); diff != "" {
			t.Fatalf("candidatePaths(%q) mismatch (-want +got):\n%s", in, diff)
		}
	}
}

func TestFileResolverDecodesASTs(t *testing.T) {
	r := projectResolver(t)
	src, err := r.Resolve("math")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Program == nil || src.Program.Name != "math" || len(src.Program.Body) != 2 {
		t.Fatalf("unexpected program %+v", src.Program)
	}
	if !strings.HasSuffix(src.Origin, filepath.Join("lib", "math.json")) {
		t.Fatalf("unexpected origin %s", src.Origin)
	}

	src, err = r.Resolve("greet")
	if err != nil {
		t.Fatalf("Resolve explicit module: %v", err)
	}
	if src.Program == nil || src.Program.Name != "greet" {
		t.Fatalf("explicit module should default its name, got %+v", src.Program)
	}
}

func TestFileResolverTextAndFailures(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "hello.naja"), []byte("print(1)"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := &FileResolver{Roots: []string{root}, Modules: map[string]string{"ghost": filepath.Join(root, "ghost.json")}}

	src, err := r.Resolve("hello")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if src.Program != nil || string(src.Text) != "print(1)" {
		t.Fatalf("source text expected, got %+v", src)
	}

	if _, err := r.Resolve("absent"); !errors.Is(err, interpreter.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
	if _, err := r.Resolve("../outside"); !errors.Is(err, interpreter.ErrModuleNotFound) {
		t.Fatalf("names leaving the roots must not resolve, got %v", err)
	}
	_, err = r.Resolve("ghost")
	if err == nil || errors.Is(err, interpreter.ErrModuleNotFound) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("a missing explicit module is a hard error, got %v", err)
	}

	_, err = projectResolver(t).Resolve("broken")
	if !runtime.IsKind(err, runtime.ErrUnsupportedOperation) || !strings.Contains(err.Error(), "Bogus") {
		t.Fatalf("malformed AST should be reported, got %v", err)
	}
}

type fixedResolver map[string]error

func (f fixedResolver) Resolve(name string) (interpreter.ModuleSource, error) {
	err, ok := f[name]
	if !ok {
		return interpreter.ModuleSource{}, interpreter.ErrModuleNotFound
	}
	if err != nil {
		return interpreter.ModuleSource{}, err
	}
	return interpreter.ModuleSource{Name: name, Text: []byte(name), Origin: "fixed"}, nil
}

func TestChainResolver(t *testing.T) {
	boom := errors.New("boom")
	chain := ChainResolver{
		fixedResolver{"a": nil, "bad": boom},
		fixedResolver{"b": nil, "bad": nil},
	}
	for _, name := range []string{"a", "b"} {
		if src, err := chain.Resolve(name); err != nil || src.Name != name {
			t.Fatalf("Resolve(%s) = %+v, %v", name, src, err)
		}
	}
	if _, err := chain.Resolve("bad"); !errors.Is(err, boom) {
		t.Fatalf("hard errors must stop the chain, got %v", err)
	}
	if _, err := chain.Resolve("c"); !errors.Is(err, interpreter.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}
