package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

const greetModule = `
{"type": "Program", "body": [
  {"type": "ExportStatement", "declaration": {
    "type": "FunctionDeclaration",
    "id": {"type": "Identifier", "name": "greet"},
    "params": [{"name": {"type": "Identifier", "name": "who"}}],
    "body": {"type": "BlockStatement", "body": [
      {"type": "ReturnStatement", "argument": {
        "type": "BinaryExpression", "operator": "+",
        "left": {"type": "StringLiteral", "value": "hello "},
        "right": {"type": "Identifier", "name": "who"}}}
    ]}}}
]}`

const mainProgram = `
{"type": "Program", "body": [
  {"type": "ImportStatement", "source": "text/greet", "kind": "named",
   "specifiers": [{"name": {"type": "Identifier", "name": "greet"}}]},
  {"type": "FunctionCall", "callee": {"type": "Identifier", "name": "print"},
   "arguments": [{"type": "FunctionCall", "callee": {"type": "Identifier", "name": "greet"},
                  "arguments": [{"type": "StringLiteral", "value": "naja"}]}]}
]}`

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "naja.yml"), `
name: hello
version: 1.0.0
entry: src/main.json
module_paths: [lib]
`)
	writeFile(t, filepath.Join(root, "src", "main.json"), mainProgram)
	writeFile(t, filepath.Join(root, "lib", "text", "greet.json"), greetModule)
	return root
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunUsesManifestEntry(t *testing.T) {
	root := setupProject(t)
	code, stdout, stderr := runCLI(t, "run", "--manifest", filepath.Join(root, "naja.yml"))
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "hello naja\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestRunFindsManifestAboveFile(t *testing.T) {
	root := setupProject(t)
	code, stdout, stderr := runCLI(t, "run", filepath.Join(root, "src", "main.json"))
	if code != 0 || stdout != "hello naja\n" {
		t.Fatalf("exit %d stdout %q stderr %q", code, stdout, stderr)
	}
}

func TestRunReportsRuntimeErrors(t *testing.T) {
	root := t.TempDir()
	entry := filepath.Join(root, "main.json")
	writeFile(t, entry, `{"type": "Program", "body": [{"type": "Identifier", "name": "missing"}]}`)
	code, _, stderr := runCLI(t, "run", entry)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.HasPrefix(stderr, "error: UndefinedName: ") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestCheckPrintsImportTree(t *testing.T) {
	root := setupProject(t)
	code, stdout, stderr := runCLI(t, "check", "--manifest", filepath.Join(root, "naja.yml"))
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "main.json\n  text/greet\n" {
		t.Fatalf("unexpected tree %q", stdout)
	}
}

func TestUsageAndVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	if code != 0 || strings.TrimSpace(stdout) != cliVersion {
		t.Fatalf("--version: exit %d, stdout %q", code, stdout)
	}
	code, stdout, _ = runCLI(t, "--help")
	if code != 0 || !strings.Contains(stdout, "naja run [--manifest=<path>]") {
		t.Fatalf("--help: exit %d, stdout %q", code, stdout)
	}
	if code, _, stderr := runCLI(t, "launch"); code != 2 || !strings.Contains(stderr, "Usage:") {
		t.Fatalf("bad command: exit %d, stderr %q", code, stderr)
	}
}

func TestInvalidManifestFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "naja.yml"), "version: nope")
	code, _, stderr := runCLI(t, "run", "--manifest", filepath.Join(root, "naja.yml"))
	if code != 1 || !strings.Contains(stderr, "name must be provided") {
		t.Fatalf("exit %d, stderr %q", code, stderr)
	}
}
