package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNewWorkspaceValidation(t *testing.T) {
	if _, err := NewWorkspace("/definitely/not/a/real/dir", 0); err == nil {
		t.Error("expected an error for a missing root")
	}

	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewWorkspace(file, 0); err == nil {
		t.Error("expected an error for a non-directory root")
	}
}

func TestListCandidateFiles(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/auth/login.ts":   "export function login() {}",
		"src/utils/format.ts": "export function pad() {}",
		"src/readme.md":       "# readme",
		"node_modules/x/y.js": "module.exports = {}",
	})

	ws, err := NewWorkspace(dir, 0)
	if err != nil {
		t.Fatal(err)
	}

	files, err := ws.ListCandidateFiles([]string{"**/*.ts"}, []string{"**/node_modules/**"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %+v", len(files), files)
	}
	for _, f := range files {
		if strings.Contains(f.Path, "node_modules") {
			t.Errorf("excluded path listed: %s", f.Path)
		}
		if !strings.HasSuffix(f.Path, ".ts") {
			t.Errorf("non-matching path listed: %s", f.Path)
		}
		if !ws.Contains(f.Path) {
			t.Errorf("listed path outside root: %s", f.Path)
		}
	}
}

func TestListCandidateFilesMaxResults(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.go": "package a", "b.go": "package b", "c.go": "package c",
	})

	ws, err := NewWorkspace(dir, 0)
	if err != nil {
		t.Fatal(err)
	}

	files, err := ws.ListCandidateFiles([]string{"**/*.go"}, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %d", len(files))
	}
}

func TestListCandidateFilesBarePattern(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/auth/session.ts": "x",
		"src/other.ts":        "y",
	})

	ws, err := NewWorkspace(dir, 0)
	if err != nil {
		t.Fatal(err)
	}

	// Bare segment patterns should reach nested files.
	files, err := ws.ListCandidateFiles([]string{"*session*"}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0].Path, "session.ts") {
		t.Errorf("expected only session.ts, got %+v", files)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"src/login.ts": "export function login() {}"})

	ws, err := NewWorkspace(dir, 0)
	if err != nil {
		t.Fatal(err)
	}

	data, err := ws.ReadFile(filepath.Join(dir, "src", "login.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if data.Content != "export function login() {}" {
		t.Errorf("unexpected content: %q", data.Content)
	}
	if data.Language != "typescript" {
		t.Errorf("language = %q, want typescript", data.Language)
	}
	if data.Size != int64(len(data.Content)) {
		t.Errorf("size = %d, want %d", data.Size, len(data.Content))
	}
}

func TestReadFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"big.txt": strings.Repeat("x", 100)})

	ws, err := NewWorkspace(dir, 10)
	if err != nil {
		t.Fatal(err)
	}

	_, err = ws.ReadFile(filepath.Join(dir, "big.txt"))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestReadFileOutsideRoot(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"secret.txt": "s"})

	ws, err := NewWorkspace(dir, 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ws.ReadFile(filepath.Join(outside, "secret.txt")); err == nil {
		t.Error("expected an error for a path outside the root")
	}
	if _, err := ws.ReadFile(filepath.Join(dir, "..", "escape.txt")); err == nil {
		t.Error("expected an error for a traversal path")
	}
}

func TestContains(t *testing.T) {
	dir := t.TempDir()
	ws, err := NewWorkspace(dir, 0)
	if err != nil {
		t.Fatal(err)
	}

	if !ws.Contains(filepath.Join(dir, "a", "b.go")) {
		t.Error("nested path should be contained")
	}
	if !ws.Contains(dir) {
		t.Error("root itself should be contained")
	}
	if ws.Contains(filepath.Join(dir, "..")) {
		t.Error("parent must not be contained")
	}
	if ws.Contains("/etc/passwd") {
		t.Error("absolute outside path must not be contained")
	}
}

func TestActiveDocument(t *testing.T) {
	dir := t.TempDir()
	ws, err := NewWorkspace(dir, 0)
	if err != nil {
		t.Fatal(err)
	}

	if ws.ActiveDocument() != "" {
		t.Error("expected no active document initially")
	}
	ws.SetActiveDocument(filepath.Join(dir, "a.go"))
	if ws.ActiveDocument() == "" {
		t.Error("active document not recorded")
	}
}
