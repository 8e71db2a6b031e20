package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"codectx/internal/adapter/analyzer"
	"codectx/internal/port"
)

// ErrTooLarge marks a file over the read ceiling. Callers treat it as "skip
// this file", never as a batch failure.
var ErrTooLarge = errors.New("file exceeds size limit")

// Workspace is the local-filesystem implementation of the workspace port.
// Every path it hands out is guaranteed to live under the root.
type Workspace struct {
	root        string
	maxFileSize int64
	activeDoc   string
}

// NewWorkspace creates a workspace rooted at root. maxFileSize <= 0 selects
// the 1MB default.
func NewWorkspace(root string, maxFileSize int64) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace root not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace root is not a directory: %s", abs)
	}
	if maxFileSize <= 0 {
		maxFileSize = analyzer.MaxAnalyzableSize
	}
	return &Workspace{root: abs, maxFileSize: maxFileSize}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string {
	return w.root
}

// SetActiveDocument records the currently focused file, if any.
func (w *Workspace) SetActiveDocument(path string) {
	w.activeDoc = path
}

// ActiveDocument returns the focused file path, or "" when none.
func (w *Workspace) ActiveDocument() string {
	return w.activeDoc
}

// ListCandidateFiles walks the root and returns files matching any include
// pattern and no exclude pattern, up to maxResults. Patterns match against
// the root-relative path.
func (w *Workspace) ListCandidateFiles(includes, excludes []string, maxResults int) ([]port.FileInfo, error) {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}

	var files []port.FileInfo
	err := filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && matchAny(excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if maxResults > 0 && len(files) >= maxResults {
			return filepath.SkipAll
		}

		if !matchAny(includes, rel) || matchAny(excludes, rel) {
			return nil
		}
		if !w.Contains(path) {
			return nil
		}

		files = append(files, port.FileInfo{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk workspace: %w", err)
	}
	return files, nil
}

// ReadFile reads one workspace file. Paths outside the root fail, files over
// the size ceiling return ErrTooLarge.
func (w *Workspace) ReadFile(path string) (port.FileData, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return port.FileData{}, fmt.Errorf("failed to resolve path: %w", err)
	}
	if !w.Contains(abs) {
		return port.FileData{}, fmt.Errorf("path outside workspace root: %s", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return port.FileData{}, err
	}
	if info.Size() > w.maxFileSize {
		return port.FileData{}, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return port.FileData{}, err
	}

	return port.FileData{
		Content:  string(data),
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Language: analyzer.LanguageForExt(strings.ToLower(filepath.Ext(abs))),
	}, nil
}

// Contains reports whether a path resolves inside the workspace root.
func (w *Workspace) Contains(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(w.root, abs)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, ".."+string(filepath.Separator)) && rel != "..")
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		// Malformed patterns are treated as non-matching rather than fatal.
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		// Bare substrings like "*auth*" should also hit path segments deeper
		// in the tree, matching how editor glob pickers behave.
		if !strings.Contains(pattern, "/") {
			if ok, err := doublestar.Match("**/"+pattern, rel); err == nil && ok {
				return true
			}
		}
	}
	return false
}
