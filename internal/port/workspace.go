package port

import "time"

// FileInfo describes one workspace file without its content.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// FileData is the full read result for one workspace file.
type FileData struct {
	Content  string
	Size     int64
	ModTime  time.Time
	Language string
}

// Workspace is the editor-side collaborator the engine gathers files
// through. Implementations must keep every returned path inside the
// workspace root.
type Workspace interface {
	// ListCandidateFiles enumerates files matching the include patterns and
	// not matching the exclude patterns, up to maxResults.
	ListCandidateFiles(includes, excludes []string, maxResults int) ([]FileInfo, error)

	// ReadFile reads one file. Oversized or unreadable files return an
	// error the caller treats as a skip, never as a batch failure.
	ReadFile(path string) (FileData, error)

	// ActiveDocument returns the path of the currently focused file, or ""
	// when none is open.
	ActiveDocument() string

	// Root returns the absolute workspace root.
	Root() string
}
