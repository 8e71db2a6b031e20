package analyzer

import "regexp"

// LanguagePatterns is the compiled pattern set used to pull structural facts
// out of one language family. Every slice may hold several alternatives; a
// construct name is the first capture group of whichever pattern hits.
type LanguagePatterns struct {
	Functions  []*regexp.Regexp
	Classes    []*regexp.Regexp
	Interfaces []*regexp.Regexp
	TypeAlias  []*regexp.Regexp
	Imports    []*regexp.Regexp
	Exports    []*regexp.Regexp
}

// typescriptPatterns doubles as the default fallback for unknown languages.
var typescriptPatterns = LanguagePatterns{
	Functions: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s+(\w+)`),
		regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?const\s+(\w+)\s*=\s*(?:async\s*)?\(`),
	},
	Classes: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+(\w+)`),
	},
	Interfaces: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?interface\s+(\w+)`),
	},
	TypeAlias: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:export\s+)?type\s+(\w+)\s*=`),
	},
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*import\s+(?:[^'"]+\s+from\s+)?['"]([^'"]+)['"]`),
		regexp.MustCompile(`require\(['"]([^'"]+)['"]\)`),
	},
	Exports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*export\s+(?:default\s+)?(?:abstract\s+)?(?:async\s+)?(?:function|class|interface|type|const|let|var|enum)\s+(\w+)`),
	},
}

var goPatterns = LanguagePatterns{
	Functions: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^func\s+(?:\([^)]+\)\s+)?(\w+)\s*\(`),
	},
	Classes: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^type\s+(\w+)\s+struct\b`),
	},
	Interfaces: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^type\s+(\w+)\s+interface\b`),
	},
	TypeAlias: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^type\s+(\w+)\s*=`),
	},
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^import\s+(?:\w+\s+)?"([^"]+)"`),
		regexp.MustCompile(`(?m)^\t(?:[_.\w]+\s+)?"([^"]+)"`),
	},
}

var pythonPatterns = LanguagePatterns{
	Functions: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:async\s+)?def\s+(\w+)`),
	},
	Classes: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*class\s+(\w+)`),
	},
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*import\s+([\w.]+)`),
		regexp.MustCompile(`(?m)^[ \t]*from\s+([\w.]+)\s+import`),
	},
}

var javaPatterns = LanguagePatterns{
	Functions: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:public|private|protected)\s+(?:static\s+)?(?:final\s+)?[\w<>\[\], ]+\s+(\w+)\s*\(`),
	},
	Classes: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:public\s+|private\s+|protected\s+)?(?:abstract\s+|final\s+)?class\s+(\w+)`),
	},
	Interfaces: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:public\s+)?interface\s+(\w+)`),
	},
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*import\s+(?:static\s+)?([\w.]+);`),
	},
}

var rustPatterns = LanguagePatterns{
	Functions: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?fn\s+(\w+)`),
	},
	Classes: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:pub(?:\([^)]*\))?\s+)?struct\s+(\w+)`),
	},
	Interfaces: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:pub(?:\([^)]*\))?\s+)?trait\s+(\w+)`),
	},
	TypeAlias: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*(?:pub(?:\([^)]*\))?\s+)?type\s+(\w+)`),
	},
	Imports: []*regexp.Regexp{
		regexp.MustCompile(`(?m)^[ \t]*use\s+([\w:]+)`),
	},
}

// languageTable maps a normalized language tag to its pattern set. Lookup
// misses fall back to the TypeScript-like default.
var languageTable = map[string]*LanguagePatterns{
	"typescript": &typescriptPatterns,
	"javascript": &typescriptPatterns,
	"go":         &goPatterns,
	"python":     &pythonPatterns,
	"java":       &javaPatterns,
	"rust":       &rustPatterns,
}

// PatternsFor returns the pattern set for a language tag, defaulting to the
// TypeScript-like set for unknown languages.
func PatternsFor(lang string) *LanguagePatterns {
	if p, ok := languageTable[lang]; ok {
		return p
	}
	return &typescriptPatterns
}

// extToLanguage maps file extensions to language tags.
var extToLanguage = map[string]string{
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".go":   "go",
	".py":   "python",
	".java": "java",
	".rs":   "rust",
	".rb":   "ruby",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cs":   "csharp",
	".php":  "php",
	".kt":   "kotlin",
	".md":   "markdown",
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
	".toml": "toml",
	".sh":   "shell",
	".sql":  "sql",
}

// LanguageForExt returns the language tag for a file extension (with leading
// dot), or "plaintext" when unknown.
func LanguageForExt(ext string) string {
	if lang, ok := extToLanguage[ext]; ok {
		return lang
	}
	return "plaintext"
}
