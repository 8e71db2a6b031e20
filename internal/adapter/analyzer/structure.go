package analyzer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"codectx/internal/domain"
)

// MaxAnalyzableSize is the content ceiling for structural analysis. Larger
// files are skipped by the gatherer before analysis is attempted.
const MaxAnalyzableSize = 1 << 20

// AnalyzeStructure extracts imports, exports, and named constructs from file
// content using the pattern table for the given language. It never fails:
// content that matches nothing yields an empty structure.
func AnalyzeStructure(content, lang string) domain.FileStructure {
	p := PatternsFor(lang)

	s := domain.FileStructure{
		Functions:  findConstructs(content, lang, p.Functions),
		Classes:    findConstructs(content, lang, p.Classes),
		Interfaces: findConstructs(content, lang, p.Interfaces),
		TypeAlias:  findConstructs(content, lang, p.TypeAlias),
	}

	for _, re := range p.Imports {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if len(m) > 1 && m[1] != "" {
				s.Imports = append(s.Imports, m[1])
			}
		}
	}

	for _, re := range p.Exports {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			if len(m) > 1 && m[1] != "" {
				s.Exports = append(s.Exports, m[1])
			}
		}
	}

	// Go has no export keyword; exported identifiers are the capitalized
	// construct names.
	if lang == "go" {
		for _, group := range [][]domain.Construct{s.Functions, s.Classes, s.Interfaces, s.TypeAlias} {
			for _, c := range group {
				if c.IsExported {
					s.Exports = append(s.Exports, c.Name)
				}
			}
		}
	}

	return s
}

// findConstructs runs a pattern group over the content and records each
// unique (name, line) hit with its export visibility.
func findConstructs(content, lang string, patterns []*regexp.Regexp) []domain.Construct {
	var out []domain.Construct
	seen := make(map[string]struct{})

	for _, re := range patterns {
		idx := re.FindAllStringSubmatchIndex(content, -1)
		for _, loc := range idx {
			if len(loc) < 4 || loc[2] < 0 {
				continue
			}
			name := content[loc[2]:loc[3]]
			line := lineAt(content, loc[0])
			key := name + ":" + strconv.Itoa(line)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, domain.Construct{
				Name:       name,
				Line:       line,
				IsExported: isExported(content[loc[0]:loc[1]], name, lang),
			})
		}
	}

	return out
}

func isExported(matched, name, lang string) bool {
	switch lang {
	case "go":
		r := []rune(name)
		return len(r) > 0 && unicode.IsUpper(r[0])
	case "rust":
		return strings.Contains(matched, "pub")
	case "java":
		return strings.Contains(matched, "public")
	case "python":
		return !strings.HasPrefix(name, "_")
	default:
		return strings.Contains(matched, "export")
	}
}

func lineAt(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return strings.Count(content[:offset], "\n") + 1
}
