package analyzer

import (
	"regexp"
	"strings"
)

// Features is the lightweight NLP view of a raw query used by the intent
// rules: tokens, identifier-like entities, technical vocabulary hits, action
// verbs, and a scalar complexity estimate.
type Features struct {
	Tokens         []string
	Entities       []string
	TechnicalTerms []string
	ActionVerbs    []string
	Complexity     float64
}

var (
	quotedRe    = regexp.MustCompile("[`'\"]([^`'\"]+)[`'\"]")
	camelCaseRe = regexp.MustCompile(`[A-Z][a-z]+(?:[A-Z][a-z]+)+`)
	snakeCaseRe = regexp.MustCompile(`[a-z]+(?:_[a-z]+)+`)
)

var technicalTerms = []string{
	"api", "backend", "frontend", "database", "server", "client",
	"framework", "library", "module", "component", "service", "middleware",
	"endpoint", "authentication", "authorization", "encryption",
	"deployment", "testing", "debugging", "optimization", "performance",
	"security", "architecture",
}

var actionVerbs = map[string]struct{}{
	"create": {}, "build": {}, "make": {}, "implement": {}, "develop": {},
	"write": {}, "generate": {}, "fix": {}, "debug": {}, "solve": {},
	"resolve": {}, "analyze": {}, "review": {}, "test": {}, "deploy": {},
	"optimize": {}, "refactor": {}, "update": {}, "modify": {}, "change": {},
	"explain": {}, "understand": {}, "learn": {}, "teach": {},
	"document": {}, "check": {},
}

var questionWords = []string{"how", "why", "what", "when", "where", "which"}

var connectiveWords = []string{"if", "when", "because", "since", "although", "however"}

// ExtractFeatures derives query features. It never fails; an empty query
// yields zero terms and complexity 0.
func ExtractFeatures(query string) Features {
	lower := strings.ToLower(query)
	tokens := strings.Fields(lower)

	f := Features{
		Tokens:   tokens,
		Entities: extractEntities(query),
	}

	for _, term := range technicalTerms {
		if strings.Contains(lower, term) {
			f.TechnicalTerms = append(f.TechnicalTerms, term)
		}
	}

	for _, tok := range tokens {
		if _, ok := actionVerbs[tok]; ok {
			f.ActionVerbs = append(f.ActionVerbs, tok)
		}
	}

	f.Complexity = complexity(tokens, len(f.TechnicalTerms), lower)
	return f
}

// extractEntities pulls named-entity-like substrings from the original-cased
// query: quoted spans, CamelCase identifiers, snake_case identifiers. The
// three extractors run independently and results are concatenated, so the
// same span may appear more than once.
func extractEntities(query string) []string {
	var entities []string

	for _, m := range quotedRe.FindAllStringSubmatch(query, -1) {
		entities = append(entities, m[1])
	}
	entities = append(entities, camelCaseRe.FindAllString(query, -1)...)
	entities = append(entities, snakeCaseRe.FindAllString(query, -1)...)

	return entities
}

func complexity(tokens []string, technicalCount int, lower string) float64 {
	n := len(tokens)
	if n == 0 {
		return 0
	}

	score := minFloat(0.3, float64(n)/20)
	score += minFloat(0.4, float64(technicalCount)/float64(n))

	questions := 0
	for _, q := range questionWords {
		if containsToken(tokens, q) {
			questions++
		}
	}
	if questions >= 2 {
		score += 0.2
	}

	for _, c := range connectiveWords {
		if containsToken(tokens, c) {
			score += 0.1
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}

func containsToken(tokens []string, word string) bool {
	for _, t := range tokens {
		if t == word {
			return true
		}
	}
	return false
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
