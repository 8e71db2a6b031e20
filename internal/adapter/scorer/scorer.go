package scorer

import (
	"path/filepath"
	"sort"
	"strings"

	"codectx/internal/domain"
)

// Raw signal weights. Scores accumulate on an unbounded raw scale and are
// normalized to [0,1) at the end via raw/(raw+normalizationKnee); every
// threshold in the system (minRelevanceScore, priorityThreshold) compares
// against the normalized scale.
const (
	exactMatchWeight      = 10.0
	exportedMatchWeight   = 3.0
	unexportedMatchWeight = 2.0
	dependencyMatchWeight = 2.0
	semanticMatchWeight   = 2.0
	filenameBonus         = 15.0
	languageBonus         = 5.0
	largeFilePenalty      = 0.8
	largeFileThreshold    = 100 * 1024
	semanticOccurrenceCap = 5
	normalizationKnee     = 25.0
)

// Scorer computes composite relevance scores for gathered candidates. It is
// stateless beyond its language preferences and safe for concurrent use.
type Scorer struct {
	preferredLanguages map[string]struct{}
}

// NewScorer creates a scorer preferring the given language tags.
func NewScorer(preferredLanguages []string) *Scorer {
	prefs := make(map[string]struct{}, len(preferredLanguages))
	for _, l := range preferredLanguages {
		prefs[strings.ToLower(l)] = struct{}{}
	}
	return &Scorer{preferredLanguages: prefs}
}

// Score ranks candidates against the query. Candidates are not mutated;
// each result is a fresh ScoredFile carrying the normalized score and match
// provenance. Calling it twice with the same inputs yields the same output.
func (s *Scorer) Score(candidates []domain.CandidateFile, query string, intent domain.QueryIntent) []domain.ScoredFile {
	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	terms := queryTerms(lowerQuery)
	searchType := ResolveSearchType(lowerQuery, intent)

	scored := make([]domain.ScoredFile, 0, len(candidates))
	for _, c := range candidates {
		score, matches := s.scoreOne(c, lowerQuery, terms, searchType, intent)
		scored = append(scored, domain.ScoredFile{
			File:    c,
			Score:   score,
			Matches: matches,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func (s *Scorer) scoreOne(c domain.CandidateFile, lowerQuery string, terms []string, searchType domain.SearchType, intent domain.QueryIntent) (float64, []domain.MatchRange) {
	raw := 0.0
	var matches []domain.MatchRange

	lowerContent := strings.ToLower(c.Content)

	// Whole-query occurrences are the strongest signal.
	if lowerQuery != "" {
		offset := 0
		for {
			idx := strings.Index(lowerContent[offset:], lowerQuery)
			if idx < 0 {
				break
			}
			start := offset + idx
			matches = append(matches, domain.MatchRange{
				Start:      start,
				End:        start + len(lowerQuery),
				Kind:       domain.MatchExact,
				Confidence: 1.0,
			})
			raw += exactMatchWeight
			offset = start + len(lowerQuery)
		}
	}

	switch searchType {
	case domain.SearchFunction:
		raw += constructScore(c.Structure.Functions, terms)
	case domain.SearchClass:
		raw += constructScore(c.Structure.Classes, terms)
	case domain.SearchInterface:
		raw += constructScore(c.Structure.Interfaces, terms)
	case domain.SearchDependency:
		for _, imp := range c.Structure.Imports {
			lowerImp := strings.ToLower(imp)
			for _, t := range terms {
				if strings.Contains(lowerImp, t) {
					raw += dependencyMatchWeight
					break
				}
			}
		}
	default: // semantic: keyword density across all query words
		for _, t := range terms {
			count := strings.Count(lowerContent, t)
			if count == 0 {
				continue
			}
			if count > semanticOccurrenceCap {
				count = semanticOccurrenceCap
			}
			raw += float64(count) * semanticMatchWeight
			idx := strings.Index(lowerContent, t)
			matches = append(matches, domain.MatchRange{
				Start:      idx,
				End:        idx + len(t),
				Kind:       domain.MatchSemantic,
				Confidence: 0.7,
			})
		}
	}

	if filenameMatches(c.Path, lowerQuery) {
		raw += filenameBonus
	}
	if _, ok := s.preferredLanguages[strings.ToLower(c.Language)]; ok {
		raw += languageBonus
	}
	if len(c.Content) > largeFileThreshold {
		raw *= largeFilePenalty
	}

	score := raw / (raw + normalizationKnee)
	score += intentNudge(intent.Type, c.Path)
	if score > 1 {
		score = 1
	}
	return score, matches
}

// constructScore awards points per declared name hit, exported declarations
// counting more than unexported ones.
func constructScore(constructs []domain.Construct, terms []string) float64 {
	score := 0.0
	for _, c := range constructs {
		name := strings.ToLower(c.Name)
		for _, t := range terms {
			if strings.Contains(name, t) || strings.Contains(t, name) {
				if c.IsExported {
					score += exportedMatchWeight
				} else {
					score += unexportedMatchWeight
				}
				break
			}
		}
	}
	return score
}

// filenameMatches checks both directions: the filename stem appearing in the
// query ("login" in "why is the login function throwing") or the query
// appearing in the filename.
func filenameMatches(path, lowerQuery string) bool {
	if lowerQuery == "" {
		return false
	}
	base := strings.ToLower(filepath.Base(path))
	if strings.Contains(base, lowerQuery) {
		return true
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return len(stem) > 2 && strings.Contains(lowerQuery, stem)
}

// intentNudge is the small additive boost applied on the normalized scale
// for paths that obviously belong to the intent's territory.
func intentNudge(t domain.IntentType, path string) float64 {
	lower := strings.ToLower(path)
	switch t {
	case domain.IntentDebugging:
		if strings.Contains(lower, "error") {
			return 0.2
		}
	case domain.IntentTesting:
		if strings.Contains(lower, "test") {
			return 0.3
		}
	case domain.IntentSecurity:
		if strings.Contains(lower, "auth") {
			return 0.2
		}
	}
	return 0
}

// ResolveSearchType picks the construct signal the scorer emphasizes, from
// explicit query vocabulary when present, defaulting to semantic density.
func ResolveSearchType(lowerQuery string, intent domain.QueryIntent) domain.SearchType {
	switch {
	case strings.Contains(lowerQuery, "interface"):
		return domain.SearchInterface
	case strings.Contains(lowerQuery, "class"):
		return domain.SearchClass
	case strings.Contains(lowerQuery, "import") || strings.Contains(lowerQuery, "depend"):
		return domain.SearchDependency
	case strings.Contains(lowerQuery, "function") || strings.Contains(lowerQuery, "method"):
		return domain.SearchFunction
	default:
		return domain.SearchSemantic
	}
}

// queryTerms splits the query into matchable terms, dropping punctuation and
// words too short to be meaningful.
func queryTerms(lowerQuery string) []string {
	var terms []string
	for _, tok := range strings.Fields(lowerQuery) {
		tok = strings.Trim(tok, ".,!?\"'`()[]{}:;")
		if len(tok) > 2 {
			terms = append(terms, tok)
		}
	}
	return terms
}
