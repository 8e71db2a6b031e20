package usecase

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"codectx/internal/domain"
)

// Selection is the outcome of one budget-selection pass.
type Selection struct {
	Selected []domain.ScoredFile
	Rejected []domain.ScoredFile
	// Efficiency is a diagnostic in [0,1]; it never steers selection.
	Efficiency float64
	// UsedTokens is the estimated token cost of the selected set.
	UsedTokens int
}

// Select applies the priority threshold, ranks by the weighted composite of
// relevance, recency, and size, and then admits files greedily in rank order
// until either the file-count or token budget would be exceeded. The walk is
// strictly in rank order: once the next candidate does not fit, selection
// stops rather than hunting for a smaller file further down. Predictability
// over packing density.
func Select(scored []domain.ScoredFile, query string, criteria domain.FilterCriteria) Selection {
	now := time.Now()

	eligible := make([]rankedFile, 0, len(scored))
	rejected := make([]domain.ScoredFile, 0)

	for _, sf := range scored {
		if sf.Score < criteria.PriorityThreshold {
			rejected = append(rejected, sf)
			continue
		}
		eligible = append(eligible, rankedFile{
			file:      sf,
			composite: compositeScore(sf, criteria, now),
		})
	}

	queryTerms := termsOf(query)
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].composite != eligible[j].composite {
			return eligible[i].composite > eligible[j].composite
		}
		// Prefer filenames that echo the query, then smaller files.
		in, jn := nameHit(eligible[i].file, queryTerms), nameHit(eligible[j].file, queryTerms)
		if in != jn {
			return in
		}
		return eligible[i].file.File.Size < eligible[j].file.File.Size
	})

	selected := make([]domain.ScoredFile, 0, len(eligible))
	usedTokens := 0
	for i, rf := range eligible {
		tokens := rf.file.EstimatedTokens()
		if criteria.MaxFiles > 0 && len(selected)+1 > criteria.MaxFiles {
			rejected = append(rejected, unwrap(eligible[i:])...)
			break
		}
		if criteria.MaxTokens > 0 && usedTokens+tokens > criteria.MaxTokens {
			rejected = append(rejected, unwrap(eligible[i:])...)
			break
		}
		selected = append(selected, rf.file)
		usedTokens += tokens
	}

	return Selection{
		Selected:   selected,
		Rejected:   rejected,
		Efficiency: efficiency(selected, len(scored)),
		UsedTokens: usedTokens,
	}
}

type rankedFile struct {
	file      domain.ScoredFile
	composite float64
}

func unwrap(ranked []rankedFile) []domain.ScoredFile {
	out := make([]domain.ScoredFile, len(ranked))
	for i, r := range ranked {
		out[i] = r.file
	}
	return out
}

func compositeScore(sf domain.ScoredFile, criteria domain.FilterCriteria, now time.Time) float64 {
	relW, recW, sizeW := criteria.RelevanceWeight, criteria.RecencyWeight, criteria.SizeWeight
	if relW == 0 && recW == 0 && sizeW == 0 {
		relW = 1
	}
	return sf.Score*relW +
		recencyScore(now.Sub(sf.File.ModTime))*recW +
		sizeScore(sf.File.Size)*sizeW
}

// recencyScore steps down with the age of the last modification.
func recencyScore(age time.Duration) float64 {
	switch {
	case age < time.Hour:
		return 1.0
	case age < 24*time.Hour:
		return 0.8
	case age < 7*24*time.Hour:
		return 0.6
	case age < 30*24*time.Hour:
		return 0.4
	default:
		return 0.2
	}
}

// sizeScore prefers the 1KB-50KB band; very small files carry little signal
// and very large ones burn budget.
func sizeScore(size int64) float64 {
	switch {
	case size < 1024:
		return 0.6
	case size <= 50*1024:
		return 1.0
	case size <= 100*1024:
		return 0.8
	case size <= 500*1024:
		return 0.4
	default:
		return 0.2
	}
}

// efficiency reports how concentrated the selection was: high average score
// and a small selected share of a large candidate pool both push it up.
func efficiency(selected []domain.ScoredFile, totalCandidates int) float64 {
	if len(selected) == 0 || totalCandidates == 0 {
		return 0
	}
	sum := 0.0
	for _, sf := range selected {
		sum += sf.Score
	}
	avg := sum / float64(len(selected))
	e := avg + (1-float64(len(selected))/float64(totalCandidates))*0.3
	if e > 1 {
		e = 1
	}
	return e
}

func nameHit(sf domain.ScoredFile, terms []string) bool {
	base := strings.ToLower(filepath.Base(sf.File.Path))
	for _, t := range terms {
		if strings.Contains(base, t) {
			return true
		}
	}
	return false
}

func termsOf(query string) []string {
	var terms []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		tok = strings.Trim(tok, ".,!?\"'`()[]{}:;")
		if len(tok) > 2 {
			terms = append(terms, tok)
		}
	}
	return terms
}
