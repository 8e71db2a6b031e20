package usecase

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"codectx/internal/adapter/scorer"
	"codectx/internal/domain"
	"codectx/internal/port"
)

// Defaults holds the engine-level knobs not carried by a classified intent.
type Defaults struct {
	// MaxTokens is the token budget applied when retrieving by intent.
	MaxTokens int
	// RelevanceWeight, RecencyWeight, and SizeWeight shape the composite
	// ranking for intent-driven retrievals.
	RelevanceWeight float64
	RecencyWeight   float64
	SizeWeight      float64
}

// DefaultDefaults returns the stock engine defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		MaxTokens:       8000,
		RelevanceWeight: 0.6,
		RecencyWeight:   0.25,
		SizeWeight:      0.15,
	}
}

// Engine is the retrieval façade: classify, gather, score, select. It holds
// no per-query state, so one instance serves concurrent callers; it is
// constructed explicitly and passed by reference, never a package global.
type Engine struct {
	classifier port.Classifier
	gatherer   port.Gatherer
	scorer     port.Scorer
	excludes   []string
	defaults   Defaults
	log        *slog.Logger
}

// NewEngine wires a retrieval engine. excludes is reported in result
// metadata; log may be nil.
func NewEngine(classifier port.Classifier, gatherer port.Gatherer, sc port.Scorer, excludes []string, defaults Defaults, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if defaults.MaxTokens <= 0 {
		defaults.MaxTokens = DefaultDefaults().MaxTokens
	}
	return &Engine{
		classifier: classifier,
		gatherer:   gatherer,
		scorer:     sc,
		excludes:   excludes,
		defaults:   defaults,
		log:        log,
	}
}

// Retrieve runs the full pipeline for a query, with budgets taken from the
// classified intent. Social and general queries short-circuit to an empty
// (never nil) result.
func (e *Engine) Retrieve(query string) (domain.RetrievalResult, error) {
	intent := e.classifier.Classify(query)
	criteria := e.criteriaFromIntent(intent)
	return e.run(query, intent, criteria)
}

// RetrieveWithCriteria runs the pipeline with explicit criteria, e.g. a
// scenario preset, while still classifying the query to pick gathering
// sources.
func (e *Engine) RetrieveWithCriteria(query string, criteria domain.FilterCriteria) (domain.RetrievalResult, error) {
	intent := e.classifier.Classify(query)
	if intent.RequiresContext {
		// Explicit criteria override the intent's own budget knobs but must
		// not resurrect context for conversational queries.
		intent.Config.MaxFiles = criteria.MaxFiles
		intent.Config.MinRelevanceScore = criteria.PriorityThreshold
	}
	return e.run(query, intent, criteria)
}

// Classify exposes the intent verdict without retrieving.
func (e *Engine) Classify(query string) domain.QueryIntent {
	return e.classifier.Classify(query)
}

func (e *Engine) run(query string, intent domain.QueryIntent, criteria domain.FilterCriteria) (domain.RetrievalResult, error) {
	start := time.Now()

	result := domain.RetrievalResult{
		Intent:   intent,
		Selected: []domain.ScoredFile{},
		Rejected: []domain.ScoredFile{},
		Metadata: domain.SearchMetadata{
			Query:           query,
			SearchType:      scorer.ResolveSearchType(strings.ToLower(query), intent),
			ExcludePatterns: e.excludes,
		},
	}

	if !intent.RequiresContext {
		result.Metadata.Elapsed = time.Since(start)
		return result, nil
	}

	candidates, scanned, warnings, err := e.gatherer.Gather(query, intent)
	result.Metadata.FilesScanned = scanned
	result.Metadata.Warnings = warnings
	if err != nil {
		// Total gathering unavailability surfaces to the caller, still with
		// an empty rather than nil result.
		result.Metadata.Elapsed = time.Since(start)
		return result, err
	}

	scored := e.scorer.Score(candidates, query, intent)
	sel := Select(scored, query, criteria)

	result.Selected = sel.Selected
	result.Rejected = sel.Rejected
	result.EstimatedTokens = sel.UsedTokens
	result.TotalRelevance = averageScore(sel.Selected)
	result.Metadata.Efficiency = sel.Efficiency
	result.Metadata.Languages = languagesOf(sel.Selected)
	result.Metadata.Elapsed = time.Since(start)

	e.log.Debug("retrieval complete",
		"query", query,
		"intent", intent.Type,
		"scanned", scanned,
		"selected", len(sel.Selected),
		"tokens", sel.UsedTokens,
		"elapsed", result.Metadata.Elapsed,
	)
	return result, nil
}

func (e *Engine) criteriaFromIntent(intent domain.QueryIntent) domain.FilterCriteria {
	return domain.FilterCriteria{
		MaxFiles:          intent.Config.MaxFiles,
		MaxTokens:         e.defaults.MaxTokens,
		PriorityThreshold: intent.Config.MinRelevanceScore,
		RelevanceWeight:   e.defaults.RelevanceWeight,
		RecencyWeight:     e.defaults.RecencyWeight,
		SizeWeight:        e.defaults.SizeWeight,
	}
}

func averageScore(files []domain.ScoredFile) float64 {
	if len(files) == 0 {
		return 0
	}
	sum := 0.0
	for _, f := range files {
		sum += f.Score
	}
	return sum / float64(len(files))
}

func languagesOf(files []domain.ScoredFile) []string {
	seen := make(map[string]struct{})
	var langs []string
	for _, f := range files {
		if _, dup := seen[f.File.Language]; dup {
			continue
		}
		seen[f.File.Language] = struct{}{}
		langs = append(langs, f.File.Language)
	}
	return langs
}
