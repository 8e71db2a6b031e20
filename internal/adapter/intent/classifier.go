package intent

import (
	"strings"

	"codectx/internal/adapter/analyzer"
	"codectx/internal/domain"
)

// Classifier maps raw query text to a retrieval intent by walking an
// ordered rule chain. It is a pure function of the query and the fixed rule
// tables and is safe for concurrent use.
type Classifier struct {
	rules []rule
}

// NewClassifier creates a classifier with the default rule chain.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules()}
}

// Classify returns the intent verdict for a query. Empty or whitespace-only
// queries normalize to a no-context general intent instead of erroring.
func (c *Classifier) Classify(text string) domain.QueryIntent {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return noContextIntent(domain.IntentGeneral)
	}

	q := query{
		raw:      trimmed,
		lower:    strings.ToLower(trimmed),
		features: analyzer.ExtractFeatures(trimmed),
	}

	for _, r := range c.rules {
		if r.matches(q) {
			return r.build(q)
		}
	}

	// The chain ends in a catch-all, so this is unreachable; kept so the
	// function has a total return without panicking on a misconfigured chain.
	return noContextIntent(domain.IntentGeneral)
}

// RuleNames returns the evaluation order of the rule chain. Exposed for
// diagnostics and ordering tests.
func (c *Classifier) RuleNames() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.name
	}
	return names
}
