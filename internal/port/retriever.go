package port

import "codectx/internal/domain"

// Classifier turns raw query text into a retrieval intent.
type Classifier interface {
	Classify(query string) domain.QueryIntent
}

// Gatherer collects candidate files for a classified query.
type Gatherer interface {
	// Gather returns the candidate set for the query plus the number of
	// files scanned and any non-fatal per-file warnings.
	Gather(query string, intent domain.QueryIntent) ([]domain.CandidateFile, int, []string, error)
}

// Scorer ranks gathered candidates against the query.
type Scorer interface {
	Score(candidates []domain.CandidateFile, query string, intent domain.QueryIntent) []domain.ScoredFile
}

// AnalysisCache memoizes per-file structural analysis keyed by identity
// (path, size, mtime). Purely an optimization; a miss is never an error.
type AnalysisCache interface {
	Get(path string, size int64, modTime int64) (domain.FileStructure, bool)
	Put(path string, size int64, modTime int64, s domain.FileStructure) error
}
