package domain

import "time"

// IntentType is the classified purpose of a user query.
type IntentType string

const (
	IntentSocial         IntentType = "social"
	IntentDebugging      IntentType = "debugging"
	IntentArchitecture   IntentType = "architecture"
	IntentPerformance    IntentType = "performance"
	IntentSecurity       IntentType = "security"
	IntentReview         IntentType = "review"
	IntentTesting        IntentType = "testing"
	IntentImplementation IntentType = "implementation"
	IntentLearning       IntentType = "learning"
	IntentDeployment     IntentType = "deployment"
	IntentDocumentation  IntentType = "documentation"
	IntentQuickFix       IntentType = "quickfix"
	IntentTechnical      IntentType = "technical"
	IntentGeneral        IntentType = "general"
)

// Priority indicates how urgent context assembly is for a query.
type Priority string

const (
	PriorityNone     Priority = "none"
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Scope describes how wide the context net should be cast.
type Scope string

const (
	ScopeNone           Scope = "none"
	ScopeMinimal        Scope = "minimal"
	ScopeFocused        Scope = "focused"
	ScopeComprehensive  Scope = "comprehensive"
	ScopeEducational    Scope = "educational"
	ScopeTesting        Scope = "testing"
	ScopeSecurity       Scope = "security"
	ScopeInfrastructure Scope = "infrastructure"
)

// ContextSource names a channel candidate files can be gathered from.
type ContextSource string

const (
	SourceFiles        ContextSource = "files"
	SourceDependencies ContextSource = "dependencies"
	SourceTests        ContextSource = "tests"
	SourceDocs         ContextSource = "docs"
	SourceConfig       ContextSource = "config"
	SourceGit          ContextSource = "git"
	SourceSymbols      ContextSource = "symbols"
)

// SearchStrategy hints at how gathering and scoring should be biased.
type SearchStrategy string

const (
	StrategyDefault        SearchStrategy = ""
	StrategyComprehensive  SearchStrategy = "comprehensive"
	StrategySecurity       SearchStrategy = "security"
	StrategyTesting        SearchStrategy = "testing"
	StrategyEducational    SearchStrategy = "educational"
	StrategyInfrastructure SearchStrategy = "infrastructure"
	StrategyMinimal        SearchStrategy = "minimal"
)

// ContextConfig is the budget portion of a classified intent.
type ContextConfig struct {
	MaxFiles          int
	MinRelevanceScore float64
	SearchStrategy    SearchStrategy
	PriorityFileGlobs []string
	ExcludeTypes      []string
	IncludeRelated    bool
}

// QueryIntent is the classifier's verdict for a single query. It is created
// fresh per query and never mutated afterwards.
type QueryIntent struct {
	Type            IntentType
	RequiresContext bool
	Config          ContextConfig
	Priority        Priority
	Scope           Scope
	Sources         []ContextSource
}

// HasSource reports whether the intent wants the given gathering source.
func (q QueryIntent) HasSource(s ContextSource) bool {
	for _, src := range q.Sources {
		if src == s {
			return true
		}
	}
	return false
}

// Construct is a named declaration extracted from source text.
type Construct struct {
	Name       string
	Line       int
	IsExported bool
}

// FileStructure holds the structural facts derived from one file's content.
type FileStructure struct {
	Imports    []string
	Exports    []string
	Functions  []Construct
	Classes    []Construct
	Interfaces []Construct
	TypeAlias  []Construct
}

// CandidateFile is a file considered for inclusion in the context bundle.
// Immutable after gathering; scoring attaches results via ScoredFile.
type CandidateFile struct {
	Path      string
	Content   string
	Language  string
	Size      int64
	ModTime   time.Time
	Structure FileStructure
}

// MatchKind classifies how a match range was found.
type MatchKind string

const (
	MatchExact    MatchKind = "exact"
	MatchSemantic MatchKind = "semantic"
	MatchFuzzy    MatchKind = "fuzzy"
)

// MatchRange records one located substring match inside a candidate's
// content. Provenance only; it does not steer control flow beyond its
// contribution to the score.
type MatchRange struct {
	Start      int
	End        int
	Kind       MatchKind
	Confidence float64
}

// ScoredFile pairs a candidate with its relevance verdict. Scoring produces
// these instead of mutating the gathered CandidateFile.
type ScoredFile struct {
	File    CandidateFile
	Score   float64
	Matches []MatchRange
}

// EstimatedTokens approximates the LLM token cost of including this file.
func (s ScoredFile) EstimatedTokens() int {
	return (len(s.File.Content) + 3) / 4
}

// SearchType selects which construct signal the scorer emphasizes.
type SearchType string

const (
	SearchFunction   SearchType = "function"
	SearchClass      SearchType = "class"
	SearchInterface  SearchType = "interface"
	SearchDependency SearchType = "dependency"
	SearchSemantic   SearchType = "semantic"
)

// FilterCriteria is a named bundle of budget knobs for the selector.
type FilterCriteria struct {
	MaxFiles           int
	MaxTokens          int
	PriorityThreshold  float64
	RelevanceWeight    float64
	RecencyWeight      float64
	SizeWeight         float64
	PreferredLanguages []string
	IncludePatterns    []string
	ExcludePatterns    []string
}

// SearchMetadata describes how a retrieval call went, for diagnostics.
type SearchMetadata struct {
	Query           string        `json:"query"`
	SearchType      SearchType    `json:"search_type"`
	Elapsed         time.Duration `json:"elapsed"`
	FilesScanned    int           `json:"files_scanned"`
	Languages       []string      `json:"languages,omitempty"`
	ExcludePatterns []string      `json:"exclude_patterns,omitempty"`
	Efficiency      float64       `json:"efficiency"`
	Warnings        []string      `json:"warnings,omitempty"`
}

// RetrievalResult is the output bundle of one retrieval call. Immutable once
// returned; owned by the caller.
type RetrievalResult struct {
	Intent          QueryIntent
	Selected        []ScoredFile
	Rejected        []ScoredFile
	TotalRelevance  float64
	EstimatedTokens int
	Metadata        SearchMetadata
}
