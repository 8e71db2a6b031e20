package intent

import (
	"regexp"
	"strings"

	"codectx/internal/adapter/analyzer"
	"codectx/internal/domain"
)

// query is the pre-extracted view a rule predicate sees. Predicates never
// touch raw user text with a dynamically built regex; the query only ever
// feeds fixed, precompiled patterns.
type query struct {
	raw      string
	lower    string
	features analyzer.Features
}

// rule pairs a predicate with the intent it builds. Rules are evaluated in
// declaration order, first match wins; the order is part of the contract
// because the keyword categories overlap.
type rule struct {
	name    string
	matches func(q query) bool
	build   func(q query) domain.QueryIntent
}

var socialWords = map[string]struct{}{
	"hi": {}, "hello": {}, "hey": {}, "yo": {}, "thanks": {}, "thank": {},
	"bye": {}, "goodbye": {}, "morning": {}, "evening": {}, "afternoon": {},
	"ok": {}, "okay": {}, "cool": {}, "great": {}, "nice": {}, "sure": {},
	"yes": {}, "no": {}, "yep": {}, "nope": {}, "there": {}, "good": {},
	"you": {}, "please": {}, "welcome": {},
}

var socialPhrases = []string{
	"how are you", "good morning", "good evening", "good afternoon",
	"thank you", "see you", "whats up", "what's up", "nice to meet",
}

var emergencyKeywords = []string{
	"crash", "broken", "breaks", "urgent", "emergency", "not working",
	"doesn't work", "does not work", "stopped working", "exception",
	"panic", "segfault", "stack trace", "error", "failing", "failure",
	"throwing", "threw", "fatal",
}

var emergencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:null|undefined|nil)\s*(?:reference|pointer|value)`),
	regexp.MustCompile(`throw(?:s|ing|n)?\b`),
	regexp.MustCompile(`(?:fail(?:s|ed|ing)?|crash(?:es|ed|ing)?)\b`),
}

var architectureKeywords = []string{
	"architecture", "design", "structure", "structured", "relationship",
	"data flow", "layered", "high level", "high-level", "overview",
	"diagram", "organized", "modules interact", "components interact",
}

var architecturePatterns = []*regexp.Regexp{
	regexp.MustCompile(`how\s+(?:does|do|is|are)\b.*\b(?:work|works|organized|connected|fit)`),
	regexp.MustCompile(`what\s+is\s+the\s+(?:structure|layout|architecture)`),
}

var performanceKeywords = []string{
	"slow", "performance", "optimize", "optimization", "latency",
	"bottleneck", "memory leak", "memory usage", "cpu", "too long",
	"speed up", "faster", "profiling", "profile", "throughput",
}

var securityKeywords = []string{
	"security", "vulnerability", "vulnerable", "auth", "authentication",
	"authorization", "xss", "csrf", "sql injection", "injection",
	"exploit", "encrypt", "encryption", "sanitize", "password", "token",
	"secure", "permission",
}

var reviewKeywords = []string{
	"review", "look at my", "look over", "feedback", "critique",
	"code quality", "improve this", "best practice", "clean up",
	"cleanup", "pull request", "refactor this",
}

var testingKeywords = []string{
	"test", "tests", "testing", "unit test", "integration test",
	"coverage", "mock", "stub", "assertion", "assert", "tdd", "spec file",
}

var implementationKeywords = []string{
	"implement", "create", "build", "add a", "add an", "add new", "write",
	"develop", "make a", "make an", "generate", "new feature", "scaffold",
}

var learningKeywords = []string{
	"explain", "understand", "learn", "what is", "what does", "what are",
	"meaning of", "teach", "tutorial", "how to", "walk me through",
	"help me understand",
}

var deploymentKeywords = []string{
	"deploy", "deployment", "docker", "kubernetes", "k8s", "container",
	"ci/cd", "pipeline", "release", "infrastructure", "terraform",
	"provision", "environment variable", "env var", "devops",
}

var documentationKeywords = []string{
	"document", "documentation", "readme", "docstring", "jsdoc", "godoc",
	"changelog", "add comments", "write comments", "api docs",
}

var quickEditKeywords = []string{
	"rename", "typo", "format", "indent", "lint", "semicolon",
	"reorder", "remove", "delete", "move", "comment out", "uncomment",
	"tweak", "small change", "one line",
}

var technicalIndicators = []string{
	"code", "function", "variable", "class", "method", "file", "bug",
	"script", "compile", "syntax", "repo", "repository", "import",
	"package", "dependency",
}

var fileExtensionPattern = regexp.MustCompile(`\b\w+\.(?:ts|tsx|js|jsx|mjs|py|go|rs|java|rb|c|h|cpp|cs|php|kt|md|json|yaml|yml|toml|sql|sh)\b`)

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// defaultRules is the ordered classification chain. Overlapping queries
// resolve to the earliest rule: "test the auth flow" is testing territory
// only because security sits earlier and ceded nothing, and so on.
func defaultRules() []rule {
	return []rule{
		{
			name: "social",
			matches: func(q query) bool {
				n := len(q.features.Tokens)
				if n == 0 {
					return false
				}
				// A social phrase only counts when it is essentially the whole
				// message; polite openers on a real request must fall through.
				if n <= 4 && containsAny(q.lower, socialPhrases) {
					return true
				}
				if n > 3 {
					return false
				}
				if len(q.features.TechnicalTerms) > 0 || len(q.features.ActionVerbs) > 0 {
					return false
				}
				for _, tok := range q.features.Tokens {
					if _, ok := socialWords[strings.Trim(tok, ".,!?")]; ok {
						return true
					}
				}
				return false
			},
			build: func(q query) domain.QueryIntent {
				return noContextIntent(domain.IntentSocial)
			},
		},
		{
			name: "emergency-debugging",
			matches: func(q query) bool {
				return containsAny(q.lower, emergencyKeywords) || matchesAny(q.lower, emergencyPatterns)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentDebugging,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          25,
						MinRelevanceScore: 0.15,
						SearchStrategy:    domain.StrategyComprehensive,
						IncludeRelated:    true,
					},
					Priority: domain.PriorityCritical,
					Scope:    domain.ScopeComprehensive,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceDependencies,
						domain.SourceTests, domain.SourceGit,
					},
				}
			},
		},
		{
			name: "architecture",
			matches: func(q query) bool {
				return containsAny(q.lower, architectureKeywords) || matchesAny(q.lower, architecturePatterns)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentArchitecture,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          30,
						MinRelevanceScore: 0.2,
						SearchStrategy:    domain.StrategyComprehensive,
						IncludeRelated:    true,
					},
					Priority: domain.PriorityHigh,
					Scope:    domain.ScopeComprehensive,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceDependencies,
						domain.SourceConfig, domain.SourceDocs,
					},
				}
			},
		},
		{
			name: "performance",
			matches: func(q query) bool {
				return containsAny(q.lower, performanceKeywords)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentPerformance,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          20,
						MinRelevanceScore: 0.25,
						IncludeRelated:    true,
					},
					Priority: domain.PriorityHigh,
					Scope:    domain.ScopeFocused,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceDependencies,
						domain.SourceTests,
					},
				}
			},
		},
		{
			name: "security",
			matches: func(q query) bool {
				return containsAny(q.lower, securityKeywords)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentSecurity,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          18,
						MinRelevanceScore: 0.25,
						SearchStrategy:    domain.StrategySecurity,
						PriorityFileGlobs: []string{"*auth*", "*security*", "*crypto*", "*session*"},
						IncludeRelated:    true,
					},
					Priority: domain.PriorityHigh,
					Scope:    domain.ScopeSecurity,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceDependencies,
						domain.SourceConfig,
					},
				}
			},
		},
		{
			name: "review",
			matches: func(q query) bool {
				return containsAny(q.lower, reviewKeywords)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentReview,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          15,
						MinRelevanceScore: 0.3,
					},
					Priority: domain.PriorityMedium,
					Scope:    domain.ScopeFocused,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceTests, domain.SourceDocs,
					},
				}
			},
		},
		{
			name: "testing",
			matches: func(q query) bool {
				return containsAny(q.lower, testingKeywords)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentTesting,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          12,
						MinRelevanceScore: 0.3,
						SearchStrategy:    domain.StrategyTesting,
						PriorityFileGlobs: []string{"*.test.*", "*.spec.*", "__tests__/*", "*_test.*"},
					},
					Priority: domain.PriorityMedium,
					Scope:    domain.ScopeTesting,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceTests,
						domain.SourceDependencies,
					},
				}
			},
		},
		{
			name: "implementation",
			matches: func(q query) bool {
				return containsAny(q.lower, implementationKeywords)
			},
			build: func(q query) domain.QueryIntent {
				// Wider nets for more complex build requests.
				maxFiles := 8
				switch {
				case q.features.Complexity > 0.7:
					maxFiles = 15
				case q.features.Complexity > 0.4:
					maxFiles = 10
				}
				return domain.QueryIntent{
					Type:            domain.IntentImplementation,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          maxFiles,
						MinRelevanceScore: 0.35,
						IncludeRelated:    true,
					},
					Priority: domain.PriorityMedium,
					Scope:    domain.ScopeFocused,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceDependencies,
						domain.SourceSymbols,
					},
				}
			},
		},
		{
			name: "learning",
			matches: func(q query) bool {
				return containsAny(q.lower, learningKeywords)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentLearning,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          8,
						MinRelevanceScore: 0.4,
						SearchStrategy:    domain.StrategyEducational,
					},
					Priority: domain.PriorityMedium,
					Scope:    domain.ScopeEducational,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceDocs,
						domain.SourceSymbols,
					},
				}
			},
		},
		{
			name: "deployment",
			matches: func(q query) bool {
				return containsAny(q.lower, deploymentKeywords)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentDeployment,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          10,
						MinRelevanceScore: 0.35,
						SearchStrategy:    domain.StrategyInfrastructure,
						PriorityFileGlobs: []string{"*docker*", "*deploy*", "*config*", "*env*"},
					},
					Priority: domain.PriorityMedium,
					Scope:    domain.ScopeInfrastructure,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceConfig,
						domain.SourceDocs,
					},
				}
			},
		},
		{
			name: "documentation",
			matches: func(q query) bool {
				return containsAny(q.lower, documentationKeywords)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentDocumentation,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          6,
						MinRelevanceScore: 0.4,
					},
					Priority: domain.PriorityLow,
					Scope:    domain.ScopeFocused,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceDocs,
					},
				}
			},
		},
		{
			name: "quickfix",
			matches: func(q query) bool {
				if len(q.features.Tokens) > 6 {
					return false
				}
				return q.features.Complexity < 0.3 || containsAny(q.lower, quickEditKeywords)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentQuickFix,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          3,
						MinRelevanceScore: 0.6,
						SearchStrategy:    domain.StrategyMinimal,
					},
					Priority: domain.PriorityLow,
					Scope:    domain.ScopeMinimal,
					Sources:  []domain.ContextSource{domain.SourceFiles},
				}
			},
		},
		{
			name: "general-technical",
			matches: func(q query) bool {
				return len(q.features.TechnicalTerms) > 0 ||
					fileExtensionPattern.MatchString(q.lower) ||
					containsAny(q.lower, technicalIndicators)
			},
			build: func(q query) domain.QueryIntent {
				return domain.QueryIntent{
					Type:            domain.IntentTechnical,
					RequiresContext: true,
					Config: domain.ContextConfig{
						MaxFiles:          6,
						MinRelevanceScore: 0.5,
					},
					Priority: domain.PriorityMedium,
					Scope:    domain.ScopeFocused,
					Sources: []domain.ContextSource{
						domain.SourceFiles, domain.SourceSymbols,
					},
				}
			},
		},
		{
			name: "general",
			matches: func(q query) bool {
				return true
			},
			build: func(q query) domain.QueryIntent {
				return noContextIntent(domain.IntentGeneral)
			},
		},
	}
}

// noContextIntent builds the shared shape of the two context-free verdicts:
// no files, threshold pinned so nothing could pass anyway.
func noContextIntent(t domain.IntentType) domain.QueryIntent {
	return domain.QueryIntent{
		Type:            t,
		RequiresContext: false,
		Config: domain.ContextConfig{
			MaxFiles:          0,
			MinRelevanceScore: 1.0,
		},
		Priority: domain.PriorityNone,
		Scope:    domain.ScopeNone,
	}
}
