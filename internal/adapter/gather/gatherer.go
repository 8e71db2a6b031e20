package gather

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"codectx/internal/adapter/analyzer"
	"codectx/internal/domain"
	"codectx/internal/port"
)

// listingMultiplier controls how many candidate paths are requested per
// budgeted file slot.
const listingMultiplier = 3

// defaultExcludes drops build outputs, dependency trees, VCS metadata, and
// coverage or temp directories from every gather.
var defaultExcludes = []string{
	"**/node_modules/**", "**/vendor/**", "**/.git/**", "**/.hg/**",
	"**/.svn/**", "**/dist/**", "**/build/**", "**/out/**",
	"**/target/**", "**/__pycache__/**", "**/coverage/**", "**/tmp/**",
	"**/.cache/**", "**/*.min.js", "**/*.log",
}

// testExcludes holds the test-file patterns stripped from the primary search
// unless the intent asks for tests.
var testExcludes = []string{
	"**/*_test.go", "**/*.test.*", "**/*.spec.*", "**/__tests__/**",
	"**/test_*.py", "**/tests/**",
}

// docExcludes holds documentation patterns stripped unless requested.
var docExcludes = []string{
	"**/*.md", "**/*.rst", "**/*.txt", "**/docs/**", "**/doc/**",
}

// sourceIncludes is the default include set for the primary search.
var sourceIncludes = []string{
	"**/*.go", "**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx", "**/*.py",
	"**/*.java", "**/*.rs", "**/*.rb", "**/*.c", "**/*.h", "**/*.cpp",
	"**/*.cs", "**/*.php", "**/*.kt", "**/*.md", "**/*.yaml", "**/*.yml",
	"**/*.json", "**/*.toml", "**/*.sql", "**/*.sh",
}

// Options tunes gathering behavior.
type Options struct {
	// ReadConcurrency bounds the file-read fan-out. <= 0 means 8.
	ReadConcurrency int
	// ExtraExcludes is appended to the default exclude set.
	ExtraExcludes []string
}

// Gatherer pulls candidate files from the workspace across up to four
// sources: the primary pattern search plus symbol, recency, and
// test-correlation channels when the intent requests them.
type Gatherer struct {
	ws          port.Workspace
	cache       port.AnalysisCache
	log         *slog.Logger
	concurrency int
	excludes    []string
}

// NewGatherer creates a gatherer. cache may be nil to analyze every file on
// every call; log may be nil for silence.
func NewGatherer(ws port.Workspace, analysisCache port.AnalysisCache, log *slog.Logger, opts Options) *Gatherer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	concurrency := opts.ReadConcurrency
	if concurrency <= 0 {
		concurrency = 8
	}
	excludes := append([]string{}, defaultExcludes...)
	excludes = append(excludes, opts.ExtraExcludes...)
	return &Gatherer{
		ws:          ws,
		cache:       analysisCache,
		log:         log,
		concurrency: concurrency,
		excludes:    excludes,
	}
}

// Excludes returns the effective exclude pattern set.
func (g *Gatherer) Excludes() []string {
	return g.excludes
}

// Gather collects candidates for a classified query. Per-file failures are
// reported as warnings and skipped; only a listing failure is fatal.
func (g *Gatherer) Gather(query string, intent domain.QueryIntent) ([]domain.CandidateFile, int, []string, error) {
	if !intent.RequiresContext || intent.Config.MaxFiles == 0 {
		return nil, 0, nil, nil
	}

	excludes := g.effectiveExcludes(intent)
	includes := g.effectiveIncludes(intent)
	listCap := intent.Config.MaxFiles * listingMultiplier

	infos, err := g.ws.ListCandidateFiles(includes, excludes, listCap)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("candidate listing failed: %w", err)
	}

	if intent.HasSource(domain.SourceSymbols) || intent.HasSource(domain.SourceGit) {
		extra, err := g.ws.ListCandidateFiles(includes, excludes, listCap*2)
		if err == nil {
			infos = mergeInfos(infos, extra)
		}
	}

	scanned := len(infos)
	candidates, warnings := g.readAndAnalyze(infos)

	if intent.HasSource(domain.SourceSymbols) {
		candidates = g.applySymbolFilterBias(candidates, query, listCap)
	}
	if intent.HasSource(domain.SourceGit) {
		candidates = capRecent(candidates, listCap)
	}
	if intent.HasSource(domain.SourceTests) {
		tests := g.correlatedTests(candidates)
		candidates = append(candidates, tests...)
		scanned += len(tests)
	}

	candidates = g.dedupeAndBound(candidates)
	return candidates, scanned, warnings, nil
}

// effectiveIncludes places intent priority globs ahead of the default
// source-file set so security or deployment queries see their hot paths.
func (g *Gatherer) effectiveIncludes(intent domain.QueryIntent) []string {
	if len(intent.Config.PriorityFileGlobs) == 0 {
		return sourceIncludes
	}
	includes := make([]string, 0, len(intent.Config.PriorityFileGlobs)+len(sourceIncludes))
	includes = append(includes, intent.Config.PriorityFileGlobs...)
	includes = append(includes, sourceIncludes...)
	return includes
}

func (g *Gatherer) effectiveExcludes(intent domain.QueryIntent) []string {
	excludes := append([]string{}, g.excludes...)
	if !intent.HasSource(domain.SourceTests) {
		excludes = append(excludes, testExcludes...)
	}
	if !intent.HasSource(domain.SourceDocs) {
		excludes = append(excludes, docExcludes...)
	}
	for _, ext := range intent.Config.ExcludeTypes {
		excludes = append(excludes, "**/*"+ext)
	}
	return excludes
}

// readAndAnalyze fans file reads out over a bounded worker pool and joins
// before returning, so scoring always sees a complete batch.
func (g *Gatherer) readAndAnalyze(infos []port.FileInfo) ([]domain.CandidateFile, []string) {
	type result struct {
		candidate domain.CandidateFile
		warning   string
		ok        bool
	}

	jobs := make(chan port.FileInfo)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < g.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for info := range jobs {
				c, warn, ok := g.loadOne(info)
				results <- result{candidate: c, warning: warn, ok: ok}
			}
		}()
	}

	go func() {
		for _, info := range infos {
			jobs <- info
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var candidates []domain.CandidateFile
	var warnings []string
	for r := range results {
		if r.ok {
			candidates = append(candidates, r.candidate)
		} else if r.warning != "" {
			warnings = append(warnings, r.warning)
		}
	}

	// Restore deterministic order after the concurrent join.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Path < candidates[j].Path
	})

	return candidates, warnings
}

func (g *Gatherer) loadOne(info port.FileInfo) (domain.CandidateFile, string, bool) {
	if !g.insideRoot(info.Path) {
		// Boundary violations are filtered silently: a mocked or buggy
		// collaborator must not leak paths outside the workspace.
		g.log.Warn("dropping path outside workspace root", "path", info.Path)
		return domain.CandidateFile{}, "", false
	}
	if info.Size > analyzer.MaxAnalyzableSize {
		return domain.CandidateFile{}, fmt.Sprintf("skipped %s: exceeds size limit", info.Path), false
	}

	data, err := g.ws.ReadFile(info.Path)
	if err != nil {
		g.log.Debug("skipping unreadable file", "path", info.Path, "err", err)
		return domain.CandidateFile{}, fmt.Sprintf("skipped %s: %v", info.Path, err), false
	}

	structure, ok := domain.FileStructure{}, false
	if g.cache != nil {
		structure, ok = g.cache.Get(info.Path, data.Size, data.ModTime.Unix())
	}
	if !ok {
		structure = analyzer.AnalyzeStructure(data.Content, data.Language)
		if g.cache != nil {
			if err := g.cache.Put(info.Path, data.Size, data.ModTime.Unix(), structure); err != nil {
				g.log.Debug("analysis cache write failed", "path", info.Path, "err", err)
			}
		}
	}

	return domain.CandidateFile{
		Path:      info.Path,
		Content:   data.Content,
		Language:  data.Language,
		Size:      data.Size,
		ModTime:   data.ModTime,
		Structure: structure,
	}, "", true
}

func (g *Gatherer) insideRoot(path string) bool {
	root := g.ws.Root()
	if root == "" {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// applySymbolFilterBias floats candidates whose declared construct names
// contain a query term to the front of the batch, keeping non-matching
// primary results behind them.
func (g *Gatherer) applySymbolFilterBias(candidates []domain.CandidateFile, query string, limit int) []domain.CandidateFile {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return candidates
	}

	var matched, rest []domain.CandidateFile
	for _, c := range candidates {
		if constructNameMatches(c.Structure, terms) {
			matched = append(matched, c)
		} else {
			rest = append(rest, c)
		}
	}

	out := append(matched, rest...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// capRecent keeps the most recently modified files within the listing cap,
// approximating a git-activity signal from mtimes.
func capRecent(candidates []domain.CandidateFile, limit int) []domain.CandidateFile {
	sorted := append([]domain.CandidateFile{}, candidates...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ModTime.After(sorted[j].ModTime)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// correlatedTests derives likely test-file paths for each candidate and
// loads the ones that exist. Unreadable paths are silently skipped; a
// correlated path that does not exist is the normal case, not a problem
// worth reporting.
func (g *Gatherer) correlatedTests(candidates []domain.CandidateFile) []domain.CandidateFile {
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		seen[c.Path] = struct{}{}
	}

	var tests []domain.CandidateFile
	for _, c := range candidates {
		for _, tp := range testPathsFor(c.Path) {
			if _, dup := seen[tp]; dup {
				continue
			}
			seen[tp] = struct{}{}
			if !g.insideRoot(tp) {
				continue
			}
			data, err := g.ws.ReadFile(tp)
			if err != nil {
				continue // most correlated paths simply do not exist
			}
			tests = append(tests, domain.CandidateFile{
				Path:      tp,
				Content:   data.Content,
				Language:  data.Language,
				Size:      data.Size,
				ModTime:   data.ModTime,
				Structure: analyzer.AnalyzeStructure(data.Content, data.Language),
			})
		}
	}
	return tests
}

// testPathsFor maps a source path to its conventional test locations:
// foo.go -> foo_test.go, foo.ts -> foo.test.ts / foo.spec.ts /
// __tests__/foo.test.ts, foo.py -> test_foo.py.
func testPathsFor(path string) []string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	if strings.HasSuffix(stem, "_test") || strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return nil
	}

	switch ext {
	case ".go":
		return []string{filepath.Join(dir, stem+"_test.go")}
	case ".py":
		return []string{
			filepath.Join(dir, "test_"+base),
			filepath.Join(dir, stem+"_test.py"),
		}
	case ".ts", ".tsx", ".js", ".jsx":
		return []string{
			filepath.Join(dir, stem+".test"+ext),
			filepath.Join(dir, stem+".spec"+ext),
			filepath.Join(dir, "__tests__", stem+".test"+ext),
		}
	case ".java":
		return []string{filepath.Join(dir, stem+"Test.java")}
	default:
		return nil
	}
}

func (g *Gatherer) dedupeAndBound(candidates []domain.CandidateFile) []domain.CandidateFile {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]domain.CandidateFile, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.Path]; dup {
			continue
		}
		if !g.insideRoot(c.Path) {
			continue
		}
		seen[c.Path] = struct{}{}
		out = append(out, c)
	}
	return out
}

func mergeInfos(a, b []port.FileInfo) []port.FileInfo {
	seen := make(map[string]struct{}, len(a))
	out := append([]port.FileInfo{}, a...)
	for _, fi := range a {
		seen[fi.Path] = struct{}{}
	}
	for _, fi := range b {
		if _, dup := seen[fi.Path]; dup {
			continue
		}
		seen[fi.Path] = struct{}{}
		out = append(out, fi)
	}
	return out
}

func queryTerms(query string) []string {
	var terms []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		tok = strings.Trim(tok, ".,!?\"'`()[]{}")
		if len(tok) > 2 {
			terms = append(terms, tok)
		}
	}
	return terms
}

func constructNameMatches(s domain.FileStructure, terms []string) bool {
	groups := [][]domain.Construct{s.Functions, s.Classes, s.Interfaces, s.TypeAlias}
	for _, group := range groups {
		for _, c := range group {
			name := strings.ToLower(c.Name)
			for _, t := range terms {
				if strings.Contains(name, t) {
					return true
				}
			}
		}
	}
	return false
}
