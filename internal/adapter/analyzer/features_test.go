package analyzer

import (
	"testing"
)

func TestExtractFeaturesEmpty(t *testing.T) {
	f := ExtractFeatures("")

	if f.Complexity != 0 {
		t.Errorf("expected complexity 0 for empty query, got %f", f.Complexity)
	}
	if len(f.TechnicalTerms) != 0 {
		t.Errorf("expected no technical terms, got %v", f.TechnicalTerms)
	}
	if len(f.ActionVerbs) != 0 {
		t.Errorf("expected no action verbs, got %v", f.ActionVerbs)
	}
}

func TestExtractFeaturesTokens(t *testing.T) {
	f := ExtractFeatures("Fix the Login Bug")

	want := []string{"fix", "the", "login", "bug"}
	if len(f.Tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), f.Tokens)
	}
	for i, tok := range want {
		if f.Tokens[i] != tok {
			t.Errorf("token %d: expected %q, got %q", i, tok, f.Tokens[i])
		}
	}
}

func TestExtractEntities(t *testing.T) {
	f := ExtractFeatures("fix `getUserName` in the user_profile module of DataStore")

	wantEntities := []string{"getUserName", "UserName", "user_profile", "DataStore"}
	for _, want := range wantEntities {
		if !containsString(f.Entities, want) {
			t.Errorf("expected entity %q in %v", want, f.Entities)
		}
	}
}

func TestExtractTechnicalTerms(t *testing.T) {
	f := ExtractFeatures("the api endpoint has poor performance")

	for _, want := range []string{"api", "endpoint", "performance"} {
		if !containsString(f.TechnicalTerms, want) {
			t.Errorf("expected technical term %q in %v", want, f.TechnicalTerms)
		}
	}
}

func TestExtractActionVerbs(t *testing.T) {
	f := ExtractFeatures("fix and deploy the thing")

	for _, want := range []string{"fix", "deploy"} {
		if !containsString(f.ActionVerbs, want) {
			t.Errorf("expected action verb %q in %v", want, f.ActionVerbs)
		}
	}
	if containsString(f.ActionVerbs, "and") {
		t.Error("'and' should not be an action verb")
	}
}

func TestComplexityRange(t *testing.T) {
	queries := []string{
		"hi",
		"fix bug",
		"how does the authentication middleware work and why does the database connection fail when the server restarts",
		"if the api endpoint is slow because the backend database architecture has performance problems, how and where should we optimize",
	}

	for _, q := range queries {
		f := ExtractFeatures(q)
		if f.Complexity < 0 || f.Complexity > 1 {
			t.Errorf("complexity out of range for %q: %f", q, f.Complexity)
		}
	}
}

func TestComplexityOrdering(t *testing.T) {
	simple := ExtractFeatures("fix typo")
	involved := ExtractFeatures("how does the authentication middleware work and why does the database architecture fail when the server deployment restarts because of performance problems")

	if involved.Complexity <= simple.Complexity {
		t.Errorf("expected involved query (%f) to outscore simple query (%f)",
			involved.Complexity, simple.Complexity)
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
