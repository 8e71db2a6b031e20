package intent

import (
	"testing"

	"codectx/internal/domain"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		query           string
		wantType        domain.IntentType
		requiresContext bool
		maxFiles        int
	}{
		{"hi there", domain.IntentSocial, false, 0},
		{"thank you!", domain.IntentSocial, false, 0},
		{"why is the login function throwing a null reference error", domain.IntentDebugging, true, 25},
		{"the app crashes on startup", domain.IntentDebugging, true, 25},
		{"how does the payment service work", domain.IntentArchitecture, true, 30},
		{"the checkout page is slow, can we optimize it", domain.IntentPerformance, true, 20},
		{"are there any vulnerabilities in the auth flow", domain.IntentSecurity, true, 18},
		{"review my pull request", domain.IntentReview, true, 15},
		{"write a unit test for the parser", domain.IntentTesting, true, 12},
		{"implement a new feature for exporting reports", domain.IntentImplementation, true, 8},
		{"explain what is a closure", domain.IntentLearning, true, 8},
		{"how do we deploy this with docker and kubernetes", domain.IntentDeployment, true, 10},
		{"document the api endpoints", domain.IntentDocumentation, true, 6},
		{"rename this variable", domain.IntentQuickFix, true, 3},
		{"tell me about the repository layout please again", domain.IntentTechnical, true, 6},
		{"the quick brown fox jumped over lazy dogs yesterday evening", domain.IntentGeneral, false, 0},
		{"", domain.IntentGeneral, false, 0},
	}

	for _, tc := range cases {
		got := c.Classify(tc.query)
		if got.Type != tc.wantType {
			t.Errorf("Classify(%q).Type = %s, want %s", tc.query, got.Type, tc.wantType)
			continue
		}
		if got.RequiresContext != tc.requiresContext {
			t.Errorf("Classify(%q).RequiresContext = %v, want %v", tc.query, got.RequiresContext, tc.requiresContext)
		}
		if got.Config.MaxFiles != tc.maxFiles {
			t.Errorf("Classify(%q).Config.MaxFiles = %d, want %d", tc.query, got.Config.MaxFiles, tc.maxFiles)
		}
	}
}

func TestClassifyPoliteOpenerDoesNotReadAsSocial(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		query string
		want  domain.IntentType
	}{
		{"thank you, now why is the login function throwing a null reference error", domain.IntentDebugging},
		{"thanks, why is the checkout page so slow today", domain.IntentPerformance},
		{"hello, can you review my pull request", domain.IntentReview},
	}
	for _, tc := range cases {
		got := c.Classify(tc.query)
		if got.Type != tc.want {
			t.Errorf("Classify(%q).Type = %s, want %s", tc.query, got.Type, tc.want)
		}
		if !got.RequiresContext {
			t.Errorf("Classify(%q) must still require context", tc.query)
		}
	}

	// Whole-message pleasantries still resolve as social.
	for _, q := range []string{"thank you so much", "how are you"} {
		got := c.Classify(q)
		if got.Type != domain.IntentSocial {
			t.Errorf("Classify(%q).Type = %s, want social", q, got.Type)
		}
	}
}

func TestClassifyDebuggingBeatsTesting(t *testing.T) {
	// "test" appears, but the failure wording must win.
	c := NewClassifier()

	got := c.Classify("the integration test is failing with a stack trace")
	if got.Type != domain.IntentDebugging {
		t.Errorf("expected debugging, got %s", got.Type)
	}
}

func TestClassifyImplementationComplexityWidens(t *testing.T) {
	c := NewClassifier()

	simple := c.Classify("create a helper")
	wide := c.Classify("implement a new feature module if the backend service component needs it and how should the api endpoint middleware behave when the server restarts because of it")

	if simple.Config.MaxFiles >= wide.Config.MaxFiles {
		t.Errorf("expected complex implementation request to widen the net: simple=%d wide=%d",
			simple.Config.MaxFiles, wide.Config.MaxFiles)
	}
}

func TestClassifyNoContextVerdict(t *testing.T) {
	c := NewClassifier()

	for _, q := range []string{"hi there", "the quick brown fox jumped over lazy dogs yesterday evening"} {
		got := c.Classify(q)
		if got.RequiresContext {
			t.Errorf("Classify(%q) should not require context", q)
		}
		if got.Config.MinRelevanceScore != 1.0 {
			t.Errorf("Classify(%q).Config.MinRelevanceScore = %f, want 1.0", q, got.Config.MinRelevanceScore)
		}
		if got.Scope != domain.ScopeNone {
			t.Errorf("Classify(%q).Scope = %s, want none", q, got.Scope)
		}
	}
}

func TestClassifySecurityGlobs(t *testing.T) {
	c := NewClassifier()

	got := c.Classify("check the password hashing for weaknesses")
	if got.Type != domain.IntentSecurity {
		t.Fatalf("expected security, got %s", got.Type)
	}
	if len(got.Config.PriorityFileGlobs) == 0 {
		t.Error("security intent should carry priority file globs")
	}
	if !got.HasSource(domain.SourceConfig) {
		t.Error("security intent should include the config source")
	}
}

func TestRuleOrder(t *testing.T) {
	names := NewClassifier().RuleNames()

	if len(names) == 0 {
		t.Fatal("no rules")
	}
	if names[0] != "social" {
		t.Errorf("first rule = %q, want social", names[0])
	}
	if names[len(names)-1] != "general" {
		t.Errorf("last rule = %q, want general", names[len(names)-1])
	}
}
