package usecase

import "testing"

func TestScenarioCriteria(t *testing.T) {
	cases := []struct {
		scenario  Scenario
		maxFiles  int
		maxTokens int
		threshold float64
	}{
		{ScenarioDebugging, 15, 12000, 0.15},
		{ScenarioReview, 30, 16000, 0.3},
		{ScenarioLearning, 20, 10000, 0.4},
		{ScenarioImplementation, 25, 14000, 0.35},
	}

	for _, tc := range cases {
		got, err := ScenarioCriteria(tc.scenario)
		if err != nil {
			t.Fatalf("ScenarioCriteria(%s): %v", tc.scenario, err)
		}
		if got.MaxFiles != tc.maxFiles {
			t.Errorf("%s: MaxFiles = %d, want %d", tc.scenario, got.MaxFiles, tc.maxFiles)
		}
		if got.MaxTokens != tc.maxTokens {
			t.Errorf("%s: MaxTokens = %d, want %d", tc.scenario, got.MaxTokens, tc.maxTokens)
		}
		if got.PriorityThreshold != tc.threshold {
			t.Errorf("%s: PriorityThreshold = %f, want %f", tc.scenario, got.PriorityThreshold, tc.threshold)
		}
		sum := got.RelevanceWeight + got.RecencyWeight + got.SizeWeight
		if sum < 0.99 || sum > 1.01 {
			t.Errorf("%s: weights sum to %f, want 1", tc.scenario, sum)
		}
	}
}

func TestScenarioCriteriaUnknown(t *testing.T) {
	if _, err := ScenarioCriteria("speedrun"); err == nil {
		t.Error("expected an error for an unknown scenario")
	}
}

func TestScenariosListsAllPresets(t *testing.T) {
	names := Scenarios()
	if len(names) != len(scenarioPresets) {
		t.Fatalf("Scenarios() lists %d names, presets hold %d", len(names), len(scenarioPresets))
	}
	for _, n := range names {
		if _, ok := scenarioPresets[n]; !ok {
			t.Errorf("Scenarios() lists %s but no preset exists", n)
		}
	}
}
