package usecase

import (
	"fmt"

	"codectx/internal/domain"
)

// Scenario names a built-in FilterCriteria preset.
type Scenario string

const (
	ScenarioDebugging      Scenario = "debugging"
	ScenarioReview         Scenario = "review"
	ScenarioLearning       Scenario = "learning"
	ScenarioImplementation Scenario = "implementation"
)

// scenarioPresets are pure data. Debugging casts a wide recency-biased net
// with a permissive threshold; review admits the most files; learning keeps
// the bundle small and high-relevance; implementation sits in between.
var scenarioPresets = map[Scenario]domain.FilterCriteria{
	ScenarioDebugging: {
		MaxFiles:          15,
		MaxTokens:         12000,
		PriorityThreshold: 0.15,
		RelevanceWeight:   0.5,
		RecencyWeight:     0.35,
		SizeWeight:        0.15,
	},
	ScenarioReview: {
		MaxFiles:          30,
		MaxTokens:         16000,
		PriorityThreshold: 0.3,
		RelevanceWeight:   0.5,
		RecencyWeight:     0.2,
		SizeWeight:        0.3,
	},
	ScenarioLearning: {
		MaxFiles:          20,
		MaxTokens:         10000,
		PriorityThreshold: 0.4,
		RelevanceWeight:   0.7,
		RecencyWeight:     0.1,
		SizeWeight:        0.2,
	},
	ScenarioImplementation: {
		MaxFiles:          25,
		MaxTokens:         14000,
		PriorityThreshold: 0.35,
		RelevanceWeight:   0.6,
		RecencyWeight:     0.2,
		SizeWeight:        0.2,
	},
}

// ScenarioCriteria returns the preset for a scenario name.
func ScenarioCriteria(name Scenario) (domain.FilterCriteria, error) {
	preset, ok := scenarioPresets[name]
	if !ok {
		return domain.FilterCriteria{}, fmt.Errorf("unknown scenario: %s", name)
	}
	return preset, nil
}

// Scenarios lists the available preset names.
func Scenarios() []Scenario {
	return []Scenario{
		ScenarioDebugging, ScenarioReview,
		ScenarioLearning, ScenarioImplementation,
	}
}
