// Package planner computes the number of runnable scenario instances in a
// set of Gherkin documents before any of them runs.
package planner

import (
	messages "github.com/cucumber/messages/go/v21"
)

type (
	// FeaturePlan is the planned count for one document.
	FeaturePlan struct {
		URI       string
		Feature   string
		Scenarios int
		Outlines  int
		Rows      int
	}

	// Plan is the planned count for a run.
	Plan struct {
		Features []FeaturePlan
	}
)

// Total returns the number of runnable instances across all features.
func (p Plan) Total() int {
	total := 0
	for _, f := range p.Features {
		total += f.Total()
	}
	return total
}

// Total returns the number of runnable instances in the feature: plain
// scenarios plus the rows of every outline.
func (f FeaturePlan) Total() int {
	return f.Scenarios + f.Rows
}

// CountScenarios returns the planned number of runnable instances. A scenario
// without examples counts once; an outline counts the body rows of each of
// its examples tables.
func CountScenarios(docs []*messages.GherkinDocument) int {
	return Build(docs).Total()
}

// Build computes per-feature counts. Documents without a feature are skipped.
func Build(docs []*messages.GherkinDocument) Plan {
	plan := Plan{Features: make([]FeaturePlan, 0, len(docs))}
	for _, doc := range docs {
		if doc == nil || doc.Feature == nil {
			continue
		}

		fp := FeaturePlan{URI: doc.Uri, Feature: doc.Feature.Name}
		for _, scenario := range collectScenarios(doc.Feature) {
			if len(scenario.Examples) == 0 {
				fp.Scenarios++
				continue
			}
			fp.Outlines++
			fp.Rows += countRows(scenario)
		}
		plan.Features = append(plan.Features, fp)
	}
	return plan
}

func countRows(scenario *messages.Scenario) int {
	rows := 0
	for _, examples := range scenario.Examples {
		if examples == nil {
			continue
		}
		rows += len(examples.TableBody)
	}
	return rows
}

// collectScenarios flattens scenarios from a feature and its rules.
func collectScenarios(feature *messages.Feature) []*messages.Scenario {
	scenarios := make([]*messages.Scenario, 0)
	for _, child := range feature.Children {
		if child == nil {
			continue
		}
		if child.Scenario != nil {
			scenarios = append(scenarios, child.Scenario)
		}
		if child.Rule != nil {
			for _, ruleChild := range child.Rule.Children {
				if ruleChild != nil && ruleChild.Scenario != nil {
					scenarios = append(scenarios, ruleChild.Scenario)
				}
			}
		}
	}
	return scenarios
}
