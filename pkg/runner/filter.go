package runner

import (
	"regexp"

	messages "github.com/cucumber/messages/go/v21"
)

// tagEvaluator is satisfied by parsed tag expressions.
type tagEvaluator interface {
	Evaluate(tags []string) bool
}

// extractTagNames returns the tag names including the @ prefix.
func extractTagNames(tags []*messages.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag != nil {
			names = append(names, tag.Name)
		}
	}
	return names
}

// mergeTags returns parent followed by child in a new slice.
func mergeTags(parent, child []string) []string {
	merged := make([]string, 0, len(parent)+len(child))
	merged = append(merged, parent...)
	return append(merged, child...)
}

// filterDocumentByTags returns a shallow copy of doc that keeps backgrounds
// and only the scenarios whose inherited tags satisfy evaluator. Outline
// examples tables are filtered with their own tags added; an outline left
// without tables is dropped, as is a rule left without scenarios.
func filterDocumentByTags(doc *messages.GherkinDocument, evaluator tagEvaluator) *messages.GherkinDocument {
	if evaluator == nil {
		return doc
	}
	return filterDocument(doc, func(scenario *messages.Scenario, inherited []string) *messages.Scenario {
		tags := mergeTags(inherited, extractTagNames(scenario.Tags))
		if len(scenario.Examples) == 0 {
			if evaluator.Evaluate(tags) {
				return scenario
			}
			return nil
		}

		kept := make([]*messages.Examples, 0, len(scenario.Examples))
		for _, examples := range scenario.Examples {
			if evaluator.Evaluate(mergeTags(tags, extractTagNames(examples.Tags))) {
				kept = append(kept, examples)
			}
		}
		if len(kept) == 0 {
			return nil
		}
		if len(kept) == len(scenario.Examples) {
			return scenario
		}
		clone := *scenario
		clone.Examples = kept
		return &clone
	})
}

// filterDocumentByName keeps the scenarios whose name matches pattern.
func filterDocumentByName(doc *messages.GherkinDocument, pattern *regexp.Regexp) *messages.GherkinDocument {
	if pattern == nil {
		return doc
	}
	return filterDocument(doc, func(scenario *messages.Scenario, _ []string) *messages.Scenario {
		if pattern.MatchString(scenario.Name) {
			return scenario
		}
		return nil
	})
}

func filterDocument(doc *messages.GherkinDocument, keep func(*messages.Scenario, []string) *messages.Scenario) *messages.GherkinDocument {
	if doc == nil || doc.Feature == nil {
		return doc
	}

	featureTags := extractTagNames(doc.Feature.Tags)
	children := make([]*messages.FeatureChild, 0, len(doc.Feature.Children))

	for _, child := range doc.Feature.Children {
		switch {
		case child.Background != nil:
			children = append(children, child)

		case child.Scenario != nil:
			if kept := keep(child.Scenario, featureTags); kept != nil {
				children = append(children, &messages.FeatureChild{Scenario: kept})
			}

		case child.Rule != nil:
			ruleTags := mergeTags(featureTags, extractTagNames(child.Rule.Tags))
			ruleChildren := make([]*messages.RuleChild, 0, len(child.Rule.Children))
			scenarios := 0
			for _, ruleChild := range child.Rule.Children {
				if ruleChild.Background != nil {
					ruleChildren = append(ruleChildren, ruleChild)
					continue
				}
				if ruleChild.Scenario == nil {
					continue
				}
				if kept := keep(ruleChild.Scenario, ruleTags); kept != nil {
					ruleChildren = append(ruleChildren, &messages.RuleChild{Scenario: kept})
					scenarios++
				}
			}
			if scenarios > 0 {
				rule := *child.Rule
				rule.Children = ruleChildren
				children = append(children, &messages.FeatureChild{Rule: &rule})
			}
		}
	}

	feature := *doc.Feature
	feature.Children = children
	filtered := *doc
	filtered.Feature = &feature
	return &filtered
}
