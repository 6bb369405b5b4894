package analysis

import (
	"github.com/Vani131975/ai-powered-compliance-auditor/model"
)

// Evaluator is the deterministic compliance decision stage: pure function of
// (clause text, label set) against a fixed reference policy. It never fails;
// ambiguous input degrades to needs_review.
type Evaluator struct {
	policy *Policy
}

func NewEvaluator(policy *Policy) *Evaluator {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Evaluator{policy: policy}
}

// category check outcomes, ordered from best to worst
const (
	checkSatisfied = iota
	checkPartial
	checkFailed
)

// Evaluate maps a clause and its labels to a compliance status and risk.
//
// An unknown label, or a label set with no category in the policy, is
// needs_review at medium risk: absence of information is never compliant.
// A forbidden-pattern match, or a category whose mandatory patterns all
// miss, is non_compliant. A category with some but not all mandatory
// patterns matched is needs_review. Compliant requires every labeled
// category fully satisfied. Risk is the maximum weight over failing
// categories; a fully satisfied clause is low risk.
func (e *Evaluator) Evaluate(text string, labels []string) model.Assessment {
	status := model.StatusCompliant
	risk := model.RiskLow
	matched := 0

	for _, label := range labels {
		if label == model.LabelUnknown {
			continue
		}
		cat := e.policy.Category(label)
		if cat == nil {
			continue
		}
		matched++

		switch checkCategory(cat, text) {
		case checkFailed:
			status = model.StatusNonCompliant
			risk = model.MaxRisk(risk, cat.Risk)
		case checkPartial:
			if status == model.StatusCompliant {
				status = model.StatusNeedsReview
			}
			risk = model.MaxRisk(risk, cat.Risk)
		}
	}

	if matched == 0 {
		return model.Assessment{Status: model.StatusNeedsReview, Risk: model.RiskMedium}
	}
	return model.Assessment{Status: status, Risk: risk}
}

func checkCategory(cat *CategoryPolicy, text string) int {
	for _, re := range cat.forbidden {
		if re.MatchString(text) {
			return checkFailed
		}
	}

	if len(cat.mandatory) == 0 {
		return checkSatisfied
	}

	hits := 0
	for _, re := range cat.mandatory {
		if re.MatchString(text) {
			hits++
		}
	}
	switch {
	case hits == 0:
		return checkFailed
	case hits < len(cat.mandatory):
		return checkPartial
	default:
		return checkSatisfied
	}
}
