package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vani131975/ai-powered-compliance-auditor/model"
)

// Generator produces remediation guidance for a clause that is not
// compliant. Implementations call an external text-generation capability.
type Generator interface {
	Recommend(ctx context.Context, clauseText, status, risk string, labels []string) (string, error)
}

// categoryAdvice backs the deterministic fallback when the generation
// capability fails or returns nothing.
var categoryAdvice = map[string]string{
	"confidentiality": "define what counts as confidential information and bind both parties to a non-disclosure obligation",
	"indemnification": "scope the indemnity to third-party claims and exclude losses caused by the indemnified party",
	"termination":     "state a notice period and the permitted grounds for termination",
	"liability":       "add a cap on damages tied to fees paid and avoid blanket liability exclusions",
	"governing-law":   "name the governing jurisdiction explicitly",
	"payment":         "fix the payment deadline, invoicing procedure and late-payment consequences",
	"data-protection": "add a breach-notification duty and align processing terms with applicable data-protection law",
}

// fallbackRecommendation builds a templated remediation string from the
// clause's categories and status. A non-compliant clause always gets some
// recommendation, even with every capability down.
func fallbackRecommendation(status string, labels []string) string {
	verb := "Review this clause"
	if status == model.StatusNonCompliant {
		verb = "Revise this clause"
	}

	for _, label := range labels {
		if advice, ok := categoryAdvice[label]; ok {
			return fmt.Sprintf("%s: %s.", verb, advice)
		}
	}

	if len(labels) == 0 || labels[0] == model.LabelUnknown {
		return verb + ": it could not be classified automatically and needs manual legal review."
	}
	return fmt.Sprintf("%s: verify the %s terms against your standard contract playbook.", verb, strings.Join(labels, ", "))
}
