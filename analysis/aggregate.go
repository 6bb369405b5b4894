package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/Vani131975/ai-powered-compliance-auditor/model"
)

// Aggregate combines per-clause results into the document-level report.
// Zero clauses is an upstream segmentation defect, never a 0/0 score.
func Aggregate(doc model.Document, results []model.ClauseResult, parties []model.Party) (*model.ContractReport, error) {
	if len(results) == 0 {
		return nil, model.ErrNoClauses
	}

	compliant := 0
	for _, r := range results {
		if r.Assessment.Status == model.StatusCompliant {
			compliant++
		}
	}

	total := len(results)
	score := int(math.Round(100 * float64(compliant) / float64(total)))

	return &model.ContractReport{
		Document:         doc,
		Clauses:          results,
		Parties:          parties,
		TotalClauses:     total,
		CompliantClauses: compliant,
		RiskyClauses:     total - compliant,
		ComplianceScore:  score,
		Summary:          summarize(results),
	}, nil
}

// summarize concatenates per-clause recommendations, non_compliant clauses
// first, then needs_review, clause order preserved within each tier.
func summarize(results []model.ClauseResult) string {
	var lines []string
	for _, tier := range []string{model.StatusNonCompliant, model.StatusNeedsReview} {
		for _, r := range results {
			if r.Assessment.Status != tier || r.Assessment.Recommendation == "" {
				continue
			}
			lines = append(lines, fmt.Sprintf("Clause %d: %s", r.Clause.ID, r.Assessment.Recommendation))
		}
	}
	return strings.Join(lines, "\n")
}
