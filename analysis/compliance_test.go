package analysis

import (
	"testing"

	"github.com/Vani131975/ai-powered-compliance-auditor/model"
)

func TestEvaluate(t *testing.T) {
	e := NewEvaluator(nil)

	tests := []struct {
		name       string
		text       string
		labels     []string
		wantStatus string
		wantRisk   string
	}{
		{
			name:       "confidentiality satisfied",
			text:       "The parties shall keep terms secret.",
			labels:     []string{"confidentiality"},
			wantStatus: model.StatusCompliant,
			wantRisk:   model.RiskLow,
		},
		{
			name:       "liability forbidden phrase",
			text:       "Neither party shall be liable for any damages whatsoever.",
			labels:     []string{"liability"},
			wantStatus: model.StatusNonCompliant,
			wantRisk:   model.RiskHigh,
		},
		{
			name:       "liability missing cap",
			text:       "The vendor assumes full responsibility for losses.",
			labels:     []string{"liability"},
			wantStatus: model.StatusNonCompliant,
			wantRisk:   model.RiskHigh,
		},
		{
			name:       "liability with cap",
			text:       "Aggregate liability shall not exceed the fees paid in the preceding twelve months.",
			labels:     []string{"liability"},
			wantStatus: model.StatusCompliant,
			wantRisk:   model.RiskLow,
		},
		{
			name:       "termination partial mandatory",
			text:       "Either party may terminate this agreement upon written notice.",
			labels:     []string{"termination"},
			wantStatus: model.StatusNeedsReview,
			wantRisk:   model.RiskMedium,
		},
		{
			name:       "termination fully satisfied",
			text:       "Either party may terminate upon 30 days written notice.",
			labels:     []string{"termination"},
			wantStatus: model.StatusCompliant,
			wantRisk:   model.RiskLow,
		},
		{
			name:       "mixed labels take worst status and risk",
			text:       "The parties shall keep terms secret, but neither party shall be liable for any damages whatsoever.",
			labels:     []string{"confidentiality", "liability"},
			wantStatus: model.StatusNonCompliant,
			wantRisk:   model.RiskHigh,
		},
		{
			name:       "unknown label",
			text:       "Some clause text.",
			labels:     []string{model.LabelUnknown},
			wantStatus: model.StatusNeedsReview,
			wantRisk:   model.RiskMedium,
		},
		{
			name:       "no labels",
			text:       "Some clause text.",
			labels:     nil,
			wantStatus: model.StatusNeedsReview,
			wantRisk:   model.RiskMedium,
		},
		{
			name:       "label outside policy vocabulary",
			text:       "Some clause text.",
			labels:     []string{"miscellaneous"},
			wantStatus: model.StatusNeedsReview,
			wantRisk:   model.RiskMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Evaluate(tt.text, tt.labels)
			if got.Status != tt.wantStatus {
				t.Errorf("Evaluate() status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.Risk != tt.wantRisk {
				t.Errorf("Evaluate() risk = %q, want %q", got.Risk, tt.wantRisk)
			}
		})
	}
}

func TestEvaluateGoverningLawRisk(t *testing.T) {
	e := NewEvaluator(nil)

	got := e.Evaluate("This clause says nothing about jurisdiction.", []string{"governing-law"})
	if got.Status != model.StatusNonCompliant {
		t.Errorf("Evaluate() status = %q, want %q", got.Status, model.StatusNonCompliant)
	}
	if got.Risk != model.RiskLow {
		t.Errorf("Evaluate() risk = %q, want %q", got.Risk, model.RiskLow)
	}
}
