package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestMaxRisk(t *testing.T) {
	cases := []struct {
		a, b, want string
	}{
		{RiskLow, RiskLow, RiskLow},
		{RiskLow, RiskMedium, RiskMedium},
		{RiskMedium, RiskLow, RiskMedium},
		{RiskMedium, RiskHigh, RiskHigh},
		{RiskHigh, RiskLow, RiskHigh},
		{RiskHigh, RiskHigh, RiskHigh},
	}

	for _, c := range cases {
		if got := MaxRisk(c.a, c.b); got != c.want {
			t.Errorf("MaxRisk(%s, %s) = %s, want %s", c.a, c.b, got, c.want)
		}
	}
}

func TestComplianceStatusConstants(t *testing.T) {
	statuses := []string{StatusCompliant, StatusNeedsReview, StatusNonCompliant}
	expected := []string{"compliant", "needs_review", "non_compliant"}

	for i, status := range statuses {
		if status != expected[i] {
			t.Errorf("Expected '%s', got '%s'", expected[i], status)
		}
	}
}

func TestCapabilityError(t *testing.T) {
	inner := errors.New("connection refused")
	ce := &CapabilityError{Capability: "classify", Kind: CapabilityUnavailable, Err: inner}

	if !errors.Is(ce, inner) {
		t.Error("Expected CapabilityError to unwrap to inner error")
	}
	if !IsCapabilityError(ce) {
		t.Error("Expected IsCapabilityError to match a CapabilityError")
	}
	if !IsCapabilityError(fmt.Errorf("clause 3: %w", ce)) {
		t.Error("Expected IsCapabilityError to match a wrapped CapabilityError")
	}
	if IsCapabilityError(errors.New("plain")) {
		t.Error("Expected plain error to not match")
	}
}

func TestAnalysisStatusConstants(t *testing.T) {
	statuses := []string{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}
	expected := []string{"pending", "processing", "completed", "failed"}

	for i, status := range statuses {
		if status != expected[i] {
			t.Errorf("Expected '%s', got '%s'", expected[i], status)
		}
	}
}
