package model

import (
	"time"
)

// Document is the immutable pipeline input: decoded contract text plus
// upload metadata.
type Document struct {
	Text       string    `json:"-"`
	Size       int64     `json:"file_size"`
	Filename   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Clause is one contiguous span of contract text. ID is unique within a
// document and Position is the document order, preserved end-to-end.
type Clause struct {
	ID       int    `json:"id"`
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// Compliance status constants
const (
	StatusCompliant    = "compliant"
	StatusNeedsReview  = "needs_review"
	StatusNonCompliant = "non_compliant"
)

// Risk level constants, ordered by severity
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// LabelUnknown is assigned when the classification capability fails for a
// clause; downstream stages must still assess such clauses.
const LabelUnknown = "unknown"

// Classification maps a clause to its category labels. Multi-label: a clause
// may carry zero, one, or several categories.
type Classification struct {
	ClauseID int      `json:"clause_id"`
	Labels   []string `json:"labels"`
}

// Assessment is the compliance verdict for one clause.
// Recommendation is set if and only if Status != StatusCompliant.
// Degraded marks verdicts produced through a capability fallback.
type Assessment struct {
	Status         string `json:"status"`
	Risk           string `json:"risk"`
	Recommendation string `json:"recommendation,omitempty"`
	Degraded       bool   `json:"degraded,omitempty"`
}

// Party is a contracting party found in the document text, unique by
// (Name, Type); the first context seen is kept.
type Party struct {
	Name    string `json:"name"`
	Type    string `json:"type"` // person, organization
	Context string `json:"context"`
}

// Party type constants
const (
	PartyPerson       = "person"
	PartyOrganization = "organization"
)

// ClauseResult bundles everything known about one clause.
type ClauseResult struct {
	Clause         Clause         `json:"clause"`
	Classification Classification `json:"classification"`
	Assessment     Assessment     `json:"assessment"`
}

// ContractReport is the terminal aggregate of one analysis run, immutable
// once returned. Clause order matches segmentation order.
type ContractReport struct {
	Document         Document       `json:"document"`
	Clauses          []ClauseResult `json:"clauses"`
	Parties          []Party        `json:"parties"`
	TotalClauses     int            `json:"total_clauses"`
	CompliantClauses int            `json:"compliant_clauses"`
	RiskyClauses     int            `json:"risky_clauses"`
	ComplianceScore  int            `json:"compliance_score"`
	Summary          string         `json:"summary"`
}

// riskRank orders risk levels for conservative max comparisons.
var riskRank = map[string]int{
	RiskLow:    0,
	RiskMedium: 1,
	RiskHigh:   2,
}

// MaxRisk returns the higher of two risk levels.
func MaxRisk(a, b string) string {
	if riskRank[b] > riskRank[a] {
		return b
	}
	return a
}
