package model

import (
	"time"
)

// Analysis represents one contract analysis run
type Analysis struct {
	ID        string          `json:"id"`
	Filename  string          `json:"filename"`
	FileSize  int64           `json:"file_size"`
	Tenant    string          `json:"tenant"`
	FileURL   string          `json:"file_url,omitempty"`
	Status    string          `json:"status"` // pending, processing, completed, failed
	Report    *ContractReport `json:"report,omitempty"`
	ErrorMsg  string          `json:"error_msg,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Analysis status constants
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Feedback is a user comment on a completed analysis
type Feedback struct {
	AnalysisID string    `json:"analysis_id"`
	Username   string    `json:"username"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
