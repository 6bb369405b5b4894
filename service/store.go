package service

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Vani131975/ai-powered-compliance-auditor/config"
	"github.com/Vani131975/ai-powered-compliance-auditor/model"
)

// AnalysisStore is an in-memory store for analysis runs
// In production, this should be replaced with a database
type AnalysisStore struct {
	analyses    map[string]*model.Analysis
	feedback    map[string][]model.Feedback
	mu          sync.RWMutex
	maxAnalyses int // Maximum analyses to keep, 0 = unlimited
}

var (
	globalStore *AnalysisStore
	storeOnce   sync.Once
)

// InitAnalysisStore initializes the global analysis store with configuration
func InitAnalysisStore(cfg *config.StoreConfig) {
	storeOnce.Do(func() {
		maxAnalyses := cfg.MaxAnalyses
		if maxAnalyses < 0 {
			maxAnalyses = 0
		}
		globalStore = &AnalysisStore{
			analyses:    make(map[string]*model.Analysis),
			feedback:    make(map[string][]model.Feedback),
			maxAnalyses: maxAnalyses,
		}
		slog.Info("analysis store initialized", "max_analyses", maxAnalyses)
	})
}

// GetAnalysisStore returns the global analysis store
func GetAnalysisStore() *AnalysisStore {
	if globalStore == nil {
		// Fallback initialization with default settings
		globalStore = &AnalysisStore{
			analyses:    make(map[string]*model.Analysis),
			feedback:    make(map[string][]model.Feedback),
			maxAnalyses: 100, // Default: keep 100 analyses
		}
	}
	return globalStore
}

func (s *AnalysisStore) Save(analysis *model.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()

	analysis.UpdatedAt = time.Now()
	s.analyses[analysis.ID] = analysis

	// Cleanup if exceeds max
	s.cleanupIfNeeded()
}

func (s *AnalysisStore) Get(id string) *model.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyses[id]
}

func (s *AnalysisStore) GetByTenant(tenant string) []*model.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*model.Analysis
	for _, a := range s.analyses {
		if a.Tenant == tenant {
			result = append(result, a)
		}
	}
	return result
}

func (s *AnalysisStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.analyses, id)
	delete(s.feedback, id)
}

func (s *AnalysisStore) UpdateStatus(id, status string, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.analyses[id]; ok {
		a.Status = status
		a.ErrorMsg = errMsg
		a.UpdatedAt = time.Now()
	}
}

// SetReport attaches the completed report and marks the analysis done.
func (s *AnalysisStore) SetReport(id string, report *model.ContractReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.analyses[id]; ok {
		a.Report = report
		a.Status = model.StatusCompleted
		a.ErrorMsg = ""
		a.UpdatedAt = time.Now()
	}
}

// AddFeedback records user feedback for an analysis. Returns false when the
// analysis does not exist.
func (s *AnalysisStore) AddFeedback(fb model.Feedback) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.analyses[fb.AnalysisID]; !ok {
		return false
	}
	s.feedback[fb.AnalysisID] = append(s.feedback[fb.AnalysisID], fb)
	return true
}

// ListFeedback returns the feedback recorded for an analysis.
func (s *AnalysisStore) ListFeedback(analysisID string) []model.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Feedback(nil), s.feedback[analysisID]...)
}

// cleanupIfNeeded removes oldest analyses if store exceeds maxAnalyses
// Must be called with lock held
func (s *AnalysisStore) cleanupIfNeeded() {
	if s.maxAnalyses <= 0 {
		return // Unlimited
	}

	if len(s.analyses) <= s.maxAnalyses {
		return
	}

	// Sort analyses by creation time
	analyses := make([]*model.Analysis, 0, len(s.analyses))
	for _, a := range s.analyses {
		analyses = append(analyses, a)
	}
	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].CreatedAt.Before(analyses[j].CreatedAt)
	})

	// Remove oldest analyses
	removeCount := len(analyses) - s.maxAnalyses
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old analysis",
			"analysis_id", analyses[i].ID,
			"created_at", analyses[i].CreatedAt,
		)
		delete(s.analyses, analyses[i].ID)
		delete(s.feedback, analyses[i].ID)
	}
}

// Count returns the number of analyses in the store
func (s *AnalysisStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.analyses)
}
