package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Vani131975/ai-powered-compliance-auditor/model"
	"github.com/Vani131975/ai-powered-compliance-auditor/pkg/logger"
	"github.com/Vani131975/ai-powered-compliance-auditor/pkg/workerpool"
)

// Classifier assigns category confidences to a clause. Implementations call
// an external classification capability.
type Classifier interface {
	Classify(ctx context.Context, text string) (map[string]float64, error)
}

// Options configures a Pipeline.
type Options struct {
	// Threshold is the minimum confidence for a label to be assigned.
	Threshold float64
	// ClassifyTimeout bounds each classification call.
	ClassifyTimeout time.Duration
	// GenerateTimeout bounds each recommendation-generation call.
	GenerateTimeout time.Duration
}

// Pipeline runs the clause-analysis sequence for one document: segmentation,
// classification, compliance evaluation, recommendation and aggregation.
// Classifier and generator failures degrade single clauses; only
// segmentation and aggregation failures abort a run.
type Pipeline struct {
	classifier Classifier
	generator  Generator
	evaluator  *Evaluator
	pool       *workerpool.Pool
	opts       Options
}

func NewPipeline(classifier Classifier, generator Generator, evaluator *Evaluator, pool *workerpool.Pool, opts Options) *Pipeline {
	if opts.Threshold <= 0 {
		opts.Threshold = 0.5
	}
	if opts.ClassifyTimeout <= 0 {
		opts.ClassifyTimeout = 15 * time.Second
	}
	if opts.GenerateTimeout <= 0 {
		opts.GenerateTimeout = 30 * time.Second
	}
	if evaluator == nil {
		evaluator = NewEvaluator(nil)
	}
	return &Pipeline{
		classifier: classifier,
		generator:  generator,
		evaluator:  evaluator,
		pool:       pool,
		opts:       opts,
	}
}

// Analyze runs the full pipeline for one document and returns its report.
// Per-clause work fans out through the shared worker pool; results are keyed
// by clause position, so report order always matches segmentation order. A
// cancelled ctx propagates to in-flight clause calls and discards partials.
func (p *Pipeline) Analyze(ctx context.Context, doc model.Document) (*model.ContractReport, error) {
	clauses, err := Segment(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("segmentation failed: %w", err)
	}

	logger.Debug(ctx, "document segmented", "clauses", len(clauses))

	results := make([]model.ClauseResult, len(clauses))
	var parties []model.Party

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		parties = ExtractParties(doc.Text)
		return nil
	})

	g.Go(func() error {
		var wg sync.WaitGroup
		for i := range clauses {
			i := i
			wg.Add(1)
			err := p.pool.Submit(gctx, func() {
				defer wg.Done()
				if gctx.Err() != nil {
					return
				}
				results[i] = p.analyzeClause(gctx, clauses[i])
			})
			if err != nil {
				wg.Done()
				return fmt.Errorf("clause %d not admitted: %w", clauses[i].ID, err)
			}
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return Aggregate(doc, results, parties)
}

// analyzeClause runs classification, compliance evaluation and, when the
// clause is not compliant, recommendation generation. Capability failures
// are localized here: the clause is kept with a conservative assessment and
// marked degraded.
func (p *Pipeline) analyzeClause(ctx context.Context, clause model.Clause) model.ClauseResult {
	labels, degraded := p.classify(ctx, clause)

	assessment := p.evaluator.Evaluate(clause.Text, labels)
	assessment.Degraded = degraded

	if assessment.Status != model.StatusCompliant {
		rec, fellBack := p.recommend(ctx, clause, assessment, labels)
		assessment.Recommendation = rec
		if fellBack {
			assessment.Degraded = true
		}
	}

	return model.ClauseResult{
		Clause:         clause,
		Classification: model.Classification{ClauseID: clause.ID, Labels: labels},
		Assessment:     assessment,
	}
}

// classify invokes the classification capability with a per-call timeout and
// applies threshold-based multi-label selection. On failure the clause keeps
// the unknown label and stays in the pipeline.
func (p *Pipeline) classify(ctx context.Context, clause model.Clause) (labels []string, degraded bool) {
	cctx, cancel := context.WithTimeout(ctx, p.opts.ClassifyTimeout)
	defer cancel()

	scores, err := p.classifier.Classify(cctx, clause.Text)
	if err != nil {
		logger.Warn(ctx, "classification degraded",
			"clause_id", clause.ID,
			"error", err,
		)
		return []string{model.LabelUnknown}, true
	}

	for label, score := range scores {
		if score >= p.opts.Threshold {
			labels = append(labels, strings.ToLower(label))
		}
	}
	sort.Strings(labels)
	return labels, false
}

// recommend invokes the generation capability, falling back to the
// deterministic template when it fails or returns nothing. A non-compliant
// clause never goes without a recommendation.
func (p *Pipeline) recommend(ctx context.Context, clause model.Clause, a model.Assessment, labels []string) (rec string, fellBack bool) {
	if p.generator != nil {
		gctx, cancel := context.WithTimeout(ctx, p.opts.GenerateTimeout)
		defer cancel()

		text, err := p.generator.Recommend(gctx, clause.Text, a.Status, a.Risk, labels)
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), false
		}
		if err != nil {
			logger.Warn(ctx, "recommendation generation degraded",
				"clause_id", clause.ID,
				"error", err,
			)
		}
		return fallbackRecommendation(a.Status, labels), true
	}

	return fallbackRecommendation(a.Status, labels), false
}
