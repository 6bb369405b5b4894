package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"

	"github.com/Vani131975/ai-powered-compliance-auditor/config"
)

// ClassifierService calls the clause-classification inference endpoint.
// Responses come back as label/score pairs; anything malformed is rejected
// here so ad hoc shapes never propagate into the pipeline.
type ClassifierService struct {
	config *config.ClassifierConfig
	client *resty.Client
}

// classifyRequest is the inference request body.
type classifyRequest struct {
	Inputs string `json:"inputs"`
}

// labelScore is one classification result entry.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func NewClassifierService(cfg *config.ClassifierConfig) *ClassifierService {
	client := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIToken != "" {
		client.SetAuthToken(cfg.APIToken)
	}

	return &ClassifierService{
		config: cfg,
		client: client,
	}
}

// Classify returns category confidences for one clause. Transient failures
// (network, 429, 5xx) are retried with backoff; a still-failing call
// surfaces as a capability error for the pipeline to degrade on.
func (s *ClassifierService) Classify(ctx context.Context, text string) (map[string]float64, error) {
	var scores map[string]float64
	backoff := retry.WithMaxRetries(uint64(s.config.MaxRetries), retry.NewExponential(s.config.RetryBaseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := s.client.R().
			SetContext(ctx).
			SetBody(classifyRequest{Inputs: text}).
			Post("/classify")
		if err != nil {
			return retry.RetryableError(fmt.Errorf("classification request failed: %w", err))
		}

		code := resp.StatusCode()
		if code == 429 || code >= 500 {
			return retry.RetryableError(fmt.Errorf("classification API returned status %d", code))
		}
		if code != 200 {
			return fmt.Errorf("classification API returned status %d: %s", code, resp.String())
		}

		parsed, err := parseScores(resp.Body())
		if err != nil {
			return err
		}
		scores = parsed
		return nil
	})
	if err != nil {
		return nil, wrapCapabilityError("classify", err)
	}

	return scores, nil
}

// parseScores normalizes the inference response. Both a flat result list and
// the batch form (list per input) are accepted; labels are lowercased with
// spaces and underscores collapsed to hyphens, and out-of-range scores are
// rejected.
func parseScores(body []byte) (map[string]float64, error) {
	var entries []labelScore
	if err := json.Unmarshal(body, &entries); err != nil {
		var batch [][]labelScore
		if err := json.Unmarshal(body, &batch); err != nil || len(batch) == 0 {
			return nil, fmt.Errorf("malformed classification response: %s", string(body))
		}
		entries = batch[0]
	}

	scores := make(map[string]float64, len(entries))
	for _, e := range entries {
		label := normalizeLabel(e.Label)
		if label == "" {
			return nil, fmt.Errorf("classification response contains an empty label")
		}
		if e.Score < 0 || e.Score > 1 {
			return nil, fmt.Errorf("classification score %v for label %q is out of range", e.Score, e.Label)
		}
		scores[label] = e.Score
	}
	return scores, nil
}

func normalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, " ", "-")
	label = strings.ReplaceAll(label, "_", "-")
	return label
}
