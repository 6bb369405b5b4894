package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"

	"github.com/Vani131975/ai-powered-compliance-auditor/config"
	"github.com/Vani131975/ai-powered-compliance-auditor/model"
)

// ExtractService converts uploaded PDF/DOCX documents to plain text through
// an external extraction API. TXT files never reach it; they decode locally.
type ExtractService struct {
	config     *config.ExtractionConfig
	httpClient *http.Client
}

// ExtractRequest is the request to the extraction API. The document is
// passed by URL (a presigned object-store link), not by body.
type ExtractRequest struct {
	URL    string `json:"url"`
	Format string `json:"format"`
}

// ExtractResponse is the extraction API reply.
type ExtractResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Data    struct {
		Text string `json:"text"`
	} `json:"data"`
}

func NewExtractService(cfg *config.ExtractionConfig) *ExtractService {
	return &ExtractService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// AllowedFormat reports whether the file extension is one the system
// ingests (pdf, docx, txt).
func AllowedFormat(filename string) (string, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "pdf", "docx", "txt":
		return ext, true
	}
	return ext, false
}

// DecodeTextFile decodes a locally readable TXT upload.
func DecodeTextFile(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text file is not valid UTF-8", model.ErrDecode)
	}
	return string(data), nil
}

// ExtractText asks the extraction service to decode the document behind
// fileURL into plain text. Transient failures are retried with exponential
// backoff; format and decode failures map to the ingestion error taxonomy
// and are not retried.
func (s *ExtractService) ExtractText(ctx context.Context, fileURL, format string) (string, error) {
	if _, ok := AllowedFormat("f." + format); !ok {
		return "", fmt.Errorf("%w: %s", model.ErrUnsupportedFormat, format)
	}

	var text string
	backoff := retry.WithMaxRetries(uint64(s.config.MaxRetries), retry.NewExponential(s.config.RetryBaseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		result, err := s.extractOnce(ctx, fileURL, format)
		if err != nil {
			if errors.Is(err, model.ErrUnsupportedFormat) || errors.Is(err, model.ErrDecode) {
				return err
			}
			return retry.RetryableError(err)
		}
		text = result
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrUnsupportedFormat) || errors.Is(err, model.ErrDecode) {
			return "", err
		}
		return "", wrapCapabilityError("extract", err)
	}

	return text, nil
}

func (s *ExtractService) extractOnce(ctx context.Context, fileURL, format string) (string, error) {
	reqBody := ExtractRequest{URL: fileURL, Format: format}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.APIURL+"/extract/text", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnsupportedMediaType:
		return "", fmt.Errorf("%w: %s", model.ErrUnsupportedFormat, format)
	case http.StatusUnprocessableEntity:
		return "", fmt.Errorf("%w: extraction service could not decode the file", model.ErrDecode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extraction API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result ExtractResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	if result.Code != 0 {
		return "", fmt.Errorf("extraction API error: %s", result.Message)
	}
	if strings.TrimSpace(result.Data.Text) == "" {
		return "", fmt.Errorf("%w: extraction service returned no text", model.ErrDecode)
	}

	return result.Data.Text, nil
}

// wrapCapabilityError maps transport failures to the capability error
// taxonomy: timeouts vs everything else.
func wrapCapabilityError(capability string, err error) error {
	kind := model.CapabilityUnavailable

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = model.CapabilityTimeout
	}

	return &model.CapabilityError{Capability: capability, Kind: kind, Err: err}
}
