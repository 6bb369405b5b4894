package service

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vani131975/ai-powered-compliance-auditor/config"
)

// GeneratorService produces clause remediation suggestions through a
// chat-completion model.
type GeneratorService struct {
	config *config.GeneratorConfig
	client *openai.Client
}

func NewGeneratorService(cfg *config.GeneratorConfig) *GeneratorService {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &GeneratorService{
		config: cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

const recommendSystemPrompt = "You are a contract review assistant. " +
	"Given a contract clause and its compliance assessment, suggest one short, " +
	"concrete improvement in plain language. Answer in at most three sentences."

// Recommend asks the model for a remediation suggestion. The caller bounds
// the call with a context timeout and falls back to a template on failure.
func (s *GeneratorService) Recommend(ctx context.Context, clauseText, status, risk string, labels []string) (string, error) {
	categories := "uncategorized"
	if len(labels) > 0 {
		categories = strings.Join(labels, ", ")
	}

	prompt := fmt.Sprintf(
		"Clause categories: %s\nCompliance status: %s\nRisk level: %s\n\nClause:\n%s\n\nSuggest improvements:",
		categories, status, risk, clauseText,
	)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: recommendSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", wrapCapabilityError("generate", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
