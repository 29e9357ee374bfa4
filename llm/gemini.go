package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/common"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel     = "gemini-1.5-pro"
	DefaultGeminiMaxTokens = 1000
)

// GeminiModel implements the LLM interface using the Gemini API (Google AI Studio)
type GeminiModel struct {
	client *genai.Client
	opts   clientOptions
}

// NewGemini creates a new Gemini client
func NewGemini(apiKey string, opts ...Option) (*GeminiModel, error) {
	if apiKey == "" {
		errMsg := "Gemini API key cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	o := applyOptions(clientOptions{
		modelName:   DefaultGeminiModel,
		maxTokens:   DefaultGeminiMaxTokens,
		temperature: common.DefaultTemperature,
	}, opts)

	config := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient(),
	}
	if o.baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}

	client, err := genai.NewClient(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Debugf("Gemini client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		o.modelName, o.maxTokens, o.apiTimeout)

	return &GeminiModel{
		client: client,
		opts:   o,
	}, nil
}

// Prompt sends a request to Gemini and returns the response
func (g *GeminiModel) Prompt(req Request) Response {
	ctx, cancel := g.opts.requestContext()
	defer cancel()

	temperature := g.opts.temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if g.opts.maxTokens > 0 {
		config.MaxOutputTokens = int32(g.opts.maxTokens)
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	logger.Infof("Sending request to Gemini with model %s, max output tokens %d", g.opts.modelName, g.opts.maxTokens)

	result, err := g.client.Models.GenerateContent(ctx, g.opts.modelName, genai.Text(req.UserPrompt), config)
	if err != nil {
		return Response{
			Error: fmt.Errorf("failed to generate content: %w", err),
		}
	}

	if result == nil || len(result.Candidates) == 0 {
		return Response{
			Error: errors.New("Gemini response contained no candidates"),
		}
	}

	var content strings.Builder
	if candidate := result.Candidates[0]; candidate != nil && candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil {
				content.WriteString(part.Text)
			}
		}
	}

	if content.Len() == 0 {
		return Response{
			Error: errors.New("Gemini response contained no text"),
		}
	}

	return Response{
		Content: content.String(),
	}
}
