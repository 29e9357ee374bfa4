package llm

import (
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/common"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
)

const (
	DefaultAnthropicModel     = "claude-3.7-sonnet"
	DefaultAnthropicMaxTokens = 1000
)

// AnthropicModel implements the LLM interface using Anthropic's API
type AnthropicModel struct {
	client anthropic.Client
	opts   clientOptions
}

// NewAnthropic creates a new Anthropic client
func NewAnthropic(apiKey string, opts ...Option) (*AnthropicModel, error) {
	if apiKey == "" {
		errMsg := "Anthropic API key cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	o := applyOptions(clientOptions{
		modelName:   DefaultAnthropicModel,
		maxTokens:   DefaultAnthropicMaxTokens,
		temperature: common.DefaultTemperature,
	}, opts)

	// The messages API rejects requests without max_tokens
	if o.maxTokens <= 0 {
		o.maxTokens = DefaultAnthropicMaxTokens
	}

	requestOptions := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(o.httpClient()),
		option.WithMaxRetries(0),
	}
	if o.baseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(o.baseURL))
	}

	logger.Debugf("Anthropic client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		o.modelName, o.maxTokens, o.apiTimeout)

	return &AnthropicModel{
		client: anthropic.NewClient(requestOptions...),
		opts:   o,
	}, nil
}

func anthropicModel(name string) anthropic.Model {
	switch name {
	case "claude-3.7-sonnet":
		return anthropic.ModelClaude3_7SonnetLatest
	case "claude-3.5-sonnet":
		return anthropic.ModelClaude3_5SonnetLatest
	case "claude-3.5-haiku":
		return anthropic.ModelClaude3_5HaikuLatest
	}
	return anthropic.Model(name)
}

// Prompt sends a request to Anthropic and returns the response
func (a *AnthropicModel) Prompt(req Request) Response {
	ctx, cancel := a.opts.requestContext()
	defer cancel()

	messageParams := anthropic.MessageNewParams{
		Model:       anthropicModel(a.opts.modelName),
		MaxTokens:   int64(a.opts.maxTokens),
		Temperature: anthropic.Float(float64(a.opts.temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	if req.SystemPrompt != "" {
		messageParams.System = []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		}
	}

	logger.Infof("Sending request to Anthropic with model %s, max tokens %d", messageParams.Model, a.opts.maxTokens)

	message, err := a.client.Messages.New(ctx, messageParams)
	if err != nil {
		return Response{
			Error: fmt.Errorf("failed to create message: %w", err),
		}
	}

	var content string
	for _, block := range message.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += b.Text
		}
	}

	if content == "" {
		return Response{
			Error: errors.New("Anthropic response contained no text"),
		}
	}

	return Response{
		Content: content,
	}
}
