package llm

import (
	"errors"
	"fmt"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/common"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAIModel     = "gpt-4.1"
	DefaultOpenAIMaxTokens = 1000
)

// OpenAIModel implements the LLM interface using OpenAI's API
type OpenAIModel struct {
	client *openai.Client
	opts   clientOptions
	name   string
}

// NewOpenAI creates a new OpenAI client
func NewOpenAI(apiKey string, opts ...Option) (*OpenAIModel, error) {
	if apiKey == "" {
		errMsg := "OpenAI API key cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	o := applyOptions(clientOptions{
		modelName:   DefaultOpenAIModel,
		maxTokens:   DefaultOpenAIMaxTokens,
		temperature: common.DefaultTemperature,
	}, opts)

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = o.httpClient()
	if o.baseURL != "" {
		config.BaseURL = o.baseURL
	}

	logger.Debugf("OpenAI client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		o.modelName, o.maxTokens, o.apiTimeout)

	return &OpenAIModel{
		client: openai.NewClientWithConfig(config),
		opts:   o,
		name:   "OpenAI",
	}, nil
}

// Prompt sends a request to OpenAI and returns the response
func (o *OpenAIModel) Prompt(req Request) Response {
	logger.Debugf("Sending prompt to %s model: %s", o.name, o.opts.modelName)

	ctx, cancel := o.opts.requestContext()
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		logger.Debug("Adding system prompt to request")
		logger.Debug(req.SystemPrompt)
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	logger.Debug("Adding user prompt to request")
	logger.Debug(req.UserPrompt)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       o.opts.modelName,
		Messages:    messages,
		MaxTokens:   o.opts.maxTokens,
		Temperature: o.opts.temperature,
	}

	logger.Infof("Sending request to %s with model %s, max tokens %d", o.name, o.opts.modelName, o.opts.maxTokens)

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return Response{
			Error: fmt.Errorf("failed to create chat completion: %w", err),
		}
	}

	if len(resp.Choices) == 0 {
		return Response{
			Error: fmt.Errorf("%s response contained no choices", o.name),
		}
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return Response{
			Error: fmt.Errorf("%s response contained no content", o.name),
		}
	}

	return Response{
		Content: content,
	}
}
