package llm

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/common"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
)

const (
	DefaultAzureDeployment = "gpt-4o"
	DefaultAzureMaxTokens  = 1000
)

// AzureModel implements the LLM interface using an Azure OpenAI deployment.
// The model name is used as the deployment name.
type AzureModel struct {
	client *azopenai.Client
	opts   clientOptions
}

// NewAzure creates a new Azure OpenAI client
func NewAzure(apiKey, endpoint string, opts ...Option) (*AzureModel, error) {
	if apiKey == "" {
		errMsg := "Azure OpenAI API key cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}
	if endpoint == "" {
		errMsg := "Azure OpenAI endpoint cannot be empty"
		logger.Error(errMsg)
		return nil, errors.New(errMsg)
	}

	o := applyOptions(clientOptions{
		modelName:   DefaultAzureDeployment,
		maxTokens:   DefaultAzureMaxTokens,
		temperature: common.DefaultTemperature,
	}, opts)

	azOptions := &azopenai.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Transport: o.httpClient(),
			Retry:     policy.RetryOptions{MaxRetries: -1},
		},
	}

	client, err := azopenai.NewClientWithKeyCredential(endpoint, azcore.NewKeyCredential(apiKey), azOptions)
	if err != nil {
		return nil, fmt.Errorf("error creating Azure OpenAI client: %w", err)
	}

	logger.Debugf("Azure OpenAI client initialized with deployment: %s, max tokens: %d", o.modelName, o.maxTokens)

	return &AzureModel{
		client: client,
		opts:   o,
	}, nil
}

// Prompt sends a request to the Azure OpenAI deployment and returns the response
func (a *AzureModel) Prompt(req Request) Response {
	ctx, cancel := a.opts.requestContext()
	defer cancel()

	var messages []azopenai.ChatRequestMessageClassification
	if req.SystemPrompt != "" {
		messages = append(messages, &azopenai.ChatRequestSystemMessage{
			Content: azopenai.NewChatRequestSystemMessageContent(req.SystemPrompt),
		})
	}
	messages = append(messages, &azopenai.ChatRequestUserMessage{
		Content: azopenai.NewChatRequestUserMessageContent(req.UserPrompt),
	})

	options := azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(a.opts.modelName),
		Messages:       messages,
		Temperature:    to.Ptr(a.opts.temperature),
	}
	if a.opts.maxTokens > 0 {
		options.MaxTokens = to.Ptr(int32(a.opts.maxTokens))
	}

	logger.Infof("Sending request to Azure OpenAI deployment %s", a.opts.modelName)

	resp, err := a.client.GetChatCompletions(ctx, options, nil)
	if err != nil {
		return Response{
			Error: fmt.Errorf("failed to get chat completions: %w", err),
		}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return Response{
			Error: errors.New("no completion received from Azure OpenAI"),
		}
	}

	return Response{
		Content: *resp.Choices[0].Message.Content,
	}
}
