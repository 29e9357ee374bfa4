package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/common"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
)

const (
	ProviderGemini    = common.ProviderGemini
	ProviderOllama    = common.ProviderOllama
	ProviderOpenAI    = common.ProviderOpenAI
	ProviderAnthropic = common.ProviderAnthropic
	ProviderAzure     = common.ProviderAzure
)

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption   OptionType = "model"
	MaxTokensOption   OptionType = "max_tokens"
	APITimeoutOption  OptionType = "api_timeout"
	TemperatureOption OptionType = "temperature"
	BaseURLOption     OptionType = "base_url"
	RetriesOption     OptionType = "retries"
)

// Option represents a generic configuration option for any LLM provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{
		Type:  ModelNameOption,
		Value: model,
	}
}

// WithMaxTokens creates an option to set the max tokens, 0 means no explicit cap
func WithMaxTokens(maxTokens int) Option {
	return Option{
		Type:  MaxTokensOption,
		Value: maxTokens,
	}
}

// WithAPITimeout creates an option to set the API timeout in seconds, 0 disables it
func WithAPITimeout(timeout int) Option {
	return Option{
		Type:  APITimeoutOption,
		Value: timeout,
	}
}

// WithTemperature creates an option to set the sampling temperature
func WithTemperature(temperature float32) Option {
	return Option{
		Type:  TemperatureOption,
		Value: temperature,
	}
}

// WithBaseURL creates an option to point the client at a different API host
func WithBaseURL(baseURL string) Option {
	return Option{
		Type:  BaseURLOption,
		Value: baseURL,
	}
}

// WithRetries creates an option to set how many times a failed HTTP call is retried
func WithRetries(retries int) Option {
	return Option{
		Type:  RetriesOption,
		Value: retries,
	}
}

// Request represents the data needed to generate a prompt for the LLM
type Request struct {
	SystemPrompt string
	UserPrompt   string
}

// Response represents the response from the LLM
type Response struct {
	Content string
	Error   error
}

// LLM defines the interface for language model prompting
type LLM interface {
	// Prompt sends a request to the language model and returns its response
	Prompt(req Request) Response
}

// Config selects and configures a backend
type Config struct {
	Provider string
	// APIKey is required by every provider except ollama
	APIKey    string
	ModelName string
	// Temperature is always sent to the backend
	Temperature float32
	// MaxTokens of 0 keeps the provider default
	MaxTokens  int
	APITimeout int
	Retries    int
	BaseURL    string
	// Endpoint is the Azure OpenAI resource endpoint
	Endpoint string
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig(provider string) Config {
	return Config{
		Provider:    provider,
		Temperature: common.DefaultTemperature,
	}
}

type clientOptions struct {
	modelName   string
	maxTokens   int
	apiTimeout  int // in seconds
	temperature float32
	baseURL     string
	retries     int
}

func applyOptions(defaults clientOptions, opts []Option) clientOptions {
	o := defaults
	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				o.modelName = modelName
			}
		case MaxTokensOption:
			if maxTokens, ok := opt.Value.(int); ok {
				o.maxTokens = maxTokens
			}
		case APITimeoutOption:
			if timeout, ok := opt.Value.(int); ok {
				o.apiTimeout = timeout
			}
		case TemperatureOption:
			if temperature, ok := opt.Value.(float32); ok {
				o.temperature = temperature
			}
		case BaseURLOption:
			if baseURL, ok := opt.Value.(string); ok && baseURL != "" {
				o.baseURL = baseURL
			}
		case RetriesOption:
			if retries, ok := opt.Value.(int); ok {
				o.retries = retries
			}
		}
	}
	return o
}

func (o clientOptions) httpClient() *http.Client {
	return common.NewRetryableClient(common.DefaultRetryConfig().WithRetries(o.retries)).StandardClient()
}

func (o clientOptions) requestContext() (context.Context, context.CancelFunc) {
	if o.apiTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), time.Duration(o.apiTimeout)*time.Second)
}

var apiKeyEnvs = map[string]string{
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderAzure:     "AZURE_OPENAI_API_KEY",
}

// APIKeyFromEnv looks up the provider specific variable first, then LLM_API_KEY
func APIKeyFromEnv(provider string) string {
	if name, ok := apiKeyEnvs[provider]; ok {
		if apiKey := os.Getenv(name); apiKey != "" {
			return apiKey
		}
	}
	return os.Getenv("LLM_API_KEY")
}

// RequiresAPIKey reports whether the provider talks to a hosted, authenticated API
func RequiresAPIKey(provider string) bool {
	return provider != ProviderOllama
}

// DisplayName returns the human readable backend name
func DisplayName(provider string) string {
	switch provider {
	case ProviderGemini:
		return "Google AI Studio"
	case ProviderOllama:
		return "Ollama"
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderAzure:
		return "Azure OpenAI"
	}
	return provider
}

// Providers lists the supported backends
func Providers() []string {
	return []string{ProviderGemini, ProviderOllama, ProviderOpenAI, ProviderAnthropic, ProviderAzure}
}

// NewLLM builds the backend selected by cfg.Provider
func NewLLM(cfg Config) (LLM, error) {
	var llmClient LLM
	var err error

	options := []Option{
		WithModel(cfg.ModelName),
		WithTemperature(cfg.Temperature),
		WithAPITimeout(cfg.APITimeout),
		WithRetries(cfg.Retries),
		WithBaseURL(cfg.BaseURL),
	}
	if cfg.MaxTokens > 0 {
		options = append(options, WithMaxTokens(cfg.MaxTokens))
	}

	switch cfg.Provider {
	case ProviderGemini:
		llmClient, err = NewGemini(cfg.APIKey, options...)
	case ProviderOllama:
		llmClient, err = NewOllama(options...)
	case ProviderOpenAI:
		llmClient, err = NewOpenAI(cfg.APIKey, options...)
	case ProviderAnthropic:
		llmClient, err = NewAnthropic(cfg.APIKey, options...)
	case ProviderAzure:
		llmClient, err = NewAzure(cfg.APIKey, cfg.Endpoint, options...)
	default:
		err = fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, err
	}

	logger.Infof("Using LLM provider: %s", cfg.Provider)
	return llmClient, nil
}
