package llm

import (
	"os"
	"strings"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/common"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultOllamaModel = "phi3"
	DefaultOllamaHost  = "http://localhost:11434"
)

// NewOllama creates a client for a locally served model. Ollama exposes an
// OpenAI compatible API under /v1, so the OpenAI client is reused with a local
// base URL. No token cap is sent unless one is configured.
func NewOllama(opts ...Option) (*OpenAIModel, error) {
	o := applyOptions(clientOptions{
		modelName:   DefaultOllamaModel,
		temperature: common.DefaultTemperature,
		baseURL:     OllamaBaseURL(os.Getenv("OLLAMA_HOST")),
	}, opts)
	o.baseURL = OllamaBaseURL(o.baseURL)

	// Ollama ignores the key but the client always sends one
	config := openai.DefaultConfig("ollama")
	config.BaseURL = o.baseURL
	config.HTTPClient = o.httpClient()

	logger.Debugf("Ollama client initialized with model: %s at %s", o.modelName, o.baseURL)

	return &OpenAIModel{
		client: openai.NewClientWithConfig(config),
		opts:   o,
		name:   "Ollama",
	}, nil
}

// OllamaBaseURL normalizes an OLLAMA_HOST style value ("localhost:11434",
// "http://host:11434/") into the OpenAI compatible base URL.
func OllamaBaseURL(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultOllamaHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	host = strings.TrimRight(host, "/")
	if !strings.HasSuffix(host, "/v1") {
		host += "/v1"
	}
	return host
}
