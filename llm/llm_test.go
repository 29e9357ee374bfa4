package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLM_UnsupportedProvider(t *testing.T) {
	client, err := NewLLM(Config{Provider: "watson"})

	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "unsupported provider: watson")
}

func TestNewLLM_MissingAPIKey(t *testing.T) {
	for _, provider := range []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderAzure} {
		t.Run(provider, func(t *testing.T) {
			cfg := DefaultConfig(provider)
			cfg.Endpoint = "https://example.openai.azure.com"

			client, err := NewLLM(cfg)

			require.Error(t, err)
			assert.Nil(t, client)
			assert.Contains(t, err.Error(), "API key cannot be empty")
		})
	}
}

func TestNewLLM_AzureRequiresEndpoint(t *testing.T) {
	cfg := DefaultConfig(ProviderAzure)
	cfg.APIKey = "key"

	_, err := NewLLM(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint cannot be empty")
}

func TestNewLLM_OllamaNeedsNoKey(t *testing.T) {
	client, err := NewLLM(DefaultConfig(ProviderOllama))

	require.NoError(t, err)
	require.IsType(t, &OpenAIModel{}, client)

	model := client.(*OpenAIModel)
	assert.Equal(t, DefaultOllamaModel, model.opts.modelName)
	assert.Equal(t, 0, model.opts.maxTokens)
	assert.Equal(t, float32(0.2), model.opts.temperature)
}

func TestNewLLM_GeminiDefaults(t *testing.T) {
	cfg := DefaultConfig(ProviderGemini)
	cfg.APIKey = "key"

	client, err := NewLLM(cfg)

	require.NoError(t, err)
	require.IsType(t, &GeminiModel{}, client)

	model := client.(*GeminiModel)
	assert.Equal(t, DefaultGeminiModel, model.opts.modelName)
	assert.Equal(t, 1000, model.opts.maxTokens)
	assert.Equal(t, float32(0.2), model.opts.temperature)
	assert.Equal(t, 0, model.opts.apiTimeout)
	assert.Equal(t, 0, model.opts.retries)
}

func TestNewLLM_ConfigOverrides(t *testing.T) {
	cfg := Config{
		Provider:    ProviderOpenAI,
		APIKey:      "key",
		ModelName:   "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   321,
		APITimeout:  15,
		Retries:     2,
	}

	client, err := NewLLM(cfg)
	require.NoError(t, err)

	model := client.(*OpenAIModel)
	assert.Equal(t, clientOptions{
		modelName:   "gpt-4o-mini",
		maxTokens:   321,
		apiTimeout:  15,
		temperature: 0.7,
		retries:     2,
	}, model.opts)
}

func TestApplyOptions_IgnoresEmptyAndMistyped(t *testing.T) {
	defaults := clientOptions{modelName: "base", baseURL: "http://default", maxTokens: 10}

	got := applyOptions(defaults, []Option{
		WithModel(""),
		WithBaseURL(""),
		{Type: MaxTokensOption, Value: "many"},
		{Type: TemperatureOption, Value: 0.5},
	})

	assert.Equal(t, defaults, got)
}

func TestRequestContext(t *testing.T) {
	ctx, cancel := clientOptions{}.requestContext()
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	assert.False(t, hasDeadline)

	ctx, cancel = clientOptions{apiTimeout: 5}.requestContext()
	defer cancel()
	_, hasDeadline = ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_API_KEY", "generic")
	assert.Equal(t, "generic", APIKeyFromEnv(ProviderGemini))

	t.Setenv("GEMINI_API_KEY", "gemini")
	assert.Equal(t, "gemini", APIKeyFromEnv(ProviderGemini))

	t.Setenv("LLM_API_KEY", "")
	assert.Empty(t, APIKeyFromEnv(ProviderOllama))
}

func TestRequiresAPIKey(t *testing.T) {
	assert.False(t, RequiresAPIKey(ProviderOllama))
	for _, provider := range []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderAzure} {
		assert.True(t, RequiresAPIKey(provider), provider)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Google AI Studio", DisplayName(ProviderGemini))
	assert.Equal(t, "Ollama", DisplayName(ProviderOllama))
	assert.Equal(t, "custom", DisplayName("custom"))
}

func TestOllamaBaseURL(t *testing.T) {
	tests := map[string]string{
		"":                          "http://localhost:11434/v1",
		"localhost:11434":           "http://localhost:11434/v1",
		"http://gpu-box:11434/":     "http://gpu-box:11434/v1",
		"https://ollama.example/v1": "https://ollama.example/v1",
		" 127.0.0.1:8080 ":          "http://127.0.0.1:8080/v1",
	}

	for host, want := range tests {
		assert.Equal(t, want, OllamaBaseURL(host), host)
	}
}
