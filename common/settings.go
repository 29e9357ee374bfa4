package common

import (
	"os"
	"path/filepath"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderAzure     = "azure"
)

// DefaultTemperature keeps generations close to deterministic
const DefaultTemperature = 0.2

// SettingsFileNames are looked up in the working directory, first match wins
var SettingsFileNames = []string{"dockerfile.ai.yml", "dockerfile.ai.yaml"}

type Backend struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	// MaxTokens of 0 leaves the provider default in place
	MaxTokens int `yaml:"max_tokens"`
	// APITimeout in seconds, 0 disables the timeout
	APITimeout int    `yaml:"api_timeout"`
	Retries    int    `yaml:"retries"`
	BaseURL    string `yaml:"base_url"`
	Endpoint   string `yaml:"endpoint"`
}

type Settings struct {
	SystemPrompt string  `yaml:"system_prompt"`
	Backend      Backend `yaml:"backend"`
}

func WithDefaultSettings() Settings {
	return Settings{
		Backend: Backend{
			Provider:    ProviderGemini,
			Temperature: DefaultTemperature,
		},
	}
}

// WithYamlFile loads settings from the working directory on top of the defaults.
// A missing, unreadable or malformed file leaves the defaults untouched.
func WithYamlFile() Settings {
	return WithYamlFileIn(".")
}

func WithYamlFileIn(dir string) Settings {
	settings := WithDefaultSettings()

	var filePath string
	for _, name := range SettingsFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			filePath = candidate
			break
		}
	}

	if filePath == "" {
		logger.Debugf("No settings file found in %s. Using default settings.", dir)
		return settings
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		logger.Infof("Failed to read settings file %s: %v", filePath, err)
		return settings
	}

	parsed := settings
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		logger.Infof("Failed to parse YAML file %s: %v", filePath, err)
		return settings
	}

	logger.Infof("Using settings from YAML file: %s", filePath)
	return parsed
}
