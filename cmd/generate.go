package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/common"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/dockerfile"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/interaction"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/llm"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/prompt"
	"github.com/spf13/cobra"
)

// newBackend is swapped in tests
var newBackend = llm.NewLLM

type generateFlags struct {
	provider    string
	model       string
	language    string
	apiKey      string
	temperature float32
	maxTokens   int
	apiTimeout  int
	baseURL     string
	endpoint    string
	projectDir  string
	output      string
	yes         bool
}

func newGenerateCmd() *cobra.Command {
	flags := &generateFlags{}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Dockerfile using AI",
		Long: `Detect the project's dependency manifest, ask an LLM backend for a Dockerfile
and optionally save it.

Supported backends: ` + strings.Join(llm.Providers(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := common.WithYamlFile()
			cfg := backendConfig(cmd, flags, settings)
			if !slices.Contains(llm.Providers(), cfg.Provider) {
				return fmt.Errorf("unsupported provider: %s", cfg.Provider)
			}
			logger.Debugf("Using backend %s with model %q", cfg.Provider, cfg.ModelName)

			s := &session{
				prompter:     interaction.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				out:          cmd.OutOrStdout(),
				cfg:          cfg,
				systemPrompt: prompt.GetSystemPrompt(settings),
				language:     flags.language,
				projectDir:   flags.projectDir,
				output:       flags.output,
				outputSet:    cmd.Flags().Changed("output"),
				yes:          flags.yes,
			}
			return s.run()
		},
	}

	generateCmd.Flags().StringVarP(&flags.provider, "provider", "p", "", "LLM backend to use ("+strings.Join(llm.Providers(), ", ")+"), defaults to the settings file or gemini")
	generateCmd.Flags().StringVarP(&flags.model, "model", "m", "", "Model name (deployment name for azure), defaults to the backend's default model")
	generateCmd.Flags().StringVarP(&flags.language, "language", "l", "", "Programming language of the project, asked interactively when empty")
	generateCmd.Flags().StringVar(&flags.apiKey, "api-key", "", "API key for hosted backends, falls back to the provider's environment variable or LLM_API_KEY")
	generateCmd.Flags().Float32Var(&flags.temperature, "temperature", common.DefaultTemperature, "Sampling temperature")
	generateCmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0, "Maximum tokens to generate, 0 keeps the backend default")
	generateCmd.Flags().IntVar(&flags.apiTimeout, "timeout", 0, "API timeout in seconds, 0 waits indefinitely")
	generateCmd.Flags().StringVar(&flags.baseURL, "base-url", "", "Override the backend API URL (e.g. a remote Ollama host)")
	generateCmd.Flags().StringVar(&flags.endpoint, "endpoint", "", "Azure OpenAI resource endpoint, falls back to AZURE_OPENAI_ENDPOINT")
	generateCmd.Flags().StringVarP(&flags.projectDir, "project-dir", "d", "", "Directory to look for the dependency manifest in, defaults to the working directory")
	generateCmd.Flags().StringVarP(&flags.output, "output", "o", "", "Directory to save the Dockerfile to, skips the directory question")
	generateCmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Save the generated Dockerfile without asking")

	return generateCmd
}

// backendConfig merges flags over the settings file over defaults
func backendConfig(cmd *cobra.Command, flags *generateFlags, settings common.Settings) llm.Config {
	backend := settings.Backend

	provider := backend.Provider
	if cmd.Flags().Changed("provider") {
		provider = flags.provider
	}
	if provider == "" {
		provider = common.ProviderGemini
	}

	cfg := llm.DefaultConfig(strings.ToLower(provider))
	cfg.ModelName = backend.Model
	cfg.Temperature = backend.Temperature
	cfg.MaxTokens = backend.MaxTokens
	cfg.APITimeout = backend.APITimeout
	cfg.Retries = backend.Retries
	cfg.BaseURL = backend.BaseURL
	cfg.Endpoint = backend.Endpoint

	if cmd.Flags().Changed("model") {
		cfg.ModelName = flags.model
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Temperature = flags.temperature
	}
	if cmd.Flags().Changed("max-tokens") {
		cfg.MaxTokens = flags.maxTokens
	}
	if cmd.Flags().Changed("timeout") {
		cfg.APITimeout = flags.apiTimeout
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = flags.baseURL
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.Endpoint = flags.endpoint
	}
	if cfg.Endpoint == "" && cfg.Provider == common.ProviderAzure {
		cfg.Endpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")
	}

	cfg.APIKey = flags.apiKey
	if cfg.APIKey == "" && llm.RequiresAPIKey(cfg.Provider) {
		cfg.APIKey = llm.APIKeyFromEnv(cfg.Provider)
	}

	return cfg
}

// session is a single interactive generation run
type session struct {
	prompter     *interaction.Prompter
	out          io.Writer
	cfg          llm.Config
	systemPrompt string
	language     string
	projectDir   string
	output       string
	outputSet    bool
	yes          bool
}

// run walks through the interactive flow. Generation and write failures are
// reported on the console and never turn into an error exit.
func (s *session) run() error {
	title := "Dockerfile Generator using " + llm.DisplayName(s.cfg.Provider)
	s.println(title)
	s.println(strings.Repeat("-", len(title)))

	if s.cfg.APIKey == "" && llm.RequiresAPIKey(s.cfg.Provider) {
		label := fmt.Sprintf("Enter your %s API key: ", llm.DisplayName(s.cfg.Provider))
		apiKey, err := s.prompter.Required(label, label, "API key cannot be empty!")
		if err != nil {
			logger.Errorf("No API key provided: %v", err)
			return nil
		}
		s.cfg.APIKey = apiKey
		s.println()
	}

	backend, err := newBackend(s.cfg)
	if err != nil {
		return fmt.Errorf("failed to create client for provider: %w", err)
	}

	language := strings.TrimSpace(s.language)
	if language == "" {
		language, err = s.prompter.Required(
			"Enter the programming language (e.g., Python, Node, Java): ",
			"Enter the programming language: ",
			"Language cannot be empty!",
		)
		if err != nil {
			logger.Errorf("No language provided: %v", err)
			return nil
		}
	}

	s.println("\nGenerating Dockerfile...")
	generator := dockerfile.NewGenerator(backend, s.systemPrompt)
	if s.projectDir != "" {
		generator = generator.WithProjectDir(s.projectDir)
	}
	content, ok := generator.Generate(language)
	if !ok {
		s.println("Failed to generate Dockerfile")
		return nil
	}

	_, _ = fmt.Fprint(s.out, "\nGenerated Dockerfile:\n\n")
	s.println(content)

	save := s.yes
	if !save {
		save, err = s.prompter.Confirm("\nSave to Dockerfile? (y/n): ")
		if err != nil {
			logger.Errorf("Failed to read confirmation: %v", err)
			return nil
		}
	}
	if !save {
		return nil
	}

	dir := s.output
	if !s.outputSet {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		dir, err = s.prompter.Optional(fmt.Sprintf("Enter directory path [current: %s]: ", cwd))
		if err != nil {
			logger.Errorf("Failed to read directory path: %v", err)
			return nil
		}
	}

	path, err := dockerfile.Save(content, dir)
	if err != nil {
		s.println(fmt.Sprintf("Error saving Dockerfile: %v", err))
		return nil
	}

	s.println(fmt.Sprintf("\nDockerfile saved to: %s", path))
	return nil
}

func (s *session) println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func init() {
	rootCmd.AddCommand(newGenerateCmd())
}
