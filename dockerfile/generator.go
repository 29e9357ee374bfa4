package dockerfile

import (
	"errors"
	"strings"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/dependency"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/llm"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/prompt"
)

// Generator probes the project, builds the prompt and asks the backend for a Dockerfile
type Generator struct {
	backend      llm.LLM
	systemPrompt string
	probe        func(language string) dependency.Info
}

// NewGenerator creates a Generator probing the current working directory
func NewGenerator(backend llm.LLM, systemPrompt string) *Generator {
	return &Generator{
		backend:      backend,
		systemPrompt: systemPrompt,
		probe:        dependency.Probe,
	}
}

// WithProjectDir makes the generator look for manifests in dir instead of the working directory
func (g *Generator) WithProjectDir(dir string) *Generator {
	g.probe = func(language string) dependency.Info {
		info, err := dependency.ProbeDir(dir, language)
		if err != nil {
			logger.Warnf("Ignoring dependency manifest: %v", err)
		}
		return info
	}
	return g
}

// BuildRequest returns the request that Generate sends for language
func (g *Generator) BuildRequest(language string) llm.Request {
	info := g.probe(language)
	logger.Debugf("Dependency info for %s: %+v", language, info)

	return llm.Request{
		SystemPrompt: g.systemPrompt,
		UserPrompt:   prompt.GetDockerfilePrompt(language, info),
	}
}

// Generate returns the backend's text verbatim. Failures are logged and reported
// through the second return value, they never reach the caller as errors.
func (g *Generator) Generate(language string) (string, bool) {
	resp := g.backend.Prompt(g.BuildRequest(language))

	err := resp.Error
	if err == nil && strings.TrimSpace(resp.Content) == "" {
		err = errors.New("empty response from backend")
	}
	if err != nil {
		logger.Errorf("Error generating Dockerfile: %v", err)
		return "", false
	}

	return resp.Content, true
}
