package prompt

import (
	"fmt"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/dependency"
)

const dockerfileTemplate = `
Generate an ideal Dockerfile for a %s application following best practices.
The application %s dependencies.

Requirements:
1. Use the most appropriate official base image
2. %s
3. Set proper working directory
4. Copy only necessary files
5. Use multi-stage build if beneficial
6. Follow security best practices
7. Expose necessary ports if it's a web application
8. Include proper cleanup to minimize image size

Output ONLY the Dockerfile content with no additional explanation or commentary.
`

// GetDockerfilePrompt renders the Dockerfile request. The language is echoed verbatim.
func GetDockerfilePrompt(language string, info dependency.Info) string {
	hasDependencies := "doesn't have"
	if info.HasDependencies {
		hasDependencies = "has"
	}

	return fmt.Sprintf(dockerfileTemplate, language, hasDependencies, info.Instructions)
}
