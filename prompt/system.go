package prompt

import (
	"strings"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/common"
)

// GetSystemPrompt returns the optional system instructions from the settings file.
// It is empty by default so the backend only receives the Dockerfile prompt.
func GetSystemPrompt(settings common.Settings) string {
	return strings.TrimSpace(settings.SystemPrompt)
}
