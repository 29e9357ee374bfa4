package dependency

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
)

// NoInstallInstructions is used whenever no manifest is found for the language
const NoInstallInstructions = "No specific dependency installation needed"

// manifests maps a lower-cased language name to its dependency manifest
var manifests = map[string]string{
	"python":     "requirements.txt",
	"javascript": "package.json",
	"java":       "pom.xml",
	"golang":     "go.mod",
	"ruby":       "Gemfile",
	"php":        "composer.json",
}

// Info describes whether the project declares dependencies and how to install them
type Info struct {
	HasDependencies bool
	Instructions    string
}

func noDependencies() Info {
	return Info{
		HasDependencies: false,
		Instructions:    NoInstallInstructions,
	}
}

// ManifestFor returns the manifest filename for a language, case-insensitively
func ManifestFor(language string) (string, bool) {
	name, ok := manifests[strings.ToLower(language)]
	return name, ok
}

// SupportedLanguages returns the languages with a known manifest, sorted
func SupportedLanguages() []string {
	languages := make([]string, 0, len(manifests))
	for language := range manifests {
		languages = append(languages, language)
	}
	sort.Strings(languages)
	return languages
}

// Probe checks the current working directory. Read failures are logged and
// reported as no dependencies.
func Probe(language string) Info {
	info, err := ProbeDir(".", language)
	if err != nil {
		logger.Warnf("Ignoring dependency manifest: %v", err)
	}
	return info
}

// ProbeDir checks dir for the manifest of language. The manifest is read to make
// sure it is accessible, its content is not inspected. When the manifest exists
// but cannot be read, the returned Info reports no dependencies together with the error.
func ProbeDir(dir, language string) (Info, error) {
	name, ok := ManifestFor(language)
	if !ok {
		logger.Debugf("No dependency manifest known for language: %s", language)
		return noDependencies(), nil
	}

	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debugf("Dependency manifest not found: %s", path)
			return noDependencies(), nil
		}
		return noDependencies(), fmt.Errorf("stat %s: %w", path, err)
	}

	if _, err := os.ReadFile(path); err != nil {
		return noDependencies(), fmt.Errorf("read %s: %w", path, err)
	}

	logger.Debugf("Found dependency manifest: %s", path)
	return Info{
		HasDependencies: true,
		Instructions:    "Install dependencies from " + name,
	}, nil
}
