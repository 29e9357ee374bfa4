package dependency

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeDir_ManifestPresent(t *testing.T) {
	tests := []struct {
		language string
		manifest string
	}{
		{language: "python", manifest: "requirements.txt"},
		{language: "javascript", manifest: "package.json"},
		{language: "java", manifest: "pom.xml"},
		{language: "golang", manifest: "go.mod"},
		{language: "ruby", manifest: "Gemfile"},
		{language: "php", manifest: "composer.json"},
		{language: "Python", manifest: "requirements.txt"},
		{language: "GOLANG", manifest: "go.mod"},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.manifest), []byte("content"), 0644))

			info, err := ProbeDir(dir, tt.language)
			require.NoError(t, err)

			assert.True(t, info.HasDependencies)
			assert.Equal(t, "Install dependencies from "+tt.manifest, info.Instructions)
		})
	}
}

func TestProbeDir_NoManifest(t *testing.T) {
	for _, language := range SupportedLanguages() {
		t.Run(language, func(t *testing.T) {
			info, err := ProbeDir(t.TempDir(), language)
			require.NoError(t, err)

			assert.False(t, info.HasDependencies)
			assert.Equal(t, NoInstallInstructions, info.Instructions)
		})
	}
}

func TestProbeDir_UnknownLanguage(t *testing.T) {
	dir := t.TempDir()
	// Manifests of other languages must not leak into unmapped ones
	for _, name := range []string{"requirements.txt", "package.json", "go.mod"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	for _, language := range []string{"Node", "rust", "", "c++"} {
		info, err := ProbeDir(dir, language)
		require.NoError(t, err)

		assert.False(t, info.HasDependencies, language)
		assert.Equal(t, NoInstallInstructions, info.Instructions, language)
	}
}

func TestProbeDir_UnreadableManifest(t *testing.T) {
	dir := t.TempDir()
	// A directory named like the manifest exists but cannot be read as a file
	require.NoError(t, os.Mkdir(filepath.Join(dir, "requirements.txt"), 0755))

	info, err := ProbeDir(dir, "python")
	require.Error(t, err)

	assert.False(t, info.HasDependencies)
	assert.Equal(t, NoInstallInstructions, info.Instructions)
}

func TestProbe_UsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	assert.Equal(t, Info{HasDependencies: false, Instructions: NoInstallInstructions}, Probe("golang"))

	require.NoError(t, os.WriteFile("go.mod", []byte("module example.com/app\n"), 0644))

	assert.Equal(t, Info{HasDependencies: true, Instructions: "Install dependencies from go.mod"}, Probe("golang"))
}

func TestProbe_SwallowsReadErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir("pom.xml", 0755))

	info := Probe("java")

	assert.False(t, info.HasDependencies)
	assert.Equal(t, NoInstallInstructions, info.Instructions)
}

func TestManifestFor(t *testing.T) {
	name, ok := ManifestFor("Ruby")
	assert.True(t, ok)
	assert.Equal(t, "Gemfile", name)

	_, ok = ManifestFor("node")
	assert.False(t, ok)
}

func TestSupportedLanguages(t *testing.T) {
	assert.Equal(t, []string{"golang", "java", "javascript", "php", "python", "ruby"}, SupportedLanguages())
}
