package dockerfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/llm"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeLLM struct {
	response llm.Response
	requests []llm.Request
}

func (f *fakeLLM) Prompt(req llm.Request) llm.Response {
	f.requests = append(f.requests, req)
	return f.response
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	return logs
}

func TestGenerate_PythonWithRequirements(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("requirements.txt", []byte("flask==3.0.0\n"), 0644))

	backend := &fakeLLM{response: llm.Response{Content: "FROM python:3.12-slim"}}

	content, ok := NewGenerator(backend, "").Generate("python")

	require.True(t, ok)
	assert.Equal(t, "FROM python:3.12-slim", content)

	require.Len(t, backend.requests, 1)
	assert.Contains(t, backend.requests[0].UserPrompt, "The application has dependencies.")
	assert.Contains(t, backend.requests[0].UserPrompt, "Install dependencies from requirements.txt")
	assert.Empty(t, backend.requests[0].SystemPrompt)
}

func TestGenerate_GolangWithoutGoMod(t *testing.T) {
	t.Chdir(t.TempDir())

	backend := &fakeLLM{response: llm.Response{Content: "FROM golang:1.24"}}

	_, ok := NewGenerator(backend, "system").Generate("golang")

	require.True(t, ok)
	require.Len(t, backend.requests, 1)
	assert.Contains(t, backend.requests[0].UserPrompt, "doesn't have dependencies")
	assert.Contains(t, backend.requests[0].UserPrompt, "No specific dependency installation needed")
	assert.Equal(t, "system", backend.requests[0].SystemPrompt)
}

func TestGenerate_ContentIsVerbatim(t *testing.T) {
	raw := "```dockerfile\nFROM scratch\n```\n"
	backend := &fakeLLM{response: llm.Response{Content: raw}}

	content, ok := NewGenerator(backend, "").WithProjectDir(t.TempDir()).Generate("Node")

	require.True(t, ok)
	assert.Equal(t, raw, content)
}

func TestGenerate_BackendFailure(t *testing.T) {
	logs := observeLogs(t)
	backend := &fakeLLM{response: llm.Response{Error: errors.New("dial tcp: connection refused")}}

	content, ok := NewGenerator(backend, "").WithProjectDir(t.TempDir()).Generate("python")

	assert.False(t, ok)
	assert.Empty(t, content)

	errorLogs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errorLogs, 1)
	assert.Equal(t, "Error generating Dockerfile: dial tcp: connection refused", errorLogs[0].Message)
}

func TestGenerate_EmptyContentIsFailure(t *testing.T) {
	logs := observeLogs(t)
	backend := &fakeLLM{response: llm.Response{Content: "  \n"}}

	content, ok := NewGenerator(backend, "").WithProjectDir(t.TempDir()).Generate("ruby")

	assert.False(t, ok)
	assert.Empty(t, content)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestBuildRequest_WithProjectDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "composer.json"), []byte("{}"), 0644))

	req := NewGenerator(&fakeLLM{}, "").WithProjectDir(dir).BuildRequest("PHP")

	assert.Contains(t, req.UserPrompt, "for a PHP application")
	assert.Contains(t, req.UserPrompt, "Install dependencies from composer.json")
}

func TestBuildRequest_Deterministic(t *testing.T) {
	generator := NewGenerator(&fakeLLM{}, "").WithProjectDir(t.TempDir())

	assert.Equal(t, generator.BuildRequest("java"), generator.BuildRequest("java"))
}
