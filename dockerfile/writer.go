package dockerfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name of the written file
const FileName = "Dockerfile"

// Save writes content to <dir>/Dockerfile, replacing any existing file, and
// returns the absolute path written. An empty dir means the working directory.
func Save(content, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	return abs, nil
}
