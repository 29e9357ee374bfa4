package main

import (
	"os"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/cmd"
	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
)

func main() {
	err := cmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
