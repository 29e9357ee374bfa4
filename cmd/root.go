package cmd

import (
	"errors"
	"io/fs"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	logLevel string
	envFile  string
)

var rootCmd = &cobra.Command{
	Use:   "ai-dockerfile",
	Short: "AI Dockerfile generator",
	Long: `AI Dockerfile generator asks a language model to write a Dockerfile for the project
in the current directory. It detects the dependency manifest of the chosen language
(requirements.txt, package.json, pom.xml, go.mod, Gemfile, composer.json) and describes
it in the prompt. The generated text is written as-is, review it before building.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logLevel)
		logger.Debugf("Log level set to: %s", logLevel)

		if err := godotenv.Load(envFile); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debugf("No env file loaded: %s", envFile)
			} else {
				logger.Warnf("Failed to load env file %s: %v", envFile, err)
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command and handles errors
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"Environment file with API keys, ignored when missing")
}
