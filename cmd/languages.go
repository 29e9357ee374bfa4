package cmd

import (
	"fmt"

	"github.com/bitrise-io/bitrise-plugins-ai-dockerfile/dependency"
	"github.com/spf13/cobra"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List languages with dependency manifest detection",
	Long: `List the languages whose dependency manifest is detected. Other languages are
still accepted by generate, the prompt then states that no dependencies are installed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, language := range dependency.SupportedLanguages() {
			manifest, _ := dependency.ManifestFor(language)
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", language, manifest)
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
