package cmd

import (
	"aicontext/pkg/config"
	"aicontext/pkg/logging"
	"aicontext/pkg/version"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the ai-context command tree. Running the root command
// generates the context document.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ai-context",
		Short: "ai-context bundles source files into one Markdown document",
		Long: `ai-context collects the files selected by the glob patterns in its config file
and writes them, each tagged with its path and language, into a single Markdown
document suitable as context for an AI assistant.

Patterns are resolved against the current working directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil || !debug {
				return err
			}
			_, err = logging.Setup(true, version.AppName, version.Get().Version)
			return err
		},
		RunE: runGenerate,
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFileName, "Path to the config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable human-readable debug logging")

	rootCmd.Flags().StringP("output", "o", "", "Output file (overrides the config file; default "+config.DefaultOutput+")")
	rootCmd.Flags().Bool("tree", false, "Render a tree of the included files below the header")
	rootCmd.Flags().Bool("gitignore", false, "Also honour .gitignore in the working directory")
	rootCmd.Flags().Int("workers", 0, "Number of concurrent file readers (0 means one per CPU)")
	rootCmd.Flags().Int("max-size-kb", 0, "Skip files larger than this many KB (0 disables the limit)")
	rootCmd.Flags().Bool("copy", false, "Also copy the generated document to the clipboard")

	rootCmd.AddCommand(newInitCmd(), newVersionCmd())
	return rootCmd
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
