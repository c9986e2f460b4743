package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the audiodigest command tree.
func NewRootCmd(env *Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "audiodigest",
		Short: "Transcribe, summarize and analyze audio recordings",
		Long: `audiodigest transcribes audio files with OpenAI Whisper, splitting
files that exceed the upload limit into duration-based chunks, and runs
summary and analysis passes over the transcript.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		newAnalyzeCmd(env),
		newReportCmd(env),
		newProductsCmd(env),
		newConfigCmd(env),
	)

	return root
}
