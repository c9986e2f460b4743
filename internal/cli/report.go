package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newReportCmd(env *Env) *cobra.Command {
	var (
		serviceName string
		description string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a market-analysis report for a digital service",
		Long: `Generate a markdown market-analysis report for a digital service
from its name or a raw description. The report covers history, audience,
features, business model and perceived strengths and weaknesses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), env, serviceName, description)
		},
	}

	cmd.Flags().StringVarP(&serviceName, "name", "n", "", "known service name (e.g. Spotify)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "raw service description text")
	cmd.MarkFlagsOneRequired("name", "description")
	cmd.MarkFlagsMutuallyExclusive("name", "description")

	return cmd
}

func runReport(ctx context.Context, env *Env, name, description string) error {
	apiKey := env.Getenv(EnvOpenAIAPIKey)
	if apiKey == "" {
		return ErrAPIKeyMissing
	}

	generator := env.Collaborators.NewReportGenerator(apiKey)
	report, err := generator.Generate(ctx, name, description)
	if err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, report)
	return nil
}
