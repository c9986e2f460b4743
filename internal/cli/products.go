package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivolkov/audiodigest/internal/products"
)

func newProductsCmd(env *Env) *cobra.Command {
	var listPath string

	cmd := &cobra.Command{
		Use:   "products <request>",
		Short: "Filter a product catalog with a natural-language request",
		Long: `Filter a JSON product catalog with a natural-language request,
for example "I need a smartphone under $800 with a great camera". The
matching is done by the model through a forced tool call, not by local
keyword search.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProducts(cmd.Context(), env, listPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&listPath, "file", "f", "products.json", "path to the JSON product catalog")

	return cmd
}

func runProducts(ctx context.Context, env *Env, listPath, request string) error {
	apiKey := env.Getenv(EnvOpenAIAPIKey)
	if apiKey == "" {
		return ErrAPIKeyMissing
	}

	catalog, err := products.Load(listPath)
	if err != nil {
		return err
	}

	filter := env.Collaborators.NewProductFilter(apiKey)
	matched, err := filter.Filter(ctx, catalog, request)
	if err != nil {
		return err
	}

	if len(matched) == 0 {
		fmt.Fprintln(env.Stdout, "No products found.")
		return nil
	}

	fmt.Fprintln(env.Stdout, "Filtered Products:")
	for i, p := range matched {
		stock := "Out of Stock"
		if p.InStock {
			stock = "In Stock"
		}
		fmt.Fprintf(env.Stdout, "%d. %s - $%.2f, Rating: %g, %s\n", i+1, p.Name, p.Price, p.Rating, stock)
	}
	return nil
}
