package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/capybaradb/capybaradb-go/core"
)

var (
	queryTopK          int
	queryEmbModel      string
	queryIncludeValues bool
	queryProjection    string
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Run a semantic query against a collection",
	Long: `Run a semantic query against the embedded text in a collection.

Examples:
  capy query --db mydb --collection articles "how do capybaras swim"
  capy query --db mydb --collection articles "rodent habitats" --top-k 5 --include-values`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().IntVar(&queryTopK, "top-k", 0, "number of matches to return (0 = server default)")
	queryCmd.Flags().StringVar(&queryEmbModel, "emb-model", "", "embedding model to use")
	queryCmd.Flags().BoolVar(&queryIncludeValues, "include-values", false, "include chunk values in matches")
	queryCmd.Flags().StringVar(&queryProjection, "projection", "", "JSON projection")
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	builder := client.Database(GetDatabase()).Collection(GetCollection()).Query(args[0])

	if queryTopK > 0 {
		builder = builder.TopK(queryTopK)
	}
	if queryEmbModel != "" {
		builder = builder.EmbModel(core.EmbModel(queryEmbModel))
	}
	if queryIncludeValues {
		builder = builder.IncludeValues(true)
	}
	if queryProjection != "" {
		p, err := parseDocFlag("projection", queryProjection)
		if err != nil {
			return err
		}
		builder = builder.Projection(p)
	}

	matches, err := builder.Run(context.Background())
	if err != nil {
		return handleAPIError(err)
	}

	return printDocuments(matches)
}
