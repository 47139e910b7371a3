package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/capybaradb/capybaradb-go/core"
)

var (
	findFilter     string
	findProjection string
	findSort       string
	findLimit      int
	findSkip       int
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find documents matching a filter",
	Long: `Find documents in a collection matching a JSON filter.

Examples:
  capy find --db mydb --collection articles --filter '{"author":"alice"}'
  capy find --db mydb --collection articles --filter '{}' --limit 10 --sort '{"title":1}'`,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringVar(&findFilter, "filter", "{}", "JSON filter")
	findCmd.Flags().StringVar(&findProjection, "projection", "", "JSON projection")
	findCmd.Flags().StringVar(&findSort, "sort", "", "JSON sort specification")
	findCmd.Flags().IntVar(&findLimit, "limit", 0, "maximum number of documents to return (0 = no limit)")
	findCmd.Flags().IntVar(&findSkip, "skip", 0, "number of documents to skip")
}

func runFind(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}

	filter, err := parseDocFlag("filter", findFilter)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	builder := client.Database(GetDatabase()).Collection(GetCollection()).Find(filter)

	if findProjection != "" {
		p, err := parseDocFlag("projection", findProjection)
		if err != nil {
			return err
		}
		builder = builder.Projection(p)
	}
	if findSort != "" {
		s, err := parseDocFlag("sort", findSort)
		if err != nil {
			return err
		}
		builder = builder.Sort(s)
	}
	if findLimit > 0 {
		builder = builder.Limit(findLimit)
	}
	if findSkip > 0 {
		builder = builder.Skip(findSkip)
	}

	docs, err := builder.Run(context.Background())
	if err != nil {
		return handleAPIError(err)
	}

	return printDocuments(docs)
}

// parseDocFlag parses a JSON object flag value into a Document.
func parseDocFlag(name, value string) (core.Document, error) {
	var doc core.Document
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		return nil, exitWithCode(ExitValidation, fmt.Errorf("invalid --%s: %w", name, err))
	}
	return doc, nil
}

func printDocuments(docs []core.Document) error {
	if IsJSONOutput() {
		return outputJSON(docs)
	}

	if len(docs) == 0 {
		fmt.Println("No documents found.")
		return nil
	}

	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	return nil
}
