package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteFilter string

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete documents matching a filter",
	Long: `Delete documents in a collection matching a JSON filter.

Example:
  capy delete --db mydb --collection articles --filter '{"author":"alice"}'`,
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteFilter, "filter", "", "JSON filter (required)")

	_ = deleteCmd.MarkFlagRequired("filter")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}

	filter, err := parseDocFlag("filter", deleteFilter)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	coll := client.Database(GetDatabase()).Collection(GetCollection())
	result, err := coll.Delete(context.Background(), filter)
	if err != nil {
		return handleAPIError(err)
	}

	if IsJSONOutput() {
		return outputJSON(result)
	}

	fmt.Println("Delete applied.")
	return nil
}
