package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	updateFilter string
	updateSpec   string
	updateUpsert bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update documents matching a filter",
	Long: `Update documents in a collection matching a JSON filter.

Examples:
  capy update --db mydb --collection articles --filter '{"author":"alice"}' --update '{"$set":{"reviewed":true}}'
  capy update --db mydb --collection articles --filter '{"_id":"42"}' --update '{"$set":{"title":"new"}}' --upsert`,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateFilter, "filter", "", "JSON filter (required)")
	updateCmd.Flags().StringVar(&updateSpec, "update", "", "JSON update specification (required)")
	updateCmd.Flags().BoolVar(&updateUpsert, "upsert", false, "insert if no document matches")

	_ = updateCmd.MarkFlagRequired("filter")
	_ = updateCmd.MarkFlagRequired("update")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}

	filter, err := parseDocFlag("filter", updateFilter)
	if err != nil {
		return err
	}
	update, err := parseDocFlag("update", updateSpec)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	coll := client.Database(GetDatabase()).Collection(GetCollection())
	result, err := coll.Update(context.Background(), filter, update, updateUpsert)
	if err != nil {
		return handleAPIError(err)
	}

	if IsJSONOutput() {
		return outputJSON(result)
	}

	fmt.Println("Update applied.")
	return nil
}
