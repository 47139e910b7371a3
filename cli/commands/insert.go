package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/capybaradb/capybaradb-go/core"
)

var insertFile string

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert documents into a collection",
	Long: `Insert JSON documents into a collection. Input is a single JSON
object or a JSON array of objects, read from --file or stdin.
Documents without an _id field get a client-generated UUID.

Examples:
  capy insert --db mydb --collection articles --file docs.json
  echo '{"title":"hello"}' | capy insert --db mydb --collection articles`,
	RunE: runInsert,
}

func init() {
	rootCmd.AddCommand(insertCmd)

	insertCmd.Flags().StringVar(&insertFile, "file", "", "JSON file to read documents from (default stdin)")
}

func runInsert(cmd *cobra.Command, args []string) error {
	if err := requireTarget(); err != nil {
		return err
	}

	docs, err := readDocuments(insertFile)
	if err != nil {
		return exitWithCode(ExitValidation, err)
	}

	// Assign IDs client-side so the caller can correlate results
	for _, doc := range docs {
		if _, ok := doc["_id"]; !ok {
			doc["_id"] = uuid.NewString()
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	coll := client.Database(GetDatabase()).Collection(GetCollection())
	result, err := coll.Insert(context.Background(), docs)
	if err != nil {
		return handleAPIError(err)
	}

	if IsJSONOutput() {
		return outputJSON(result)
	}

	fmt.Printf("Inserted %d document(s).\n", len(docs))
	return nil
}

// readDocuments parses a JSON object or array of objects from the
// given file, or stdin when path is empty.
func readDocuments(path string) ([]core.Document, error) {
	var data []byte
	var err error
	if path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON input: %w", err)
	}

	switch v := raw.(type) {
	case map[string]any:
		return []core.Document{v}, nil
	case []any:
		docs := make([]core.Document, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %d is not a JSON object", i)
			}
			docs = append(docs, m)
		}
		if len(docs) == 0 {
			return nil, fmt.Errorf("input array is empty")
		}
		return docs, nil
	default:
		return nil, fmt.Errorf("input must be a JSON object or array of objects")
	}
}
