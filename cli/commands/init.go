package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/spf13/cobra"
)

var initDatabase string

var initCmd = &cobra.Command{
	Use:   "init <project-name>",
	Short: "Initialize a new CapybaraDB project",
	Long: `Initialize a new CapybaraDB project with a standard directory structure.

Creates a project directory with:
  - main.go: A starter Go file using the CapybaraDB SDK
  - capybara.yaml: Project configuration
  - data/: Directory for seed documents

Example:
  capy init myproject
  capy init myproject --db knowledge`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initDatabase, "db", "mydb", "Default database for generated code")
}

func runInit(cmd *cobra.Command, args []string) error {
	projectPath := args[0]
	projectName := filepath.Base(projectPath)

	// Validate project name (just the base name, not full path)
	if err := validateProjectName(projectName); err != nil {
		return err
	}

	// Check if directory already exists
	if _, err := os.Stat(projectPath); err == nil {
		return fmt.Errorf("directory %q already exists", projectPath)
	}

	// Create directory structure
	dirs := []string{
		projectPath,
		filepath.Join(projectPath, "data"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Create .gitkeep files in empty directories
	gitkeepDirs := []string{
		filepath.Join(projectPath, "data"),
	}

	for _, dir := range gitkeepDirs {
		path := filepath.Join(dir, ".gitkeep")
		if err := os.WriteFile(path, []byte{}, 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
	}

	// Generate main.go
	mainPath := filepath.Join(projectPath, "main.go")
	if err := generateFile(mainPath, mainGoTemplate, templateData{
		Database:   initDatabase,
		Collection: projectName,
	}); err != nil {
		return fmt.Errorf("failed to create main.go: %w", err)
	}

	// Generate capybara.yaml
	configPath := filepath.Join(projectPath, "capybara.yaml")
	if err := generateFile(configPath, capybaraYamlTemplate, templateData{
		Database:   initDatabase,
		Collection: projectName,
	}); err != nil {
		return fmt.Errorf("failed to create capybara.yaml: %w", err)
	}

	// Print success message
	fmt.Printf("Created CapybaraDB project: %s\n\n", projectName)
	fmt.Println("Next steps:")
	fmt.Printf("  cd %s\n", projectPath)
	fmt.Println("  export CAPYBARA_API_KEY=<your-key>")
	fmt.Println("  export CAPYBARA_PROJECT_ID=<your-project>")
	fmt.Println("  go run main.go")

	return nil
}

func validateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	// Check for invalid characters
	validName := regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
	if !validName.MatchString(name) {
		return fmt.Errorf("invalid project name %q: must start with a letter and contain only letters, numbers, underscores, and hyphens", name)
	}

	// Check for reserved names
	reserved := []string{".", "..", "capy"}
	for _, r := range reserved {
		if name == r {
			return fmt.Errorf("invalid project name %q: reserved name", name)
		}
	}

	return nil
}

type templateData struct {
	Database   string
	Collection string
}

func generateFile(path string, tmplContent string, data templateData) error {
	tmpl, err := template.New("file").Parse(tmplContent)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// Templates

var mainGoTemplate = `package main

import (
	"context"
	"fmt"
	"os"

	"github.com/capybaradb/capybaradb-go/capybara"
	"github.com/capybaradb/capybaradb-go/core"
)

func main() {
	apiKey := os.Getenv("CAPYBARA_API_KEY")
	projectID := os.Getenv("CAPYBARA_PROJECT_ID")
	if apiKey == "" || projectID == "" {
		fmt.Fprintln(os.Stderr, "CAPYBARA_API_KEY and CAPYBARA_PROJECT_ID must be set")
		os.Exit(1)
	}

	client, err := capybara.New(apiKey, projectID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	text, err := core.NewEmbText("Capybaras are the largest living rodents.", nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	coll := client.Database("{{.Database}}").Collection("{{.Collection}}")
	_, err = coll.Insert(context.Background(), []core.Document{
		{"title": "Hello", "content": text},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	fmt.Println("Inserted document.")
}
`

var capybaraYamlTemplate = `# CapybaraDB project configuration
default_database: {{.Database}}
default_collection: {{.Collection}}

# API keys should be set via 'capy keys set' or environment variables
api_key_env: CAPYBARA_API_KEY
`
