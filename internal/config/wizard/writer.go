package wizard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/imamik/pgbcluster/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteConfig writes the configuration to outputPath. Files ending in .json
// are written as JSON; anything else is written as YAML with a descriptive
// header.
func WriteConfig(f *config.File, outputPath string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".json":
		data, err = json.MarshalIndent(f, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		var body []byte
		body, err = yaml.Marshal(f)
		if err == nil {
			data = append([]byte(generateHeader(outputPath)+"\n"), body...)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# pgbcluster configuration
# Generated by: pgbcluster configure
# Generated at: %s
#
# Usage:
#   pgbcluster init -c %s
#   pgbcluster status -c %s
`, time.Now().Format(time.RFC3339), outputPath, outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// defaultConfirmOverwrite is the default implementation that prompts via stdin.
func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
