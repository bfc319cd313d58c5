package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/restitch/restitch/internal/fileutil"
)

// WriteFiles writes all generated files into outputDir, creating the
// directory as needed. File names must be bare names without separators.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	for _, file := range r.Files {
		if filepath.Base(file.Name) != file.Name {
			return fmt.Errorf("invalid file name %q: must not contain path separators", file.Name)
		}
		path := filepath.Join(outputDir, file.Name)
		if err := os.WriteFile(path, file.Content, fileutil.ReadableByAll); err != nil {
			return fmt.Errorf("write %s: %w", file.Name, err)
		}
	}
	return nil
}

// WriteFile writes a single generated file to path, creating parent
// directories as needed.
func (f *GeneratedFile) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, f.Content, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
