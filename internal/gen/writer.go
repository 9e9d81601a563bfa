package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes split output files to the output directory.
// It creates the directory if it doesn't exist.
func WriteFiles(files []OutputFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		if file.FileName != filepath.Base(file.FileName) {
			return fmt.Errorf("writing file %s: name must not contain a directory", file.FileName)
		}

		outputPath := filepath.Join(outputDir, file.FileName)

		err := os.WriteFile(outputPath, []byte(file.Content), filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.FileName, err)
		}
	}

	return nil
}
