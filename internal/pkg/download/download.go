package download

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSaver is the host environment's save-as-file primitive.
type FileSaver interface {
	// Save writes data under the suggested filename and returns the final
	// location.
	Save(filename string, data []byte) (string, error)
}

// LocalSaver writes downloads into a base directory on local disk.
type LocalSaver struct {
	baseDir string
}

func NewLocalSaver(baseDir string) (*LocalSaver, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}
	return &LocalSaver{baseDir: baseDir}, nil
}

func (s *LocalSaver) Save(filename string, data []byte) (string, error) {
	// Suggested names come from the app, but strip any path components anyway.
	cleanName := filepath.Base(filepath.Clean(filename))
	if cleanName == "." || cleanName == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename: %s", filename)
	}

	fullPath := filepath.Join(s.baseDir, cleanName)
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return fullPath, nil
}
