package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteToFile writes the pretty-printed artifact to path, creating parent
// directories as needed. The file is written to a temporary sibling and
// renamed so readers never observe a partial artifact.
func (a ConfigArtifact) WriteToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	data, err := a.ToJSON()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*.json")
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
