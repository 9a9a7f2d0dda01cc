package dialogue

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the per-line file name used by the batch TTS tooling.
func FileName(sequence int, speaker string) string {
	return fmt.Sprintf("dialogue%d_%s.txt", sequence, speaker)
}

// WriteFiles writes one text file per line into dir, numbered from 1.
// It returns the written paths in line order.
func WriteFiles(dir string, lines []Line) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating dialogue dir: %w", err)
	}

	paths := make([]string, 0, len(lines))
	for i, line := range lines {
		path := filepath.Join(dir, FileName(i+1, line.Speaker))
		if err := os.WriteFile(path, []byte(line.Text), 0o644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
