// Package batch converts a folder of text files into WAV audio in parallel.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Options struct {
	InputDir       string
	OutputDir      string
	VoiceClonePath string
	Language       string
	MaxWorkers     int
	// SharedModel uses one model instance for every worker instead of one per worker.
	SharedModel bool
}

func (o Options) Validate() error {
	info, err := os.Stat(o.InputDir)
	if err != nil {
		return fmt.Errorf("input folder not found: %s", o.InputDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path is not a folder: %s", o.InputDir)
	}
	if o.OutputDir == "" {
		return errors.New("output folder is required")
	}
	if o.VoiceClonePath != "" {
		if _, err := os.Stat(o.VoiceClonePath); err != nil {
			return fmt.Errorf("voice clone audio file not found: %s", o.VoiceClonePath)
		}
	}
	if o.MaxWorkers < 1 {
		return fmt.Errorf("max workers must be at least 1, got %d", o.MaxWorkers)
	}
	return nil
}

// TextFiles lists the *.txt files directly inside dir, sorted by name.
// The extension match is case-sensitive.
func TextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".txt" {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .txt files found in: %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

// OutputPath is <outputDir>/<input stem>.wav.
func OutputPath(outputDir, inputPath string) string {
	name := filepath.Base(inputPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(outputDir, stem+".wav")
}
