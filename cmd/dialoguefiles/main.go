// Command dialoguefiles splits the script in a JSON file into one text file per dialogue line.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/drewmudry/scriptcast-api/dialogue"
	"github.com/drewmudry/scriptcast-api/internal/logging"
)

type input struct {
	Script string `json:"script"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	logging.Setup(os.Getenv("LOG_LEVEL"), true)

	fs := flag.NewFlagSet("dialoguefiles", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "input.json", "JSON file with a \"script\" field")
	outputDir := fs.String("output-folder", "dialogues", "folder for the dialogue text files")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read input")
		return 1
	}
	var in input
	if err := json.Unmarshal(data, &in); err != nil {
		log.Error().Err(err).Str("input", *inputPath).Msg("Input is not valid JSON")
		return 1
	}

	lines := dialogue.Parse(in.Script)
	paths, err := dialogue.WriteFiles(*outputDir, lines)
	if err != nil {
		log.Error().Err(err).Msg("Failed to write dialogue files")
		return 1
	}

	for _, p := range paths {
		log.Info().Str("file", filepath.Base(p)).Msg("Created")
	}
	log.Info().Int("total", len(paths)).Str("output", *outputDir).Msg("Dialogues extracted")
	return 0
}
