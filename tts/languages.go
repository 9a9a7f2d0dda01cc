package tts

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var languagesYAML []byte

type languageTable struct {
	Default   string            `yaml:"default"`
	Languages map[string]string `yaml:"languages"`
}

var languages = mustLoadLanguages(languagesYAML)

func mustLoadLanguages(data []byte) languageTable {
	var table languageTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		panic(fmt.Sprintf("tts: invalid language table: %v", err))
	}
	return table
}

// ErrNoLanguage is returned when no language was given.
var ErrNoLanguage = errors.New("language must be specified")

// ResolveLanguage maps a language name or code to the model's language id.
// Unknown languages fall back to the default with a warning.
func ResolveLanguage(language string) (string, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return "", ErrNoLanguage
	}
	if code, ok := languages.Languages[lang]; ok {
		return code, nil
	}
	for _, code := range languages.Languages {
		if code == lang {
			return code, nil
		}
	}
	log.Warn().Str("language", language).Str("default", languages.Default).Msg("Unknown language, using default")
	return languages.Default, nil
}

// SupportedLanguages lists the language names, sorted.
func SupportedLanguages() []string {
	names := make([]string, 0, len(languages.Languages))
	for name := range languages.Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
