package tts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// silenceThreshold is the peak amplitude below which output counts as silent.
const silenceThreshold = 0.001

var (
	ErrNoAudio     = errors.New("no audio generated")
	ErrSilentAudio = errors.New("generated audio is silent")
)

type GenerateParams struct {
	Text           string
	OutputPath     string
	Language       string
	VoiceClonePath string
}

// Generate synthesizes p.Text with s and writes a WAV file to p.OutputPath.
// It returns the audio duration in seconds.
func Generate(ctx context.Context, s Synthesizer, p GenerateParams) (float64, error) {
	if p.VoiceClonePath != "" {
		if _, err := os.Stat(p.VoiceClonePath); err != nil {
			return 0, fmt.Errorf("voice clone audio file not found: %s", p.VoiceClonePath)
		}
	}

	languageID, err := ResolveLanguage(p.Language)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(p.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating output dir: %w", err)
		}
	}

	log.Debug().
		Str("language", languageID).
		Str("output", p.OutputPath).
		Bool("voice_clone", p.VoiceClonePath != "").
		Msg("Generating audio")

	audio, err := s.Synthesize(ctx, Request{
		Text:           p.Text,
		LanguageID:     languageID,
		VoiceClonePath: p.VoiceClonePath,
	})
	if err != nil {
		return 0, err
	}
	if audio == nil || len(audio.Samples) == 0 || audio.SampleRate <= 0 {
		return 0, ErrNoAudio
	}
	if audio.Peak() < silenceThreshold {
		return 0, ErrSilentAudio
	}

	if err := WriteWAV(p.OutputPath, audio); err != nil {
		return 0, err
	}
	return audio.Duration(), nil
}
