package tts

import (
	"context"
	"fmt"
	"time"
)

// LoaderConfig selects and configures a TTS backend.
type LoaderConfig struct {
	Backend string // "http" or "command"
	URL     string
	Command string
	Device  Device
	Timeout time.Duration
}

// NewLoader returns a Loader for the configured backend.
func NewLoader(cfg LoaderConfig) (Loader, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	switch cfg.Backend {
	case "http", "":
		return func(ctx context.Context) (Synthesizer, error) {
			return NewHTTPSynthesizer(ctx, cfg.URL, cfg.Device, timeout)
		}, nil
	case "command":
		return func(ctx context.Context) (Synthesizer, error) {
			return NewCommandSynthesizer(cfg.Command, cfg.Device)
		}, nil
	default:
		return nil, fmt.Errorf("unknown TTS backend %q", cfg.Backend)
	}
}
