// Package tts binds the external multilingual text-to-speech model.
package tts

import (
	"context"
	"fmt"
	"strings"
)

// Device is the compute device a model instance is loaded onto.
type Device string

const (
	DeviceAuto Device = "auto"
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
)

// ParseDevice accepts auto, cpu or cuda (case-insensitive). Empty means auto.
func ParseDevice(s string) (Device, error) {
	switch d := Device(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DeviceAuto, nil
	case DeviceAuto, DeviceCPU, DeviceCUDA:
		return d, nil
	default:
		return "", fmt.Errorf("unknown device %q", s)
	}
}

// Request is one synthesis call. VoiceClonePath is optional.
type Request struct {
	Text           string
	LanguageID     string
	VoiceClonePath string
}

// Audio is mono PCM in the range [-1, 1].
type Audio struct {
	Samples    []float32
	SampleRate int
}

// Duration in seconds.
func (a *Audio) Duration() float64 {
	if a == nil || a.SampleRate <= 0 {
		return 0
	}
	return float64(len(a.Samples)) / float64(a.SampleRate)
}

// Peak is the largest absolute sample value.
func (a *Audio) Peak() float32 {
	var peak float32
	for _, s := range a.Samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

// Synthesizer is one loaded model instance. Instances are not safe for concurrent use.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Audio, error)
	Close() error
}

// Loader loads a fresh model instance. Loading can be slow.
type Loader func(ctx context.Context) (Synthesizer, error)
