package batch

import (
	"path/filepath"

	"github.com/rs/zerolog"
)

// Result is the outcome of one input file.
type Result struct {
	Success    bool
	InputPath  string
	OutputPath string
	Duration   float64
	URL        string
	Error      string
}

// Summary holds results in completion order.
type Summary struct {
	Results []Result
}

func (s *Summary) Succeeded() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Success {
			out = append(out, r)
		}
	}
	return out
}

func (s *Summary) Failed() []Result {
	var out []Result
	for _, r := range s.Results {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}

// TotalDuration sums the audio seconds of successful files.
func (s *Summary) TotalDuration() float64 {
	var total float64
	for _, r := range s.Results {
		if r.Success {
			total += r.Duration
		}
	}
	return total
}

// ExitCode is 1 when any file failed.
func (s *Summary) ExitCode() int {
	if len(s.Failed()) > 0 {
		return 1
	}
	return 0
}

func (s *Summary) Log(logger zerolog.Logger) {
	succeeded, failed := s.Succeeded(), s.Failed()

	logger.Info().
		Int("total", len(s.Results)).
		Int("successful", len(succeeded)).
		Int("failed", len(failed)).
		Msg("Processing summary")

	if len(succeeded) > 0 {
		logger.Info().Float64("seconds", s.TotalDuration()).Msg("Total audio duration")
		for _, r := range succeeded {
			logger.Info().
				Str("input", filepath.Base(r.InputPath)).
				Str("output", filepath.Base(r.OutputPath)).
				Float64("duration", r.Duration).
				Msg("Succeeded")
		}
	}
	for _, r := range failed {
		logger.Info().
			Str("input", filepath.Base(r.InputPath)).
			Str("error", r.Error).
			Msg("Failed")
	}
}
