package tts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandSynthesizer runs an external synthesis command once per request:
//
//	<command> --text T --language L --device D --output out.wav [--voice-clone ref.wav]
type CommandSynthesizer struct {
	name   string
	args   []string
	device Device
	env    []string
}

// NewCommandSynthesizer checks that the command exists.
func NewCommandSynthesizer(command string, device Device) (*CommandSynthesizer, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty TTS command")
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return nil, fmt.Errorf("TTS command not found: %w", err)
	}
	return &CommandSynthesizer{
		name:   fields[0],
		args:   fields[1:],
		device: device,
		env:    deviceEnv(os.Environ(), device),
	}, nil
}

// deviceEnv returns the child environment. Forcing CPU hides CUDA devices from
// the child process only; the parent's environment is never touched.
func deviceEnv(base []string, device Device) []string {
	env := make([]string, 0, len(base)+1)
	for _, kv := range base {
		if device == DeviceCPU && strings.HasPrefix(kv, "CUDA_VISIBLE_DEVICES=") {
			continue
		}
		env = append(env, kv)
	}
	if device == DeviceCPU {
		env = append(env, "CUDA_VISIBLE_DEVICES=")
	}
	return env
}

func (c *CommandSynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	out, err := os.CreateTemp("", "tts-*.wav")
	if err != nil {
		return nil, err
	}
	outPath := out.Name()
	_ = out.Close()
	defer os.Remove(outPath)

	args := append([]string{}, c.args...)
	args = append(args,
		"--text", req.Text,
		"--language", req.LanguageID,
		"--device", string(c.device),
		"--output", outPath,
	)
	if req.VoiceClonePath != "" {
		args = append(args, "--voice-clone", req.VoiceClonePath)
	}

	cmd := exec.CommandContext(ctx, c.name, args...)
	cmd.Env = c.env
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("TTS command failed: %w: %s", err, lastLine(output.String()))
	}

	return ReadWAV(outPath)
}

func (c *CommandSynthesizer) Close() error {
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
