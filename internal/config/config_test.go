package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCRIPT_API_URL", "")
	t.Setenv("SCRIPT_GENERATOR", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal("Load:", err)
	}
	if cfg.Server.Port != "8000" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.ScriptGen.Backend != GeneratorHTTP {
		t.Errorf("Backend = %q", cfg.ScriptGen.Backend)
	}
	if cfg.ScriptGen.Timeout != 120*time.Second {
		t.Errorf("Timeout = %v", cfg.ScriptGen.Timeout)
	}
	if err := cfg.ValidateScriptGen(); err == nil {
		t.Error("expected missing SCRIPT_API_URL to fail validation")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCRIPT_GENERATOR", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("WORKER_STALE_AFTER", "90s")
	t.Setenv("TTS_BACKEND", "command")
	t.Setenv("TTS_COMMAND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal("Load:", err)
	}
	if err := cfg.ValidateScriptGen(); err != nil {
		t.Errorf("ValidateScriptGen: %v", err)
	}
	if cfg.Worker.StaleAfter != 90*time.Second {
		t.Errorf("StaleAfter = %v", cfg.Worker.StaleAfter)
	}
	if err := cfg.ValidateTTS(); err == nil {
		t.Error("expected missing TTS_COMMAND to fail validation")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SCRIPT_API_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
