package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPSynthesizer drives a model server. Each instance owns one loaded model session.
type HTTPSynthesizer struct {
	baseURL   string
	client    *http.Client
	sessionID string
	device    Device
}

type loadRequest struct {
	Device Device `json:"device"`
}

type loadResponse struct {
	SessionID string `json:"session_id"`
	Device    string `json:"device"`
}

type synthesizeRequest struct {
	SessionID       string `json:"session_id"`
	Text            string `json:"text"`
	LanguageID      string `json:"language_id"`
	AudioPromptPath string `json:"audio_prompt_path,omitempty"`
}

// NewHTTPSynthesizer asks the server to load a model on the given device.
func NewHTTPSynthesizer(ctx context.Context, baseURL string, device Device, timeout time.Duration) (*HTTPSynthesizer, error) {
	s := &HTTPSynthesizer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		device:  device,
	}

	var res loadResponse
	if err := s.postJSON(ctx, "/load", loadRequest{Device: device}, &res); err != nil {
		return nil, fmt.Errorf("could not load TTS model: %w", err)
	}
	s.sessionID = res.SessionID

	log.Info().Str("session", res.SessionID).Str("device", res.Device).Msg("TTS model loaded")
	return s, nil
}

func (s *HTTPSynthesizer) Synthesize(ctx context.Context, req Request) (*Audio, error) {
	body, err := json.Marshal(synthesizeRequest{
		SessionID:       s.sessionID,
		Text:            req.Text,
		LanguageID:      req.LanguageID,
		AudioPromptPath: req.VoiceClonePath,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/wav")

	res, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("synthesize request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading synthesized audio: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("synthesize returned status %d: %s", res.StatusCode, strings.TrimSpace(string(data)))
	}

	return DecodeWAV(bytes.NewReader(data))
}

// Close releases the server-side model session.
func (s *HTTPSynthesizer) Close() error {
	defer s.client.CloseIdleConnections()
	if s.sessionID == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.postJSON(ctx, "/unload", map[string]string{"session_id": s.sessionID}, nil)
}

func (s *HTTPSynthesizer) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("%s returned status %d: %s", path, res.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
