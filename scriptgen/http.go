package scriptgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/drewmudry/scriptcast-api/internal/apperrors"
	"github.com/rs/zerolog/log"
)

// HTTPGenerator forwards the request body to an external script service.
type HTTPGenerator struct {
	URL        string
	CookieName string
	Client     *http.Client
}

func NewHTTPGenerator(url, cookieName string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{
		URL:        url,
		CookieName: cookieName,
		Client:     &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(req.Payload))
	if err != nil {
		return nil, apperrors.Internal("Failed to build script API request", err)
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}
	httpReq.Header.Set("Content-Type", contentType)
	if req.SessionCookie != "" {
		// Raw header so the value reaches the generator byte for byte.
		httpReq.Header.Add("Cookie", g.CookieName+"="+req.SessionCookie)
	}

	res, err := g.Client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("url", g.URL).Msg("Failed to call script API")
		return nil, apperrors.Upstream("Failed to call script generation API", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close script API response body")
		}
	}(res.Body)

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.Upstream("Failed to read script API response", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.Error().
			Int("status", res.StatusCode).
			Str("url", g.URL).
			Str("body", truncate(string(body), 500)).
			Msg("Script API returned non-success status")
		return nil, apperrors.Upstream("Failed to call script generation API",
			fmt.Errorf("status %d: %s", res.StatusCode, truncate(string(body), 200)))
	}

	raw := map[string]any{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, apperrors.Upstream("Script API returned invalid JSON", err)
	}

	script, _ := raw["script"].(string)
	return &Result{Script: script, Raw: raw}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
