package scriptgen

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/drewmudry/scriptcast-api/internal/apperrors"
)

func TestHTTPGeneratorForwardsPayloadAndHeaders(t *testing.T) {
	var gotBody, gotContentType, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		if c, err := r.Cookie("session"); err == nil {
			gotCookie = c.Value
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"script":"ALICE: Hi","extra":1}`))
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "session", 5*time.Second)
	res, err := g.Generate(context.Background(), Request{
		Payload:       []byte(`{"set":"beach"}`),
		SessionCookie: "abc123",
		ContentType:   "application/json; charset=utf-8",
	})
	if err != nil {
		t.Fatal("Generate:", err)
	}
	if res.Script != "ALICE: Hi" {
		t.Errorf("Script = %q", res.Script)
	}
	if gotBody != `{"set":"beach"}` {
		t.Errorf("forwarded body = %q", gotBody)
	}
	if gotContentType != "application/json; charset=utf-8" {
		t.Errorf("forwarded content type = %q", gotContentType)
	}
	if gotCookie != "abc123" {
		t.Errorf("forwarded cookie = %q", gotCookie)
	}
}

func TestHTTPGeneratorForwardsCookieVerbatim(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Cookie")
		_, _ = w.Write([]byte(`{"script":"A: hi"}`))
	}))
	defer srv.Close()

	const token = "eyJ1c2VyIjo+MX0=.Zx%2Fq"
	g := NewHTTPGenerator(srv.URL, "session", time.Second)
	if _, err := g.Generate(context.Background(), Request{Payload: []byte(`{}`), SessionCookie: token}); err != nil {
		t.Fatal("Generate:", err)
	}
	if gotHeader != "session="+token {
		t.Errorf("Cookie header = %q, want %q", gotHeader, "session="+token)
	}
}

func TestHTTPGeneratorDefaultsWithoutHeaders(t *testing.T) {
	var gotContentType string
	var hadCookie bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		hadCookie = r.Header.Get("Cookie") != ""
		_, _ = w.Write([]byte(`{"message":"no script here"}`))
	}))
	defer srv.Close()

	res, err := NewHTTPGenerator(srv.URL, "session", time.Second).Generate(context.Background(), Request{Payload: []byte(`{}`)})
	if err != nil {
		t.Fatal("Generate:", err)
	}
	if res.Script != "" {
		t.Errorf("expected empty script, got %q", res.Script)
	}
	if gotContentType != DefaultContentType {
		t.Errorf("content type = %q", gotContentType)
	}
	if hadCookie {
		t.Error("cookie should not be forwarded when absent")
	}
}

func TestHTTPGeneratorUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPGenerator(srv.URL, "session", time.Second).Generate(context.Background(), Request{})
	if !apperrors.Is(err, apperrors.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestHTTPGeneratorTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPGenerator(url, "session", time.Second).Generate(context.Background(), Request{})
	if !apperrors.Is(err, apperrors.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestBuildPromptEmbedsPayload(t *testing.T) {
	prompt := buildPrompt([]byte(`{"set":"lighthouse"}`))
	if !strings.Contains(prompt, `{"set":"lighthouse"}`) {
		t.Fatal("prompt does not include the request payload")
	}
	if !strings.Contains(buildPrompt(nil), "{}") {
		t.Fatal("empty payload should render as {}")
	}
}
