package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("script_id is required"), http.StatusBadRequest},
		{NotFound("script not found"), http.StatusNotFound},
		{Upstream("script API call failed", errors.New("dial tcp")), http.StatusInternalServerError},
		{Internal("failed to save", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("gone")), http.StatusNotFound},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestMessage(t *testing.T) {
	up := Upstream("script API call failed", errors.New("connection refused"))
	if got := Message(up); got != "script API call failed: connection refused" {
		t.Errorf("upstream message = %q", got)
	}

	internal := Internal("Failed to save script", errors.New("pq: deadlock"))
	if got := Message(internal); got != "Failed to save script" {
		t.Errorf("internal message = %q", got)
	}

	if got := Message(errors.New("secret detail")); got != "Internal server error" {
		t.Errorf("plain message = %q", got)
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("trigger: %w", Validation("missing"))
	if !Is(err, KindValidation) {
		t.Fatal("expected validation kind")
	}
	if Is(err, KindNotFound) {
		t.Fatal("did not expect not_found kind")
	}
}
