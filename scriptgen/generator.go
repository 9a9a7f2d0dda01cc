// Package scriptgen talks to whatever produces script text for a request.
package scriptgen

import "context"

// DefaultContentType is sent upstream when the caller did not supply one.
const DefaultContentType = "application/json"

// Request is an opaque script request plus the headers worth forwarding.
type Request struct {
	Payload       []byte
	SessionCookie string
	ContentType   string
}

// Result is the upstream response. Script is empty when the response carried none.
type Result struct {
	Script string
	Raw    map[string]any
}

type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
