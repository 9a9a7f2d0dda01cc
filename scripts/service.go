// Package scripts turns generated scripts into stored dialogue lines.
package scripts

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/drewmudry/scriptcast-api/dialogue"
	"github.com/drewmudry/scriptcast-api/internal/apperrors"
	"github.com/drewmudry/scriptcast-api/scriptgen"
	"github.com/drewmudry/scriptcast-api/store"
)

type Generated struct {
	ScriptID  string
	Script    string
	Dialogues int
}

type Service struct {
	Store     *store.Store
	Generator scriptgen.Generator
}

func NewService(st *store.Store, gen scriptgen.Generator) *Service {
	return &Service{Store: st, Generator: gen}
}

// Generate asks the generator for a script, parses it and persists the script
// with its dialogue lines in one transaction.
func (s *Service) Generate(ctx context.Context, req scriptgen.Request) (*Generated, error) {
	result, err := s.Generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(result.Script)
	if text == "" {
		return nil, apperrors.Validation("No script text returned from generation API")
	}

	lines := dialogue.Parse(text)
	scriptID := uuid.NewString()

	if _, err := s.Store.CreateScriptWithDialogues(ctx, scriptID, locationOf(req.Payload), lines); err != nil {
		return nil, apperrors.Internal("Failed to save script", err)
	}

	log.Info().Str("script_id", scriptID).Int("dialogues", len(lines)).Msg("Script saved")
	return &Generated{ScriptID: scriptID, Script: result.Script, Dialogues: len(lines)}, nil
}

// locationOf reads the optional "set" field of a JSON payload.
func locationOf(payload []byte) string {
	var body struct {
		Set any `json:"set"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	if set, ok := body.Set.(string); ok {
		return set
	}
	return ""
}
