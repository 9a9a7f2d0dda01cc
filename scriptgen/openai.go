package scriptgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/drewmudry/scriptcast-api/internal/apperrors"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog/log"
)

// ScriptResponse is the structured output requested from the model.
type ScriptResponse struct {
	Script string `json:"script" jsonschema_description:"The full script. Every spoken line is written as SPEAKER: (optional stage direction) dialogue, one line per row, speaker names in uppercase letters only."`
}

// GenerateSchema reflects T into the JSON schema subset structured outputs accept.
func GenerateSchema[T any]() interface{} {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var scriptResponseSchema = GenerateSchema[ScriptResponse]()

// OpenAIGenerator writes the script itself instead of calling a script service.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

func NewOpenAIGenerator(apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	prompt := buildPrompt(req.Payload)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "dialogue_script",
		Description: openai.String("A dialogue script for a short video"),
		Schema:      scriptResponseSchema,
		Strict:      openai.Bool(true),
	}

	chatCompletion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(g.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})
	if err != nil {
		return nil, apperrors.Upstream("OpenAI API error", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return nil, apperrors.Upstream("OpenAI API error", fmt.Errorf("no choices returned"))
	}

	rawResponse := chatCompletion.Choices[0].Message.Content
	log.Debug().Str("finish_reason", string(chatCompletion.Choices[0].FinishReason)).Msg("OpenAI script response received")

	var resp ScriptResponse
	if rawResponse != "" {
		if err := json.Unmarshal([]byte(rawResponse), &resp); err != nil {
			return nil, apperrors.Upstream("Failed to parse OpenAI JSON response", err)
		}
	}

	return &Result{
		Script: strings.TrimSpace(resp.Script),
		Raw:    map[string]any{"script": resp.Script},
	}, nil
}

func buildPrompt(payload []byte) string {
	brief := strings.TrimSpace(string(payload))
	if brief == "" {
		brief = "{}"
	}
	return fmt.Sprintf(`You are writing a short dialogue script for a vertical video.

The request from the user, as JSON:
%s

Write the script as plain lines of the form:
SPEAKER: (optional stage direction) what they say

Rules:
- Speaker names use uppercase letters A-Z only, no spaces or digits
- One spoken line per row
- At most one stage direction per line, directly after the colon
- No narration lines, scene headings or markdown

Respond in JSON format with this structure:
{
  "script": "ALICE: ...\nBOB: ..."
}`, brief)
}
