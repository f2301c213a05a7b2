package advisor

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the slice of genai.Models the advisor calls
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini is an Advisor backed by the Gemini API
type Gemini struct {
	models contentGenerator
	model  string
}

// NewGemini creates a Gemini advisor; an empty key yields ErrDisabled
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrDisabled
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return newGemini(client.Models, model), nil
}

func newGemini(models contentGenerator, model string) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{models: models, model: model}
}

// Commentary asks for a one-sentence hype line
func (g *Gemini) Commentary(ctx context.Context, situation string) (string, error) {
	prompt := fmt.Sprintf("You are an energetic esports announcer for a racing game. "+
		"The current event is: %s. Give a one-sentence hype comment.", situation)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate commentary: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrNoAdvice
	}
	return text, nil
}

// decisionSchema constrains the structured response
var decisionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"event":       {Type: genai.TypeString, Description: "Name of the event"},
		"speedMod":    {Type: genai.TypeNumber, Description: "Speed modifier (e.g., -5 to +10)"},
		"obstacleMod": {Type: genai.TypeNumber, Description: "Spawn rate multiplier (e.g. 0.5 for less, 2.0 for double)"},
	},
	Required: []string{"event", "speedMod", "obstacleMod"},
}

// Decide asks the game master for a difficulty event
func (g *Gemini) Decide(ctx context.Context, score int, speed float64) (Decision, error) {
	prompt := fmt.Sprintf(`Act as a Game Master for a racing game.
Current State: Score %d, Speed %.1f.
Decide on a random game event to challenge the player or help them.
Examples: "Meteor Shower" (high obstacles), "Empty Highway" (low obstacles, high speed), "Police Chase" (fast speed), "Engine Failure" (slow speed).
Return JSON.`, score, speed)

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   decisionSchema,
	})
	if err != nil {
		return Decision{}, fmt.Errorf("consult game master: %w", err)
	}
	return ParseDecision(resp.Text())
}
