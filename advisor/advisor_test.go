package advisor

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Decision
		wantErr bool
	}{
		{"valid", `{"event":"Meteor Shower","speedMod":2,"obstacleMod":2.0}`, Decision{"Meteor Shower", 2, 2}, false},
		{"padded", "  \n{\"event\":\" Police Chase \",\"speedMod\":5,\"obstacleMod\":1}\n", Decision{"Police Chase", 5, 1}, false},
		{"clamped", `{"event":"Warp","speedMod":99,"obstacleMod":50}`, Decision{"Warp", MaxSpeedMod, MaxObstacleMod}, false},
		{"clamped low", `{"event":"Crawl","speedMod":-99,"obstacleMod":0.01}`, Decision{"Crawl", MinSpeedMod, MinObstacleMod}, false},
		{"empty", "", Decision{}, true},
		{"not json", "Meteor Shower!", Decision{}, true},
		{"no event", `{"event":"","speedMod":1,"obstacleMod":1}`, Decision{}, true},
		{"zero obstacle mod", `{"event":"X","speedMod":1,"obstacleMod":0}`, Decision{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecision(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDecision(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDecision(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}

	if _, err := ParseDecision(""); !errors.Is(err, ErrNoAdvice) {
		t.Errorf("Expected ErrNoAdvice for empty input, got %v", err)
	}
}

func TestNopAdvisor(t *testing.T) {
	var a Advisor = Nop{}
	if _, err := a.Commentary(context.Background(), "GO"); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled, got %v", err)
	}
	if _, err := a.Decide(context.Background(), 200, 10); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled, got %v", err)
	}
}

// fakeGenerator records calls and replies with canned text
type fakeGenerator struct {
	text    string
	err     error
	model   string
	config  *genai.GenerateContentConfig
	prompts []string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompts = append(f.prompts, p.Text)
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(f.text, genai.RoleModel)},
		},
	}, nil
}

func TestGeminiDecide(t *testing.T) {
	gen := &fakeGenerator{text: `{"event":"Empty Highway","speedMod":4,"obstacleMod":0.5}`}
	g := newGemini(gen, "")

	d, err := g.Decide(context.Background(), 420, 12.5)
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if d.Event != "Empty Highway" || d.SpeedMod != 4 || d.ObstacleMod != 0.5 {
		t.Errorf("Unexpected decision %+v", d)
	}
	if gen.model != DefaultModel {
		t.Errorf("Expected default model, got %q", gen.model)
	}
	if gen.config == nil || gen.config.ResponseMIMEType != "application/json" || gen.config.ResponseSchema == nil {
		t.Error("Expected JSON response config with schema")
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("Expected one prompt, got %d", len(gen.prompts))
	}
	t.Logf("Prompt: %s", gen.prompts[0])
}

func TestGeminiCommentary(t *testing.T) {
	gen := &fakeGenerator{text: "  What a start!  "}
	g := newGemini(gen, "custom-model")

	line, err := g.Commentary(context.Background(), "GO! GO! GO!")
	if err != nil {
		t.Fatalf("Commentary failed: %v", err)
	}
	if line != "What a start!" {
		t.Errorf("Expected trimmed line, got %q", line)
	}
	if gen.model != "custom-model" {
		t.Errorf("Expected custom model, got %q", gen.model)
	}

	gen.text = ""
	if _, err := g.Commentary(context.Background(), "x"); !errors.Is(err, ErrNoAdvice) {
		t.Errorf("Expected ErrNoAdvice for empty text, got %v", err)
	}

	gen.err = errors.New("quota exceeded")
	if _, err := g.Commentary(context.Background(), "x"); err == nil {
		t.Error("Expected transport error to surface")
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := NewGemini(context.Background(), "", ""); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled without key, got %v", err)
	}
}
