package generation

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"google.golang.org/genai"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

// Persona is the static biography used by ModePersonaAnswer. It comes from
// configuration and is never derived from visitor input.
type Persona struct {
	Name    string
	Context string
}

// Request is one generation request after input validation.
type Request struct {
	Mode     Mode
	RawInput string
}

// Payload is the rendered prompt and the generateContent request body built
// from it.
type Payload struct {
	Prompt string
	Body   []byte
}

// promptData represents the data passed to the prompt templates
type promptData struct {
	Input   string
	Persona Persona
}

// generateContentRequest is the body of a generateContent call.
type generateContentRequest struct {
	Contents []*genai.Content `json:"contents"`
}

// PromptBuilder renders prompts from the embedded per-mode templates.
type PromptBuilder struct {
	templates map[Mode]*template.Template
	persona   Persona
}

// NewPromptBuilder parses one template per supported mode.
func NewPromptBuilder(persona Persona) (*PromptBuilder, error) {
	if strings.TrimSpace(persona.Name) == "" || strings.TrimSpace(persona.Context) == "" {
		return nil, fmt.Errorf("%w: persona name and context are required", ErrInvalidConfig)
	}

	templates := make(map[Mode]*template.Template, len(Modes))
	for _, mode := range Modes {
		name := "prompts/" + string(mode) + ".tmpl"
		tmpl, err := template.ParseFS(promptFS, name)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse prompt template %s: %v", ErrInvalidConfig, name, err)
		}
		templates[mode] = tmpl
	}

	return &PromptBuilder{templates: templates, persona: persona}, nil
}

// Render produces the prompt text for req.
func (b *PromptBuilder) Render(req Request) (string, error) {
	if strings.TrimSpace(req.RawInput) == "" {
		return "", ErrEmptyInput
	}

	tmpl, ok := b.templates[req.Mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}

	var buf bytes.Buffer
	data := promptData{Input: req.RawInput, Persona: b.persona}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// Build renders the prompt for req and wraps it in a generateContent body:
// {"contents":[{"parts":[{"text": prompt}]}]}.
func (b *PromptBuilder) Build(req Request) (*Payload, error) {
	prompt, err := b.Render(req)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(generateContentRequest{
		Contents: []*genai.Content{
			{Parts: []*genai.Part{{Text: prompt}}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	return &Payload{Prompt: prompt, Body: body}, nil
}
